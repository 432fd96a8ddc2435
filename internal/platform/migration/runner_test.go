// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/internal/platform/migration"
)

func TestPgx5URL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/voyara":   "pgx5://u:p@db:5432/voyara",
		"postgresql://u:p@db:5432/voyara": "pgx5://u:p@db:5432/voyara",
		"pgx5://u:p@db:5432/voyara":       "pgx5://u:p@db:5432/voyara",
		"host=db dbname=voyara":           "host=db dbname=voyara",
	}

	for input, want := range tests {
		assert.Equal(t, want, migration.Pgx5URL(input), input)
	}
}

func TestRunUp_RejectsMissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := migration.RunUp("postgres://localhost/voyara", filepath.Join(t.TempDir(), "absent"), logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")

	file := filepath.Join(t.TempDir(), "000001_init.up.sql")
	require.NoError(t, os.WriteFile(file, []byte("SELECT 1;"), 0o600))

	err = migration.RunUp("postgres://localhost/voyara", file, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
