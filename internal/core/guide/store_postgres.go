// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/voyara/internal/platform/apperr"
	"github.com/taibuivan/voyara/internal/platform/database/schema"
	"github.com/taibuivan/voyara/internal/platform/dberr"
	"github.com/taibuivan/voyara/pkg/pointer"
)

// PostgresRepository reads and writes the indexed guide catalogue.
//
// Rows are populated off-chain by the registry indexer or by `guidectl import`.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed guide source.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var guideColumns = strings.Join(schema.MarketGuide.Columns(), ", ")

// List returns every guide ordered by creation time, then id.
func (repository *PostgresRepository) List(context context.Context) ([]*Guide, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		guideColumns, schema.MarketGuide.Table, schema.MarketGuide.CreatedAt, schema.MarketGuide.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_guides")
	}
	defer rows.Close()

	guides := make([]*Guide, 0)
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_guide")
		}
		guides = append(guides, guide)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_guides")
	}

	return guides, nil
}

/*
FindByID retrieves a guide by its wallet address or generated id.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Guide: The guide record
  - error: apperr.NotFound if absent, otherwise an internal error
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Guide, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		guideColumns, schema.MarketGuide.Table, schema.MarketGuide.ID)

	guide, err := scanGuide(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Guide")
		}
		return nil, dberr.Wrap(err, "get_guide_by_id")
	}

	return guide, nil
}

/*
Upsert inserts a guide or replaces every field of the existing row.

Parameters:
  - context: context.Context
  - guide: *Guide

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, guide *Guide) error {
	table := schema.MarketGuide
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
			%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = NOW()
	`,
		table.Table,
		table.ID, table.Name, table.Location, table.Experience, table.Specialties, table.Languages,
		table.PricePerHour, table.Rating, table.IsVerified, table.IsAvailable, table.VerifiedAt,
		table.ID,
		table.Name, table.Name, table.Location, table.Location,
		table.Experience, table.Experience, table.Specialties, table.Specialties,
		table.Languages, table.Languages, table.PricePerHour, table.PricePerHour,
		table.Rating, table.Rating, table.IsVerified, table.IsVerified,
		table.IsAvailable, table.IsAvailable, table.VerifiedAt, table.VerifiedAt,
		table.UpdatedAt,
	)

	var experience *string
	if guide.Experience != "" {
		experience = pointer.To(guide.Experience)
	}

	_, err := repository.pool.Exec(context, query,
		guide.ID,
		guide.Name,
		guide.Location,
		experience,
		nonNil(guide.Specialties),
		nonNil(guide.Languages),
		guide.PricePerHour,
		guide.Rating,
		guide.Verified,
		guide.Availability,
		verificationTime(guide.VerificationDate),
	)
	if err != nil {
		return dberr.Wrap(err, "upsert_guide")
	}

	return nil
}

// Delete removes a guide permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.MarketGuide.Table, schema.MarketGuide.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_guide")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Guide")
	}

	return nil
}

// # Row Mapping

func scanGuide(row pgx.Row) (*Guide, error) {
	guide := &Guide{}

	var experience *string
	var verifiedAt *time.Time

	err := row.Scan(
		&guide.ID,
		&guide.Name,
		&guide.Location,
		&experience,
		&guide.Specialties,
		&guide.Languages,
		&guide.PricePerHour,
		&guide.Rating,
		&guide.Verified,
		&guide.Availability,
		&verifiedAt,
	)
	if err != nil {
		return nil, err
	}

	guide.Experience = pointer.Val(experience)
	if verifiedAt != nil {
		guide.VerificationDate = verifiedAt.UTC().Format(time.RFC3339)
	}

	return guide, nil
}

// verificationTime maps an ISO-8601 verification date onto a nullable column value.
func verificationTime(date string) *time.Time {
	if date == "" {
		return nil
	}

	for _, layout := range verificationLayouts {
		if parsed, err := time.Parse(layout, date); err == nil {
			return pointer.To(parsed)
		}
	}

	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
