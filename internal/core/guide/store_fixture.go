// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/taibuivan/voyara/internal/platform/apperr"
)

//go:embed fixtures/guides.toml
var embeddedFixtures string

// catalogue is the on-disk layout of a fixture file.
type catalogue struct {
	Guides []*Guide `toml:"guides"`
}

// FixtureRepository serves a read-only catalogue decoded from TOML.
//
// It stands in for the on-chain guide registry during development and demos.
type FixtureRepository struct {
	guides []*Guide
	byID   map[string]*Guide
}

// NewFixtureRepository decodes the catalogue bundled with the binary.
func NewFixtureRepository() (*FixtureRepository, error) {
	return ParseFixtures(embeddedFixtures)
}

// LoadFixtures decodes a catalogue from a TOML file on disk.
func LoadFixtures(path string) (*FixtureRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", path, err)
	}
	return ParseFixtures(string(data))
}

/*
ParseFixtures decodes a TOML catalogue document.

Description: Every entry needs a non-empty id. Wallet-address ids are
converted to checksum form, and ids must be unique after conversion.

Parameters:
  - document: string (TOML with a [[guides]] array)

Returns:
  - *FixtureRepository: The decoded catalogue
  - error: Decoding failures or duplicate/missing ids
*/
func ParseFixtures(document string) (*FixtureRepository, error) {
	var decoded catalogue
	if _, err := toml.Decode(document, &decoded); err != nil {
		return nil, fmt.Errorf("fixtures: decode: %w", err)
	}

	repository := &FixtureRepository{
		guides: make([]*Guide, 0, len(decoded.Guides)),
		byID:   make(map[string]*Guide, len(decoded.Guides)),
	}

	for position, guide := range decoded.Guides {
		if guide == nil || strings.TrimSpace(guide.ID) == "" {
			return nil, fmt.Errorf("fixtures: guide #%d has no id", position+1)
		}

		id, err := CanonicalID(guide.ID)
		if err != nil {
			return nil, fmt.Errorf("fixtures: guide #%d: bad wallet address %q", position+1, guide.ID)
		}
		guide.ID = id

		if !isFinite(guide.PricePerHour) || !isFinite(guide.Rating) {
			return nil, fmt.Errorf("fixtures: guide %q: price_per_hour and rating must be finite numbers", guide.ID)
		}

		if _, exists := repository.byID[id]; exists {
			return nil, fmt.Errorf("fixtures: duplicate guide id %q", guide.ID)
		}

		repository.byID[id] = guide
		repository.guides = append(repository.guides, guide)
	}

	return repository, nil
}

// List returns the catalogue in file order.
func (repository *FixtureRepository) List(_ context.Context) ([]*Guide, error) {
	return slices.Clone(repository.guides), nil
}

// FindByID looks a guide up by its canonical id.
func (repository *FixtureRepository) FindByID(_ context.Context, id string) (*Guide, error) {
	guide, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("Guide")
	}
	return guide, nil
}
