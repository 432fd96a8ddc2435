// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/voyara/internal/platform/apperr"
	"github.com/taibuivan/voyara/internal/platform/validate"
	"github.com/taibuivan/voyara/pkg/pagination"
	"github.com/taibuivan/voyara/pkg/uuid"
)

// # Service Layer

// reservedID collides with the search-history route and cannot name a guide.
const reservedID = "history"

// Page is one page of a guide search together with the run's metadata.
type Page struct {
	Guides  []*Guide
	Meta    pagination.Meta
	Query   string
	Elapsed time.Duration
	Facets  Facets
	History []string
}

// ElapsedMillis returns [Page.Elapsed] as fractional milliseconds.
func (page *Page) ElapsedMillis() float64 {
	return float64(page.Elapsed) / float64(time.Millisecond)
}

// Service runs guide searches against a guide source and keeps per-owner history.
type Service struct {
	repo      Repository
	writer    CatalogueWriter
	histories HistoryRepository
	logger    *slog.Logger
}

// NewService constructs a [Service].
//
// The catalogue is editable only when repo also implements [CatalogueWriter].
func NewService(repo Repository, histories HistoryRepository, logger *slog.Logger) *Service {
	writer, _ := repo.(CatalogueWriter)

	return &Service{
		repo:      repo,
		writer:    writer,
		histories: histories,
		logger:    logger,
	}
}

// # Discovery

/*
Search runs the discovery pipeline and returns the requested page.

Description: The full catalogue is loaded, filtered, sorted, and then sliced
by a [pagination.Paginator]. A page beyond the last one is clamped to the
last page. When owner is non-empty the query is recorded in their history;
history failures are logged and never fail the search.

Parameters:
  - context: context.Context
  - owner: string (user id, session id, or "" for anonymous)
  - filters: Filters
  - params: pagination.Params

Returns:
  - *Page: The requested page and search metadata
  - error: VALIDATION_ERROR for bad filters, or guide source errors
*/
func (service *Service) Search(context context.Context, owner string, filters Filters, params pagination.Params) (*Page, error) {

	// Boundary validation
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	guides, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	searcher := NewSearcher(guides,
		WithLogger(service.logger),
		WithFilters(filters),
		WithHistory(service.loadHistory(context, owner)),
	)
	searcher.Search(filters.Query)
	result := searcher.Result()

	if owner != "" && strings.TrimSpace(filters.Query) != "" {
		if err := service.histories.Record(context, owner, filters.Query); err != nil {
			service.logger.Warn("guide_search_history_record_failed",
				slog.String("owner", owner),
				slog.Any("error", err),
			)
		}
	}

	paginator := pagination.NewPaginator(result.Guides, params.Limit, params.Page)

	service.logger.Info("guide_search_completed",
		slog.String("query", result.Query),
		slog.String("sort", string(filters.SortBy)),
		slog.Int("total", result.Total),
		slog.Float64("elapsed_ms", result.ElapsedMillis()),
	)

	return &Page{
		Guides:  paginator.PageData(),
		Meta:    paginator.Meta(),
		Query:   result.Query,
		Elapsed: result.Elapsed,
		Facets:  result.Facets,
		History: result.History,
	}, nil
}

// loadHistory reads the owner's history, degrading to empty on failure.
func (service *Service) loadHistory(context context.Context, owner string) []string {
	if owner == "" {
		return nil
	}

	entries, err := service.histories.List(context, owner)
	if err != nil {
		service.logger.Warn("guide_search_history_load_failed",
			slog.String("owner", owner),
			slog.Any("error", err),
		)
		return nil
	}
	return entries
}

// GetGuide fetches a single guide by id or wallet address (any case).
func (service *Service) GetGuide(context context.Context, id string) (*Guide, error) {
	id, err := CanonicalID(id)
	if err != nil {
		return nil, err
	}
	return service.repo.FindByID(context, id)
}

// # Search History

// History returns the owner's search history, most recent first.
func (service *Service) History(context context.Context, owner string) ([]string, error) {
	if owner == "" {
		return []string{}, nil
	}
	return service.histories.List(context, owner)
}

// ClearHistory forgets the owner's search history.
func (service *Service) ClearHistory(context context.Context, owner string) error {
	if owner == "" {
		return nil
	}

	if err := service.histories.Clear(context, owner); err != nil {
		return err
	}

	service.logger.Info("guide_search_history_cleared", slog.String("owner", owner))
	return nil
}

// # Catalogue Management

/*
UpsertGuide validates and stores a guide record.

Description: Wallet-address ids are stored in checksum form and a missing
id is replaced by a generated UUID v7. Only guide sources implementing
[CatalogueWriter] accept edits.

Parameters:
  - context: context.Context
  - guide: *Guide

Returns:
  - error: UNPROCESSABLE for read-only sources, VALIDATION_ERROR, or persistence errors
*/
func (service *Service) UpsertGuide(context context.Context, guide *Guide) error {
	if service.writer == nil {
		return apperr.Unprocessable("The guide catalogue is read-only")
	}

	id, err := CanonicalID(guide.ID)
	if err != nil {
		return err
	}
	if id == "" {
		id = uuid.New()
	}
	guide.ID = id

	validator := &validate.Validator{}
	validator.
		Custom("id", strings.EqualFold(id, reservedID), "Reserved route name").
		Required("name", guide.Name).
		MaxLen("name", guide.Name, 200).
		MaxLen("location", guide.Location, 200).
		Custom("price_per_hour", !isFinite(guide.PricePerHour), "Must be a finite number").
		Custom("price_per_hour", guide.PricePerHour < 0, "Must not be negative").
		Custom("rating", math.IsNaN(guide.Rating), "Must be a number").
		FloatRange("rating", guide.Rating, 0, MaxRating).
		Custom("verification_date", guide.VerificationDate != "" && verificationTime(guide.VerificationDate) == nil,
			"Must be an ISO-8601 date or timestamp")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.writer.Upsert(context, guide); err != nil {
		return err
	}

	service.logger.Info("guide_upserted", slog.String("guide_id", guide.ID))
	return nil
}

// DeleteGuide removes a guide from an editable catalogue.
func (service *Service) DeleteGuide(context context.Context, id string) error {
	if service.writer == nil {
		return apperr.Unprocessable("The guide catalogue is read-only")
	}

	id, err := CanonicalID(id)
	if err != nil {
		return err
	}

	if err := service.writer.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("guide_deleted", slog.String("guide_id", id))
	return nil
}
