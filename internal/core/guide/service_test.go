// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/internal/core/guide"
	"github.com/taibuivan/voyara/internal/platform/apperr"
	"github.com/taibuivan/voyara/pkg/pagination"
)

// # Fakes

// editableRepository is an in-memory guide source that accepts edits.
type editableRepository struct {
	*guide.FixtureRepository
	upserted []*guide.Guide
	deleted  []string
}

func (repository *editableRepository) Upsert(_ context.Context, g *guide.Guide) error {
	repository.upserted = append(repository.upserted, g)
	return nil
}

func (repository *editableRepository) Delete(_ context.Context, id string) error {
	repository.deleted = append(repository.deleted, id)
	return nil
}

// brokenHistory fails every call.
type brokenHistory struct{}

func (brokenHistory) List(context.Context, string) ([]string, error) {
	return nil, errors.New("redis_search_history_list_failed: connection refused")
}

func (brokenHistory) Record(context.Context, string, string) error {
	return errors.New("redis_search_history_record_failed: connection refused")
}

func (brokenHistory) Clear(context.Context, string) error {
	return errors.New("redis_search_history_clear_failed: connection refused")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T) (*guide.Service, *guide.MemoryHistoryRepository) {
	t.Helper()
	repository, err := guide.NewFixtureRepository()
	require.NoError(t, err)

	histories := guide.NewMemoryHistoryRepository()
	return guide.NewService(repository, histories, quietLogger()), histories
}

// # Search

func TestService_SearchPaginates(t *testing.T) {
	service, _ := newService(t)

	page, err := service.Search(context.Background(), "", guide.DefaultFilters(), pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, page.Guides, 10)
	assert.Equal(t, 2, page.Meta.Page)
	assert.Equal(t, 24, page.Meta.Total)
	assert.Equal(t, 3, page.Meta.TotalPages)
	assert.True(t, page.Meta.HasNext)
	assert.True(t, page.Meta.HasPrev)
	assert.GreaterOrEqual(t, page.ElapsedMillis(), 0.0)
}

func TestService_SearchClampsPageBeyondLast(t *testing.T) {
	service, _ := newService(t)

	page, err := service.Search(context.Background(), "", guide.DefaultFilters(), pagination.Params{Page: 99, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 3, page.Meta.Page)
	assert.Len(t, page.Guides, 4)
	assert.False(t, page.Meta.HasNext)
}

func TestService_SearchRecordsHistoryPerOwner(t *testing.T) {
	ctx := context.Background()
	service, histories := newService(t)

	filters := withFilter(t, guide.DefaultFilters(), guide.FieldQuery, "history")
	_, err := service.Search(ctx, "session:abc", filters, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	filters = withFilter(t, filters, guide.FieldQuery, "food")
	page, err := service.Search(ctx, "session:abc", filters, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, []string{"food", "history"}, page.History)

	stored, err := histories.List(ctx, "session:abc")
	require.NoError(t, err)
	assert.Equal(t, []string{"food", "history"}, stored)

	anonymous, err := service.Search(ctx, "", filters, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"food"}, anonymous.History)

	other, err := histories.List(ctx, "session:other")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_SearchRejectsInvalidFilters(t *testing.T) {
	service, _ := newService(t)

	filters := guide.DefaultFilters()
	filters.MinRating = 7
	filters.SortBy = "cheapest"

	_, err := service.Search(context.Background(), "", filters, pagination.Params{Page: 1, Limit: 20})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 2)
}

func TestService_HistoryFailuresDoNotFailSearch(t *testing.T) {
	repository, err := guide.NewFixtureRepository()
	require.NoError(t, err)
	service := guide.NewService(repository, brokenHistory{}, quietLogger())

	filters := withFilter(t, guide.DefaultFilters(), guide.FieldQuery, "kyoto")
	page, err := service.Search(context.Background(), "user:1", filters, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.NotEmpty(t, page.Guides)
	assert.Equal(t, []string{"kyoto"}, page.History)

	_, err = service.History(context.Background(), "user:1")
	assert.Error(t, err)
}

func TestService_HistoryForAnonymousIsEmpty(t *testing.T) {
	service, _ := newService(t)

	entries, err := service.History(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{}, entries)

	assert.NoError(t, service.ClearHistory(context.Background(), ""))
}

func TestService_ClearHistory(t *testing.T) {
	ctx := context.Background()
	service, histories := newService(t)
	require.NoError(t, histories.Record(ctx, "user:1", "kyoto"))

	require.NoError(t, service.ClearHistory(ctx, "user:1"))

	entries, err := service.History(ctx, "user:1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// # Guide Lookup

func TestService_GetGuideAcceptsAnyAddressCase(t *testing.T) {
	service, _ := newService(t)

	found, err := service.GetGuide(context.Background(), "  0x30877432D1026706D7E805DA846A32C3BB81E3C2 ")
	require.NoError(t, err)
	assert.Equal(t, "Lan Nguyen", found.Name)
}

// # Catalogue Management

func TestService_FixtureCatalogueIsReadOnly(t *testing.T) {
	service, _ := newService(t)

	err := service.UpsertGuide(context.Background(), &guide.Guide{Name: "New"})
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	err = service.DeleteGuide(context.Background(), lanWallet)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

func TestService_UpsertGuide(t *testing.T) {
	fixtures, err := guide.NewFixtureRepository()
	require.NoError(t, err)
	repository := &editableRepository{FixtureRepository: fixtures}
	service := guide.NewService(repository, guide.NewMemoryHistoryRepository(), quietLogger())

	t.Run("generates_missing_id", func(t *testing.T) {
		record := &guide.Guide{Name: "Draft", Rating: 4}
		require.NoError(t, service.UpsertGuide(context.Background(), record))
		assert.NotEmpty(t, record.ID)
	})

	t.Run("checksums_wallet_id", func(t *testing.T) {
		record := &guide.Guide{ID: lanWallet, Name: "Lan Nguyen"}
		require.NoError(t, service.UpsertGuide(context.Background(), record))

		canonical, err := guide.CanonicalID(lanWallet)
		require.NoError(t, err)
		assert.Equal(t, canonical, record.ID)
	})

	t.Run("rejects_invalid_fields", func(t *testing.T) {
		record := &guide.Guide{
			PricePerHour:     -1,
			Rating:           6,
			VerificationDate: "yesterday",
		}
		err := service.UpsertGuide(context.Background(), record)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		assert.Len(t, appError.Details, 4)
	})

	t.Run("rejects_reserved_id", func(t *testing.T) {
		for _, id := range []string{"history", " History "} {
			err := service.UpsertGuide(context.Background(), &guide.Guide{ID: id, Name: "Archive"})

			appError := apperr.As(err)
			require.NotNil(t, appError, id)
			require.Len(t, appError.Details, 1)
			assert.Equal(t, "id", appError.Details[0].Field)
		}
	})

	t.Run("rejects_non_finite_numbers", func(t *testing.T) {
		record := &guide.Guide{Name: "Broken", PricePerHour: math.NaN(), Rating: math.NaN()}
		err := service.UpsertGuide(context.Background(), record)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Len(t, appError.Details, 2)
	})

	t.Run("rejects_bad_checksum", func(t *testing.T) {
		record := &guide.Guide{ID: "0x30877432D1026706d7e805da846a32c3bb81e3c2", Name: "Lan"}
		assert.Error(t, service.UpsertGuide(context.Background(), record))
	})

	require.NoError(t, service.DeleteGuide(context.Background(), "draft-1"))

	assert.Len(t, repository.upserted, 2)
	assert.Equal(t, []string{"draft-1"}, repository.deleted)
}
