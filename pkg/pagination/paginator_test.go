// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/pkg/pagination"
)

// sequence returns [1..n].
func sequence(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

/*
TestPaginator_TwentyThreeItems walks the 23-items / 6-per-page scenario.
*/
func TestPaginator_TwentyThreeItems(t *testing.T) {
	paginator := pagination.NewPaginator(sequence(23), 6, 1)

	assert.Equal(t, 4, paginator.TotalPages())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, paginator.PageData())

	require.True(t, paginator.GoToPage(4))
	assert.Equal(t, []int{19, 20, 21, 22, 23}, paginator.PageData())
	assert.Len(t, paginator.PageData(), 23-3*6)

	// 1. Out-of-range target is rejected
	assert.False(t, paginator.GoToPage(5))
	assert.Equal(t, 4, paginator.CurrentPage())
}

/*
TestPaginator_Partition checks that concatenating every page reproduces the collection.
*/
func TestPaginator_Partition(t *testing.T) {
	for _, size := range []int{1, 3, 6, 7, 10, 25} {
		items := sequence(23)
		paginator := pagination.NewPaginator(items, size, 1)

		var collected []int
		for page := 1; page <= paginator.TotalPages(); page++ {
			require.True(t, paginator.GoToPage(page))
			collected = append(collected, paginator.PageData()...)
		}

		assert.Equal(t, items, collected, "page size %d", size)
	}
}

/*
TestPaginator_Empty verifies the zero-item state machine.
*/
func TestPaginator_Empty(t *testing.T) {
	paginator := pagination.NewPaginator[string](nil, 10, 3)

	assert.Equal(t, 0, paginator.TotalPages())
	assert.Equal(t, 1, paginator.CurrentPage())
	assert.Empty(t, paginator.PageData())
	assert.False(t, paginator.CanGoNext())
	assert.False(t, paginator.CanGoPrev())
	assert.False(t, paginator.GoToPage(1))
	assert.False(t, paginator.NextPage())
	assert.False(t, paginator.PrevPage())
}

/*
TestPaginator_GoToPageIdempotence ensures no-op targets never change state.
*/
func TestPaginator_GoToPageIdempotence(t *testing.T) {
	paginator := pagination.NewPaginator(sequence(30), 10, 2)

	assert.True(t, paginator.GoToPage(paginator.CurrentPage()))
	assert.Equal(t, 2, paginator.CurrentPage())

	for _, target := range []int{-1, 0, 4, 100} {
		assert.False(t, paginator.GoToPage(target))
		assert.Equal(t, 2, paginator.CurrentPage())
	}
}

/*
TestPaginator_Boundaries verifies next/prev never wrap around.
*/
func TestPaginator_Boundaries(t *testing.T) {
	paginator := pagination.NewPaginator(sequence(15), 5, 1)

	assert.False(t, paginator.CanGoPrev())
	assert.False(t, paginator.PrevPage())
	assert.Equal(t, 1, paginator.CurrentPage())

	assert.True(t, paginator.NextPage())
	assert.True(t, paginator.NextPage())
	assert.False(t, paginator.CanGoNext())
	assert.False(t, paginator.NextPage())
	assert.Equal(t, 3, paginator.CurrentPage())
	assert.True(t, paginator.CanGoPrev())
}

/*
TestPaginator_SetItemsClamps verifies the page is pulled back when the result set shrinks.
*/
func TestPaginator_SetItemsClamps(t *testing.T) {
	paginator := pagination.NewPaginator(sequence(50), 10, 5)
	require.Equal(t, 5, paginator.CurrentPage())

	// 1. Shrink to two pages
	paginator.SetItems(sequence(12))
	assert.Equal(t, 2, paginator.CurrentPage())
	assert.Equal(t, []int{11, 12}, paginator.PageData())

	// 2. Shrink to nothing
	paginator.SetItems(nil)
	assert.Equal(t, 1, paginator.CurrentPage())
	assert.Empty(t, paginator.PageData())

	// 3. Growing back keeps the clamped page
	paginator.SetItems(sequence(50))
	assert.Equal(t, 1, paginator.CurrentPage())
}

/*
TestPaginator_InitialPageClamped covers constructor clamping and the default size.
*/
func TestPaginator_InitialPageClamped(t *testing.T) {
	assert.Equal(t, 3, pagination.NewPaginator(sequence(25), 10, 9).CurrentPage())
	assert.Equal(t, 1, pagination.NewPaginator(sequence(25), 10, -2).CurrentPage())
	assert.Equal(t, pagination.DefaultItemsPerPage, pagination.NewPaginator(sequence(25), 0, 1).ItemsPerPage())
}

/*
TestPaginator_PageDataDoesNotAlias ensures appends never overwrite the source.
*/
func TestPaginator_PageDataDoesNotAlias(t *testing.T) {
	items := sequence(10)
	paginator := pagination.NewPaginator(items, 4, 1)

	page := paginator.PageData()
	_ = append(page, 99)

	assert.Equal(t, 5, items[4])
}

/*
TestPaginator_Meta verifies the response metadata mirrors navigation state.
*/
func TestPaginator_Meta(t *testing.T) {
	paginator := pagination.NewPaginator(sequence(23), 6, 2)

	meta := paginator.Meta()
	assert.Equal(t, pagination.Meta{
		Page:       2,
		Limit:      6,
		Total:      23,
		TotalPages: 4,
		HasNext:    true,
		HasPrev:    true,
	}, meta)
}

/*
TestFromRequest checks query parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"explicit", "?page=3&limit=6", pagination.Params{Page: 3, Limit: 6}},
		{"negative_page", "?page=-4", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"excessive_limit", "?limit=1000", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"garbage", "?page=abc&limit=xyz", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/guides"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}
