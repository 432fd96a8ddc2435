// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import "slices"

// DefaultItemsPerPage is the page size used when a [Paginator] is built with a
// non-positive size.
const DefaultItemsPerPage = 10

// # Paginator

// Paginator slices an ordered in-memory collection into fixed-size pages.
//
// # Invariants
//
//   - currentPage is always within [1, max(TotalPages, 1)].
//   - itemsPerPage never changes after construction.
//   - The source collection is never modified.
//
// # Concurrency
//
// Paginator is not safe for concurrent use.
type Paginator[T any] struct {
	items        []T
	itemsPerPage int
	currentPage  int
}

// NewPaginator builds a [Paginator] positioned on initialPage.
//
// An out-of-range initial page is clamped into the valid range rather than
// rejected, so a stale page number from a previous result set never errors.
func NewPaginator[T any](items []T, itemsPerPage, initialPage int) *Paginator[T] {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}

	paginator := &Paginator[T]{
		items:        items,
		itemsPerPage: itemsPerPage,
		currentPage:  initialPage,
	}
	paginator.clamp()

	return paginator
}

// # Derived State

// TotalItems returns the length of the source collection.
func (paginator *Paginator[T]) TotalItems() int {
	return len(paginator.items)
}

// TotalPages returns ceil(TotalItems / ItemsPerPage), or 0 for an empty collection.
func (paginator *Paginator[T]) TotalPages() int {
	return (len(paginator.items) + paginator.itemsPerPage - 1) / paginator.itemsPerPage
}

// ItemsPerPage returns the fixed page size.
func (paginator *Paginator[T]) ItemsPerPage() int {
	return paginator.itemsPerPage
}

// CurrentPage returns the 1-indexed current page.
func (paginator *Paginator[T]) CurrentPage() int {
	return paginator.currentPage
}

// CanGoNext reports whether a page exists after the current one.
func (paginator *Paginator[T]) CanGoNext() bool {
	return paginator.currentPage < paginator.TotalPages()
}

// CanGoPrev reports whether a page exists before the current one.
func (paginator *Paginator[T]) CanGoPrev() bool {
	return paginator.currentPage > 1
}

// PageData returns the items of the current page.
//
// The result is capacity-clipped: appending to it allocates instead of
// writing into the source collection.
func (paginator *Paginator[T]) PageData() []T {
	total := len(paginator.items)
	start := (paginator.currentPage - 1) * paginator.itemsPerPage
	if start >= total {
		return []T{}
	}

	end := min(start+paginator.itemsPerPage, total)
	return slices.Clip(paginator.items[start:end])
}

// Meta converts the current state into the response metadata block.
func (paginator *Paginator[T]) Meta() Meta {
	return NewMeta(paginator.currentPage, paginator.itemsPerPage, len(paginator.items))
}

// # Navigation

// GoToPage moves to page n. It reports false and leaves the state untouched
// when n is outside [1, TotalPages].
func (paginator *Paginator[T]) GoToPage(n int) bool {
	if n < 1 || n > paginator.TotalPages() {
		return false
	}
	paginator.currentPage = n
	return true
}

// NextPage advances one page. It is a no-op on the last page.
func (paginator *Paginator[T]) NextPage() bool {
	if !paginator.CanGoNext() {
		return false
	}
	paginator.currentPage++
	return true
}

// PrevPage steps back one page. It is a no-op on the first page.
func (paginator *Paginator[T]) PrevPage() bool {
	if !paginator.CanGoPrev() {
		return false
	}
	paginator.currentPage--
	return true
}

// SetItems replaces the source collection, e.g. after a filter changed the
// result set. The current page is re-clamped against the new page count.
func (paginator *Paginator[T]) SetItems(items []T) {
	paginator.items = items
	paginator.clamp()
}

// clamp pulls currentPage back into [1, max(TotalPages, 1)].
func (paginator *Paginator[T]) clamp() {
	upper := max(paginator.TotalPages(), 1)

	if paginator.currentPage > upper {
		paginator.currentPage = upper
	}
	if paginator.currentPage < 1 {
		paginator.currentPage = 1
	}
}
