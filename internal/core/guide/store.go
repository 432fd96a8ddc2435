// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import "context"

// # Guide Sources

// Repository supplies the candidate collection the pipeline runs over.
type Repository interface {
	// List returns every guide in the catalogue, in a stable order.
	List(context context.Context) ([]*Guide, error)

	// FindByID returns one guide or apperr.NotFound.
	FindByID(context context.Context, id string) (*Guide, error)
}

// CatalogueWriter is implemented by guide sources that accept edits.
type CatalogueWriter interface {
	Upsert(context context.Context, guide *Guide) error
	Delete(context context.Context, id string) error
}

// # Search History

// HistoryRepository persists the search history of one owner (user or session).
type HistoryRepository interface {
	// List returns the owner's history, most recent first.
	List(context context.Context, owner string) ([]string, error)

	// Record moves query to the front of the owner's history.
	Record(context context.Context, owner, query string) error

	// Clear forgets the owner's history.
	Clear(context context.Context, owner string) error
}
