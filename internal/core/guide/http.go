// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/voyara/internal/platform/middleware"
	requestutil "github.com/taibuivan/voyara/internal/platform/request"
	"github.com/taibuivan/voyara/internal/platform/respond"
	"github.com/taibuivan/voyara/internal/platform/sec"
	"github.com/taibuivan/voyara/pkg/convert"
	"github.com/taibuivan/voyara/pkg/pagination"
	"github.com/taibuivan/voyara/pkg/query"
)

// # Handler Implementation

// Handler exposes guide discovery over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a guide [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the guide endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): search, guide detail, and the caller's search history.
//   - Catalogue (Restricted): [sec.RoleAdmin] may upsert and delete guides.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.searchGuides)
	router.Get("/history", handler.listHistory)
	router.Delete("/history", handler.clearHistory)
	router.Get("/{id}", handler.getGuide)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Put("/{id}", handler.upsertGuide)
		admin.Delete("/{id}", handler.deleteGuide)
	})

	return router
}

// # Response Payloads

// searchSummary is the "search" block of a search response.
type searchSummary struct {
	Query     string   `json:"query"`
	ElapsedMS float64  `json:"elapsed_ms"`
	Facets    Facets   `json:"facets"`
	History   []string `json:"history"`
}

// searchEnvelope extends the paginated envelope with search metadata.
type searchEnvelope struct {
	Data   []*Guide        `json:"data"`
	Meta   pagination.Meta `json:"meta"`
	Search searchSummary   `json:"search"`
}

// # Discovery Endpoints

/*
GET /api/v1/guides.

Description: Filters, sorts, and paginates the guide catalogue. Callers that
send a bearer token or an X-Session-ID header get their query recorded in
their search history.

Request:
  - q: string (free text over name, location, experience, specialties)
  - location: string
  - specialty: string
  - min_price: float (default 0)
  - max_price: float (default 1000)
  - min_rating: float (0-5, default 0)
  - verified: bool (true keeps verified guides only)
  - available: bool (true keeps available guides only)
  - languages: string (comma list, any match)
  - sort: string (relevance, rating, price_low, price_high, newest)
  - page: int
  - limit: int

Response:
  - 200: searchEnvelope
  - 400: VALIDATION_ERROR: Invalid filter values
*/
func (handler *Handler) searchGuides(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filters := filtersFromRequest(request)

	page, err := handler.service.Search(request.Context(), requestutil.Owner(request), filters, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, searchEnvelope{
		Data: page.Guides,
		Meta: page.Meta,
		Search: searchSummary{
			Query:     page.Query,
			ElapsedMS: page.ElapsedMillis(),
			Facets:    page.Facets,
			History:   page.History,
		},
	})
}

// filtersFromRequest maps query parameters onto [Filters], starting from the defaults.
func filtersFromRequest(request *http.Request) Filters {
	values := request.URL.Query()
	filters := DefaultFilters()

	filters.Query = values.Get("q")
	filters.Location = values.Get("location")
	filters.Specialty = values.Get("specialty")
	filters.MinPrice = convert.ToFloat64D(values.Get("min_price"), DefaultMinPrice)
	filters.MaxPrice = convert.ToFloat64D(values.Get("max_price"), DefaultMaxPrice)
	filters.MinRating = convert.ToFloat64D(values.Get("min_rating"), 0)
	filters.Verified = RequirementOf(convert.ToBool(values.Get("verified")))
	filters.Availability = RequirementOf(convert.ToBool(values.Get("available")))

	if languages := query.StringSlice(values.Get("languages")); languages != nil {
		filters.Languages = languages
	}

	if sort := values.Get("sort"); sort != "" {
		filters.SortBy = SortStrategy(sort)
	}

	return filters
}

/*
GET /api/v1/guides/{id}.

Response:
  - 200: Guide
  - 404: NOT_FOUND: Guide not found
*/
func (handler *Handler) getGuide(writer http.ResponseWriter, request *http.Request) {
	guide, err := handler.service.GetGuide(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, guide)
}

// # Search History Endpoints

// GET /api/v1/guides/history returns the caller's recent queries, most recent first.
func (handler *Handler) listHistory(writer http.ResponseWriter, request *http.Request) {
	history, err := handler.service.History(request.Context(), requestutil.Owner(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, history)
}

// DELETE /api/v1/guides/history forgets the caller's recent queries.
func (handler *Handler) clearHistory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.ClearHistory(request.Context(), requestutil.Owner(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Catalogue Endpoints

/*
PUT /api/v1/guides/{id}.

Description: Creates or replaces a guide listing. The path id wins over any
id in the body.

Request (Body):
  - Guide: JSON object

Response:
  - 200: Guide
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED
  - 403: FORBIDDEN
  - 422: UNPROCESSABLE: The catalogue is read-only
*/
func (handler *Handler) upsertGuide(writer http.ResponseWriter, request *http.Request) {
	var guide Guide
	if err := requestutil.DecodeJSON(writer, request, &guide); err != nil {
		respond.Error(writer, request, err)
		return
	}

	guide.ID = requestutil.ID(request, "id")

	if err := handler.service.UpsertGuide(request.Context(), &guide); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, &guide)
}

// DELETE /api/v1/guides/{id} removes a listing from an editable catalogue.
func (handler *Handler) deleteGuide(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteGuide(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
