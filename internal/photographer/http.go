// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package photographer provides the HTTP interface for one-shot directory queries.

# Routing Strategy

  - Public (v1): Read-only discovery endpoints (GET /photographers, /cities, /styles).

Stateful browsing (visible window, load-more, selection, inquiries) is served
by the browse package.
*/
package photographer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/photodir/internal/platform/request"
	"github.com/taibuivan/photodir/internal/platform/respond"
	"github.com/taibuivan/photodir/pkg/pointer"
	"github.com/taibuivan/photodir/pkg/query"
	"github.com/taibuivan/photodir/pkg/window"
)

// # Handler Implementation

// Handler implements the HTTP layer for directory discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new photographer [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the discovery endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/photographers", handler.listPhotographers)
	router.Get("/photographers/{id}", handler.getPhotographer)
	router.Get("/cities", handler.listCities)
	router.Get("/styles", handler.listStyles)
	router.Get("/filter-options", handler.filterOptions)

	return router
}

// # Query Payloads

// CriteriaQuery is the URL query form of [Criteria].
//
// Styles may be given as repeated "style" keys, a comma-separated "styles"
// value, or both.
type CriteriaQuery struct {
	Query     string   `schema:"q"`
	MinRating *float64 `schema:"min_rating"`
	Style     []string `schema:"style"`
	Styles    string   `schema:"styles"`
	City      string   `schema:"city"`
	MaxPrice  *float64 `schema:"max_price"`
	Sort      string   `schema:"sort"`
}

// Criteria converts the query onto [DefaultCriteria].
func (q CriteriaQuery) Criteria() Criteria {
	criteria := DefaultCriteria().
		WithSearchTerm(q.Query).
		WithCity(q.City).
		WithMaxPrice(pointer.Fallback(q.MaxPrice, PriceCeiling)).
		WithSort(SortOption(q.Sort))

	if q.MinRating != nil {
		criteria = criteria.WithMinRating(*q.MinRating)
	}

	styles := make([]string, 0, len(q.Style))
	for _, value := range q.Style {
		styles = append(styles, query.StringSlice(value)...)
	}
	styles = append(styles, query.StringSlice(q.Styles)...)

	return criteria.WithStyles(styles)
}

// # Endpoints

/*
GET /api/v1/photographers.

Description: Fetches the collection and returns the filtered, sorted view.

Request:
  - q: string (case-insensitive match on name, location, tags)
  - min_rating: number
  - style: []string (all must be present) / styles: comma-separated
  - city: string (exact)
  - max_price: number (0..20000)
  - sort: string ("", priceLowHigh, ratingHighLow, recent)
  - limit: int (optional visible window)

Response:
  - 200: []Card with window meta
  - 400: VALIDATION_ERROR
  - 502: UPSTREAM_UNAVAILABLE
*/
func (handler *Handler) listPhotographers(writer http.ResponseWriter, request *http.Request) {
	var params CriteriaQuery
	if err := requestutil.DecodeQuery(request, &params); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Search(request.Context(), params.Criteria(), window.LimitFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Windowed(writer, Cards(result.Results), result.Meta)
}

/*
GET /api/v1/photographers/{id}.

Response:
  - 200: Photographer (full profile)
  - 400: id is not an integer
  - 404: NOT_FOUND
*/
func (handler *Handler) getPhotographer(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// listCities handles GET /api/v1/cities.
func (handler *Handler) listCities(writer http.ResponseWriter, request *http.Request) {
	cities, err := handler.service.Cities(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cities)
}

// listStyles handles GET /api/v1/styles.
func (handler *Handler) listStyles(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, StyleUniverse())
}

// FilterOptions describes the static choices offered by the filter panel.
type FilterOptions struct {
	Styles       []Style      `json:"styles"`
	RatingFloors []float64    `json:"rating_floors"`
	SortOptions  []SortOption `json:"sort_options"`
	PriceCeiling float64      `json:"price_ceiling"`
	PriceStep    float64      `json:"price_step"`
}

// filterOptions handles GET /api/v1/filter-options.
func (handler *Handler) filterOptions(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, FilterOptions{
		Styles:       StyleUniverse(),
		RatingFloors: RatingFloors(),
		SortOptions:  SortOptions(),
		PriceCeiling: PriceCeiling,
		PriceStep:    PriceStep,
	})
}
