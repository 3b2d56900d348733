// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"context"
	"log/slog"

	"github.com/taibuivan/photodir/internal/platform/apperr"
	"github.com/taibuivan/photodir/pkg/window"
)

// # Service Layer

// Service answers one-shot directory queries. Every call performs exactly one
// fetch through the configured [Source]; stateful browsing with a visible
// window lives in the browse package.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService constructs a new [Service] over source.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// SearchResult is the outcome of [Service.Search].
type SearchResult struct {
	Results []Photographer
	Meta    window.Meta
}

/*
Search fetches the collection and applies criteria.

Parameters:
  - ctx: context.Context
  - criteria: Criteria (validated here)
  - limit: int (0 returns every match)

Returns:
  - SearchResult: Matches, trimmed to limit, with window metadata
  - error: Validation errors or ErrFetchFailed
*/
func (service *Service) Search(ctx context.Context, criteria Criteria, limit int) (SearchResult, error) {
	if err := criteria.Validate(); err != nil {
		return SearchResult{}, err
	}

	collection, err := service.source.Fetch(ctx)
	if err != nil {
		return SearchResult{}, err
	}

	results := Recompute(collection, criteria)
	searchTotal.Inc()

	visible := len(results)
	if limit > 0 {
		visible = window.Clamp(limit, len(results))
	}

	return SearchResult{
		Results: window.Slice(results, visible),
		Meta:    window.NewMeta(visible, len(results)),
	}, nil
}

/*
Get returns a single photographer with the full profile (bio, portfolio, reviews).

Returns:
  - Photographer: The matching record
  - error: apperr.NotFound or ErrFetchFailed
*/
func (service *Service) Get(ctx context.Context, id int) (Photographer, error) {
	collection, err := service.source.Fetch(ctx)
	if err != nil {
		return Photographer{}, err
	}

	found, ok := FindByID(collection, id)
	if !ok {
		return Photographer{}, apperr.NotFound("Photographer")
	}
	return found, nil
}

// Cities returns the distinct cities of the full collection.
func (service *Service) Cities(ctx context.Context) ([]string, error) {
	collection, err := service.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return DistinctCities(collection), nil
}
