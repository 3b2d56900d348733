// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/photodir/internal/platform/apperr"
)

// ErrFetchFailed is returned when the collection could not be loaded.
//
// The message is the one shown to users; the cause is attached with
// [apperr.AppError.WithCause] for logging.
var ErrFetchFailed = apperr.UpstreamUnavailable("Failed to load photographers")

// maxPayloadBytes bounds the upstream response body.
const maxPayloadBytes = 16 << 20

// # Source Contract

// Source supplies the full photographer collection.
//
// Implementations return [ErrFetchFailed] (possibly with a cause) on any
// transport, status, or decoding failure.
type Source interface {
	Fetch(ctx context.Context) ([]Photographer, error)
}

// SourceFunc adapts a plain function to [Source].
type SourceFunc func(ctx context.Context) ([]Photographer, error)

// Fetch calls f(ctx).
func (f SourceFunc) Fetch(ctx context.Context) ([]Photographer, error) {
	return f(ctx)
}

// # HTTP Source

// HTTPSource fetches the collection from a REST endpoint returning a JSON
// array of photographer records.
type HTTPSource struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPSource builds a [HTTPSource] for url with a per-request timeout.
func NewHTTPSource(url string, timeout time.Duration, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// URL returns the upstream endpoint.
func (source *HTTPSource) URL() string {
	return source.url
}

/*
Fetch performs a single GET against the upstream endpoint.

Description: Records are decoded leniently. A record missing optional fields
(tags, styles, portfolio, reviews, text fields) is kept with empty defaults
rather than failing the whole collection.

Returns:
  - []Photographer: Collection in upstream order (never nil on success)
  - error: ErrFetchFailed with the underlying cause attached
*/
func (source *HTTPSource) Fetch(ctx context.Context) ([]Photographer, error) {
	collection, err := source.fetch(ctx)
	if err != nil {
		sourceFetches.WithLabelValues("failed").Inc()
		source.logger.WarnContext(ctx, "source_fetch_failed",
			slog.String("url", source.url),
			slog.Any("error", err),
		)
		return nil, ErrFetchFailed.WithCause(err)
	}

	sourceFetches.WithLabelValues("ok").Inc()
	source.logger.DebugContext(ctx, "source_fetched",
		slog.String("url", source.url),
		slog.Int("count", len(collection)),
	)
	return collection, nil
}

// Ping checks that the upstream answers with a decodable collection. It is
// used by the readiness probe and does not count as a fetch.
func (source *HTTPSource) Ping(ctx context.Context) error {
	_, err := source.fetch(ctx)
	return err
}

func (source *HTTPSource) fetch(ctx context.Context) ([]Photographer, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, source.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := source.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", source.url, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %d", source.url, response.StatusCode)
	}

	return DecodeCollection(io.LimitReader(response.Body, maxPayloadBytes))
}

// # Wire Format

// record is the upstream JSON shape. Field names follow the provider.
type record struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Location   string         `json:"location"`
	Bio        string         `json:"bio"`
	Price      float64        `json:"price"`
	Rating     float64        `json:"rating"`
	Tags       []string       `json:"tags"`
	Styles     []string       `json:"styles"`
	ProfilePic string         `json:"profilePic"`
	Portfolio  []string       `json:"portfolio"`
	Reviews    []reviewRecord `json:"reviews"`
}

type reviewRecord struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`
}

// DecodeCollection decodes a JSON array of upstream records.
//
// A payload that is not an array of objects fails as a whole; missing fields
// inside a record do not.
func DecodeCollection(reader io.Reader) ([]Photographer, error) {
	var records []record
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}

	collection := make([]Photographer, 0, len(records))
	for _, r := range records {
		collection = append(collection, r.toDomain())
	}
	return collection, nil
}

func (r record) toDomain() Photographer {
	reviews := make([]Review, 0, len(r.Reviews))
	for _, review := range r.Reviews {
		reviews = append(reviews, Review(review))
	}

	return Photographer{
		ID:         r.ID,
		Name:       r.Name,
		Location:   r.Location,
		Bio:        r.Bio,
		Price:      r.Price,
		Rating:     r.Rating,
		Tags:       orEmpty(r.Tags),
		Styles:     orEmpty(r.Styles),
		ProfilePic: r.ProfilePic,
		Portfolio:  orEmpty(r.Portfolio),
		Reviews:    reviews,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
