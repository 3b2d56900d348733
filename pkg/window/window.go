// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package window provides shared types and helpers for "visible window" list
// endpoints.
//
// # Overview
//
// Lists in photodir are not paged. The client renders a prefix of the full
// result ("the visible window") and asks for more. This package standardizes
// how the window size is requested via query parameters and how the resulting
// metadata is delivered in the API response envelope.
package window

import (
	"net/http"
	"strconv"
)

const (
	// DefaultInitial is the number of visible results after any criteria change.
	DefaultInitial = 3
	// MaxLimit is the upper bound accepted for an explicit "limit" parameter.
	MaxLimit = 1000
)

// Meta is the window metadata included in API list responses.
type Meta struct {
	VisibleCount int  `json:"visible_count"`
	Total        int  `json:"total"`
	HasMore      bool `json:"has_more"`
}

// NewMeta constructs window metadata for a response.
//
// The visible count is clamped to [0, total].
func NewMeta(visible, total int) Meta {
	visible = Clamp(visible, total)
	return Meta{
		VisibleCount: visible,
		Total:        total,
		HasMore:      visible < total,
	}
}

// Clamp bounds visible to the range [0, total].
func Clamp(visible, total int) int {
	if visible < 0 {
		return 0
	}
	if visible > total {
		return total
	}
	return visible
}

// Initial returns the window size used right after criteria change:
// initial, or total when fewer results exist.
func Initial(initial, total int) int {
	return Clamp(initial, total)
}

// Slice returns the first visible elements of items.
func Slice[T any](items []T, visible int) []T {
	return items[:Clamp(visible, len(items))]
}

// LimitFromRequest parses the "limit" query parameter.
//
// # Clamping
//
// A missing, malformed, or non-positive value returns 0, meaning "no limit".
// Values above [MaxLimit] are clamped to [MaxLimit].
func LimitFromRequest(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0
	}

	if n > MaxLimit {
		return MaxLimit
	}

	return n
}
