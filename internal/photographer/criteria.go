// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"math"
	"slices"

	"github.com/taibuivan/photodir/internal/platform/validate"
	"github.com/taibuivan/photodir/pkg/pointer"
	"github.com/taibuivan/photodir/pkg/slice"
)

// # Sorting

// SortOption selects the comparator applied after filtering.
type SortOption string

const (
	// SortNone keeps the source order.
	SortNone SortOption = ""

	// SortPriceLowHigh orders by ascending price.
	SortPriceLowHigh SortOption = "priceLowHigh"

	// SortRatingHighLow orders by descending rating.
	SortRatingHighLow SortOption = "ratingHighLow"

	// SortRecent orders by descending id; higher ids were added later.
	SortRecent SortOption = "recent"
)

// IsValid reports whether s is a recognised [SortOption] value.
func (s SortOption) IsValid() bool {
	switch s {
	case
		SortNone,
		SortPriceLowHigh,
		SortRatingHighLow,
		SortRecent:
		return true
	}
	return false
}

// SortOptions returns every sort option in display order.
func SortOptions() []SortOption {
	return []SortOption{SortNone, SortPriceLowHigh, SortRatingHighLow, SortRecent}
}

// # Price

const (
	// PriceCeiling is the highest selectable price bound.
	PriceCeiling float64 = 20000

	// PriceStep is the granularity of the price slider.
	PriceStep float64 = 1000
)

// PriceRange is a closed interval [Min, Max].
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the inclusive range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// DefaultPriceRange returns the full selectable range.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: 0, Max: PriceCeiling}
}

// # Criteria

// Criteria is the combined set of filter and sort selections.
//
// Criteria is a value type. The With* functions return updated copies and
// never modify the receiver, so a Criteria can be shared freely between a
// session and the views derived from it.
type Criteria struct {
	SearchTerm     string     `json:"search_term"`
	MinRating      *float64   `json:"min_rating"` // nil = no floor
	RequiredStyles []Style    `json:"styles"`     // conjunctive
	City           string     `json:"city"`       // empty = any city
	PriceRange     PriceRange `json:"price_range"`
	Sort           SortOption `json:"sort"`
}

// DefaultCriteria returns the criteria of a fresh session: no constraints
// except the full price range, and no sort.
func DefaultCriteria() Criteria {
	return Criteria{
		RequiredStyles: []Style{},
		PriceRange:     DefaultPriceRange(),
		Sort:           SortNone,
	}
}

// WithSearchTerm returns c with a new free-text search term.
func (c Criteria) WithSearchTerm(term string) Criteria {
	c.SearchTerm = term
	return c
}

// WithMinRating returns c with a rating floor.
func (c Criteria) WithMinRating(rating float64) Criteria {
	c.MinRating = pointer.To(rating)
	return c
}

// WithoutMinRating returns c with the rating floor removed.
func (c Criteria) WithoutMinRating() Criteria {
	c.MinRating = nil
	return c
}

// WithStyles returns c requiring exactly styles. Duplicates are dropped.
func (c Criteria) WithStyles(styles []Style) Criteria {
	c.RequiredStyles = slice.Unique(styles, func(s Style) Style { return s })
	return c
}

// ToggleStyle returns c with style added to the required set if absent,
// or removed if present.
func (c Criteria) ToggleStyle(style Style) Criteria {
	if slices.Contains(c.RequiredStyles, style) {
		c.RequiredStyles = slices.DeleteFunc(slices.Clone(c.RequiredStyles), func(s Style) bool {
			return s == style
		})
		return c
	}
	c.RequiredStyles = append(slices.Clone(c.RequiredStyles), style)
	return c
}

// WithCity returns c restricted to city. An empty city means any city.
func (c Criteria) WithCity(city string) Criteria {
	c.City = city
	return c
}

// WithSort returns c with a new sort option.
func (c Criteria) WithSort(sort SortOption) Criteria {
	c.Sort = sort
	return c
}

// WithMaxPrice returns c with the upper price bound moved. The lower bound
// stays fixed at zero.
func (c Criteria) WithMaxPrice(max float64) Criteria {
	c.PriceRange = PriceRange{Min: 0, Max: max}
	return c
}

// Validate checks that c can be applied.
//
// Style labels are not checked against [StyleUniverse]; the universe is open.
func (c Criteria) Validate() error {
	validator := &validate.Validator{}

	validator.MaxLen(FieldSearchTerm, c.SearchTerm, 200)

	if c.MinRating != nil {
		rating := *c.MinRating
		validator.Custom(FieldMinRating, math.IsNaN(rating) || math.IsInf(rating, 0), "Must be a finite number")
		validator.Custom(FieldMinRating, rating < 0, "Must not be negative")
	}

	validate.Range(validator, FieldMaxPrice, c.PriceRange.Max, 0, PriceCeiling)
	validator.Custom(FieldMaxPrice, c.PriceRange.Min != 0, "Lower price bound is fixed at 0")

	sortValues := make([]string, 0, 4)
	for _, option := range SortOptions() {
		sortValues = append(sortValues, string(option))
	}
	validator.OneOf(FieldSort, string(c.Sort), sortValues...)

	return validator.Err()
}
