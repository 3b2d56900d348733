// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/taibuivan/photodir/pkg/slice"
)

// predicate is one conjunctive clause of a [Criteria].
type predicate func(Photographer) bool

// matcher holds the per-call state of a recomputation.
//
// A [cases.Caser] keeps internal state and must not be shared between
// goroutines, so every Recompute builds its own.
type matcher struct {
	criteria   Criteria
	lower      cases.Caser
	searchTerm string
	clauses    []predicate
}

func newMatcher(criteria Criteria) *matcher {
	lower := cases.Lower(language.Und)
	m := &matcher{
		criteria:   criteria,
		lower:      lower,
		searchTerm: lower.String(criteria.SearchTerm),
	}
	m.clauses = m.predicates()
	return m
}

// predicates returns the clauses in evaluation order: text, rating floor,
// required styles, city, price. The order documents intent only; the clauses
// are conjunctive so any order yields the same set.
func (m *matcher) predicates() []predicate {
	return []predicate{
		m.matchesText,
		m.meetsRatingFloor,
		m.hasRequiredStyles,
		m.inCity,
		m.inPriceRange,
	}
}

func (m *matcher) matches(p Photographer) bool {
	for _, keep := range m.clauses {
		if !keep(p) {
			return false
		}
	}
	return true
}

// matchesText checks the lower-cased search term against
// "name location tag1 tag2 ...".
func (m *matcher) matchesText(p Photographer) bool {
	if m.searchTerm == "" {
		return true
	}
	haystack := p.Name + " " + p.Location + " " + strings.Join(p.Tags, " ")
	return strings.Contains(m.lower.String(haystack), m.searchTerm)
}

func (m *matcher) meetsRatingFloor(p Photographer) bool {
	if m.criteria.MinRating == nil {
		return true
	}
	return p.Rating >= *m.criteria.MinRating
}

func (m *matcher) hasRequiredStyles(p Photographer) bool {
	for _, style := range m.criteria.RequiredStyles {
		if !p.HasStyle(style) {
			return false
		}
	}
	return true
}

func (m *matcher) inCity(p Photographer) bool {
	if m.criteria.City == "" {
		return true
	}
	return p.Location == m.criteria.City
}

func (m *matcher) inPriceRange(p Photographer) bool {
	return m.criteria.PriceRange.Contains(p.Price)
}

// # Pipeline

// Matches reports whether p satisfies every clause of criteria.
func Matches(p Photographer, criteria Criteria) bool {
	return newMatcher(criteria).matches(p)
}

// Recompute derives the filtered and sorted view of source under criteria.
//
// It is pure: identical inputs always produce element-wise identical output,
// and source is never modified. The result is never nil.
func Recompute(source []Photographer, criteria Criteria) []Photographer {
	matcher := newMatcher(criteria)
	result := slice.Filter(source, matcher.matches)

	sortInPlace(result, criteria.Sort)
	return result
}

// sortInPlace orders results with a stable sort, so equal keys keep their
// relative order from the source.
func sortInPlace(results []Photographer, option SortOption) {
	switch option {
	case SortPriceLowHigh:
		slices.SortStableFunc(results, func(a, b Photographer) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortRatingHighLow:
		slices.SortStableFunc(results, func(a, b Photographer) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortRecent:
		slices.SortStableFunc(results, func(a, b Photographer) int {
			return cmp.Compare(b.ID, a.ID)
		})
	}
}

// Cards projects results onto their list representation.
func Cards(results []Photographer) []Card {
	return slice.Map(results, Photographer.Card)
}

// FindByID returns the photographer with id, if present in source.
func FindByID(source []Photographer, id int) (Photographer, bool) {
	index := slices.IndexFunc(source, func(p Photographer) bool { return p.ID == id })
	if index < 0 {
		return Photographer{}, false
	}
	return source[index], true
}
