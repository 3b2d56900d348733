// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package photographer defines the directory's core entities and the pure
filter/sort pipeline that derives a view from them.

Core Responsibility:

  - Catalogue: The read-only [Photographer] record supplied by the data provider.
  - Discovery: [Criteria] (search, rating floor, styles, city, price, sort)
    and [Recompute], which applies them deterministically.
  - Derived data: the distinct city list and the fixed style universe.

Nothing in this package mutates a collection it is handed. Every derived
sequence is freshly allocated.
*/
package photographer

// # Domain Enums

// Style is a photography style label.
//
// The known labels form the selectable universe, but records may carry labels
// outside it; they are matched like any other string.
type Style = string

const (
	StyleTraditional Style = "Traditional"
	StyleCandid      Style = "Candid"
	StyleStudio      Style = "Studio"
	StyleOutdoor     Style = "Outdoor"
)

// StyleUniverse returns the fixed list of styles offered as filter options.
func StyleUniverse() []Style {
	return []Style{StyleTraditional, StyleCandid, StyleStudio, StyleOutdoor}
}

// RatingFloors returns the rating floors offered as filter options, highest first.
func RatingFloors() []float64 {
	return []float64{4, 3, 2}
}

// # Core Entities

// Photographer is a single directory listing.
type Photographer struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"` // City; exact-match key for the city filter
	Bio        string   `json:"bio"`
	Price      float64  `json:"price"` // Currency-agnostic, non-negative
	Rating     float64  `json:"rating"`
	Tags       []string `json:"tags"`
	Styles     []Style  `json:"styles"`
	ProfilePic string   `json:"profile_pic"`
	Portfolio  []string `json:"portfolio"`
	Reviews    []Review `json:"reviews"`
}

// Review is a client testimonial shown on the profile view.
type Review struct {
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`
}

// HasStyle reports whether p lists style.
func (p Photographer) HasStyle(style Style) bool {
	for _, s := range p.Styles {
		if s == style {
			return true
		}
	}
	return false
}

// Card is the compact listing rendered in result lists.
type Card struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Price      float64  `json:"price"`
	Rating     float64  `json:"rating"`
	Tags       []string `json:"tags"`
	ProfilePic string   `json:"profile_pic"`
}

// Card projects p onto its list representation.
func (p Photographer) Card() Card {
	return Card{
		ID:         p.ID,
		Name:       p.Name,
		Location:   p.Location,
		Price:      p.Price,
		Rating:     p.Rating,
		Tags:       p.Tags,
		ProfilePic: p.ProfilePic,
	}
}

// # Field Identifiers

// Field names used in validation details and query parameters.
const (
	FieldSearchTerm = "search_term"
	FieldMinRating  = "min_rating"
	FieldStyles     = "styles"
	FieldCity       = "city"
	FieldMaxPrice   = "max_price"
	FieldSort       = "sort"
)
