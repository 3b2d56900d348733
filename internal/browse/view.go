// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"github.com/taibuivan/photodir/internal/photographer"
	"github.com/taibuivan/photodir/pkg/window"
)

// View is an immutable snapshot of a [Session], shaped for rendering.
//
// NoResults and Error are distinct: NoResults means the collection loaded and
// nothing matched, Error means the collection could not be loaded.
type View struct {
	SessionID       string                     `json:"session_id"`
	Status          Phase                      `json:"status"`
	IsLoading       bool                       `json:"is_loading"`
	Error           *string                    `json:"error"`
	NoResults       bool                       `json:"no_results"`
	Criteria        photographer.Criteria      `json:"criteria"`
	Results         []photographer.Card        `json:"results"`
	Window          window.Meta                `json:"window"`
	LoadMorePending bool                       `json:"load_more_pending"`
	CanLoadMore     bool                       `json:"can_load_more"`
	Cities          []string                   `json:"cities"`
	Styles          []photographer.Style       `json:"styles"`
	Selected        *photographer.Photographer `json:"selected"`
	InquiryOpen     bool                       `json:"inquiry_open"`
	InquiryError    string                     `json:"inquiry_error,omitempty"`
}

// viewLocked builds a [View]. Slices are copied so the snapshot stays valid
// after the session changes.
func (s *Session) viewLocked() View {
	meta := window.NewMeta(s.visibleCount, len(s.results))
	pending := s.pending != nil

	view := View{
		SessionID:       s.id,
		Status:          s.phase,
		IsLoading:       s.phase == PhaseLoading,
		NoResults:       s.phase == PhaseReady && len(s.results) == 0,
		Criteria:        s.criteria,
		Results:         photographer.Cards(window.Slice(s.results, s.visibleCount)),
		Window:          meta,
		LoadMorePending: pending,
		CanLoadMore:     s.phase == PhaseReady && meta.HasMore && !pending,
		Cities:          append([]string{}, s.cities...),
		Styles:          photographer.StyleUniverse(),
		InquiryOpen:     s.inquiryOpen,
		InquiryError:    s.inquiryError,
	}

	if s.phase == PhaseFailed {
		message := s.failure
		view.Error = &message
	}
	if s.selected != nil {
		selected := *s.selected
		view.Selected = &selected
	}

	return view
}
