// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package browse implements the stateful browsing session behind the directory
front end.

A session owns one fetched collection and the criteria a visitor is editing.
Every criteria change recomputes the filtered, sorted result and collapses the
visible window back to its initial size. "Load more" expands the window to the
full result after a short simulated delay.

# Window State Machine

	Collapsed --LoadMore--> Expanding --delay elapsed--> Expanded
	    ^                       |                            |
	    +---- criteria change --+------ criteria change -----+

A criteria change while Expanding cancels the pending expansion.
*/
package browse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/photodir/internal/inquiry"
	"github.com/taibuivan/photodir/internal/photographer"
	"github.com/taibuivan/photodir/internal/platform/apperr"
	"github.com/taibuivan/photodir/pkg/window"
)

// Phase is the lifecycle stage of the session's collection.
type Phase string

const (
	// PhaseLoading means the collection fetch is in flight.
	PhaseLoading Phase = "loading"

	// PhaseReady means the collection arrived.
	PhaseReady Phase = "ready"

	// PhaseFailed means the fetch failed. There is no retry.
	PhaseFailed Phase = "failed"
)

// Session errors.
var (
	ErrStillLoading        = apperr.Conflict("Photographers are still loading")
	ErrNothingMore         = apperr.Conflict("All results are already visible")
	ErrNoSelection         = apperr.Conflict("Select a photographer before sending an inquiry")
	ErrInquiryNotOpen      = apperr.Conflict("The inquiry form is not open")
	ErrCollectionNotLoaded = apperr.Conflict("Photographers are not available")
)

// Options tune session behaviour.
type Options struct {
	InitialVisible int
	LoadMoreDelay  time.Duration
	Scheduler      Scheduler
	Submitter      inquiry.Submitter
}

func (o Options) withDefaults() Options {
	if o.InitialVisible <= 0 {
		o.InitialVisible = window.DefaultInitial
	}
	if o.Scheduler == nil {
		o.Scheduler = RealScheduler{}
	}
	if o.Submitter == nil {
		o.Submitter = inquiry.NewLogSubmitter(slog.Default())
	}
	return o
}

// Session is one visitor's browsing state. All methods are safe for
// concurrent use.
type Session struct {
	id      string
	options Options
	logger  *slog.Logger

	mu           sync.Mutex
	phase        Phase
	failure      string
	collection   []photographer.Photographer
	cities       []string
	criteria     photographer.Criteria
	results      []photographer.Photographer
	visibleCount int

	// pending is non-nil while a load-more is Expanding. generation changes on
	// every recompute so a callback that raced with Stop is ignored.
	pending    Timer
	generation uint64

	// overlays changes whenever the profile or inquiry form is opened or
	// closed. An inquiry delivered after it changed must not close the newer
	// overlays.
	selected     *photographer.Photographer
	inquiryOpen  bool
	inquiryError string
	overlays     uint64

	lastActive time.Time
	closed     bool
	ready      chan struct{}
}

// NewSession returns a session in [PhaseLoading] with default criteria.
// The owner must call [Session.Resolve] once the fetch completes.
func NewSession(id string, options Options, logger *slog.Logger) *Session {
	return &Session{
		id:         id,
		options:    options.withDefaults(),
		logger:     logger.With(slog.String("session_id", id)),
		phase:      PhaseLoading,
		collection: []photographer.Photographer{},
		cities:     []string{},
		criteria:   photographer.DefaultCriteria(),
		results:    []photographer.Photographer{},
		lastActive: time.Now(),
		ready:      make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Ready is closed once the fetch has resolved, successfully or not, or when
// the session is closed first.
func (s *Session) Ready() <-chan struct{} { return s.ready }

// # Lifecycle

// Resolve installs the fetch outcome. Criteria chosen while loading are kept
// and applied to the new collection. Calls after the first are ignored.
func (s *Session) Resolve(collection []photographer.Photographer, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLoading || s.closed {
		return
	}
	defer close(s.ready)

	if err != nil {
		s.phase = PhaseFailed
		s.failure = photographer.ErrFetchFailed.Message
		if ae := apperr.As(err); ae != nil {
			s.failure = ae.Message
		}
		s.logger.Warn("session_fetch_failed", slog.String("error", err.Error()))
		s.recomputeLocked()
		return
	}

	if collection == nil {
		collection = []photographer.Photographer{}
	}
	s.phase = PhaseReady
	s.collection = collection
	s.cities = photographer.DistinctCities(collection)
	s.recomputeLocked()

	s.logger.Info("session_ready",
		slog.Int("collection_size", len(collection)),
		slog.Int("result_count", len(s.results)),
	)
}

// Close cancels any pending expansion. A closed session ignores late
// callbacks and fetch results. A session closed while loading stays in
// [PhaseLoading].
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.cancelPendingLocked()

	// Resolve is a no-op from here on, so release anyone waiting on Ready.
	if s.phase == PhaseLoading {
		close(s.ready)
	}
}

// LastActive returns when the session was last touched.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// # Criteria

// ApplyFilters replaces the criteria wholesale. The window is reset even when
// criteria equal the current ones.
func (s *Session) ApplyFilters(criteria photographer.Criteria) (View, error) {
	return s.Update(func(photographer.Criteria) photographer.Criteria { return criteria })
}

// Update derives new criteria from the current ones and applies them.
// Invalid criteria leave the session untouched.
func (s *Session) Update(change func(photographer.Criteria) photographer.Criteria) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	next := change(s.criteria)
	if err := next.Validate(); err != nil {
		return View{}, err
	}

	s.criteria = next
	s.recomputeLocked()

	return s.viewLocked(), nil
}

// ResetCriteria restores [photographer.DefaultCriteria].
func (s *Session) ResetCriteria() View {
	view, _ := s.ApplyFilters(photographer.DefaultCriteria())
	return view
}

// recomputeLocked rebuilds results and collapses the window.
func (s *Session) recomputeLocked() {
	s.cancelPendingLocked()
	s.results = photographer.Recompute(s.collection, s.criteria)
	recomputeTotal.Inc()
	s.visibleCount = window.Initial(s.options.InitialVisible, len(s.results))
}

func (s *Session) cancelPendingLocked() {
	s.generation++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
		loadMoreEvents.WithLabelValues("cancelled").Inc()
	}
}

// # Load More

// LoadMore starts expanding the window to the full result. The expansion
// lands after [Options.LoadMoreDelay]. Calling LoadMore while already
// Expanding is a no-op.
func (s *Session) LoadMore() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	switch {
	case s.phase == PhaseLoading:
		return View{}, ErrStillLoading
	case s.pending != nil:
		return s.viewLocked(), nil
	case s.visibleCount >= len(s.results):
		return View{}, ErrNothingMore
	}

	generation := s.generation
	s.pending = s.options.Scheduler.AfterFunc(s.options.LoadMoreDelay, func() {
		s.completeLoadMore(generation)
	})
	loadMoreEvents.WithLabelValues("started").Inc()

	return s.viewLocked(), nil
}

func (s *Session) completeLoadMore(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.pending == nil || generation != s.generation {
		return
	}

	s.pending = nil
	s.visibleCount = len(s.results)
	loadMoreEvents.WithLabelValues("completed").Inc()
}

// # Selection

// Select opens the profile of the photographer with id.
func (s *Session) Select(id int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if s.phase != PhaseReady {
		return View{}, ErrCollectionNotLoaded
	}

	found, ok := photographer.FindByID(s.collection, id)
	if !ok {
		return View{}, apperr.NotFound("Photographer")
	}

	s.selected = &found
	s.inquiryOpen = false
	s.inquiryError = ""
	s.overlays++

	return s.viewLocked(), nil
}

// ClearSelection closes the profile and any inquiry opened from it.
func (s *Session) ClearSelection() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	s.selected = nil
	s.inquiryOpen = false
	s.inquiryError = ""
	s.overlays++

	return s.viewLocked()
}

// # Inquiry

// OpenInquiry opens the inquiry form for the selected photographer.
func (s *Session) OpenInquiry() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if s.selected == nil {
		return View{}, ErrNoSelection
	}

	s.inquiryOpen = true
	s.inquiryError = ""
	s.overlays++

	return s.viewLocked(), nil
}

// CloseInquiry dismisses the inquiry form and keeps the profile open.
func (s *Session) CloseInquiry() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	s.inquiryOpen = false
	s.inquiryError = ""
	s.overlays++

	return s.viewLocked()
}

// SubmitInquiry validates and delivers form to the selected photographer.
//
// On success both the inquiry form and the profile close. On failure both
// stay open and the error is recorded on the view. If the visitor changed the
// profile or form while delivery was in flight, the outcome is returned to
// the caller but the newer overlays are left as they are.
func (s *Session) SubmitInquiry(ctx context.Context, form inquiry.Form) (inquiry.Receipt, View, error) {
	s.mu.Lock()
	s.touchLocked()

	if !s.inquiryOpen || s.selected == nil {
		s.mu.Unlock()
		return inquiry.Receipt{}, View{}, ErrInquiryNotOpen
	}

	request := inquiry.Inquiry{PhotographerID: s.selected.ID, Form: form}
	if err := request.Validate(); err != nil {
		s.inquiryError = err.Error()
		view := s.viewLocked()
		s.mu.Unlock()
		return inquiry.Receipt{}, view, err
	}
	overlays := s.overlays
	s.mu.Unlock()

	// Delivery may block; do not hold the session lock across it.
	receipt, err := s.options.Submitter.Submit(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()

	current := overlays == s.overlays
	if !current {
		s.logger.InfoContext(ctx, "inquiry_outcome_detached",
			slog.Int("photographer_id", request.PhotographerID),
			slog.Bool("failed", err != nil),
		)
	}

	if err != nil {
		if !apperr.IsAppError(err) {
			err = inquiry.ErrSubmissionFailed.WithCause(err)
		}
		if current {
			s.inquiryError = apperr.As(err).Message
		}
		s.logger.WarnContext(ctx, "inquiry_submit_failed",
			slog.Int("photographer_id", request.PhotographerID),
			slog.String("error", err.Error()),
		)
		return inquiry.Receipt{}, s.viewLocked(), err
	}

	if current {
		s.inquiryOpen = false
		s.inquiryError = ""
		s.selected = nil
		s.overlays++
	}

	return receipt, s.viewLocked(), nil
}

// # Views

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	return s.viewLocked()
}

// Results returns the full filtered, sorted result, not only the visible window.
func (s *Session) Results() []photographer.Photographer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	out := make([]photographer.Photographer, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Session) touchLocked() {
	s.lastActive = time.Now()
}
