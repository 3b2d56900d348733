// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/photodir/internal/browse"
	"github.com/taibuivan/photodir/internal/browse/browsetest"
	"github.com/taibuivan/photodir/internal/inquiry"
	"github.com/taibuivan/photodir/internal/photographer"
	"github.com/taibuivan/photodir/internal/platform/apperr"
	"github.com/taibuivan/photodir/pkg/window"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const delay = time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// collection returns seven photographers, more than one initial window.
func collection() []photographer.Photographer {
	return []photographer.Photographer{
		{ID: 1, Name: "Asha Rao", Location: "Pune", Price: 12000, Rating: 4.6, Styles: []string{"Candid"}},
		{ID: 2, Name: "Vikram Sethi", Location: "Mumbai", Price: 8000, Rating: 4.2, Styles: []string{"Studio"}},
		{ID: 3, Name: "Meera Iyer", Location: "Pune", Price: 20000, Rating: 4.9, Styles: []string{"Candid", "Studio"}},
		{ID: 4, Name: "Rohan Das", Location: "Kolkata", Price: 5000, Rating: 3.1, Styles: []string{"Traditional"}},
		{ID: 5, Name: "Zara Khan", Location: "Delhi", Price: 15000, Rating: 4.2, Styles: []string{"Outdoor"}},
		{ID: 6, Name: "Kabir Menon", Location: "Kochi", Price: 9000, Rating: 4.0, Styles: []string{"Outdoor"}},
		{ID: 7, Name: "Ira Bose", Location: "Mumbai", Price: 11000, Rating: 4.4, Styles: []string{"Candid"}},
	}
}

type fixtureOptions struct {
	submitter inquiry.Submitter
}

func newSession(t *testing.T, opts ...func(*fixtureOptions)) (*browse.Session, *browsetest.ManualScheduler) {
	t.Helper()

	fixture := fixtureOptions{submitter: inquiry.NewLogSubmitter(discardLogger())}
	for _, opt := range opts {
		opt(&fixture)
	}

	scheduler := browsetest.NewManualScheduler()
	session := browse.NewSession("11111111-1111-7111-8111-111111111111", browse.Options{
		InitialVisible: window.DefaultInitial,
		LoadMoreDelay:  delay,
		Scheduler:      scheduler,
		Submitter:      fixture.submitter,
	}, discardLogger())
	t.Cleanup(session.Close)

	return session, scheduler
}

func readySession(t *testing.T, opts ...func(*fixtureOptions)) (*browse.Session, *browsetest.ManualScheduler) {
	t.Helper()
	session, scheduler := newSession(t, opts...)
	session.Resolve(collection(), nil)
	return session, scheduler
}

func resultIDs(view browse.View) []int {
	out := make([]int, 0, len(view.Results))
	for _, card := range view.Results {
		out = append(out, card.ID)
	}
	return out
}

/*
TestSession_LoadMoreExpandsAfterDelay walks the full window state machine.
*/
func TestSession_LoadMoreExpandsAfterDelay(t *testing.T) {
	session, scheduler := readySession(t)

	view := session.View()
	assert.Equal(t, browse.PhaseReady, view.Status)
	assert.Equal(t, []int{1, 2, 3}, resultIDs(view))
	assert.Equal(t, window.Meta{VisibleCount: 3, Total: 7, HasMore: true}, view.Window)
	assert.True(t, view.CanLoadMore)

	view, err := session.LoadMore()
	require.NoError(t, err)
	assert.True(t, view.LoadMorePending)
	assert.False(t, view.CanLoadMore)
	assert.Len(t, view.Results, 3)

	scheduler.Advance(delay - time.Millisecond)
	assert.Len(t, session.View().Results, 3)

	scheduler.Advance(time.Millisecond)
	view = session.View()
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, resultIDs(view))
	assert.False(t, view.LoadMorePending)
	assert.False(t, view.CanLoadMore)
	assert.False(t, view.Window.HasMore)

	_, err = session.LoadMore()
	assert.ErrorIs(t, err, browse.ErrNothingMore)
}

/*
TestSession_LoadMoreWhilePending does not arm a second timer.
*/
func TestSession_LoadMoreWhilePending(t *testing.T) {
	session, scheduler := readySession(t)

	_, err := session.LoadMore()
	require.NoError(t, err)
	view, err := session.LoadMore()
	require.NoError(t, err)

	assert.True(t, view.LoadMorePending)
	assert.Equal(t, 1, scheduler.Pending())
}

/*
TestSession_CriteriaChangeCancelsExpansion checks that a pending expansion
never lands on a newer result.
*/
func TestSession_CriteriaChangeCancelsExpansion(t *testing.T) {
	session, scheduler := readySession(t)

	_, err := session.LoadMore()
	require.NoError(t, err)

	view, err := session.Update(func(c photographer.Criteria) photographer.Criteria {
		return c.WithSort(photographer.SortRecent)
	})
	require.NoError(t, err)
	assert.False(t, view.LoadMorePending)
	assert.Equal(t, 0, scheduler.Pending())

	scheduler.Advance(2 * delay)

	view = session.View()
	assert.Equal(t, []int{7, 6, 5}, resultIDs(view))
	assert.True(t, view.CanLoadMore)
}

/*
TestSession_IdenticalCriteriaResetWindow collapses an expanded window even
when nothing changed.
*/
func TestSession_IdenticalCriteriaResetWindow(t *testing.T) {
	session, scheduler := readySession(t)

	_, err := session.LoadMore()
	require.NoError(t, err)
	scheduler.Advance(delay)
	require.Len(t, session.View().Results, 7)

	view, err := session.ApplyFilters(session.View().Criteria)
	require.NoError(t, err)
	assert.Len(t, view.Results, 3)
	assert.True(t, view.Window.HasMore)
}

/*
TestSession_FewerThanInitial shows every result and offers no load-more.
*/
func TestSession_FewerThanInitial(t *testing.T) {
	session, _ := readySession(t)

	view, err := session.Update(func(c photographer.Criteria) photographer.Criteria {
		return c.WithCity("Mumbai")
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7}, resultIDs(view))
	assert.Equal(t, window.Meta{VisibleCount: 2, Total: 2, HasMore: false}, view.Window)
	assert.False(t, view.CanLoadMore)

	_, err = session.LoadMore()
	assert.ErrorIs(t, err, browse.ErrNothingMore)
}

/*
TestSession_NoResultsIsNotAnError keeps the empty-result and failure states apart.
*/
func TestSession_NoResultsIsNotAnError(t *testing.T) {
	t.Run("no_results", func(t *testing.T) {
		session, _ := readySession(t)

		view, err := session.Update(func(c photographer.Criteria) photographer.Criteria {
			return c.WithCity("Nonexistent City")
		})
		require.NoError(t, err)
		assert.True(t, view.NoResults)
		assert.Nil(t, view.Error)
		assert.Empty(t, view.Results)
		assert.NotNil(t, view.Results)
	})

	t.Run("fetch_failed", func(t *testing.T) {
		session, _ := newSession(t)
		session.Resolve(nil, photographer.ErrFetchFailed.WithCause(errors.New("connection refused")))

		view := session.View()
		assert.Equal(t, browse.PhaseFailed, view.Status)
		assert.False(t, view.IsLoading)
		assert.False(t, view.NoResults)
		require.NotNil(t, view.Error)
		assert.Equal(t, "Failed to load photographers", *view.Error)
		assert.Empty(t, view.Results)
		assert.Empty(t, view.Cities)

		_, err := session.LoadMore()
		assert.ErrorIs(t, err, browse.ErrNothingMore)
	})
}

/*
TestSession_CriteriaWhileLoading applies criteria chosen before the data arrived.
*/
func TestSession_CriteriaWhileLoading(t *testing.T) {
	session, _ := newSession(t)

	view, err := session.Update(func(c photographer.Criteria) photographer.Criteria {
		return c.WithCity("Pune")
	})
	require.NoError(t, err)
	assert.True(t, view.IsLoading)
	assert.False(t, view.NoResults)
	assert.Empty(t, view.Results)

	_, err = session.LoadMore()
	assert.ErrorIs(t, err, browse.ErrStillLoading)

	session.Resolve(collection(), nil)
	<-session.Ready()

	view = session.View()
	assert.Equal(t, []int{1, 3}, resultIDs(view))
	assert.Equal(t, []string{"Pune", "Mumbai", "Kolkata", "Delhi", "Kochi"}, view.Cities)
}

/*
TestSession_InvalidCriteriaLeaveStateUntouched rejects bad updates atomically.
*/
func TestSession_InvalidCriteriaLeaveStateUntouched(t *testing.T) {
	session, scheduler := readySession(t)

	_, err := session.LoadMore()
	require.NoError(t, err)

	_, err = session.Update(func(c photographer.Criteria) photographer.Criteria {
		return c.WithMaxPrice(photographer.PriceCeiling + 1)
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	view := session.View()
	assert.True(t, view.LoadMorePending)
	assert.Equal(t, photographer.PriceCeiling, view.Criteria.PriceRange.Max)

	scheduler.Advance(delay)
	assert.Len(t, session.View().Results, 7)
}

/*
TestSession_ResetCriteria restores defaults and the initial window.
*/
func TestSession_ResetCriteria(t *testing.T) {
	session, _ := readySession(t)

	_, err := session.Update(func(c photographer.Criteria) photographer.Criteria {
		return c.WithSearchTerm("mumbai").WithMinRating(4.3).ToggleStyle("Candid")
	})
	require.NoError(t, err)
	require.Equal(t, []int{7}, resultIDs(session.View()))

	view := session.ResetCriteria()
	assert.Equal(t, photographer.DefaultCriteria(), view.Criteria)
	assert.Equal(t, []int{1, 2, 3}, resultIDs(view))
	assert.Len(t, session.Results(), 7)
}

/*
TestSession_CloseIgnoresLateExpansion drops a callback that fires after Close.
*/
func TestSession_CloseIgnoresLateExpansion(t *testing.T) {
	session, scheduler := readySession(t)

	_, err := session.LoadMore()
	require.NoError(t, err)

	session.Close()
	scheduler.Advance(delay)

	assert.Len(t, session.View().Results, 3)
}

type failingSubmitter struct{}

func (failingSubmitter) Submit(ctx context.Context, request inquiry.Inquiry) (inquiry.Receipt, error) {
	return inquiry.Receipt{}, errors.New("smtp: connection reset")
}

/*
TestSession_SelectionAndInquiry covers the profile and inquiry overlays.
*/
func TestSession_SelectionAndInquiry(t *testing.T) {
	form := inquiry.Form{Name: "Neha", Email: "neha@example.com", Message: "Available on 12 March?"}

	t.Run("select_unknown", func(t *testing.T) {
		session, _ := readySession(t)
		_, err := session.Select(99)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("select_before_loaded", func(t *testing.T) {
		session, _ := newSession(t)
		_, err := session.Select(1)
		assert.ErrorIs(t, err, browse.ErrCollectionNotLoaded)
	})

	t.Run("inquiry_requires_selection", func(t *testing.T) {
		session, _ := readySession(t)
		_, err := session.OpenInquiry()
		assert.ErrorIs(t, err, browse.ErrNoSelection)

		_, _, err = session.SubmitInquiry(context.Background(), form)
		assert.ErrorIs(t, err, browse.ErrInquiryNotOpen)
	})

	t.Run("select_outside_visible_window", func(t *testing.T) {
		session, _ := readySession(t)
		view, err := session.Select(6)
		require.NoError(t, err)
		require.NotNil(t, view.Selected)
		assert.Equal(t, "Kabir Menon", view.Selected.Name)
	})

	t.Run("invalid_form_keeps_overlays_open", func(t *testing.T) {
		session, _ := readySession(t)
		_, err := session.Select(2)
		require.NoError(t, err)
		_, err = session.OpenInquiry()
		require.NoError(t, err)

		_, view, err := session.SubmitInquiry(context.Background(), inquiry.Form{Name: "Neha", Email: "nope"})
		require.Error(t, err)
		assert.True(t, view.InquiryOpen)
		assert.NotNil(t, view.Selected)
		assert.NotEmpty(t, view.InquiryError)
	})

	t.Run("submit_closes_overlays", func(t *testing.T) {
		session, _ := readySession(t)
		_, err := session.Select(2)
		require.NoError(t, err)
		_, err = session.OpenInquiry()
		require.NoError(t, err)

		receipt, view, err := session.SubmitInquiry(context.Background(), form)
		require.NoError(t, err)
		assert.Equal(t, 2, receipt.PhotographerID)
		assert.False(t, view.InquiryOpen)
		assert.Nil(t, view.Selected)
	})

	t.Run("delivery_failure_keeps_overlays_open", func(t *testing.T) {
		session, _ := readySession(t, func(o *fixtureOptions) { o.submitter = failingSubmitter{} })
		_, err := session.Select(3)
		require.NoError(t, err)
		_, err = session.OpenInquiry()
		require.NoError(t, err)

		_, view, err := session.SubmitInquiry(context.Background(), form)
		assert.ErrorIs(t, err, inquiry.ErrSubmissionFailed)
		assert.True(t, view.InquiryOpen)
		assert.Equal(t, 3, view.Selected.ID)
		assert.Equal(t, inquiry.ErrSubmissionFailed.Message, view.InquiryError)
	})

	t.Run("close_inquiry_keeps_profile", func(t *testing.T) {
		session, _ := readySession(t)
		_, err := session.Select(4)
		require.NoError(t, err)
		_, err = session.OpenInquiry()
		require.NoError(t, err)

		view := session.CloseInquiry()
		assert.False(t, view.InquiryOpen)
		assert.Equal(t, 4, view.Selected.ID)

		view = session.ClearSelection()
		assert.Nil(t, view.Selected)
	})
}

// gatedSubmitter blocks in Submit until release is closed.
type gatedSubmitter struct {
	entered chan struct{}
	release chan struct{}
	fail    bool
}

func newGatedSubmitter(fail bool) *gatedSubmitter {
	return &gatedSubmitter{entered: make(chan struct{}), release: make(chan struct{}), fail: fail}
}

func (g *gatedSubmitter) Submit(ctx context.Context, request inquiry.Inquiry) (inquiry.Receipt, error) {
	close(g.entered)
	<-g.release
	if g.fail {
		return inquiry.Receipt{}, errors.New("smtp: connection reset")
	}
	return inquiry.Receipt{ID: "receipt-1", PhotographerID: request.PhotographerID}, nil
}

/*
TestSession_LateInquiryOutcomeKeepsNewerOverlays leaves a profile opened during
delivery untouched when the earlier inquiry completes.
*/
func TestSession_LateInquiryOutcomeKeepsNewerOverlays(t *testing.T) {
	form := inquiry.Form{Name: "Neha", Email: "neha@example.com", Message: "Available on 12 March?"}

	for _, fail := range []bool{false, true} {
		name := "success"
		if fail {
			name = "failure"
		}

		t.Run(name, func(t *testing.T) {
			submitter := newGatedSubmitter(fail)
			session, _ := readySession(t, func(o *fixtureOptions) { o.submitter = submitter })

			_, err := session.Select(2)
			require.NoError(t, err)
			_, err = session.OpenInquiry()
			require.NoError(t, err)

			type outcome struct {
				receipt inquiry.Receipt
				err     error
			}
			done := make(chan outcome, 1)
			go func() {
				receipt, _, err := session.SubmitInquiry(context.Background(), form)
				done <- outcome{receipt, err}
			}()
			<-submitter.entered

			session.ClearSelection()
			_, err = session.Select(5)
			require.NoError(t, err)
			_, err = session.OpenInquiry()
			require.NoError(t, err)

			close(submitter.release)
			result := <-done

			if fail {
				assert.ErrorIs(t, result.err, inquiry.ErrSubmissionFailed)
			} else {
				require.NoError(t, result.err)
				assert.Equal(t, 2, result.receipt.PhotographerID)
			}

			view := session.View()
			require.NotNil(t, view.Selected)
			assert.Equal(t, 5, view.Selected.ID)
			assert.True(t, view.InquiryOpen)
			assert.Empty(t, view.InquiryError)
		})
	}
}

/*
TestSession_CloseWhileLoadingReleasesReady unblocks waiters when the fetch never
resolves.
*/
func TestSession_CloseWhileLoadingReleasesReady(t *testing.T) {
	session, _ := newSession(t)
	session.Close()

	select {
	case <-session.Ready():
	case <-time.After(time.Second):
		t.Fatal("Ready not closed after Close")
	}

	session.Resolve(collection(), nil)
	assert.Equal(t, browse.PhaseLoading, session.View().Status)
}
