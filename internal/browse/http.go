// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/photodir/internal/inquiry"
	"github.com/taibuivan/photodir/internal/photographer"
	"github.com/taibuivan/photodir/internal/platform/constants"
	"github.com/taibuivan/photodir/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/photodir/internal/platform/request"
	"github.com/taibuivan/photodir/internal/platform/respond"
	"github.com/taibuivan/photodir/internal/platform/validate"
	"github.com/taibuivan/photodir/pkg/window"
)

// # Handler Implementation

// Handler implements the HTTP layer for browse sessions.
type Handler struct {
	manager *Manager
}

// NewHandler constructs a new browse [Handler].
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// Routes returns a [chi.Router] meant to be mounted at "/sessions".
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createSession)

	router.Route("/{sessionID}", func(r chi.Router) {
		r.Use(handler.loadSession)

		r.Get("/", handler.getSession)
		r.Delete("/", handler.deleteSession)
		r.Get("/results", handler.listResults)

		r.Patch("/criteria", handler.updateCriteria)
		r.Post("/criteria/reset", handler.resetCriteria)

		r.Post("/load-more", handler.loadMore)

		r.Put("/selection", handler.selectPhotographer)
		r.Delete("/selection", handler.clearSelection)

		r.Post("/inquiry", handler.openInquiry)
		r.Delete("/inquiry", handler.closeInquiry)
		r.Post("/inquiry/submit", handler.submitInquiry)
	})

	return router
}

// # Session Context

type sessionContextKey struct{}

// loadSession resolves {sessionID} and places the session in the request context.
func (handler *Handler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		id := requestutil.Param(request, "sessionID")
		if (&validate.Validator{}).UUID("session_id", id).HasErrors() {
			respond.Error(writer, request, ErrSessionNotFound)
			return
		}

		session, err := handler.manager.Get(id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		writer.Header().Set(constants.HeaderXSessionID, id)

		ctx := ctxutil.WithSessionID(request.Context(), id)
		ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("session_id", id)))
		ctx = context.WithValue(ctx, sessionContextKey{}, session)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func sessionFrom(request *http.Request) *Session {
	return request.Context().Value(sessionContextKey{}).(*Session)
}

// # Payloads

// CriteriaPatch is a partial criteria update. Absent fields are unchanged.
// ToggleStyle is applied after Styles.
type CriteriaPatch struct {
	SearchTerm     *string   `json:"search_term"`
	MinRating      *float64  `json:"min_rating"`
	ClearMinRating bool      `json:"clear_min_rating"`
	Styles         *[]string `json:"styles"`
	ToggleStyle    *string   `json:"toggle_style"`
	City           *string   `json:"city"`
	MaxPrice       *float64  `json:"max_price"`
	Sort           *string   `json:"sort"`
}

// Apply returns criteria with the patch applied.
func (patch CriteriaPatch) Apply(criteria photographer.Criteria) photographer.Criteria {
	if patch.SearchTerm != nil {
		criteria = criteria.WithSearchTerm(*patch.SearchTerm)
	}
	if patch.ClearMinRating {
		criteria = criteria.WithoutMinRating()
	} else if patch.MinRating != nil {
		criteria = criteria.WithMinRating(*patch.MinRating)
	}
	if patch.Styles != nil {
		criteria = criteria.WithStyles(*patch.Styles)
	}
	if patch.ToggleStyle != nil {
		criteria = criteria.ToggleStyle(*patch.ToggleStyle)
	}
	if patch.City != nil {
		criteria = criteria.WithCity(*patch.City)
	}
	if patch.MaxPrice != nil {
		criteria = criteria.WithMaxPrice(*patch.MaxPrice)
	}
	if patch.Sort != nil {
		criteria = criteria.WithSort(photographer.SortOption(*patch.Sort))
	}
	return criteria
}

// SelectionRequest names the photographer whose profile to open.
type SelectionRequest struct {
	PhotographerID int `json:"photographer_id"`
}

// SubmitResponse pairs the delivery receipt with the resulting view.
type SubmitResponse struct {
	Receipt inquiry.Receipt `json:"receipt"`
	View    View            `json:"view"`
}

// # Endpoints

/*
POST /api/v1/sessions.

Description: Opens a session and starts its one collection fetch.

Request:
  - wait: bool (query, optional) block until the fetch resolves

Response:
  - 201: View (status "loading" unless wait was set)
*/
func (handler *Handler) createSession(writer http.ResponseWriter, request *http.Request) {
	session := handler.manager.Create(request.Context())
	writer.Header().Set(constants.HeaderXSessionID, session.ID())

	if request.URL.Query().Get("wait") == "true" {
		select {
		case <-session.Ready():
		case <-request.Context().Done():
		}
	}

	respond.Created(writer, session.View())
}

// getSession handles GET /api/v1/sessions/{sessionID}.
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, sessionFrom(request).View())
}

// deleteSession handles DELETE /api/v1/sessions/{sessionID}.
func (handler *Handler) deleteSession(writer http.ResponseWriter, request *http.Request) {
	if err := handler.manager.Delete(sessionFrom(request).ID()); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// listResults handles GET /api/v1/sessions/{sessionID}/results. It returns
// the full result, ignoring the visible window.
func (handler *Handler) listResults(writer http.ResponseWriter, request *http.Request) {
	results := sessionFrom(request).Results()
	respond.Windowed(writer, photographer.Cards(results), window.NewMeta(len(results), len(results)))
}

/*
PATCH /api/v1/sessions/{sessionID}/criteria.

Description: Applies a partial criteria update. Any accepted update collapses
the visible window and cancels a pending load-more.

Response:
  - 200: View
  - 400: VALIDATION_ERROR (session unchanged)
*/
func (handler *Handler) updateCriteria(writer http.ResponseWriter, request *http.Request) {
	var patch CriteriaPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := sessionFrom(request).Update(patch.Apply)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// resetCriteria handles POST /api/v1/sessions/{sessionID}/criteria/reset.
func (handler *Handler) resetCriteria(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, sessionFrom(request).ResetCriteria())
}

/*
POST /api/v1/sessions/{sessionID}/load-more.

Description: Starts expanding the visible window. Repeating the call while
the expansion is pending is a no-op.

Response:
  - 202: View with load_more_pending=true
  - 409: CONFLICT (still loading, or nothing more to show)
*/
func (handler *Handler) loadMore(writer http.ResponseWriter, request *http.Request) {
	view, err := sessionFrom(request).LoadMore()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Accepted(writer, view)
}

/*
PUT /api/v1/sessions/{sessionID}/selection.

Response:
  - 200: View with the selected profile
  - 404: NOT_FOUND (id not in the collection)
  - 409: CONFLICT (collection not loaded)
*/
func (handler *Handler) selectPhotographer(writer http.ResponseWriter, request *http.Request) {
	var body SelectionRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := sessionFrom(request).Select(body.PhotographerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// clearSelection handles DELETE /api/v1/sessions/{sessionID}/selection.
func (handler *Handler) clearSelection(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, sessionFrom(request).ClearSelection())
}

// openInquiry handles POST /api/v1/sessions/{sessionID}/inquiry.
func (handler *Handler) openInquiry(writer http.ResponseWriter, request *http.Request) {
	view, err := sessionFrom(request).OpenInquiry()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

// closeInquiry handles DELETE /api/v1/sessions/{sessionID}/inquiry.
func (handler *Handler) closeInquiry(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, sessionFrom(request).CloseInquiry())
}

/*
POST /api/v1/sessions/{sessionID}/inquiry/submit.

Request:
  - name, email, message: string (all required)

Response:
  - 201: SubmitResponse (inquiry and profile closed)
  - 400: VALIDATION_ERROR (form stays open)
  - 409: CONFLICT (form not open)
  - 502: UPSTREAM_UNAVAILABLE (delivery failed, form stays open)
*/
func (handler *Handler) submitInquiry(writer http.ResponseWriter, request *http.Request) {
	var form inquiry.Form
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	receipt, view, err := sessionFrom(request).SubmitInquiry(request.Context(), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, SubmitResponse{Receipt: receipt, View: view})
}
