// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/photodir/internal/api"
	"github.com/taibuivan/photodir/internal/browse"
	"github.com/taibuivan/photodir/internal/browse/browsetest"
	"github.com/taibuivan/photodir/internal/photographer"
	"github.com/taibuivan/photodir/internal/platform/config"
)

func newServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := photographer.SourceFunc(func(ctx context.Context) ([]photographer.Photographer, error) {
		return []photographer.Photographer{
			{ID: 1, Name: "Asha Rao", Location: "Pune", Price: 12000, Rating: 4.6},
			{ID: 2, Name: "Vikram Sethi", Location: "Mumbai", Price: 8000, Rating: 4.2},
		}, nil
	})

	manager := browse.NewManager(browse.ManagerConfig{
		Source:  source,
		Options: browse.Options{Scheduler: browsetest.NewManualScheduler()},
		Logger:  logger,
	})
	t.Cleanup(manager.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(deps, logger)
	server := api.NewServer(ctx, &config.Config{ServerPort: "0", Environment: "development"}, logger, api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Photographer: photographer.NewHandler(photographer.NewService(source, logger)),
		Browse:       browse.NewHandler(manager),
	})
	return server.Handler()
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

/*
TestServer_Routes verifies every route group is mounted behind the middleware chain.
*/
func TestServer_Routes(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"liveness", http.MethodGet, "/health", http.StatusOK},
		{"readiness", http.MethodGet, "/ready", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"photographers", http.MethodGet, "/api/v1/photographers", http.StatusOK},
		{"photographer", http.MethodGet, "/api/v1/photographers/2", http.StatusOK},
		{"cities", http.MethodGet, "/api/v1/cities", http.StatusOK},
		{"filter_options", http.MethodGet, "/api/v1/filter-options", http.StatusOK},
		{"create_session", http.MethodPost, "/api/v1/sessions?wait=true", http.StatusCreated},
		{"unknown_session", http.MethodGet, "/api/v1/sessions/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(handler, tt.method, tt.target)
			assert.Equal(t, tt.status, recorder.Code)
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}

/*
TestServer_ReadinessDegraded reports failing dependencies with 503.
*/
func TestServer_ReadinessDegraded(t *testing.T) {
	handler := newServer(t, api.HealthDependencies{
		CheckUpstream: func(ctx context.Context) error { return nil },
		CheckCache:    func(ctx context.Context) error { return errors.New("redis: ping failed") },
	})

	recorder := serve(handler, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var body struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				OK   bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	assert.True(t, body.Data.Checks[0].OK)
	assert.False(t, body.Data.Checks[1].OK)
}
