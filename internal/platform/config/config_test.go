// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/photodir/internal/platform/config"
)

/*
TestLoad_Defaults verifies the defaults mirror the directory front end.
*/
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "http://localhost:3001/photographers", cfg.SourceURL)
	assert.Equal(t, time.Second, cfg.LoadMoreDelay)
	assert.Equal(t, 3, cfg.InitialVisible)
	assert.Empty(t, cfg.RedisURL)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsOriginAllowed("http://localhost:3000"))
	assert.False(t, cfg.IsOriginAllowed("https://evil.example"))
}

/*
TestLoad_Overrides checks durations and lists parse from the environment.
*/
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOAD_MORE_DELAY", "250ms")
	t.Setenv("INITIAL_VISIBLE", "6")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.LoadMoreDelay)
	assert.Equal(t, 6, cfg.InitialVisible)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsOriginAllowed("https://b.example"))
}

/*
TestLoad_Invalid checks range validation after parsing.
*/
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero_initial_visible", "INITIAL_VISIBLE", "0"},
		{"negative_delay", "LOAD_MORE_DELAY", "-1s"},
		{"zero_timeout", "SOURCE_TIMEOUT", "0s"},
		{"malformed_duration", "SESSION_TTL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
