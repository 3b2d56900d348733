// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/photodir/internal/platform/redis"
)

/*
TestNewClient_InvalidURL fails before any network activity.
*/
func TestNewClient_InvalidURL(t *testing.T) {
	client, err := redisstore.NewClient(context.Background(), "http://not-redis", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "invalid URL")
}
