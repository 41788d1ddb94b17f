// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/redis"
)

func TestNewClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := redis.NewClient(context.Background(), "redis://"+server.Addr(), slog.Default())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, redis.Ping(context.Background(), client))
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := redis.NewClient(context.Background(), "not a url", slog.Default())
	assert.Error(t, err)
}
