// api/cache/redis_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projecthub-io/api/config"
)

func TestCacheKeyFormats(t *testing.T) {
	assert.Equal(t, "access:u1:p1", projectAccessKey("u1", "p1"))
	assert.Equal(t, "user-projects:u1", userProjectsKey("u1"))
}

func TestRedisCacheConnectRequiresKeyOrCredential(t *testing.T) {
	cfg := config.RedisConfiguration{Host: "cache.example.net", Port: 6380}
	backend := NewRedisCache(cfg, nil, clockwork.NewFakeClock())

	err := backend.Connect(context.Background())
	require.Error(t, err)
	assert.False(t, backend.IsConnected())
}

func TestRedisCacheOpsAreNoOpsWhenDisconnected(t *testing.T) {
	cfg := config.RedisConfiguration{Host: "cache.example.net", Port: 6380, AccessKey: "key"}
	backend := NewRedisCache(cfg, nil, clockwork.NewFakeClock())
	ctx := context.Background()

	// Never connected: every operation degrades to a miss or no-op without
	// panicking or dialing.
	_, ok := backend.GetProjectAccess(ctx, "u1", "p1")
	assert.False(t, ok)
	_, ok = backend.GetUserProjects(ctx, "u1")
	assert.False(t, ok)
	backend.SetProjectAccess(ctx, "u1", "p1", editorAccess("u1", "p1"), time.Minute)
	backend.SetUserProjects(ctx, "u1", nil, time.Minute)
	backend.InvalidateProjectAccess(ctx, "u1", "p1")
	backend.InvalidateUserProjects(ctx, "u1")
	backend.InvalidateProject(ctx, "p1")
}

func TestRedisCacheDisconnectWithoutConnect(t *testing.T) {
	cfg := config.RedisConfiguration{Host: "cache.example.net", Port: 6380, AccessKey: "key"}
	backend := NewRedisCache(cfg, nil, clockwork.NewFakeClock())
	require.NoError(t, backend.Disconnect())
}

func TestRedisCacheKind(t *testing.T) {
	backend := NewRedisCache(config.RedisConfiguration{}, nil, nil)
	assert.Equal(t, KindRedis, backend.Kind())
}
