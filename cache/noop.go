// api/cache/noop.go
package cache

import (
	"context"
	"time"

	"github.com/projecthub-io/api/model"
)

// NoOpCache is the disabled backend: every get is a miss, every write and
// invalidation is a no-op, and IsConnected always reports false so the
// cache-aside layer bypasses it entirely. It is used when caching is turned
// off and as the fallback when no other backend could be initialized.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (n *NoOpCache) Connect(ctx context.Context) error { return nil }

func (n *NoOpCache) Disconnect() error { return nil }

func (n *NoOpCache) IsConnected() bool { return false }

func (n *NoOpCache) Kind() string { return KindDisabled }

func (n *NoOpCache) GetUserProjects(ctx context.Context, userID string) (*model.CachedUserProjects, bool) {
	return nil, false
}

func (n *NoOpCache) SetUserProjects(ctx context.Context, userID string, value *model.CachedUserProjects, ttl time.Duration) {
}

func (n *NoOpCache) InvalidateUserProjects(ctx context.Context, userID string) {}

func (n *NoOpCache) GetProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, bool) {
	return nil, false
}

func (n *NoOpCache) SetProjectAccess(ctx context.Context, userID, projectID string, value *model.CachedProjectAccess, ttl time.Duration) {
}

func (n *NoOpCache) InvalidateProjectAccess(ctx context.Context, userID, projectID string) {}

func (n *NoOpCache) InvalidateProject(ctx context.Context, projectID string) {}
