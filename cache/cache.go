// api/cache/cache.go
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/projecthub-io/api/model"
)

// Backend kinds selectable through configuration.
const (
	KindRedis    = "redis"
	KindMemory   = "memory"
	KindDisabled = "disabled"
)

// ProjectCache is the capability set every cache backend implements. Gets
// report (value, ok); sets and invalidations absorb their own failures and
// log them, because the cache is an optimization and never a correctness
// dependency for callers. Only Connect propagates errors, so the factory can
// decide the fallback policy.
type ProjectCache interface {
	// Connect establishes whatever connection or initialization the backend
	// needs. Idempotent.
	Connect(ctx context.Context) error

	// Disconnect releases resources and stops background work. Safe to call
	// even if Connect never ran.
	Disconnect() error

	// IsConnected is a synchronous, non-blocking status check.
	IsConnected() bool

	// Kind identifies the backend variant.
	Kind() string

	GetUserProjects(ctx context.Context, userID string) (*model.CachedUserProjects, bool)
	SetUserProjects(ctx context.Context, userID string, value *model.CachedUserProjects, ttl time.Duration)
	InvalidateUserProjects(ctx context.Context, userID string)

	GetProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, bool)
	SetProjectAccess(ctx context.Context, userID, projectID string, value *model.CachedProjectAccess, ttl time.Duration)

	// InvalidateProjectAccess removes the (user, project) access record and
	// additionally drops that user's cached project list, so the two cache
	// kinds cannot disagree about a membership change.
	InvalidateProjectAccess(ctx context.Context, userID, projectID string)

	// InvalidateProject removes every per-user access record for the project
	// plus every cached user-project list.
	InvalidateProject(ctx context.Context, projectID string)
}

const (
	projectAccessPrefix = "access:"
	userProjectsPrefix  = "user-projects:"
)

func projectAccessKey(userID, projectID string) string {
	return fmt.Sprintf("%s%s:%s", projectAccessPrefix, userID, projectID)
}

func userProjectsKey(userID string) string {
	return userProjectsPrefix + userID
}
