// api/cache/access.go
package cache

import (
	"context"
	"time"

	"github.com/projecthub-io/api/config"
	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
)

// UserProjectsFallback fetches a user's full membership set from the source
// of truth. Its errors propagate unchanged to the caller.
type UserProjectsFallback func(ctx context.Context) ([]model.CachedProjectAccess, error)

// ProjectAccessFallback fetches one user's role on one project from the
// source of truth. A nil result means no membership.
type ProjectAccessFallback func(ctx context.Context) (*model.CachedProjectAccess, error)

// Stats is a diagnostic snapshot of the cache layer.
type Stats struct {
	Enabled   bool                    `json:"enabled"`
	Kind      string                  `json:"kind"`
	Connected bool                    `json:"connected"`
	TTL       config.TTLConfiguration `json:"ttl"`
}

// AccessCache layers cache-aside reads and write-path invalidation on top of
// a backend. It holds no state beyond the backend reference and the TTL
// configuration; it is constructed once at process start and handed to
// whatever needs cache access.
type AccessCache struct {
	backend ProjectCache
	cfg     config.CacheConfiguration
}

func NewAccessCache(backend ProjectCache, cfg config.CacheConfiguration) *AccessCache {
	return &AccessCache{
		backend: backend,
		cfg:     cfg,
	}
}

// GetUserProjects returns the user's membership set, reading through the
// cache. When no backend is connected the fallback is called directly.
func (a *AccessCache) GetUserProjects(ctx context.Context, userID string, fallback UserProjectsFallback) ([]model.CachedProjectAccess, error) {
	if !a.connected() {
		return fallback(ctx)
	}

	if cached, ok := a.backend.GetUserProjects(ctx, userID); ok {
		return cached.Projects, nil
	}

	projects, err := fallback(ctx)
	if err != nil {
		return nil, err
	}

	entry := &model.CachedUserProjects{
		UserID:   userID,
		Projects: projects,
		CachedAt: time.Now().UTC(),
	}
	// Store failures are absorbed by the backend; the fetched result is
	// returned either way.
	a.backend.SetUserProjects(ctx, userID, entry, a.userProjectsTTL())
	return projects, nil
}

// GetProjectAccess returns the user's role on a project, reading through the
// cache. A nil fallback result (no membership) is returned without caching:
// absence is never cached, so every unauthorized check re-hits the fallback.
func (a *AccessCache) GetProjectAccess(ctx context.Context, userID, projectID string, fallback ProjectAccessFallback) (*model.CachedProjectAccess, error) {
	if !a.connected() {
		return fallback(ctx)
	}

	if cached, ok := a.backend.GetProjectAccess(ctx, userID, projectID); ok {
		return cached, nil
	}

	access, err := fallback(ctx)
	if err != nil {
		return nil, err
	}
	if access == nil {
		return nil, nil
	}

	a.backend.SetProjectAccess(ctx, userID, projectID, access, a.projectAccessTTL())
	return access, nil
}

// InvalidateUserProjects drops the user's cached project list. Callers must
// invoke this synchronously after a successful membership mutation, before
// responding to the request.
func (a *AccessCache) InvalidateUserProjects(ctx context.Context, userID string) {
	if !a.connected() {
		return
	}
	a.backend.InvalidateUserProjects(ctx, userID)
}

// InvalidateProjectAccess drops the (user, project) access record and the
// user's cached project list.
func (a *AccessCache) InvalidateProjectAccess(ctx context.Context, userID, projectID string) {
	if !a.connected() {
		return
	}
	a.backend.InvalidateProjectAccess(ctx, userID, projectID)
}

// InvalidateProject drops every cached access record for the project and
// every cached user-project list.
func (a *AccessCache) InvalidateProject(ctx context.Context, projectID string) {
	if !a.connected() {
		return
	}
	a.backend.InvalidateProject(ctx, projectID)
}

// Stats reports the cache layer's diagnostic snapshot.
func (a *AccessCache) Stats() Stats {
	stats := Stats{
		Enabled: a.cfg.Enabled,
		TTL:     a.cfg.TTL,
	}
	if a.backend != nil {
		stats.Kind = a.backend.Kind()
		stats.Connected = a.backend.IsConnected()
	} else {
		stats.Kind = KindDisabled
	}
	return stats
}

func (a *AccessCache) connected() bool {
	if a.backend == nil || !a.backend.IsConnected() {
		logger.Debug("Cache backend not connected, bypassing cache")
		return false
	}
	return true
}

func (a *AccessCache) projectAccessTTL() time.Duration {
	return time.Duration(a.cfg.TTL.ProjectAccessSeconds) * time.Second
}

func (a *AccessCache) userProjectsTTL() time.Duration {
	return time.Duration(a.cfg.TTL.UserProjectsSeconds) * time.Second
}
