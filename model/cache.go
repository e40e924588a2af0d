// api/model/cache.go
package model

import "time"

// CachedProjectAccess is a cache payload describing one user's role on one
// project as of CachedAt. The source of truth is the document store; at most
// one record per (user, project) pair is live in cache at a time and staleness
// is bounded by the configured TTL.
type CachedProjectAccess struct {
	UserID     string    `json:"user_id"`
	ProjectID  string    `json:"project_id"`
	Role       string    `json:"role"`
	ClientName string    `json:"client_name"`
	Slug       string    `json:"slug"`
	CachedAt   time.Time `json:"cached_at"`
}

// CachedUserProjects is a cache payload holding a user's full membership set.
// It is a materialized view over the user's CachedProjectAccess records, but
// the two cache kinds are not transactionally linked: either may be stale or
// absent independently of the other.
type CachedUserProjects struct {
	UserID   string                `json:"user_id"`
	Projects []CachedProjectAccess `json:"projects"`
	CachedAt time.Time             `json:"cached_at"`
}
