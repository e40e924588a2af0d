// api/cache/memory.go
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
)

// sweepInterval is how often the background sweep removes expired entries.
// Reads also check-and-evict lazily, so correctness never depends on sweep
// timing.
const sweepInterval = 5 * time.Minute

type accessEntry struct {
	value     *model.CachedProjectAccess
	expiresAt time.Time
}

type userProjectsEntry struct {
	value     *model.CachedUserProjects
	expiresAt time.Time
}

// MemoryCache is the in-process backend: two TTL maps, one per cached kind,
// each entry carrying an absolute expiry computed at write time. The clock is
// injectable so TTL behavior is testable without sleeping.
type MemoryCache struct {
	clock clockwork.Clock

	mu           sync.RWMutex
	access       map[string]accessEntry
	userProjects map[string]userProjectsEntry
	connected    bool
	sweepDone    chan struct{}
}

func NewMemoryCache(clock clockwork.Clock) *MemoryCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryCache{
		clock:        clock,
		access:       make(map[string]accessEntry),
		userProjects: make(map[string]userProjectsEntry),
	}
}

func (m *MemoryCache) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connected {
		return nil
	}
	m.connected = true
	m.sweepDone = make(chan struct{})
	go m.sweepLoop(m.sweepDone)
	logger.Info("In-memory cache initialized", zap.Duration("sweepInterval", sweepInterval))
	return nil
}

func (m *MemoryCache) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return nil
	}
	m.connected = false
	close(m.sweepDone)
	m.sweepDone = nil
	m.access = make(map[string]accessEntry)
	m.userProjects = make(map[string]userProjectsEntry)
	logger.Info("In-memory cache shut down")
	return nil
}

func (m *MemoryCache) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

func (m *MemoryCache) Kind() string { return KindMemory }

func (m *MemoryCache) GetUserProjects(ctx context.Context, userID string) (*model.CachedUserProjects, bool) {
	key := userProjectsKey(userID)
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.userProjects[key]
	if !ok {
		logger.Debug("User projects cache miss", zap.String("userID", userID))
		return nil, false
	}
	if m.expired(entry.expiresAt) {
		delete(m.userProjects, key)
		logger.Debug("User projects cache entry expired", zap.String("userID", userID))
		return nil, false
	}
	logger.Debug("User projects cache hit", zap.String("userID", userID))
	return entry.value, true
}

func (m *MemoryCache) SetUserProjects(ctx context.Context, userID string, value *model.CachedUserProjects, ttl time.Duration) {
	if value == nil || ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userProjects[userProjectsKey(userID)] = userProjectsEntry{
		value:     value,
		expiresAt: m.clock.Now().Add(ttl),
	}
	logger.Debug("User projects cached", zap.String("userID", userID), zap.Duration("ttl", ttl))
}

func (m *MemoryCache) InvalidateUserProjects(ctx context.Context, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userProjects, userProjectsKey(userID))
	logger.Debug("User projects cache invalidated", zap.String("userID", userID))
}

func (m *MemoryCache) GetProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, bool) {
	key := projectAccessKey(userID, projectID)
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.access[key]
	if !ok {
		logger.Debug("Project access cache miss", zap.String("userID", userID), zap.String("projectID", projectID))
		return nil, false
	}
	if m.expired(entry.expiresAt) {
		delete(m.access, key)
		logger.Debug("Project access cache entry expired", zap.String("userID", userID), zap.String("projectID", projectID))
		return nil, false
	}
	logger.Debug("Project access cache hit", zap.String("userID", userID), zap.String("projectID", projectID))
	return entry.value, true
}

func (m *MemoryCache) SetProjectAccess(ctx context.Context, userID, projectID string, value *model.CachedProjectAccess, ttl time.Duration) {
	if value == nil || ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access[projectAccessKey(userID, projectID)] = accessEntry{
		value:     value,
		expiresAt: m.clock.Now().Add(ttl),
	}
	logger.Debug("Project access cached",
		zap.String("userID", userID),
		zap.String("projectID", projectID),
		zap.Duration("ttl", ttl))
}

func (m *MemoryCache) InvalidateProjectAccess(ctx context.Context, userID, projectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.access, projectAccessKey(userID, projectID))
	// A membership change also makes the user's cached project list stale.
	delete(m.userProjects, userProjectsKey(userID))
	logger.Debug("Project access cache invalidated",
		zap.String("userID", userID),
		zap.String("projectID", projectID))
}

func (m *MemoryCache) InvalidateProject(ctx context.Context, projectID string) {
	suffix := ":" + projectID
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key := range m.access {
		if strings.HasSuffix(key, suffix) {
			delete(m.access, key)
			removed++
		}
	}
	// Any user's project list may reference this project, so drop them all.
	m.userProjects = make(map[string]userProjectsEntry)
	logger.Debug("Project cache invalidated",
		zap.String("projectID", projectID),
		zap.Int("accessEntriesRemoved", removed))
}

func (m *MemoryCache) expired(expiresAt time.Time) bool {
	return !m.clock.Now().Before(expiresAt)
}

func (m *MemoryCache) sweepLoop(done chan struct{}) {
	ticker := m.clock.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.Chan():
			m.sweep()
		}
	}
}

func (m *MemoryCache) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, entry := range m.access {
		if m.expired(entry.expiresAt) {
			delete(m.access, key)
			removed++
		}
	}
	for key, entry := range m.userProjects {
		if m.expired(entry.expiresAt) {
			delete(m.userProjects, key)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("Cache sweep removed expired entries", zap.Int("removed", removed))
	}
}
