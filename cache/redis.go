// api/cache/redis.go
package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/projecthub-io/api/config"
	logger "github.com/projecthub-io/api/logging"
	"github.com/projecthub-io/api/model"
)

const (
	// tokenRefreshInterval keeps identity tokens fresh well inside their
	// roughly one hour validity window.
	tokenRefreshInterval = 45 * time.Minute

	// tokenScope is the audience requested from the identity-token provider.
	tokenScope = "https://redis.azure.com/.default"

	// scanBatchSize bounds each SCAN page during bulk invalidation so the
	// shared backend is never stalled by a blocking full-keyspace listing.
	scanBatchSize = 100

	connectTimeout = 5 * time.Second
)

// Token is a short-lived credential issued by an identity-token provider.
type Token struct {
	Value     string
	ExpiresOn time.Time
}

// TokenCredential mints identity tokens for the redis backend when no access
// key is configured.
type TokenCredential interface {
	GetToken(ctx context.Context, scope string) (Token, error)
}

// RedisCache is the networked backend. It authenticates with either a
// long-lived access key or a proactively refreshed identity token, namespaces
// keys by cached kind, and fails soft: every per-operation error is logged
// and reported as a miss or absorbed as a no-op.
type RedisCache struct {
	cfg        config.RedisConfiguration
	credential TokenCredential
	clock      clockwork.Clock

	client *redis.Client

	mu          sync.RWMutex
	token       string
	connected   bool
	refreshDone chan struct{}
}

func NewRedisCache(cfg config.RedisConfiguration, credential TokenCredential, clock clockwork.Clock) *RedisCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RedisCache{
		cfg:        cfg,
		credential: credential,
		clock:      clock,
	}
}

func (r *RedisCache) Connect(ctx context.Context) error {
	r.mu.Lock()
	if r.connected {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	opts := &redis.Options{
		Addr: fmt.Sprintf("%s:%d", r.cfg.Host, r.cfg.Port),
		DB:   r.cfg.DB,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: r.cfg.Host,
		},
	}

	useToken := r.cfg.AccessKey == ""
	if useToken {
		if r.credential == nil {
			return errors.New("redis cache: no access key configured and no token credential provided")
		}
		token, err := r.credential.GetToken(ctx, tokenScope)
		if err != nil {
			return fmt.Errorf("redis cache: failed to acquire initial token: %w", err)
		}
		r.mu.Lock()
		r.token = token.Value
		r.mu.Unlock()
		opts.CredentialsProvider = func() (string, string) {
			r.mu.RLock()
			defer r.mu.RUnlock()
			return "", r.token
		}
		logger.Info("Redis cache using identity-token authentication",
			zap.Time("tokenExpiresOn", token.ExpiresOn))
	} else {
		opts.Password = r.cfg.AccessKey
		logger.Info("Redis cache using access-key authentication")
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis cache: failed to connect to %s: %w", opts.Addr, err)
	}

	r.mu.Lock()
	r.client = client
	r.connected = true
	if useToken {
		r.refreshDone = make(chan struct{})
		go r.refreshLoop(r.refreshDone)
	}
	r.mu.Unlock()

	logger.Info("Successfully connected to redis cache", zap.String("addr", opts.Addr))
	return nil
}

func (r *RedisCache) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.connected {
		return nil
	}
	r.connected = false
	if r.refreshDone != nil {
		close(r.refreshDone)
		r.refreshDone = nil
	}
	client := r.client
	r.client = nil
	if client != nil {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis connection", zap.Error(err))
			return err
		}
	}
	logger.Info("Redis cache disconnected")
	return nil
}

func (r *RedisCache) IsConnected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connected
}

func (r *RedisCache) Kind() string { return KindRedis }

// refreshLoop re-acquires the identity token before its validity expires.
// A failed refresh keeps the previous token and retries on the next tick.
func (r *RedisCache) refreshLoop(done chan struct{}) {
	ticker := r.clock.NewTicker(tokenRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.Chan():
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			token, err := r.credential.GetToken(ctx, tokenScope)
			cancel()
			if err != nil {
				logger.Error("Redis token refresh failed, will retry on next interval", zap.Error(err))
				continue
			}
			r.mu.Lock()
			r.token = token.Value
			r.mu.Unlock()
			logger.Debug("Redis identity token refreshed", zap.Time("tokenExpiresOn", token.ExpiresOn))
		}
	}
}

func (r *RedisCache) getClient() *redis.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.connected {
		return nil
	}
	return r.client
}

func (r *RedisCache) GetUserProjects(ctx context.Context, userID string) (*model.CachedUserProjects, bool) {
	client := r.getClient()
	if client == nil {
		return nil, false
	}
	key := userProjectsKey(userID)
	payload, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("User projects not found in cache", zap.String("userID", userID))
		return nil, false
	} else if err != nil {
		logger.Error("Failed to get user projects from cache", zap.Error(err), zap.String("userID", userID))
		return nil, false
	}

	var cached model.CachedUserProjects
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		logger.Error("Failed to unmarshal cached user projects", zap.Error(err), zap.String("userID", userID))
		return nil, false
	}
	logger.Debug("User projects retrieved from cache", zap.String("userID", userID))
	return &cached, true
}

func (r *RedisCache) SetUserProjects(ctx context.Context, userID string, value *model.CachedUserProjects, ttl time.Duration) {
	client := r.getClient()
	if client == nil || value == nil || ttl <= 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Failed to marshal user projects for cache", zap.Error(err), zap.String("userID", userID))
		return
	}
	if err := client.Set(ctx, userProjectsKey(userID), payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache user projects", zap.Error(err), zap.String("userID", userID))
		return
	}
	logger.Debug("User projects cached", zap.String("userID", userID), zap.Duration("ttl", ttl))
}

func (r *RedisCache) InvalidateUserProjects(ctx context.Context, userID string) {
	client := r.getClient()
	if client == nil {
		return
	}
	if err := client.Del(ctx, userProjectsKey(userID)).Err(); err != nil {
		logger.Error("Failed to invalidate user projects cache", zap.Error(err), zap.String("userID", userID))
		return
	}
	logger.Debug("User projects cache invalidated", zap.String("userID", userID))
}

func (r *RedisCache) GetProjectAccess(ctx context.Context, userID, projectID string) (*model.CachedProjectAccess, bool) {
	client := r.getClient()
	if client == nil {
		return nil, false
	}
	key := projectAccessKey(userID, projectID)
	payload, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Project access not found in cache",
			zap.String("userID", userID), zap.String("projectID", projectID))
		return nil, false
	} else if err != nil {
		logger.Error("Failed to get project access from cache", zap.Error(err),
			zap.String("userID", userID), zap.String("projectID", projectID))
		return nil, false
	}

	var cached model.CachedProjectAccess
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		logger.Error("Failed to unmarshal cached project access", zap.Error(err),
			zap.String("userID", userID), zap.String("projectID", projectID))
		return nil, false
	}
	logger.Debug("Project access retrieved from cache",
		zap.String("userID", userID), zap.String("projectID", projectID))
	return &cached, true
}

func (r *RedisCache) SetProjectAccess(ctx context.Context, userID, projectID string, value *model.CachedProjectAccess, ttl time.Duration) {
	client := r.getClient()
	if client == nil || value == nil || ttl <= 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Failed to marshal project access for cache", zap.Error(err),
			zap.String("userID", userID), zap.String("projectID", projectID))
		return
	}
	if err := client.Set(ctx, projectAccessKey(userID, projectID), payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache project access", zap.Error(err),
			zap.String("userID", userID), zap.String("projectID", projectID))
		return
	}
	logger.Debug("Project access cached",
		zap.String("userID", userID),
		zap.String("projectID", projectID),
		zap.Duration("ttl", ttl))
}

func (r *RedisCache) InvalidateProjectAccess(ctx context.Context, userID, projectID string) {
	client := r.getClient()
	if client == nil {
		return
	}
	// A membership change also makes the user's cached project list stale,
	// so both keys go in one round trip.
	keys := []string{projectAccessKey(userID, projectID), userProjectsKey(userID)}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Failed to invalidate project access cache", zap.Error(err),
			zap.String("userID", userID), zap.String("projectID", projectID))
		return
	}
	logger.Debug("Project access cache invalidated",
		zap.String("userID", userID), zap.String("projectID", projectID))
}

func (r *RedisCache) InvalidateProject(ctx context.Context, projectID string) {
	client := r.getClient()
	if client == nil {
		return
	}
	removed := r.deleteByPattern(ctx, client, projectAccessPrefix+"*:"+projectID)
	removed += r.deleteByPattern(ctx, client, userProjectsPrefix+"*")
	logger.Debug("Project cache invalidated",
		zap.String("projectID", projectID),
		zap.Int("keysRemoved", removed))
}

// deleteByPattern removes matching keys with an incremental cursor-based
// scan. KEYS would block the shared backend under load, so it is never used.
func (r *RedisCache) deleteByPattern(ctx context.Context, client *redis.Client, pattern string) int {
	var cursor uint64
	removed := 0
	for {
		keys, next, err := client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			logger.Error("Failed to scan cache keys", zap.Error(err), zap.String("pattern", pattern))
			return removed
		}
		if len(keys) > 0 {
			if err := client.Del(ctx, keys...).Err(); err != nil {
				logger.Error("Failed to delete cache keys", zap.Error(err), zap.String("pattern", pattern))
			} else {
				removed += len(keys)
			}
		}
		cursor = next
		if cursor == 0 {
			return removed
		}
	}
}
