package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"snipurl-platform/internal/model"
	"snipurl-platform/internal/store"
	"snipurl-platform/pkg/metrics"
)

const (
	aliasCacheTTL     = 24 * time.Hour
	aliasCacheTimeout = 1 * time.Second
)

// cachedLink is the slice of a link kept in redis for the redirect fast path.
// Clicks is deliberately absent; it would be stale the moment it was cached.
type cachedLink struct {
	ID          string `json:"id"`
	OriginalURL string `json:"original_url"`
	Name        string `json:"name"`
}

// RedirectService is the hot path: resolve an alias to its destination and
// trigger click accounting without waiting for it.
type RedirectService struct {
	links    store.LinkStore
	recorder *ClickRecorder
	cache    *redis.Client
	logger   *zap.SugaredLogger
}

func NewRedirectService(links store.LinkStore, recorder *ClickRecorder, cache *redis.Client, logger *zap.SugaredLogger) *RedirectService {
	return &RedirectService{
		links:    links,
		recorder: recorder,
		cache:    cache,
		logger:   logger.Named("redirect"),
	}
}

// ResolveDestination serves the 302 path. It prefers the redis cache and only
// needs the destination URL; click accounting is enqueued either way.
func (s *RedirectService) ResolveDestination(ctx context.Context, alias, clientIP string) (string, error) {
	if cached, ok := s.cachedLink(ctx, alias); ok {
		metrics.RedirectsServed.Inc()
		s.recorder.Record(cached.ID, clientIP)
		return cached.OriginalURL, nil
	}

	link, err := s.links.GetByAlias(ctx, alias)
	if err != nil {
		return "", err
	}

	metrics.RedirectsServed.Inc()
	s.recorder.Record(link.ID, clientIP)
	s.storeCachedLink(ctx, link)
	return link.OriginalURL, nil
}

// Resolve serves the JSON boundary contract: destination plus metadata,
// including the current click counter, so it always reads the store.
func (s *RedirectService) Resolve(ctx context.Context, alias, clientIP string) (*model.Link, error) {
	link, err := s.links.GetByAlias(ctx, alias)
	if err != nil {
		return nil, err
	}

	metrics.RedirectsServed.Inc()
	s.recorder.Record(link.ID, clientIP)
	return link, nil
}

// InvalidateAlias drops the cached entry after an update or delete.
func (s *RedirectService) InvalidateAlias(ctx context.Context, alias string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, aliasCacheKey(alias)).Err(); err != nil {
		s.logger.Warnw("alias cache invalidation failed", "alias", alias, "error", err)
	}
}

func (s *RedirectService) cachedLink(ctx context.Context, alias string) (*cachedLink, bool) {
	if s.cache == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, aliasCacheTimeout)
	defer cancel()

	data, err := s.cache.Get(ctx, aliasCacheKey(alias)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debugw("alias cache read failed", "error", err)
		}
		metrics.CacheMisses.WithLabelValues("alias").Inc()
		return nil, false
	}

	var cached cachedLink
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("alias").Inc()
	return &cached, true
}

func (s *RedirectService) storeCachedLink(ctx context.Context, link *model.Link) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, aliasCacheTimeout)
	defer cancel()

	data, err := json.Marshal(cachedLink{ID: link.ID, OriginalURL: link.OriginalURL, Name: link.Name})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, aliasCacheKey(link.Alias), data, aliasCacheTTL).Err(); err != nil {
		s.logger.Debugw("alias cache write failed", "error", err)
	}
}

func aliasCacheKey(alias string) string {
	return "shortlink:" + alias
}
