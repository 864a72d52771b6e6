// Package geoip resolves a requester address to a coarse location. Lookups are
// best effort: a failure yields the Unknown sentinel, never an error, because
// geolocation must not be able to break a redirect.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"snipurl-platform/pkg/metrics"
)

// Location is a coarse (country, city) pair.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
}

var (
	// LocalLocation is returned for loopback/private addresses without any
	// network call.
	LocalLocation = Location{Country: "Local Development", City: "Localhost"}
	// UnknownLocation is the fallback for any lookup failure.
	UnknownLocation = Location{Country: "Unknown"}
)

// Resolver maps a network address to a location.
type Resolver interface {
	Resolve(ctx context.Context, ip string) Location
}

// HTTPResolver queries an ip-api.com style endpoint with a bounded timeout and
// a single attempt. Results are cached in redis when a client is configured.
type HTTPResolver struct {
	endpoint string
	client   *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.SugaredLogger
}

func NewHTTPResolver(endpoint string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, logger *zap.SugaredLogger) *HTTPResolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPResolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("geoip"),
	}
}

type apiResponse struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	City    string `json:"city"`
}

func (r *HTTPResolver) Resolve(ctx context.Context, ip string) Location {
	if isPrivateOrLoopback(ip) {
		return LocalLocation
	}

	if loc, ok := r.cachedLocation(ctx, ip); ok {
		return loc
	}

	loc := r.lookup(ctx, ip)
	r.storeLocation(ctx, ip, loc)
	return loc
}

func (r *HTTPResolver) lookup(ctx context.Context, ip string) Location {
	url := fmt.Sprintf("%s/%s?fields=status,country,city", r.endpoint, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.logger.Warnw("building geoip request failed", "error", err)
		return UnknownLocation
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warnw("geoip lookup failed", "ip_present", ip != "", "error", err)
		return UnknownLocation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warnw("geoip lookup returned non-200", "status", resp.StatusCode)
		return UnknownLocation
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		r.logger.Warnw("geoip response decode failed", "error", err)
		return UnknownLocation
	}
	if body.Status != "success" || body.Country == "" {
		return UnknownLocation
	}
	return Location{Country: body.Country, City: body.City}
}

func (r *HTTPResolver) cachedLocation(ctx context.Context, ip string) (Location, bool) {
	if r.cache == nil {
		return Location{}, false
	}
	data, err := r.cache.Get(ctx, cacheKey(ip)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Debugw("geoip cache read failed", "error", err)
		}
		metrics.CacheMisses.WithLabelValues("geoip").Inc()
		return Location{}, false
	}

	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return Location{}, false
	}
	metrics.CacheHits.WithLabelValues("geoip").Inc()
	return loc, true
}

func (r *HTTPResolver) storeLocation(ctx context.Context, ip string, loc Location) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(ip), data, r.cacheTTL).Err(); err != nil {
		r.logger.Debugw("geoip cache write failed", "error", err)
	}
}

func cacheKey(ip string) string {
	return "geoip:" + ip
}

func isPrivateOrLoopback(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		// Unparseable addresses get the local sentinel rather than a doomed
		// external lookup.
		return true
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}
