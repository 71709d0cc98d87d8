package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizboard-backend-go/pkg/cache"
)

const (
	citiesCacheKey        = "opendata:cities"
	streetsCacheKeyPrefix = "opendata:streets:"
)

type localityService struct {
	source LocalitySource
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewLocalityService creates a LocalityService. Successful upstream
// responses are cached for ttl; a nil cache or a zero ttl disables caching.
func NewLocalityService(source LocalitySource, c cache.Cache, ttl time.Duration, logger *zap.Logger) LocalityService {
	return &localityService{source: source, cache: c, ttl: ttl, logger: logger}
}

func (s *localityService) Cities(ctx context.Context) (json.RawMessage, error) {
	return s.cached(ctx, citiesCacheKey, s.source.Cities)
}

// Streets returns the registry's streets of one city. cityCode is required.
func (s *localityService) Streets(ctx context.Context, cityCode string) (json.RawMessage, error) {
	cityCode = strings.TrimSpace(cityCode)
	if cityCode == "" {
		return nil, invalid("City code is required.")
	}
	return s.cached(ctx, streetsCacheKeyPrefix+cityCode, func(ctx context.Context) ([]byte, error) {
		return s.source.Streets(ctx, cityCode)
	})
}

func (s *localityService) cached(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) (json.RawMessage, error) {
	useCache := s.cache != nil && s.ttl > 0

	if useCache {
		hit, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("locality cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return json.RawMessage(hit), nil
		}
	}

	body, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response for %s is not valid JSON", ErrUpstream, key)
	}

	if useCache {
		if err := s.cache.Set(ctx, key, string(body), s.ttl); err != nil {
			s.logger.Warn("locality cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return json.RawMessage(body), nil
}
