package cpiseries

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Source materializes a CPI series. Data acquisition (network fetch, file
// read) lives behind this interface; the schedule engine only ever sees an
// already-materialized Series value.
type Source interface {
	Load() (Series, error)
}

// StaticSource serves a fixed series, typically parsed out of the portfolio
// configuration.
type StaticSource struct {
	series Series
}

// NewStaticSource creates a Source serving the given series.
func NewStaticSource(series Series) *StaticSource {
	return &StaticSource{series: series}
}

// Load returns the static series.
func (s *StaticSource) Load() (Series, error) {
	return s.series, nil
}

// CachedSource wraps an upstream Source with a Cache. A cache hit avoids the
// upstream load; a miss loads upstream and populates the cache.
type CachedSource struct {
	key      string
	cache    Cache
	upstream Source
	logger   *zap.Logger
}

// NewCachedSource creates a caching Source. A nil logger is replaced with a
// no-op logger.
func NewCachedSource(key string, cache Cache, upstream Source, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{key: key, cache: cache, upstream: upstream, logger: logger}
}

// Load returns the cached series when present, falling back to the upstream
// source. Cache write failures are logged, not fatal.
func (c *CachedSource) Load() (Series, error) {
	if raw, ok := c.cache.Get(c.key); ok {
		var points []Point
		if err := json.Unmarshal([]byte(raw), &points); err == nil {
			series, seriesErr := NewSeries(points)
			if seriesErr == nil {
				c.logger.Debug("loaded CPI series from cache",
					zap.String("op", "cpiseries.CachedSource.Load"),
					zap.String("key", c.key),
					zap.Int("points", series.Len()),
				)
				return series, nil
			}
		}
		c.logger.Warn("discarding unreadable cached CPI series",
			zap.String("op", "cpiseries.CachedSource.Load"),
			zap.String("key", c.key),
		)
	}

	series, err := c.upstream.Load()
	if err != nil {
		return Series{}, fmt.Errorf("failed to load CPI series: %w", err)
	}

	raw, err := json.Marshal(series.Points())
	if err != nil {
		return series, nil
	}
	if err := c.cache.Set(c.key, string(raw)); err != nil {
		c.logger.Warn("failed to cache CPI series",
			zap.String("op", "cpiseries.CachedSource.Load"),
			zap.String("key", c.key),
			zap.Error(err),
		)
	}
	return series, nil
}
