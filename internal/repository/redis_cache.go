package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const geometryCacheTTL = 30 * time.Minute

// CachedHallGeometryProvider caches hall layouts in Redis. Geometry is
// effectively immutable during a showtime's sale window, so a miss or a Redis
// outage simply falls through to the underlying provider.
type CachedHallGeometryProvider struct {
	next   domain.HallGeometryProvider
	redis  redis.UniversalClient
	logger *slog.Logger
}

func NewCachedHallGeometryProvider(
	next domain.HallGeometryProvider,
	client redis.UniversalClient,
	logger *slog.Logger) *CachedHallGeometryProvider {

	return &CachedHallGeometryProvider{
		next:   next,
		redis:  client,
		logger: logger,
	}
}

func (c *CachedHallGeometryProvider) GetById(ctx context.Context, id int64) (*domain.HallGeometry, error) {
	key := hallGeometryKey(id)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var hall domain.HallGeometry

		err = json.Unmarshal(cached, &hall)
		if err == nil {
			return &hall, nil
		}

		c.logger.Warn("discarding malformed cached hall geometry", "key", key, "error", err)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("hall geometry cache read failed", "key", key, "error", err)
	}

	hall, err := c.next.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	hallBytes, err := json.Marshal(hall)
	if err == nil {
		err = c.redis.Set(ctx, key, hallBytes, geometryCacheTTL).Err()
		if err != nil {
			c.logger.Warn("hall geometry cache write failed", "key", key, "error", err)
		}
	}

	return hall, nil
}

func hallGeometryKey(hallID int64) string {
	return fmt.Sprintf("hall_geometry:%d", hallID)
}

// CachedShowtimeDirectory caches showtime-to-hall lookups in Redis with the
// same fall-through behavior as the geometry cache.
type CachedShowtimeDirectory struct {
	next   domain.ShowtimeDirectory
	redis  redis.UniversalClient
	logger *slog.Logger
}

func NewCachedShowtimeDirectory(
	next domain.ShowtimeDirectory,
	client redis.UniversalClient,
	logger *slog.Logger) *CachedShowtimeDirectory {

	return &CachedShowtimeDirectory{
		next:   next,
		redis:  client,
		logger: logger,
	}
}

func (c *CachedShowtimeDirectory) GetById(ctx context.Context, id int64) (*domain.Showtime, error) {
	key := showtimeKey(id)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var showtime domain.Showtime

		err = json.Unmarshal(cached, &showtime)
		if err == nil {
			return &showtime, nil
		}

		c.logger.Warn("discarding malformed cached showtime", "key", key, "error", err)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("showtime cache read failed", "key", key, "error", err)
	}

	showtime, err := c.next.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	showtimeBytes, err := json.Marshal(showtime)
	if err == nil {
		err = c.redis.Set(ctx, key, showtimeBytes, geometryCacheTTL).Err()
		if err != nil {
			c.logger.Warn("showtime cache write failed", "key", key, "error", err)
		}
	}

	return showtime, nil
}

func showtimeKey(showtimeID int64) string {
	return fmt.Sprintf("showtime:%d", showtimeID)
}
