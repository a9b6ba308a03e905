package station

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerClient guards a WeatherClient with a circuit breaker and serves the
// last good value per location while the upstream is open.
type BreakerClient struct {
	inner WeatherClient
	cb    *gobreaker.CircuitBreaker

	mu       sync.RWMutex
	lastGood map[string]Daily
}

// NewBreakerClient trips after fails consecutive failures and half-opens
// after openFor.
func NewBreakerClient(inner WeatherClient, name string, fails uint32, openFor, interval time.Duration) *BreakerClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: interval,
		Timeout:  openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= fails
		},
	})
	return &BreakerClient{inner: inner, cb: cb, lastGood: make(map[string]Daily)}
}

func cacheKey(lat, lon float64, day time.Time) string {
	return fmt.Sprintf("%.3f,%.3f,%s", lat, lon, day.UTC().Format("2006-01-02"))
}

// Daily runs the upstream call through the breaker; on failure it falls back
// to the cached value for the same location and day, if any.
func (b *BreakerClient) Daily(ctx context.Context, lat, lon float64, day time.Time) (Daily, error) {
	key := cacheKey(lat, lon, day)

	res, err := b.cb.Execute(func() (any, error) {
		return b.inner.Daily(ctx, lat, lon, day)
	})
	if err == nil {
		d := res.(Daily)
		b.mu.Lock()
		b.lastGood[key] = d
		b.mu.Unlock()
		return d, nil
	}

	b.mu.RLock()
	d, ok := b.lastGood[key]
	b.mu.RUnlock()
	if ok {
		return d, nil
	}
	return Daily{}, fmt.Errorf("station: upstream unavailable and no cached value: %w", err)
}
