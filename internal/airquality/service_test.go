package airquality_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saferoute/saferoute/internal/airquality"
	"github.com/saferoute/saferoute/internal/noise"
)

type stubProvider struct {
	value float64
	err   error
	calls int
}

func (p *stubProvider) PM25(ctx context.Context, lat, lon float64) (float64, error) {
	p.calls++
	return p.value, p.err
}

func (p *stubProvider) Name() string { return "stub" }

func TestService_Level_NormalizesProviderValue(t *testing.T) {
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: &stubProvider{value: 250},
	})

	level := svc.Level(context.Background(), 28.61, 77.21)
	assert.Equal(t, 0.5, level)
}

func TestService_Level_CachesPerGridCell(t *testing.T) {
	provider := &stubProvider{value: 100}
	svc := airquality.NewService(airquality.ServiceConfig{Provider: provider})

	// Two lookups within the same 0.01 degree cell hit the provider once.
	svc.Level(context.Background(), 28.611, 77.211)
	svc.Level(context.Background(), 28.612, 77.212)
	assert.Equal(t, 1, provider.calls)

	// A lookup in a different cell hits the provider again.
	svc.Level(context.Background(), 28.70, 77.30)
	assert.Equal(t, 2, provider.calls)
}

func TestService_Level_FallbackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Noise:    noise.Zero(),
	})

	// Midpoint of the default 0.30 to 0.50 fallback band.
	level := svc.Level(context.Background(), 28.61, 77.21)
	assert.Equal(t, 0.40, level)

	// Fallback values are not cached, so the provider is retried.
	svc.Level(context.Background(), 28.61, 77.21)
	assert.Equal(t, 2, provider.calls)
}

func TestService_Level_FallbackWithoutProvider(t *testing.T) {
	svc := airquality.NewService(airquality.ServiceConfig{Noise: noise.Zero()})

	level := svc.Level(context.Background(), 28.61, 77.21)
	assert.Equal(t, 0.40, level)
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &stubProvider{value: 100}
	svc := airquality.NewService(airquality.ServiceConfig{Provider: provider})

	svc.Level(context.Background(), 28.61, 77.21)
	svc.InvalidateCache()
	svc.Level(context.Background(), 28.61, 77.21)
	assert.Equal(t, 2, provider.calls)
}

func TestNormalizePM25(t *testing.T) {
	assert.Equal(t, 0.0, airquality.NormalizePM25(-5))
	assert.Equal(t, 0.0, airquality.NormalizePM25(0))
	assert.Equal(t, 0.2, airquality.NormalizePM25(100))
	assert.Equal(t, 1.0, airquality.NormalizePM25(500))
	assert.Equal(t, 1.0, airquality.NormalizePM25(900))
}
