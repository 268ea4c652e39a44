package features_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saferoute/saferoute/internal/features"
	"github.com/saferoute/saferoute/internal/noise"
)

type stubRisk struct{ score float64 }

func (s stubRisk) Score(lat, lon float64) float64 { return s.score }

type stubPollution struct{ level float64 }

func (s stubPollution) Level(ctx context.Context, lat, lon float64) float64 { return s.level }

func newSynthesizer(risk, pollution float64) *features.Synthesizer {
	return features.NewSynthesizer(features.SynthesizerConfig{
		Risk:      stubRisk{score: risk},
		Pollution: stubPollution{level: pollution},
		Noise:     noise.Zero(),
	})
}

func TestTimeContext_IsNight(t *testing.T) {
	assert.True(t, features.TimeContext{HourOfDay: 5}.IsNight())
	assert.False(t, features.TimeContext{HourOfDay: 6}.IsNight())
	assert.False(t, features.TimeContext{HourOfDay: 20}.IsNight())
	assert.True(t, features.TimeContext{HourOfDay: 21}.IsNight())
	assert.True(t, features.TimeContext{HourOfDay: 0}.IsNight())
}

func TestSynthesize_TrafficWeekdayRushHourAtCenter(t *testing.T) {
	syn := newSynthesizer(0.5, 0.2)

	// Rush hour at the city center: 0.85 base times the 1.2 center
	// multiplier, zero jitter, clamped to 1.0.
	pf := syn.Synthesize(context.Background(), features.DefaultCityCenterLat, features.DefaultCityCenterLon,
		features.TimeContext{HourOfDay: 9})
	assert.InDelta(t, 1.0, pf.TrafficDensity, 1e-9)
}

func TestSynthesize_TrafficWeekdayBands(t *testing.T) {
	syn := newSynthesizer(0.5, 0.2)

	// Far from the center the multiplier is 0.8.
	lat, lon := 29.0, 78.0
	cases := []struct {
		hour int
		want float64
	}{
		{hour: 9, want: 0.85 * 0.8},
		{hour: 13, want: 0.55 * 0.8},
		{hour: 22, want: 0.40 * 0.8},
		{hour: 3, want: 0.20 * 0.8},
	}
	for _, tc := range cases {
		pf := syn.Synthesize(context.Background(), lat, lon, features.TimeContext{HourOfDay: tc.hour})
		assert.InDelta(t, tc.want, pf.TrafficDensity, 1e-9, "hour %d", tc.hour)
	}
}

func TestSynthesize_TrafficWeekendBands(t *testing.T) {
	syn := newSynthesizer(0.5, 0.2)
	lat, lon := 29.0, 78.0

	busy := syn.Synthesize(context.Background(), lat, lon, features.TimeContext{HourOfDay: 12, IsWeekend: true})
	assert.InDelta(t, 0.50*0.8, busy.TrafficDensity, 1e-9)

	quiet := syn.Synthesize(context.Background(), lat, lon, features.TimeContext{HourOfDay: 15, IsWeekend: true})
	assert.InDelta(t, 0.25*0.8, quiet.TrafficDensity, 1e-9)
}

func TestSynthesize_LightingDaytime(t *testing.T) {
	syn := newSynthesizer(0.5, 0.2)

	// Zero noise yields the band midpoint regardless of location.
	pf := syn.Synthesize(context.Background(), 29.0, 78.0, features.TimeContext{HourOfDay: 12})
	assert.InDelta(t, 0.90, pf.LightingScore, 1e-9)
}

func TestSynthesize_LightingNightDecaysWithCenterDistance(t *testing.T) {
	syn := newSynthesizer(0.5, 0.2)
	tc := features.TimeContext{HourOfDay: 23}

	center := syn.Synthesize(context.Background(), features.DefaultCityCenterLat, features.DefaultCityCenterLon, tc)
	assert.InDelta(t, (0.75+0.90)/2, center.LightingScore, 1e-9)

	mid := syn.Synthesize(context.Background(), features.DefaultCityCenterLat+0.05, features.DefaultCityCenterLon, tc)
	assert.InDelta(t, (0.55+0.75)/2, mid.LightingScore, 1e-9)

	far := syn.Synthesize(context.Background(), features.DefaultCityCenterLat+0.5, features.DefaultCityCenterLon, tc)
	assert.InDelta(t, (0.35+0.60)/2, far.LightingScore, 1e-9)
}

func TestSynthesize_CarbonFactor(t *testing.T) {
	syn := newSynthesizer(0.5, 0.6)

	pf := syn.Synthesize(context.Background(), 29.0, 78.0, features.TimeContext{HourOfDay: 3})
	want := 0.7*pf.TrafficDensity + 0.3*0.6
	assert.InDelta(t, want, pf.CarbonFactor, 1e-9)
	assert.Equal(t, 0.6, pf.PollutionLevel)
	assert.Equal(t, 0.5, pf.CrimeRate)
}

func TestPointFeatures_Vector(t *testing.T) {
	pf := features.PointFeatures{
		CrimeRate:      0.1,
		PollutionLevel: 0.2,
		TrafficDensity: 0.3,
		LightingScore:  0.4,
		CarbonFactor:   0.5,
		HourOfDay:      22,
		IsNight:        true,
		IsWeekend:      false,
	}
	assert.Equal(t, [8]float64{0.1, 0.2, 0.3, 0.4, 0.5, 22, 1, 0}, pf.Vector())
}
