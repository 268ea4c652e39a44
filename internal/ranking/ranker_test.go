package ranking_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saferoute/saferoute/internal/ranking"
	"github.com/saferoute/saferoute/internal/routing"
	"github.com/saferoute/saferoute/internal/scoring"
)

func TestParsePreference(t *testing.T) {
	assert.Equal(t, ranking.PreferenceSafety, ranking.ParsePreference("safety"))
	assert.Equal(t, ranking.PreferenceSafety, ranking.ParsePreference("  SAFETY "))
	assert.Equal(t, ranking.PreferenceFastest, ranking.ParsePreference("Fastest"))
	assert.Equal(t, ranking.PreferenceEco, ranking.ParsePreference("eco"))
	assert.Equal(t, ranking.PreferenceBalanced, ranking.ParsePreference("balanced"))
	assert.Equal(t, ranking.PreferenceBalanced, ranking.ParsePreference(""))
	assert.Equal(t, ranking.PreferenceBalanced, ranking.ParsePreference("scenic"))
}

func TestWeightsFor(t *testing.T) {
	w := ranking.WeightsFor(ranking.PreferenceSafety)
	assert.Equal(t, ranking.Weights{Safety: 0.70, Speed: 0.15, Eco: 0.15}, w)

	w = ranking.WeightsFor(ranking.PreferenceBalanced)
	assert.Equal(t, ranking.Weights{Safety: 0.40, Speed: 0.30, Eco: 0.30}, w)
}

func TestWeightsFor_EveryPreferenceSumsToOne(t *testing.T) {
	prefs := []ranking.Preference{
		ranking.PreferenceSafety,
		ranking.PreferenceFastest,
		ranking.PreferenceEco,
		ranking.PreferenceBalanced,
	}
	for _, p := range prefs {
		w := ranking.WeightsFor(p)
		assert.InDelta(t, 1.0, w.Safety+w.Speed+w.Eco, 1e-9, "preference %s", p)
	}
}

func score(id string, durationSec int, safety, eco float64) *scoring.RouteScore {
	return &scoring.RouteScore{
		Route: routing.Route{
			ID:              id,
			DurationSeconds: durationSec,
			DurationText:    "20 mins",
			DistanceMeters:  10000,
		},
		SafetyScore: safety,
		EcoScore:    eco,
	}
}

func TestRank_SpeedScoreNormalization(t *testing.T) {
	scores := []*scoring.RouteScore{
		score("route-1", 1200, 50, 50), // fastest
		score("route-2", 1500, 50, 50), // midway
		score("route-3", 1800, 50, 50), // slowest
	}

	ranked := ranking.NewRanker().Rank(scores, ranking.PreferenceFastest)
	require.Len(t, ranked, 3)

	byID := map[string]*scoring.RouteScore{}
	for _, s := range ranked {
		byID[s.Route.ID] = s
	}
	assert.InDelta(t, 100.0, byID["route-1"].SpeedScore, 1e-9)
	assert.InDelta(t, 90.0, byID["route-2"].SpeedScore, 1e-9)
	assert.InDelta(t, 80.0, byID["route-3"].SpeedScore, 1e-9)

	// The fastest route wins under the fastest preference.
	assert.Equal(t, "route-1", ranked[0].Route.ID)
}

func TestRank_UniformDurationsAllScore100(t *testing.T) {
	scores := []*scoring.RouteScore{
		score("route-1", 1200, 50, 50),
		score("route-2", 1200, 60, 50),
	}

	ranking.NewRanker().Rank(scores, ranking.PreferenceBalanced)
	assert.Equal(t, 100.0, scores[0].SpeedScore)
	assert.Equal(t, 100.0, scores[1].SpeedScore)
}

func TestRank_CompositeAndOrdering(t *testing.T) {
	scores := []*scoring.RouteScore{
		score("risky-fast", 1200, 30, 60),
		score("safe-slow", 1800, 90, 60),
	}

	ranked := ranking.NewRanker().Rank(scores, ranking.PreferenceSafety)

	// Safety weighting: 0.70*90 + 0.15*80 + 0.15*60 = 84 beats
	// 0.70*30 + 0.15*100 + 0.15*60 = 45.
	assert.Equal(t, "safe-slow", ranked[0].Route.ID)
	assert.InDelta(t, 84.0, ranked[0].Composite, 1e-9)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.InDelta(t, 45.0, ranked[1].Composite, 1e-9)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRank_TiesKeepInputOrderWithDistinctRanks(t *testing.T) {
	scores := []*scoring.RouteScore{
		score("route-1", 1200, 50, 50),
		score("route-2", 1200, 50, 50),
		score("route-3", 1200, 40, 40),
	}

	ranked := ranking.NewRanker().Rank(scores, ranking.PreferenceBalanced)
	require.Len(t, ranked, 3)

	// Equal composites keep their input order and still get distinct ranks.
	assert.InDelta(t, ranked[0].Composite, ranked[1].Composite, 1e-9)
	assert.Equal(t, "route-1", ranked[0].Route.ID)
	assert.Equal(t, "route-2", ranked[1].Route.ID)
	assert.Equal(t, "route-3", ranked[2].Route.ID)
	for i, s := range ranked {
		assert.Equal(t, i+1, s.Rank)
	}
}

func TestRank_TopRouteGetsRecommendedPrefix(t *testing.T) {
	scores := []*scoring.RouteScore{
		score("route-1", 1200, 90, 90),
		score("route-2", 1800, 40, 40),
	}

	ranked := ranking.NewRanker().Rank(scores, ranking.PreferenceBalanced)
	assert.True(t, strings.HasPrefix(ranked[0].Explanation, "Recommended: "))
	assert.False(t, strings.HasPrefix(ranked[1].Explanation, "Recommended: "))
}

func TestRank_Empty(t *testing.T) {
	ranked := ranking.NewRanker().Rank(nil, ranking.PreferenceBalanced)
	assert.Empty(t, ranked)
}

func TestRank_SafetyExplanationBands(t *testing.T) {
	s := score("route-1", 1200, 72, 50)
	s.Means = scoring.FeatureMeans{Crime: 0.20, Lighting: 0.80}

	ranked := ranking.NewRanker().Rank([]*scoring.RouteScore{s}, ranking.PreferenceSafety)
	got := ranked[0].Explanation
	assert.Contains(t, got, "Very safe area with minimal crime")
	assert.Contains(t, got, "excellent street lighting")
	assert.Contains(t, got, "Overall safety: 72/100")
}

func TestRank_FastestExplanation(t *testing.T) {
	s := score("route-1", 1200, 50, 50)
	s.Means = scoring.FeatureMeans{Traffic: 0.80}

	ranked := ranking.NewRanker().Rank([]*scoring.RouteScore{s}, ranking.PreferenceFastest)
	got := ranked[0].Explanation
	assert.Contains(t, got, "Fastest option")
	assert.Contains(t, got, "20 mins")
	assert.Contains(t, got, "heavy congestion")
}

func TestRank_EcoExplanationIncludesEmissions(t *testing.T) {
	s := score("route-1", 1200, 50, 75)
	s.Means = scoring.FeatureMeans{Pollution: 0.30, Carbon: 0.5}

	ranked := ranking.NewRanker().Rank([]*scoring.RouteScore{s}, ranking.PreferenceEco)
	got := ranked[0].Explanation
	assert.Contains(t, got, "Most eco-friendly option")
	assert.Contains(t, got, "excellent air quality")
	// 10 km at 0.12 kg/km scaled by carbon 0.5.
	assert.Contains(t, got, "~0.60kg CO₂")
}

func TestRank_BalancedExplanationSummarizesStrengths(t *testing.T) {
	s := score("route-1", 1200, 80, 40)

	ranked := ranking.NewRanker().Rank([]*scoring.RouteScore{s}, ranking.PreferenceBalanced)
	got := ranked[0].Explanation
	assert.Contains(t, got, "Strong on: safe, fast")
	assert.Contains(t, got, "Watch out: higher emissions")
}
