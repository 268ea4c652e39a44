// Package ranking orders scored routes by a preference-weighted composite
// of their safety, speed, and eco scores, and attaches a human-readable
// explanation to each.
package ranking

import (
	"sort"
	"strings"

	"github.com/saferoute/saferoute/internal/scoring"
)

// Preference selects the weighting applied when ranking routes.
type Preference string

// Supported ranking preferences.
const (
	PreferenceSafety   Preference = "safety"
	PreferenceFastest  Preference = "fastest"
	PreferenceEco      Preference = "eco"
	PreferenceBalanced Preference = "balanced"
)

// ParsePreference normalizes a user-supplied preference string. Unknown or
// empty values fall back to the balanced preference.
func ParsePreference(s string) Preference {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case PreferenceSafety:
		return PreferenceSafety
	case PreferenceFastest:
		return PreferenceFastest
	case PreferenceEco:
		return PreferenceEco
	default:
		return PreferenceBalanced
	}
}

// Weights is the composite blend for one preference.
type Weights struct {
	Safety float64
	Speed  float64
	Eco    float64
}

var preferenceWeights = map[Preference]Weights{
	PreferenceSafety:   {Safety: 0.70, Speed: 0.15, Eco: 0.15},
	PreferenceFastest:  {Safety: 0.15, Speed: 0.70, Eco: 0.15},
	PreferenceEco:      {Safety: 0.15, Speed: 0.15, Eco: 0.70},
	PreferenceBalanced: {Safety: 0.40, Speed: 0.30, Eco: 0.30},
}

// WeightsFor returns the composite weights for a preference.
func WeightsFor(p Preference) Weights {
	if w, ok := preferenceWeights[p]; ok {
		return w
	}
	return preferenceWeights[PreferenceBalanced]
}

// Ranker orders scored routes.
type Ranker struct{}

// NewRanker creates a new ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank fills in speed scores, composites, ranks, and explanations, and
// returns the routes ordered best first. Ranks are always 1..N: equal
// composites are broken by input order, which the stable sort preserves.
// The input slice is reordered in place.
func (r *Ranker) Rank(scores []*scoring.RouteScore, pref Preference) []*scoring.RouteScore {
	if len(scores) == 0 {
		return []*scoring.RouteScore{}
	}

	assignSpeedScores(scores)

	w := WeightsFor(pref)
	for _, s := range scores {
		s.Composite = w.Safety*s.SafetyScore + w.Speed*s.SpeedScore + w.Eco*s.EcoScore
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Composite > scores[j].Composite
	})

	for i, s := range scores {
		s.Rank = i + 1
		s.Explanation = explain(s, pref, i == 0)
	}

	return scores
}

// assignSpeedScores normalizes route durations into a 80 to 100 score:
// the fastest route gets 100, the slowest 80, the rest linearly between.
// A batch with uniform durations scores 100 across the board.
func assignSpeedScores(scores []*scoring.RouteScore) {
	minDur := scores[0].Route.DurationSeconds
	maxDur := minDur
	for _, s := range scores[1:] {
		d := s.Route.DurationSeconds
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}

	spread := float64(maxDur - minDur)
	for _, s := range scores {
		if spread == 0 {
			s.SpeedScore = 100.0
			continue
		}
		normalized := float64(s.Route.DurationSeconds-minDur) / spread
		s.SpeedScore = 100 - normalized*20
	}
}
