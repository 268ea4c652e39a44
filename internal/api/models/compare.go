package models

import "time"

// CompareRoutesRequest is the body for POST /v1/routes:compare.
type CompareRoutesRequest struct {
	// Origin is a free-form location string (address or place name).
	Origin string `json:"origin"`

	// Destination is a free-form location string.
	Destination string `json:"destination"`

	// Preference selects the ranking weights: safety, fastest, eco, or
	// balanced. Empty or unknown values fall back to balanced.
	Preference string `json:"preference,omitempty"`

	// HourOfDay (0-23) and IsWeekend set the evaluation time context.
	// When absent they default to the server's current local time.
	HourOfDay *int  `json:"hourOfDay,omitempty"`
	IsWeekend *bool `json:"isWeekend,omitempty"`
}

// CompareRoutesResponse is the response for POST /v1/routes:compare,
// with routes ordered best first.
type CompareRoutesResponse struct {
	Preference  string    `json:"preference"`
	EvaluatedAt time.Time `json:"evaluatedAt"`

	// RecommendedRouteID identifies the top-ranked route. Empty when no
	// routes were found.
	RecommendedRouteID string `json:"recommendedRouteId,omitempty"`

	Routes []ComparedRoute `json:"routes"`
}

// ComparedRoute is one scored and ranked route alternative.
type ComparedRoute struct {
	ID           string `json:"id"`
	Rank         int    `json:"rank"`
	Summary      string `json:"summary,omitempty"`
	StartAddress string `json:"startAddress,omitempty"`
	EndAddress   string `json:"endAddress,omitempty"`

	DistanceMeters  int    `json:"distanceMeters"`
	DistanceText    string `json:"distanceText,omitempty"`
	DurationSeconds int    `json:"durationSeconds"`
	DurationText    string `json:"durationText,omitempty"`
	Polyline        string `json:"polyline"`

	SafetyScore    float64 `json:"safetyScore"`
	SpeedScore     float64 `json:"speedScore"`
	EcoScore       float64 `json:"ecoScore"`
	CompositeScore float64 `json:"compositeScore"`

	RiskLevel     string             `json:"riskLevel"`
	AverageRisk   float64            `json:"averageRisk"`
	Probabilities *RiskProbabilities `json:"riskProbabilities,omitempty"`
	Degraded      bool               `json:"degraded,omitempty"`

	Signals     RouteSignals `json:"signals"`
	Explanation string       `json:"explanation"`
}

// RiskProbabilities is the mean class distribution from the risk model.
type RiskProbabilities struct {
	Safe     float64 `json:"safe"`
	Moderate float64 `json:"moderate"`
	Risky    float64 `json:"risky"`
}

// RouteSignals carries the averaged environmental signals for a route.
type RouteSignals struct {
	Crime     float64 `json:"crime"`
	Pollution float64 `json:"pollution"`
	Traffic   float64 `json:"traffic"`
	Lighting  float64 `json:"lighting"`
	Carbon    float64 `json:"carbon"`
}
