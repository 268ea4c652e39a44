// Package handler provides HTTP handlers for the SafeRoute API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/saferoute/saferoute/internal/api/models"
	"github.com/saferoute/saferoute/internal/api/response"
	"github.com/saferoute/saferoute/internal/classifier"
	"github.com/saferoute/saferoute/internal/features"
	"github.com/saferoute/saferoute/internal/ranking"
	"github.com/saferoute/saferoute/internal/routing"
	"github.com/saferoute/saferoute/internal/scoring"
)

// DirectionsService supplies route alternatives for a comparison request.
type DirectionsService interface {
	GetDirections(ctx context.Context, req routing.DirectionsRequest) (*routing.DirectionsResponse, error)
}

// CompareHandlerConfig holds dependencies for the compare handler.
type CompareHandlerConfig struct {
	Directions DirectionsService
	Scorer     *scoring.Scorer
	Ranker     *ranking.Ranker
	Logger     zerolog.Logger

	// Location is the timezone used to derive the hour-of-day and weekend
	// signals when no departure time is supplied (default: server local time).
	Location *time.Location

	// Now returns the current time; overridable in tests.
	Now func() time.Time
}

// CompareHandler handles route comparison requests.
type CompareHandler struct {
	directions DirectionsService
	scorer     *scoring.Scorer
	ranker     *ranking.Ranker
	logger     zerolog.Logger
	location   *time.Location
	now        func() time.Time
}

// NewCompareHandler creates a new CompareHandler.
func NewCompareHandler(cfg CompareHandlerConfig) *CompareHandler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &CompareHandler{
		directions: cfg.Directions,
		scorer:     cfg.Scorer,
		ranker:     cfg.Ranker,
		logger:     cfg.Logger,
		location:   cfg.Location,
		now:        cfg.Now,
	}
}

// CompareRoutes handles POST /v1/routes:compare. It fetches route
// alternatives, scores each along its geometry, and returns them ranked by
// the requested preference.
func (h *CompareHandler) CompareRoutes(w http.ResponseWriter, r *http.Request) {
	var req models.CompareRoutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "request body must be valid JSON", nil)
		return
	}

	if fieldErrors := validateCompareRequest(req); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid comparison request", fieldErrors)
		return
	}

	evaluatedAt := h.now().In(h.location)
	tc := features.TimeContext{
		HourOfDay: evaluatedAt.Hour(),
		IsWeekend: isWeekend(evaluatedAt.Weekday()),
	}
	if req.HourOfDay != nil {
		tc.HourOfDay = *req.HourOfDay
	}
	if req.IsWeekend != nil {
		tc.IsWeekend = *req.IsWeekend
	}

	directions, err := h.directions.GetDirections(r.Context(), routing.DirectionsRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
	})
	if err != nil {
		h.writeDirectionsError(w, r, err)
		return
	}

	preference := ranking.ParsePreference(req.Preference)
	scores := h.scorer.ScoreBatch(r.Context(), directions.Routes, tc)
	if len(directions.Routes) > 0 && len(scores) == 0 {
		response.NotFound(w, r, "no usable route geometry between the given locations")
		return
	}
	ranked := h.ranker.Rank(scores, preference)

	h.logger.Info().
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Str("preference", string(preference)).
		Int("candidates", len(directions.Routes)).
		Int("ranked", len(ranked)).
		Msg("compared routes")

	response.JSON(w, r, http.StatusOK, toCompareResponse(preference, evaluatedAt, ranked))
}

func validateCompareRequest(req models.CompareRoutesRequest) []models.FieldError {
	var fieldErrors []models.FieldError
	if req.Origin == "" {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "origin", Message: "must not be empty", Code: "required",
		})
	}
	if req.Destination == "" {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "destination", Message: "must not be empty", Code: "required",
		})
	}
	if req.HourOfDay != nil && (*req.HourOfDay < 0 || *req.HourOfDay > 23) {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "hourOfDay", Message: "must be between 0 and 23", Code: "range",
		})
	}
	return fieldErrors
}

func (h *CompareHandler) writeDirectionsError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, routing.ErrInvalidLocation):
		response.BadRequest(w, r, "origin or destination could not be resolved", nil)
	case errors.Is(err, routing.ErrNoRouteFound):
		response.NotFound(w, r, "no route found between the given locations")
	case errors.Is(err, routing.ErrRateLimitExceeded):
		response.TooManyRequests(w, r, "routing provider quota exceeded, please try again later")
	default:
		response.ServiceUnavailable(w, r, "routing provider is temporarily unavailable")
	}
}

func toCompareResponse(pref ranking.Preference, evaluatedAt time.Time, ranked []*scoring.RouteScore) models.CompareRoutesResponse {
	routes := make([]models.ComparedRoute, 0, len(ranked))
	for _, s := range ranked {
		route := models.ComparedRoute{
			ID:              s.Route.ID,
			Rank:            s.Rank,
			Summary:         s.Route.Summary,
			StartAddress:    s.Route.StartAddress,
			EndAddress:      s.Route.EndAddress,
			DistanceMeters:  s.Route.DistanceMeters,
			DistanceText:    s.Route.DistanceText,
			DurationSeconds: s.Route.DurationSeconds,
			DurationText:    s.Route.DurationText,
			Polyline:        s.Route.Polyline,
			SafetyScore:     s.SafetyScore,
			SpeedScore:      s.SpeedScore,
			EcoScore:        s.EcoScore,
			CompositeScore:  s.Composite,
			RiskLevel:       string(s.RiskLabel),
			AverageRisk:     s.AverageRisk,
			Degraded:        s.Degraded,
			Signals: models.RouteSignals{
				Crime:     s.Means.Crime,
				Pollution: s.Means.Pollution,
				Traffic:   s.Means.Traffic,
				Lighting:  s.Means.Lighting,
				Carbon:    s.Means.Carbon,
			},
			Explanation: s.Explanation,
		}
		// Probabilities are only meaningful when the model answered.
		if !s.Degraded && s.Probabilities != (classifier.Probabilities{}) {
			route.Probabilities = &models.RiskProbabilities{
				Safe:     s.Probabilities.Safe,
				Moderate: s.Probabilities.Moderate,
				Risky:    s.Probabilities.Risky,
			}
		}
		routes = append(routes, route)
	}

	resp := models.CompareRoutesResponse{
		Preference:  string(pref),
		EvaluatedAt: evaluatedAt,
		Routes:      routes,
	}
	if len(routes) > 0 {
		resp.RecommendedRouteID = routes[0].ID
	}
	return resp
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
