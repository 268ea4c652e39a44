package ranking

import (
	"fmt"
	"strings"

	"github.com/saferoute/saferoute/internal/scoring"
)

// recommendedPrefix marks the top-ranked route's explanation.
const recommendedPrefix = "Recommended: "

// explain builds the preference-specific explanation for one route.
func explain(s *scoring.RouteScore, pref Preference, best bool) string {
	var text string
	switch pref {
	case PreferenceSafety:
		text = safetyExplanation(s)
	case PreferenceFastest:
		text = speedExplanation(s)
	case PreferenceEco:
		text = ecoExplanation(s)
	default:
		text = balancedExplanation(s)
	}

	if best {
		return recommendedPrefix + text
	}
	return text
}

func safetyExplanation(s *scoring.RouteScore) string {
	var crimeDesc string
	switch crime := s.Means.Crime; {
	case crime < 0.25:
		crimeDesc = "Very safe area with minimal crime"
	case crime < 0.35:
		crimeDesc = "Low crime neighborhood"
	case crime < 0.50:
		crimeDesc = "Moderate crime area, stay alert"
	default:
		crimeDesc = "Higher crime area, extra caution advised"
	}

	var lightingDesc string
	switch lighting := s.Means.Lighting; {
	case lighting > 0.75:
		lightingDesc = "with excellent street lighting"
	case lighting > 0.60:
		lightingDesc = "with good lighting infrastructure"
	case lighting > 0.45:
		lightingDesc = "with adequate lighting (use caution at night)"
	default:
		lightingDesc = "with poor lighting, avoid after dark"
	}

	return fmt.Sprintf("%s %s. Overall safety: %.0f/100.", crimeDesc, lightingDesc, s.SafetyScore)
}

func speedExplanation(s *scoring.RouteScore) string {
	var rating string
	switch {
	case s.SpeedScore > 90:
		rating = "Fastest option"
	case s.SpeedScore > 70:
		rating = "Quick route"
	default:
		rating = "Slower option"
	}

	var trafficDesc string
	switch traffic := s.Means.Traffic; {
	case traffic < 0.4:
		trafficDesc = "light traffic"
	case traffic < 0.7:
		trafficDesc = "moderate traffic"
	default:
		trafficDesc = "heavy congestion"
	}

	duration := s.Route.DurationText
	if duration == "" {
		duration = fmt.Sprintf("%d min", s.Route.DurationSeconds/60)
	}

	return fmt.Sprintf("%s: %s with %s. Speed score: %.0f/100.", rating, duration, trafficDesc, s.SpeedScore)
}

func ecoExplanation(s *scoring.RouteScore) string {
	var rating string
	switch {
	case s.EcoScore > 70:
		rating = "Most eco-friendly option"
	case s.EcoScore > 60:
		rating = "Good environmental choice"
	default:
		rating = "Higher environmental impact"
	}

	var airQuality string
	switch pollution := s.Means.Pollution; {
	case pollution < 0.35:
		airQuality = "excellent air quality"
	case pollution < 0.50:
		airQuality = "moderate air quality"
	default:
		airQuality = "poor air quality"
	}

	// Rough tailpipe estimate: per-km emissions scaled by the carbon factor.
	co2Kg := s.Route.DistanceKm() * 0.12 * s.Means.Carbon

	return fmt.Sprintf("%s: %s, ~%.2fkg CO₂ emissions. Eco score: %.0f/100.", rating, airQuality, co2Kg, s.EcoScore)
}

func balancedExplanation(s *scoring.RouteScore) string {
	return fmt.Sprintf("Balanced route scoring %.0f/100. Safety: %.0f, Speed: %.0f, Eco: %.0f. %s",
		s.Composite, s.SafetyScore, s.SpeedScore, s.EcoScore, balancedSummary(s))
}

func balancedSummary(s *scoring.RouteScore) string {
	var strengths, weaknesses []string

	if s.SafetyScore > 65 {
		strengths = append(strengths, "safe")
	} else if s.SafetyScore < 50 {
		weaknesses = append(weaknesses, "safety concerns")
	}

	if s.SpeedScore > 65 {
		strengths = append(strengths, "fast")
	} else if s.SpeedScore < 50 {
		weaknesses = append(weaknesses, "slower")
	}

	if s.EcoScore > 65 {
		strengths = append(strengths, "eco-friendly")
	} else if s.EcoScore < 50 {
		weaknesses = append(weaknesses, "higher emissions")
	}

	var parts []string
	if len(strengths) > 0 {
		parts = append(parts, "Strong on: "+strings.Join(strengths, ", "))
	}
	if len(weaknesses) > 0 {
		parts = append(parts, "Watch out: "+strings.Join(weaknesses, ", "))
	}
	if len(parts) == 0 {
		return "Good all-around choice"
	}
	return strings.Join(parts, ". ")
}
