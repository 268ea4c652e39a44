// Package features synthesizes per-point scoring inputs. Each sampled route
// coordinate is expanded into the environmental signals the classifier and
// the score aggregator consume: crime rate, pollution, traffic density,
// lighting, and the derived carbon factor.
package features

// TimeContext carries the evaluation time attributes that drive the traffic
// and lighting heuristics.
type TimeContext struct {
	// HourOfDay is the local hour in [0,23].
	HourOfDay int

	// IsWeekend is true on Saturday and Sunday.
	IsWeekend bool
}

// IsNight reports whether the hour falls outside 06:00 to 20:00.
func (t TimeContext) IsNight() bool {
	return t.HourOfDay < 6 || t.HourOfDay > 20
}

// PointFeatures holds the synthesized signals for one sampled coordinate.
// All continuous signals are normalized into [0,1].
type PointFeatures struct {
	Lat float64
	Lon float64

	CrimeRate      float64
	PollutionLevel float64
	TrafficDensity float64
	LightingScore  float64
	CarbonFactor   float64

	HourOfDay int
	IsNight   bool
	IsWeekend bool
}

// Vector returns the features in the column order the risk classifier was
// trained on. The order is part of the model contract and must not change
// without retraining.
func (p PointFeatures) Vector() [8]float64 {
	return [8]float64{
		p.CrimeRate,
		p.PollutionLevel,
		p.TrafficDensity,
		p.LightingScore,
		p.CarbonFactor,
		float64(p.HourOfDay),
		boolToFloat(p.IsNight),
		boolToFloat(p.IsWeekend),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
