package conditions

import "github.com/openclimb/cragcast/internal/forecast"

// MaxFavorability caps the favorability scale; it doubles as the maximum
// shading opacity on the dashboard, so a perfect day stays translucent
// enough to read the lines underneath.
const MaxFavorability = 0.8

// Assessment pairs a day's statistics with its favorability score
type Assessment struct {
	DailyStats
	Favorability float64 // In [0, MaxFavorability]; 0 means do not highlight
}

// TemperatureScore maps a daytime max temperature in Fahrenheit to a
// desirability score in [0, 1]. The ideal band is 60-69 F with linear ramps
// on both sides; at or beyond freezing and 80 F the score is 0. The final
// branch covers the remaining (32, 40] range, which also scores 0.
func TemperatureScore(tempF float64) float64 {
	switch {
	case tempF >= 80 || tempF <= 32:
		return 0
	case tempF >= 60 && tempF <= 69:
		return 1
	case tempF > 40 && tempF < 60:
		return (tempF - 40) / (60 - 40)
	case tempF > 69 && tempF < 80:
		return (80 - tempF) / (80 - 69)
	default:
		return 0
	}
}

// HumidityScore maps a daytime max relative humidity to a desirability score
// in [0, 1]: 1 at or below 50%, 0 at or above 80%, linear in between.
func HumidityScore(humidity float64) float64 {
	switch {
	case humidity <= 50:
		return 1
	case humidity >= 80:
		return 0
	default:
		return (80 - humidity) / (80 - 50)
	}
}

// Favorability computes the favorability score for one day. Rain and
// incomplete days always override to 0; otherwise the temperature and
// humidity scores combine multiplicatively, so both conditions must be good
// simultaneously for the day to score well.
func Favorability(stats DailyStats) float64 {
	if !stats.Complete || stats.MaxPrecipMM > 0 {
		return 0
	}
	return MaxFavorability * TemperatureScore(stats.MaxTempF) * HumidityScore(stats.MaxHumidity)
}

// Assess runs the full aggregation and scoring pipeline on a sample series.
// One assessment per distinct calendar day, ascending by day.
func Assess(samples []forecast.Sample) []Assessment {
	stats := Aggregate(samples)
	assessments := make([]Assessment, 0, len(stats))
	for _, st := range stats {
		assessments = append(assessments, Assessment{
			DailyStats:   st,
			Favorability: Favorability(st),
		})
	}
	return assessments
}
