package conditions

import (
	"math"
	"testing"
	"time"

	"github.com/openclimb/cragcast/internal/forecast"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTemperatureScore(t *testing.T) {
	tests := []struct {
		name     string
		tempF    float64
		expected float64
	}{
		{"freezing boundary", 32, 0},
		{"below freezing", 10, 0},
		{"cold shoulder band", 35, 0},
		{"upper cold shoulder boundary", 40, 0},
		{"mid cold ramp", 50, 0.5},
		{"ideal band lower boundary", 60, 1},
		{"inside ideal band", 65, 1},
		{"ideal band upper boundary", 69, 1},
		{"mid warm ramp", 74.5, 0.5},
		{"too hot boundary", 80, 0},
		{"above too hot", 95, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TemperatureScore(tt.tempF)
			if !approxEqual(got, tt.expected) {
				t.Errorf("TemperatureScore(%v) = %v, want %v", tt.tempF, got, tt.expected)
			}
		})
	}
}

func TestHumidityScore(t *testing.T) {
	tests := []struct {
		name     string
		humidity float64
		expected float64
	}{
		{"bone dry", 10, 1},
		{"dry boundary", 50, 1},
		{"mid ramp", 65, 0.5},
		{"humid boundary", 80, 0},
		{"saturated", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HumidityScore(tt.humidity)
			if !approxEqual(got, tt.expected) {
				t.Errorf("HumidityScore(%v) = %v, want %v", tt.humidity, got, tt.expected)
			}
		})
	}
}

func TestFavorabilityRainOverride(t *testing.T) {
	// A perfect-conditions day still scores 0 when any rain fell.
	stats := DailyStats{
		MaxTempF:    65,
		MaxHumidity: 40,
		MaxPrecipMM: 0.2,
		Complete:    true,
	}
	if got := Favorability(stats); got != 0 {
		t.Errorf("Favorability with rain = %v, want 0", got)
	}
}

func TestFavorabilityIncompleteOverride(t *testing.T) {
	stats := DailyStats{
		MaxTempF:    65,
		MaxHumidity: 40,
		Complete:    false,
	}
	if got := Favorability(stats); got != 0 {
		t.Errorf("Favorability for incomplete day = %v, want 0", got)
	}
}

func TestFavorabilityRange(t *testing.T) {
	// The score never exceeds the shading cap.
	best := DailyStats{MaxTempF: 65, MaxHumidity: 30, Complete: true}
	if got := Favorability(best); !approxEqual(got, MaxFavorability) {
		t.Errorf("Favorability for ideal day = %v, want %v", got, MaxFavorability)
	}
}

func TestAssessScenarioFairWeatherDay(t *testing.T) {
	// Three samples on one day: 10:00 (68F, 55%), 13:00 (70F, 50%),
	// 18:00 (72F, 48%), no rain. The 18:00 sample is outside the activity
	// window, so the daytime max temp is 70F and max humidity 55%.
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.Local)
	samples := []forecast.Sample{
		{Time: day.Add(10 * time.Hour), TempF: 68, Humidity: 55},
		{Time: day.Add(13 * time.Hour), TempF: 70, Humidity: 50},
		{Time: day.Add(18 * time.Hour), TempF: 72, Humidity: 48},
	}

	assessments := Assess(samples)
	if len(assessments) != 1 {
		t.Fatalf("expected 1 assessment, got %d", len(assessments))
	}

	a := assessments[0]
	if !a.Complete {
		t.Error("expected day to be complete (13:00 sample is past noon)")
	}
	if a.MaxTempF != 70 {
		t.Errorf("MaxTempF = %v, want 70", a.MaxTempF)
	}
	if a.MaxHumidity != 55 {
		t.Errorf("MaxHumidity = %v, want 55", a.MaxHumidity)
	}

	expected := MaxFavorability * ((80 - 70.0) / 11) * ((80 - 55.0) / 30)
	if !approxEqual(a.Favorability, expected) {
		t.Errorf("Favorability = %v, want %v", a.Favorability, expected)
	}
	// Sanity: the spec scenario works out to roughly 0.606.
	if math.Abs(a.Favorability-0.606) > 0.001 {
		t.Errorf("Favorability = %v, want ~0.606", a.Favorability)
	}
}

func TestAssessScenarioRainyDay(t *testing.T) {
	// Same day as the fair-weather scenario, but one sample carries 2mm of
	// rain. Favorability collapses to 0 no matter the other conditions.
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.Local)
	samples := []forecast.Sample{
		{Time: day.Add(10 * time.Hour), TempF: 68, Humidity: 55},
		{Time: day.Add(13 * time.Hour), TempF: 70, Humidity: 50, PrecipMM: 2},
		{Time: day.Add(18 * time.Hour), TempF: 72, Humidity: 48},
	}

	assessments := Assess(samples)
	if len(assessments) != 1 {
		t.Fatalf("expected 1 assessment, got %d", len(assessments))
	}

	a := assessments[0]
	if a.Favorability != 0 {
		t.Errorf("Favorability = %v, want 0 for a rainy day", a.Favorability)
	}
	if a.MaxPrecipMM != 2 {
		t.Errorf("MaxPrecipMM = %v, want 2", a.MaxPrecipMM)
	}
	// The rain annotation shows 2mm / 25.4 = ~0.08 inches.
	if inches := a.MaxPrecipMM / 25.4; math.Abs(inches-0.0787) > 0.001 {
		t.Errorf("rain in inches = %v, want ~0.08", inches)
	}
}

func TestAssessScenarioMorningOnlyDay(t *testing.T) {
	// A day whose only samples are at 06:00 and 09:30 has nothing at or
	// after noon, so it is incomplete and scores 0 even though the 09:30
	// sample falls inside the activity window with ideal conditions.
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.Local)
	samples := []forecast.Sample{
		{Time: day.Add(6 * time.Hour), TempF: 55, Humidity: 60},
		{Time: day.Add(9*time.Hour + 30*time.Minute), TempF: 65, Humidity: 40},
	}

	assessments := Assess(samples)
	if len(assessments) != 1 {
		t.Fatalf("expected 1 assessment, got %d", len(assessments))
	}

	a := assessments[0]
	if a.Complete {
		t.Error("expected day to be incomplete (no sample at or after noon)")
	}
	if a.Favorability != 0 {
		t.Errorf("Favorability = %v, want 0 for an incomplete day", a.Favorability)
	}
}

func TestAssessIdempotent(t *testing.T) {
	day := time.Date(2025, 4, 14, 0, 0, 0, 0, time.Local)
	samples := []forecast.Sample{
		{Time: day.Add(10 * time.Hour), TempF: 68, Humidity: 55},
		{Time: day.Add(13 * time.Hour), TempF: 70, Humidity: 50},
		{Time: day.Add(34 * time.Hour), TempF: 62, Humidity: 45},
	}

	first := Assess(samples)
	second := Assess(samples)

	if len(first) != len(second) {
		t.Fatalf("assessment counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("assessment %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
