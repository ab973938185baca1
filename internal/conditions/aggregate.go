// Package conditions turns a location's forecast samples into per-day
// statistics and a climbing-condition favorability score. Everything here is
// pure: the same samples always produce the same assessments.
package conditions

import (
	"sort"
	"time"

	"github.com/openclimb/cragcast/internal/forecast"
)

// Daytime statistics only consider samples whose local time-of-day falls in
// [activityWindowStartHour, activityWindowEndHour) - climbing happens during
// the day, so the 3 AM low is irrelevant. A day only counts as complete once
// a sample at or after local noon exists; before that the forecast for the
// day is still partial.
const (
	activityWindowStartHour = 9
	activityWindowEndHour   = 16
	noonHour                = 12
)

// DailyStats holds the aggregated statistics for one (location, day) pair
type DailyStats struct {
	Day         time.Time // Local midnight of the calendar day
	MaxTempF    float64   // Max temperature over the activity window (or the whole day as fallback)
	MaxHumidity float64   // Max humidity over the activity window (or the whole day as fallback)
	MaxPrecipMM float64   // Max precipitation over all of the day's samples, window-independent
	Complete    bool      // Whether a sample at or after local noon exists
}

type dayAccum struct {
	windowMaxTemp float64
	windowMaxHum  float64
	windowCount   int
	allMaxTemp    float64
	allMaxHum     float64
	allCount      int
	maxPrecip     float64
	postNoon      bool
}

// Aggregate groups a sample series by calendar day and computes each day's
// statistics. The result is ordered ascending by day regardless of sample
// order, and contains exactly one entry per distinct day in the input.
func Aggregate(samples []forecast.Sample) []DailyStats {
	byDay := make(map[time.Time]*dayAccum)
	for _, s := range samples {
		day := dayOf(s.Time)
		a := byDay[day]
		if a == nil {
			a = &dayAccum{}
			byDay[day] = a
		}

		if a.allCount == 0 || s.TempF > a.allMaxTemp {
			a.allMaxTemp = s.TempF
		}
		if a.allCount == 0 || s.Humidity > a.allMaxHum {
			a.allMaxHum = s.Humidity
		}
		a.allCount++

		if s.PrecipMM > a.maxPrecip {
			a.maxPrecip = s.PrecipMM
		}

		hour := s.Time.Hour()
		if hour >= activityWindowStartHour && hour < activityWindowEndHour {
			if a.windowCount == 0 || s.TempF > a.windowMaxTemp {
				a.windowMaxTemp = s.TempF
			}
			if a.windowCount == 0 || s.Humidity > a.windowMaxHum {
				a.windowMaxHum = s.Humidity
			}
			a.windowCount++
		}
		if hour >= noonHour {
			a.postNoon = true
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	stats := make([]DailyStats, 0, len(days))
	for _, day := range days {
		a := byDay[day]
		st := DailyStats{
			Day:         day,
			MaxPrecipMM: a.maxPrecip,
			Complete:    a.postNoon,
		}
		switch {
		case a.windowCount > 0:
			st.MaxTempF = a.windowMaxTemp
			st.MaxHumidity = a.windowMaxHum
		case a.allCount > 0:
			// No activity-window samples for this day; fall back to the
			// whole-day maxima rather than reporting nothing.
			st.MaxTempF = a.allMaxTemp
			st.MaxHumidity = a.allMaxHum
		}
		stats = append(stats, st)
	}
	return stats
}

// dayOf truncates a timestamp to its local midnight
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
