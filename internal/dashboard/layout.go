// Package dashboard renders the composite forecast chart: one horizontal
// band per location on a shared time axis, with favorability shading and
// daily annotations. Layout math lives apart from the draw calls so it can
// be tested without a graphics backend.
package dashboard

import (
	"time"

	"github.com/openclimb/cragcast/internal/forecast"
)

// Axis padding around the sampled range. The left pad keeps the first
// sample off the frame edge; the right pad leaves room for the last day's
// full span.
const (
	axisLeadIn   = 6 * time.Hour
	axisTrailOut = 24 * time.Hour
)

// tempHeadroom is the fraction of headroom above the global max temperature
// on the shared left axis.
const tempHeadroom = 0.05

// humidityAxisMax fixes the right axis scale; 105 keeps a 100% reading off
// the frame edge.
const humidityAxisMax = 105.0

// Geometry fixes the pixel frame shared by every band
type Geometry struct {
	Width        int     // Total image width
	BandHeight   int     // Height of one location band, margins included
	MarginLeft   float64 // Room for the left (temperature) axis labels
	MarginRight  float64 // Room for the right (humidity) axis labels
	MarginTop    float64 // Room for the band title
	MarginBottom float64 // Room for the date tick labels
}

// NewGeometry creates the band geometry for the configured image dimensions
func NewGeometry(widthPx, bandHeightPx int) Geometry {
	return Geometry{
		Width:        widthPx,
		BandHeight:   bandHeightPx,
		MarginLeft:   70,
		MarginRight:  70,
		MarginTop:    46,
		MarginBottom: 36,
	}
}

// TotalHeight returns the image height for the given number of bands
func (g Geometry) TotalHeight(bands int) int {
	return bands * g.BandHeight
}

// PlotLeft returns the x coordinate of the plot area's left edge
func (g Geometry) PlotLeft() float64 {
	return g.MarginLeft
}

// PlotRight returns the x coordinate of the plot area's right edge
func (g Geometry) PlotRight() float64 {
	return float64(g.Width) - g.MarginRight
}

// BandTop returns the y coordinate of the plot area's top edge for band i
func (g Geometry) BandTop(i int) float64 {
	return float64(i*g.BandHeight) + g.MarginTop
}

// BandBottom returns the y coordinate of the plot area's bottom edge for band i
func (g Geometry) BandBottom(i int) float64 {
	return float64((i+1)*g.BandHeight) - g.MarginBottom
}

// TimeScale maps instants onto horizontal pixel positions
type TimeScale struct {
	Min, Max time.Time
	X0, X1   float64
}

// X returns the pixel position for t
func (s TimeScale) X(t time.Time) float64 {
	span := s.Max.Sub(s.Min)
	if span <= 0 {
		return s.X0
	}
	return s.X0 + (s.X1-s.X0)*float64(t.Sub(s.Min))/float64(span)
}

// ValueScale maps values onto vertical pixel positions (pixel y grows
// downward, values grow upward)
type ValueScale struct {
	Min, Max      float64
	YTop, YBottom float64
}

// Y returns the pixel position for v
func (s ValueScale) Y(v float64) float64 {
	if s.Max <= s.Min {
		return s.YBottom
	}
	return s.YBottom - (s.YBottom-s.YTop)*(v-s.Min)/(s.Max-s.Min)
}

// AxisBounds computes the shared time axis across all locations: earliest
// sample minus six hours through latest sample plus one day. ok is false
// when no location has any samples, which means there is nothing to draw.
func AxisBounds(series [][]forecast.Sample) (min, max time.Time, ok bool) {
	for _, samples := range series {
		for _, s := range samples {
			if !ok {
				min, max = s.Time, s.Time
				ok = true
				continue
			}
			if s.Time.Before(min) {
				min = s.Time
			}
			if s.Time.After(max) {
				max = s.Time
			}
		}
	}
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return min.Add(-axisLeadIn), max.Add(axisTrailOut), true
}

// TempCeiling returns the shared left-axis upper bound: the global maximum
// temperature across all locations plus headroom. Sharing one ceiling keeps
// the bands visually comparable. Returns 0 when there are no samples.
func TempCeiling(series [][]forecast.Sample) float64 {
	var max float64
	for _, samples := range series {
		for _, s := range samples {
			if s.TempF > max {
				max = s.TempF
			}
		}
	}
	return max * (1 + tempHeadroom)
}
