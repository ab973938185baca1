package forecast

import (
	"encoding/json"
	"time"

	"github.com/openclimb/cragcast/internal/config"
)

// Response is the OpenWeatherMap 5 day / 3 hour forecast payload
type Response struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []Entry `json:"list"`
}

// Entry is one timestamped forecast point from the provider
type Entry struct {
	Dt   int64 `json:"dt"` // Unix timestamp
	Main struct {
		Temp     float64 `json:"temp"`     // Temperature in the requested unit system (Celsius with units=metric)
		Humidity float64 `json:"humidity"` // Relative humidity in percent
	} `json:"main"`
	Rain *RainVolumes `json:"rain,omitempty"`
}

// RainVolumes carries the optional accumulated rain volumes attached to a
// forecast entry. The provider reports either a 3-hour or a 1-hour
// accumulation window, or omits the object entirely when dry.
type RainVolumes struct {
	ThreeHour *float64 `json:"3h"`
	OneHour   *float64 `json:"1h"`
}

// UnmarshalJSON tolerates the provider occasionally encoding "rain" as an
// empty array or bare number instead of an object. Anything that is not an
// object decodes as no measurable rain rather than failing the whole parse.
func (r *RainVolumes) UnmarshalJSON(data []byte) error {
	type volumes RainVolumes
	var v volumes
	if err := json.Unmarshal(data, &v); err != nil {
		*r = RainVolumes{}
		return nil
	}
	*r = RainVolumes(v)
	return nil
}

// Volume returns the accumulated rain in millimeters, preferring the 3-hour
// window over the 1-hour window. Safe to call on a nil receiver.
func (r *RainVolumes) Volume() float64 {
	if r == nil {
		return 0
	}
	if r.ThreeHour != nil {
		return *r.ThreeHour
	}
	if r.OneHour != nil {
		return *r.OneHour
	}
	return 0
}

// Sample is one normalized forecast point. Immutable once produced; a
// location's samples are ordered ascending by time.
type Sample struct {
	Time     time.Time // Local timestamp
	TempF    float64   // Temperature in Fahrenheit
	Humidity float64   // Relative humidity in percent (0-100)
	PrecipMM float64   // Accumulated precipitation in millimeters (0 when dry)
}

// LocationSeries is the per-location fetch result. A failed fetch keeps the
// location with empty samples and the failure reason, so the renderer can
// draw an empty titled band instead of dropping the location.
type LocationSeries struct {
	Location config.Location
	Samples  []Sample
	Err      error
}
