package forecast

import "time"

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit. The
// scoring thresholds downstream are Fahrenheit-denominated, so every
// temperature is converted here before any comparison happens.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// Normalize converts a raw provider response into a uniform sample series.
// Entry order is preserved and no entry is dropped; missing or malformed
// optional fields degrade to zero.
func Normalize(resp *Response) []Sample {
	samples := make([]Sample, 0, len(resp.List))
	for _, e := range resp.List {
		samples = append(samples, Sample{
			Time:     time.Unix(e.Dt, 0),
			TempF:    CelsiusToFahrenheit(e.Main.Temp),
			Humidity: e.Main.Humidity,
			PrecipMM: e.Rain.Volume(),
		})
	}
	return samples
}
