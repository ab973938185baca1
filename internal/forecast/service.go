package forecast

import (
	"context"

	"github.com/openclimb/cragcast/internal/config"
	"github.com/openclimb/cragcast/pkg/logger"
)

// Service fetches and normalizes forecasts for the configured locations
type Service struct {
	client    *Client
	locations []config.Location
	logger    *logger.Logger
}

// NewService creates a new forecast service
func NewService(client *Client, locations []config.Location, log *logger.Logger) *Service {
	return &Service{
		client:    client,
		locations: locations,
		logger:    log.Named("forecast-service"),
	}
}

// Locations returns the configured locations in display order
func (s *Service) Locations() []config.Location {
	return s.locations
}

// FetchAll fetches and normalizes the forecast for every configured
// location, sequentially and independently. A failed fetch or parse is
// logged and degrades that location to an empty series carrying the error;
// it never aborts the whole request. Results are recomputed from scratch on
// every call, so nothing is shared between requests.
func (s *Service) FetchAll(ctx context.Context) []LocationSeries {
	results := make([]LocationSeries, 0, len(s.locations))
	for _, loc := range s.locations {
		resp, err := s.client.Fetch(ctx, loc)
		if err != nil {
			s.logger.Warn("Forecast fetch failed, location degrades to empty band",
				logger.String("location", loc.Name),
				logger.Error(err))
			results = append(results, LocationSeries{Location: loc, Err: err})
			continue
		}

		samples := Normalize(resp)
		s.logger.Debug("Forecast normalized",
			logger.String("location", loc.Name),
			logger.Int("samples", len(samples)))
		results = append(results, LocationSeries{Location: loc, Samples: samples})
	}
	return results
}
