package forecast

import (
	"math"

	"skycast-api/internal/models"
	"skycast-api/internal/repositories"
)

const (
	cloudCoverParam = "tcc_mean"
	lightningParam  = "tstm"

	// The provider reports -9 when thunderstorm probability is not available.
	lightningNotAvailable = -9
)

// normalizeForecast flattens a raw provider response into the canonical
// time series, preserving entry order as delivered. Cloud cover converts
// from octas (eighths of sky, 0-8) to percent, capped at 100 and rounded
// to one decimal; the lightning sentinel maps to zero and other negative
// values clamp to zero.
func (s *Service) normalizeForecast(requested models.Coordinate, raw *repositories.ForecastResponse) *models.ResolvedForecast {
	lon, lat := s.responseCoordinate(requested, raw)

	points := make([]models.ForecastPoint, 0, len(raw.TimeSeries))
	for _, entry := range raw.TimeSeries {
		octas, ok := entry.Parameter(cloudCoverParam)
		if !ok {
			octas = 0
		}
		cloudPct := math.Min(100, octas/8*100)
		cloudPct = math.Round(cloudPct*10) / 10

		lightning, ok := entry.Parameter(lightningParam)
		if !ok || lightning == lightningNotAvailable {
			lightning = 0
		}
		if lightning < 0 {
			lightning = 0
		}

		points = append(points, models.ForecastPoint{
			Timestamp:        entry.ValidTime,
			CloudCoverPct:    cloudPct,
			LightningProbPct: lightning,
		})
	}

	return &models.ResolvedForecast{
		ApprovedTime:  raw.ApprovedTime,
		ReferenceTime: raw.ReferenceTime,
		Longitude:     lon,
		Latitude:      lat,
		Points:        points,
	}
}

// responseCoordinate reads the grid point the provider actually served
// from the response's geometry block. The provider should always send it;
// an absent or short pair falls back per axis to the requested coordinate,
// and the substitution is logged because it usually means an upstream
// data-quality problem.
func (s *Service) responseCoordinate(requested models.Coordinate, raw *repositories.ForecastResponse) (lon, lat float64) {
	lon, lat = requested.Longitude, requested.Latitude

	if len(raw.Geometry.Coordinates) == 0 {
		s.l.Warning("forecast response has no geometry, substituting requested coordinate", map[string]any{
			"component":  "forecast",
			"coordinate": requested.String(),
		})
		return lon, lat
	}

	pair := raw.Geometry.Coordinates[0]
	if len(pair) > 0 {
		lon = pair[0]
	}
	if len(pair) > 1 {
		lat = pair[1]
	} else {
		s.l.Warning("forecast response geometry is malformed, substituting requested coordinate", map[string]any{
			"component":  "forecast",
			"coordinate": requested.String(),
			"pair_len":   len(pair),
		})
	}
	return lon, lat
}
