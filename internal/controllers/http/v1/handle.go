package http

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skycast-api/internal/models"
	"skycast-api/internal/services/forecast"
	"skycast-api/internal/services/location"
)

var validate = validator.New()

const maxSearchLimit = 50

// SearchResponse wraps the location candidates for a search query
type SearchResponse struct {
	Results []models.GeocodeCandidate `json:"results"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: lat"`
}

// coordinateQuery holds the lat/lon pair the coordinate endpoints take.
type coordinateQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordinateQuery(c *fiber.Ctx) (coordinateQuery, error) {
	var q coordinateQuery

	lat := c.Query("lat")
	lon := c.Query("lon")

	if lat == "" {
		return q, errors.New("Missing required parameter: lat")
	}
	if lon == "" {
		return q, errors.New("Missing required parameter: lon")
	}

	var err error
	if q.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return q, errors.New("Invalid latitude format")
	}
	if q.Lon, err = strconv.ParseFloat(lon, 64); err != nil {
		return q, errors.New("Invalid longitude format")
	}

	if err := validate.Struct(q); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Field() == "Lat" {
			return q, errors.New("Latitude must be between -90 and 90")
		}
		return q, errors.New("Longitude must be between -180 and 180")
	}

	return q, nil
}

func (q coordinateQuery) coordinate() models.Coordinate {
	return models.Coordinate{Longitude: q.Lon, Latitude: q.Lat}
}

// searchQuery holds the free-text query parameter of the address endpoints.
type searchQuery struct {
	Q string `validate:"required,min=2"`
}

func parseSearchQuery(c *fiber.Ctx) (searchQuery, error) {
	q := searchQuery{Q: c.Query("q")}
	if err := validate.Struct(q); err != nil {
		return q, errors.New("Query parameter q must be at least 2 characters")
	}
	return q, nil
}

// renderServiceError maps the pipeline's failure kinds onto HTTP statuses.
// Anything unrecognized is a provider or internal fault: logged, and
// reported with a generic message.
func (r *routes) renderServiceError(c *fiber.Ctx, err error, fallback string, fields map[string]any) error {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Coordinate out of range",
		})
	case errors.Is(err, location.ErrNoMatch):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Location not found",
		})
	case errors.Is(err, forecast.ErrNoCoverage):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Location is outside forecast coverage",
		})
	case errors.Is(err, forecast.ErrPatternsDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "Pattern analysis is disabled",
		})
	}

	r.l.Error(err, fields)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: fallback,
	})
}

// SearchLocations godoc
// @Summary Search locations
// @Description Searches for locations by place name, address or a literal "lat, lon" pair. Literal pairs resolve without calling the geocoding provider.
// @Tags Locations
// @Produce json
// @Param q query string true "Place name, address or coordinate pair" minLength(2) example(Stockholm)
// @Param limit query integer false "Maximum number of results (default 5)" minimum(1) maximum(50) example(5)
// @Success 200 {object} SearchResponse "Matching locations, best first"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "No locations found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/locations/search [get]
func (r *routes) handleLocationSearch(c *fiber.Ctx) error {
	sq, err := parseSearchQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxSearchLimit {
			limit = v
		} else {
			// Log warning but continue with the service default
			r.l.Warning("invalid limit parameter, using default", map[string]any{
				"provided": raw,
			})
		}
	}

	candidates, err := r.locations.Search(c.Context(), sq.Q, limit)
	if err != nil {
		if errors.Is(err, location.ErrNoMatch) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "No locations found",
			})
		}
		return r.renderServiceError(c, err, "Failed to search locations", map[string]any{
			"query": sq.Q,
			"limit": limit,
		})
	}

	return c.JSON(SearchResponse{Results: candidates})
}

// ReverseGeocode godoc
// @Summary Reverse geocode a coordinate
// @Description Resolves a coordinate to the nearest known place.
// @Tags Locations
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(59.3251172)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(18.0710935)
// @Success 200 {object} models.GeocodeCandidate "Nearest place"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Nothing known near the coordinate"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/locations/reverse [get]
func (r *routes) handleLocationReverse(c *fiber.Ctx) error {
	q, err := parseCoordinateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	candidate, err := r.locations.Reverse(c.Context(), q.Lat, q.Lon)
	if err != nil {
		return r.renderServiceError(c, err, "Failed to reverse geocode coordinate", map[string]any{
			"lat": q.Lat,
			"lon": q.Lon,
		})
	}

	return c.JSON(candidate)
}

// GetForecast godoc
// @Summary Get forecast for a coordinate
// @Description Retrieves the cloud cover and lightning probability forecast for a coordinate, probing nearby grid points when the provider rejects the exact one.
// @Tags Forecast
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(58.5812)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(16.158)
// @Success 200 {object} models.ResolvedForecast "Normalized forecast time series"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location is outside forecast coverage"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/forecast [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/api/v1/forecast?lat=58.5812&lon=16.158"
func (r *routes) handleForecast(c *fiber.Ctx) error {
	q, err := parseCoordinateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	resolved, err := r.forecasts.ByCoordinate(c.Context(), q.coordinate())
	if err != nil {
		return r.renderServiceError(c, err, "Failed to fetch forecast data", map[string]any{
			"lat": q.Lat,
			"lon": q.Lon,
		})
	}

	return c.JSON(resolved)
}

// GetForecastByAddress godoc
// @Summary Get forecast for an address
// @Description Resolves a free-text location query and returns the forecast for the best match, labeled with the location's display name.
// @Tags Forecast
// @Produce json
// @Param q query string true "Place name, address or coordinate pair" minLength(2) example(Norrköping)
// @Success 200 {object} models.ResolvedForecast "Normalized forecast time series"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location not found or outside forecast coverage"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/forecast/by-address [get]
func (r *routes) handleForecastByAddress(c *fiber.Ctx) error {
	sq, err := parseSearchQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	resolved, err := r.forecasts.ByQuery(c.Context(), sq.Q)
	if err != nil {
		return r.renderServiceError(c, err, "Failed to fetch forecast data", map[string]any{
			"query": sq.Q,
		})
	}

	return c.JSON(resolved)
}

// GetPatterns godoc
// @Summary Get atmospheric pattern analysis
// @Description Classifies the raw forecast time series for a coordinate into atmospheric patterns with a convective risk estimate.
// @Tags Patterns
// @Produce json
// @Param lat query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(58.5812)
// @Param lon query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(16.158)
// @Success 200 {object} patterns.Analysis "Pattern probabilities and convective risk"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 404 {object} ErrorResponse "Location is outside forecast coverage"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 503 {object} ErrorResponse "Pattern analysis is disabled"
// @Router /api/v1/patterns [get]
func (r *routes) handlePatterns(c *fiber.Ctx) error {
	q, err := parseCoordinateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	analysis, err := r.forecasts.Patterns(c.Context(), q.coordinate())
	if err != nil {
		return r.renderServiceError(c, err, "Failed to analyze forecast data", map[string]any{
			"lat": q.Lat,
			"lon": q.Lon,
		})
	}

	return c.JSON(analysis)
}
