package models

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// ErrInvalidCoordinate marks a longitude/latitude pair that is outside the
// valid range. It is returned before any network call is made.
var ErrInvalidCoordinate = errors.New("coordinate out of range")

// Coordinate is an immutable longitude/latitude pair. Equality and set
// membership go through Key, a 6-decimal canonical form, so floating-point
// noise never produces duplicate probe points.
type Coordinate struct {
	Longitude float64 `json:"longitude" example:"16.158"`
	Latitude  float64 `json:"latitude" example:"58.5812"`
}

func NewCoordinate(lon, lat float64) (Coordinate, error) {
	c := Coordinate{Longitude: lon, Latitude: lat}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

func (c Coordinate) Validate() error {
	if c.Longitude < -180 || c.Longitude > 180 {
		return errors.Wrapf(ErrInvalidCoordinate, "longitude %s not in [-180, 180]", formatAxis(c.Longitude))
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return errors.Wrapf(ErrInvalidCoordinate, "latitude %s not in [-90, 90]", formatAxis(c.Latitude))
	}
	return nil
}

// Round snaps both axes to the given number of decimal places.
func (c Coordinate) Round(places int) Coordinate {
	return Coordinate{
		Longitude: roundTo(c.Longitude, places),
		Latitude:  roundTo(c.Latitude, places),
	}
}

// Offset shifts one or both axes by the given deltas without validation;
// callers that probe offset points tolerate the provider rejecting them.
func (c Coordinate) Offset(dLon, dLat float64) Coordinate {
	return Coordinate{Longitude: c.Longitude + dLon, Latitude: c.Latitude + dLat}
}

// Key is the canonical 6-decimal "lon,lat" form used for deduplication.
func (c Coordinate) Key() string {
	return strconv.FormatFloat(roundTo(c.Longitude, 6), 'f', 6, 64) +
		"," +
		strconv.FormatFloat(roundTo(c.Latitude, 6), 'f', 6, 64)
}

func (c Coordinate) String() string {
	return "lon " + formatAxis(c.Longitude) + " lat " + formatAxis(c.Latitude)
}

func formatAxis(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow10(places)
	return math.Round(v*factor) / factor
}
