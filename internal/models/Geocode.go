package models

// GeocodeCandidate is one location match for a free-text query. Importance
// is the search endpoint's own relevance ranking; CountryCode is lowercase
// ISO 3166-1 alpha-2 and may be empty for synthesized candidates.
type GeocodeCandidate struct {
	Lat         float64 `json:"lat" example:"59.3251172"`
	Lon         float64 `json:"lon" example:"18.0710935"`
	DisplayName string  `json:"display_name" example:"Stockholm, Stockholms kommun, Sweden"`
	Type        string  `json:"type" example:"city"`
	CountryCode string  `json:"country_code,omitempty" example:"se"`
	Importance  float64 `json:"importance" example:"0.9"`
}

// Coordinate returns the candidate's position in probe-ready form.
func (g GeocodeCandidate) Coordinate() Coordinate {
	return Coordinate{Longitude: g.Lon, Latitude: g.Lat}
}
