package models

// ForecastPoint is one normalized time-series entry: cloud cover converted
// from octas to percent, thunderstorm probability with the provider's
// "not available" sentinel mapped to zero.
type ForecastPoint struct {
	Timestamp        string  `json:"timestamp" example:"2026-08-25T12:00:00Z"`
	CloudCoverPct    float64 `json:"cloud_cover_pct" example:"62.5"`
	LightningProbPct float64 `json:"lightning_prob_pct" example:"15"`
}

// ResolvedForecast is the output of one pipeline run. Longitude and latitude
// are the grid point the provider actually answered for, which may differ
// from the requested coordinate when probing had to snap to a nearby cell.
type ResolvedForecast struct {
	ApprovedTime  string          `json:"approvedTime" example:"2026-08-25T11:06:32Z"`
	ReferenceTime string          `json:"referenceTime" example:"2026-08-25T11:00:00Z"`
	Longitude     float64         `json:"longitude" example:"16.158"`
	Latitude      float64         `json:"latitude" example:"58.5812"`
	Location      string          `json:"location,omitempty" example:"Norrköping, Östergötland, Sweden"`
	Points        []ForecastPoint `json:"time_series"`
}
