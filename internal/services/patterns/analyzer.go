package patterns

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"skycast-api/internal/repositories"
)

// Recognized atmospheric patterns, in model output order.
var PatternNames = []string{
	"convective_risk",
	"stable_atmosphere",
	"frontal_passage",
	"moisture_buildup",
	"variable_conditions",
}

const featureCount = 8

// ErrInsufficientData reports a forecast too short to analyze.
var ErrInsufficientData = errors.New("insufficient forecast data for pattern analysis")

// Analyzer classifies a raw forecast time series into atmospheric patterns
// plus a convective risk estimate. One implementation is chosen at startup
// and injected into the pipeline; nothing selects between them at call time.
type Analyzer interface {
	Name() string
	Analyze(raw *repositories.ForecastResponse) (*Analysis, error)
}

type PatternProbability struct {
	Name        string  `json:"name" example:"convective_risk"`
	Probability float64 `json:"probability" example:"0.2"`
}

type Analysis struct {
	Patterns []PatternProbability `json:"patterns"`
	Risk     float64              `json:"convective_risk" example:"0.35"`
	Summary  string               `json:"summary" example:"Variable conditions. Convective risk: 12%. No dominant pattern identified."`
	Analyzer string               `json:"analyzer" example:"heuristic"`
}

// featureVectors maps each time-series entry to the model's eight input
// features: temperature (C), relative humidity (%), sea level pressure
// (hPa), cloud cover (octas), thunderstorm probability (%), wind speed
// (m/s), precipitation (kg/m2/h) and visibility (km), each scaled to
// roughly unit range. A missing parameter contributes a neutral mid-range
// reading rather than zero, so sparse entries do not read as extreme
// weather.
func featureVectors(raw *repositories.ForecastResponse) [][]float64 {
	features := make([][]float64, 0, len(raw.TimeSeries))
	for _, entry := range raw.TimeSeries {
		features = append(features, []float64{
			parameterOr(entry, "t", 0),
			parameterOr(entry, "r", 50) / 100,
			parameterOr(entry, "msl", 1013) / 1013,
			parameterOr(entry, "tcc_mean", 4) / 8,
			parameterOr(entry, "tstm", 0) / 100,
			parameterOr(entry, "ws", 0) / 20,
			parameterOr(entry, "pmean", 0) * 10,
			parameterOr(entry, "vis", 10) / 50,
		})
	}
	return features
}

func parameterOr(entry repositories.ForecastEntry, name string, fallback float64) float64 {
	if v, ok := entry.Parameter(name); ok {
		return v
	}
	return fallback
}

func summarize(patterns []PatternProbability, risk float64) string {
	top := patterns[0]
	for _, p := range patterns[1:] {
		if p.Probability > top.Probability {
			top = p
		}
	}
	topName := strings.ReplaceAll(top.Name, "_", " ")

	if risk > 0.5 {
		return fmt.Sprintf("Elevated convective/lightning risk (%.0f%%). Dominant pattern: %s (%.0f%%).",
			risk*100, topName, top.Probability*100)
	}
	if top.Probability > 0.4 {
		return fmt.Sprintf("Dominant pattern: %s (%.0f%%). Convective risk: %.0f%%.",
			topName, top.Probability*100, risk*100)
	}
	return fmt.Sprintf("Variable conditions. Convective risk: %.0f%%. No dominant pattern identified.", risk*100)
}

func roundRisk(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func column(features [][]float64, idx int) []float64 {
	col := make([]float64, len(features))
	for i, row := range features {
		col[i] = row[idx]
	}
	return col
}

func meanPooled(features [][]float64) []float64 {
	pooled := make([]float64, featureCount)
	for _, row := range features {
		for i, v := range row {
			pooled[i] += v
		}
	}
	for i := range pooled {
		pooled[i] /= float64(len(features))
	}
	return pooled
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// std is the population standard deviation.
func std(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)))
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
