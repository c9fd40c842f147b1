package patterns

import (
	"github.com/pkg/errors"

	"skycast-api/internal/repositories"
)

// Feature-vector columns used by the heuristic rules.
const (
	cloudCol     = 3
	lightningCol = 4
	precipCol    = 6
)

// HeuristicAnalyzer scores convective risk with fixed meteorological rules:
// sustained lightning probability and precipitation raise the risk, unstable
// cloud cover adds to it. Pattern probabilities stay uniform since the rules
// carry no class information. It serves when no trained weights are
// configured.
type HeuristicAnalyzer struct{}

func NewHeuristicAnalyzer() *HeuristicAnalyzer {
	return &HeuristicAnalyzer{}
}

func (a *HeuristicAnalyzer) Name() string { return "heuristic" }

func (a *HeuristicAnalyzer) Analyze(raw *repositories.ForecastResponse) (*Analysis, error) {
	features := featureVectors(raw)
	if len(features) < 2 {
		return nil, errors.Wrapf(ErrInsufficientData, "%d time series entries", len(features))
	}

	risk := clip(
		mean(column(features, lightningCol))*1.5+
			std(column(features, cloudCol))*0.5+
			mean(column(features, precipCol))*2,
		0, 1)

	patterns := make([]PatternProbability, len(PatternNames))
	for i, name := range PatternNames {
		patterns[i] = PatternProbability{Name: name, Probability: 1.0 / float64(len(PatternNames))}
	}

	return &Analysis{
		Patterns: patterns,
		Risk:     roundRisk(risk),
		Summary:  summarize(patterns, risk),
		Analyzer: a.Name(),
	}, nil
}
