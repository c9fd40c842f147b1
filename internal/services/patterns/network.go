package patterns

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"

	"skycast-api/internal/repositories"
)

const batchNormEpsilon = 1e-5

// NetworkAnalyzer runs a small feed-forward classifier over the mean-pooled
// feature vector: dense blocks of linear, ReLU and batch-norm stages feed a
// softmax pattern head and a sigmoid risk head. Weights come from an
// offline training run exported to JSON; no training happens here.
type NetworkAnalyzer struct {
	weights networkWeights
}

type networkWeights struct {
	Layers      []denseLayer `json:"layers"`
	PatternHead linearStage  `json:"pattern_head"`
	RiskHead    linearStage  `json:"risk_head"`
}

// denseLayer is one encoder block. The batch-norm statistics are the ones
// frozen at export time; a layer without them skips the normalization stage.
type denseLayer struct {
	linearStage
	Gamma []float64 `json:"bn_gamma"`
	Beta  []float64 `json:"bn_beta"`
	Mean  []float64 `json:"bn_mean"`
	Var   []float64 `json:"bn_var"`
}

// linearStage holds row-major weights, one row per output neuron.
type linearStage struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// NewNetworkAnalyzer loads exported weights from path. Callers decide what
// to do when loading fails; the usual choice is falling back to the
// heuristic analyzer.
func NewNetworkAnalyzer(path string) (*NetworkAnalyzer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pattern model weights")
	}

	var w networkWeights
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "failed to parse pattern model weights")
	}
	if err := w.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pattern model weights")
	}

	return &NetworkAnalyzer{weights: w}, nil
}

func (a *NetworkAnalyzer) Name() string { return "network" }

func (a *NetworkAnalyzer) Analyze(raw *repositories.ForecastResponse) (*Analysis, error) {
	features := featureVectors(raw)
	if len(features) < 2 {
		return nil, errors.Wrapf(ErrInsufficientData, "%d time series entries", len(features))
	}

	// The whole series collapses to its mean before entering the encoder.
	h := meanPooled(features)
	for _, layer := range a.weights.Layers {
		h = layer.forward(h)
	}

	probs := softmax(a.weights.PatternHead.forward(h))
	risk := sigmoid(a.weights.RiskHead.forward(h)[0])

	patterns := make([]PatternProbability, len(PatternNames))
	for i, name := range PatternNames {
		patterns[i] = PatternProbability{Name: name, Probability: probs[i]}
	}

	return &Analysis{
		Patterns: patterns,
		Risk:     roundRisk(risk),
		Summary:  summarize(patterns, risk),
		Analyzer: a.Name(),
	}, nil
}

func (s linearStage) forward(in []float64) []float64 {
	out := make([]float64, len(s.Weights))
	for i, row := range s.Weights {
		sum := s.Bias[i]
		for j, w := range row {
			sum += w * in[j]
		}
		out[i] = sum
	}
	return out
}

func (l denseLayer) forward(in []float64) []float64 {
	out := l.linearStage.forward(in)
	for i, v := range out {
		if v < 0 {
			out[i] = 0
		}
	}
	if len(l.Mean) == len(out) {
		for i := range out {
			out[i] = (out[i]-l.Mean[i])/math.Sqrt(l.Var[i]+batchNormEpsilon)*l.Gamma[i] + l.Beta[i]
		}
	}
	return out
}

func (w *networkWeights) validate() error {
	if len(w.Layers) == 0 {
		return errors.New("no encoder layers")
	}

	in := featureCount
	for i, layer := range w.Layers {
		if err := layer.linearStage.validate(in); err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}
		out := len(layer.Weights)
		if len(layer.Mean) > 0 {
			if len(layer.Mean) != out || len(layer.Var) != out || len(layer.Gamma) != out || len(layer.Beta) != out {
				return errors.Errorf("layer %d: batch-norm statistics do not match %d outputs", i, out)
			}
		}
		in = out
	}

	if err := w.PatternHead.validate(in); err != nil {
		return errors.Wrap(err, "pattern head")
	}
	if len(w.PatternHead.Weights) != len(PatternNames) {
		return errors.Errorf("pattern head: %d outputs, want %d", len(w.PatternHead.Weights), len(PatternNames))
	}
	if err := w.RiskHead.validate(in); err != nil {
		return errors.Wrap(err, "risk head")
	}
	if len(w.RiskHead.Weights) != 1 {
		return errors.Errorf("risk head: %d outputs, want 1", len(w.RiskHead.Weights))
	}
	return nil
}

func (s linearStage) validate(in int) error {
	if len(s.Weights) == 0 {
		return errors.New("no weights")
	}
	if len(s.Bias) != len(s.Weights) {
		return errors.Errorf("%d bias terms for %d outputs", len(s.Bias), len(s.Weights))
	}
	for i, row := range s.Weights {
		if len(row) != in {
			return errors.Errorf("output %d: %d inputs, want %d", i, len(row), in)
		}
	}
	return nil
}

func softmax(logits []float64) []float64 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	out := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		out[i] = math.Exp(v - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}
