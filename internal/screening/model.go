package screening

import (
	"encoding/json"
	"fmt"
	"os"
)

// LinearModel is a trained regression artifact: a bias plus one weight per
// feature of [job embedding ++ resume embedding ++ years ++ overlap].
// Loaded once, read-only afterwards, safe for concurrent use.
type LinearModel struct {
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
}

// LoadLinearModel reads a model artifact from a JSON file. A missing or
// unreadable artifact is reported to the caller, which falls back to the
// heuristic strategy; it is configuration, not a per-candidate error.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("model artifact has no weights")
	}
	return &m, nil
}

// Predict evaluates the regression on a feature vector and clamps the result
// to [0,100]. Dimension mismatches are errors so the caller can fall back.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, fmt.Errorf("feature vector has %d dims, model expects %d", len(features), len(m.Weights))
	}
	v := m.Bias
	for i, f := range features {
		v += f * m.Weights[i]
	}
	return clamp(v, 0, 100), nil
}

// SelectStrategy picks the scoring strategy at startup: model-backed when an
// artifact path is configured and loads, heuristic otherwise. The returned
// warning is surfaced once, never per candidate.
func SelectStrategy(modelPath string) (Strategy, string) {
	if modelPath == "" {
		return HeuristicStrategy{}, "no scoring model configured, using heuristic scoring"
	}
	model, err := LoadLinearModel(modelPath)
	if err != nil {
		return HeuristicStrategy{}, fmt.Sprintf("scoring model unavailable (%v), using heuristic scoring", err)
	}
	return ModelStrategy{Model: model}, ""
}
