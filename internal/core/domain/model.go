package domain

import (
	"fmt"
	"math"
)

// Model is a deserialized artifact that can serve predictions.
type Model interface {
	Kind() string
	Features() []string
	Predict(inputs map[string]float64) (float64, error)
}

type LinkFunction string

const (
	LinkIdentity LinkFunction = "identity"
	LinkLogistic LinkFunction = "logistic"
)

// LinearModel is a generalized linear model: intercept + sum(coef_i * x_i),
// optionally passed through a link function.
type LinearModel struct {
	Name         string       `json:"name"`
	FeatureNames []string     `json:"feature_names"`
	Coefficients []float64    `json:"coefficients"`
	Intercept    float64      `json:"intercept"`
	Link         LinkFunction `json:"link,omitempty"`
}

func (m *LinearModel) Kind() string {
	if m.Link == LinkLogistic {
		return "logistic-regression"
	}
	return "linear-regression"
}

func (m *LinearModel) Features() []string {
	out := make([]string, len(m.FeatureNames))
	copy(out, m.FeatureNames)
	return out
}

// Validate checks the shape of a freshly decoded model.
func (m *LinearModel) Validate() error {
	if len(m.FeatureNames) == 0 {
		return fmt.Errorf("%w: no features", ErrInvalidModel)
	}
	if len(m.FeatureNames) != len(m.Coefficients) {
		return fmt.Errorf("%w: %d features but %d coefficients",
			ErrInvalidModel, len(m.FeatureNames), len(m.Coefficients))
	}
	switch m.Link {
	case "", LinkIdentity, LinkLogistic:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedLink, m.Link)
	}
	return nil
}

func (m *LinearModel) Predict(inputs map[string]float64) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	sum := m.Intercept
	for i, name := range m.FeatureNames {
		x, ok := inputs[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		sum += m.Coefficients[i] * x
	}

	if m.Link == LinkLogistic {
		return 1 / (1 + math.Exp(-sum)), nil
	}
	return sum, nil
}

// Prediction is the result of one inference call.
type Prediction struct {
	Value     float64
	ModelKind string
	ModelName string
}
