// Package codec decodes model artifacts.
//
// Both formats are data-only: decoding never executes code carried by the
// artifact, unlike pickle-style formats.
package codec

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"model-inference-app/internal/core/domain"
	ports "model-inference-app/internal/core/ports/output"
)

const (
	FormatGob  = "gob"
	FormatJSON = "json"
)

// ForFormat returns the decoder for a configured format name.
func ForFormat(name string) (ports.ModelDecoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatGob:
		return GobDecoder{}, nil
	case FormatJSON:
		return JSONDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
	}
}

// GobDecoder reads a gob-encoded domain.LinearModel.
type GobDecoder struct{}

func (GobDecoder) Format() string { return FormatGob }

func (GobDecoder) Decode(r io.Reader) (domain.Model, error) {
	var m domain.LinearModel
	if err := gob.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode gob model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// JSONDecoder reads a JSON-encoded domain.LinearModel. Unknown fields are rejected.
type JSONDecoder struct{}

func (JSONDecoder) Format() string { return FormatJSON }

func (JSONDecoder) Decode(r io.Reader) (domain.Model, error) {
	var m domain.LinearModel
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode json model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// EncodeGob writes m in the format GobDecoder reads.
func EncodeGob(w io.Writer, m *domain.LinearModel) error {
	return gob.NewEncoder(w).Encode(m)
}
