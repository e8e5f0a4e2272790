package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-inference-app/internal/core/domain"
)

func sampleModel() *domain.LinearModel {
	return &domain.LinearModel{
		Name:         "house-prices",
		FeatureNames: []string{"rooms", "area"},
		Coefficients: []float64{10, 0.5},
		Intercept:    3,
	}
}

func TestForFormat(t *testing.T) {
	d, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatGob, d.Format())

	d, err = ForFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, d.Format())

	_, err = ForFormat("pickle")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestGobDecoder_Decode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGob(&buf, sampleModel()))

	m, err := GobDecoder{}.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleModel(), m)
}

func TestGobDecoder_DecodeGarbage(t *testing.T) {
	_, err := GobDecoder{}.Decode(strings.NewReader("\x80\x04not a gob stream"))
	assert.Error(t, err)
}

func TestGobDecoder_DecodeInvalidShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGob(&buf, &domain.LinearModel{FeatureNames: []string{"a"}}))

	_, err := GobDecoder{}.Decode(&buf)
	assert.ErrorIs(t, err, domain.ErrInvalidModel)
}

func TestJSONDecoder_Decode(t *testing.T) {
	in := `{"name":"churn","feature_names":["tenure"],"coefficients":[-0.2],"intercept":1,"link":"logistic"}`

	m, err := JSONDecoder{}.Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "logistic-regression", m.Kind())
	assert.Equal(t, []string{"tenure"}, m.Features())
}

func TestJSONDecoder_DecodeUnknownField(t *testing.T) {
	in := `{"feature_names":["a"],"coefficients":[1],"weights":[2]}`

	_, err := JSONDecoder{}.Decode(strings.NewReader(in))
	assert.Error(t, err)
}
