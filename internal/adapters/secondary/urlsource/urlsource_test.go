package urlsource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"model-inference-app/internal/testutil"
)

func TestStatic(t *testing.T) {
	url, ok, err := Static("  https://example.test/m.pkl ").LookupURL(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.test/m.pkl", url)

	_, ok, err = Static("").LookupURL(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestChain_FirstConfiguredWins(t *testing.T) {
	second := new(testutil.MockURLSource)

	url, ok, err := Chain{Static("https://a.test/m"), second}.LookupURL(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://a.test/m", url)
	second.AssertNotCalled(t, "LookupURL", mock.Anything)
}

func TestChain_FallsThrough(t *testing.T) {
	second := new(testutil.MockURLSource)
	second.On("LookupURL", mock.Anything).Return("https://b.test/m", true, nil)

	url, ok, err := Chain{Static(""), second}.LookupURL(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://b.test/m", url)
}

func TestChain_Error(t *testing.T) {
	failing := new(testutil.MockURLSource)
	failing.On("LookupURL", mock.Anything).Return("", false, errors.New("forbidden"))

	_, ok, err := Chain{Static(""), failing}.LookupURL(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestChain_Empty(t *testing.T) {
	_, ok, err := Chain{}.LookupURL(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}
