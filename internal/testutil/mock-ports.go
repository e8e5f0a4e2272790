package testutil

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"model-inference-app/internal/core/domain"
)

// MockArtifactFetcher is a mock of ArtifactFetcher.
// When Body is set, Fetch copies it into the writer before returning the
// recorded values.
type MockArtifactFetcher struct {
	mock.Mock
	Body []byte
}

func (m *MockArtifactFetcher) Fetch(ctx context.Context, url string, w io.Writer) (int64, error) {
	args := m.Called(ctx, url, w)
	if err := args.Error(1); err != nil {
		return 0, err
	}
	if m.Body != nil {
		n, err := w.Write(m.Body)
		return int64(n), err
	}
	return args.Get(0).(int64), nil
}

// MockModelDecoder is a mock of ModelDecoder.
type MockModelDecoder struct {
	mock.Mock
}

func (m *MockModelDecoder) Format() string {
	return "mock"
}

func (m *MockModelDecoder) Decode(r io.Reader) (domain.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Model), args.Error(1)
}

// MockURLSource is a mock of URLSource.
type MockURLSource struct {
	mock.Mock
}

func (m *MockURLSource) LookupURL(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockNotifier is a mock of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notice domain.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

// MockModelProvider is a mock of services.ModelProvider.
type MockModelProvider struct {
	mock.Mock
}

func (m *MockModelProvider) Acquire(ctx context.Context) *domain.Acquisition {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Acquisition)
}

func (m *MockModelProvider) Status() *domain.Acquisition {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Acquisition)
}

// NoticeOfKind matches a domain.Notice by kind.
func NoticeOfKind(kind domain.NoticeKind) interface{} {
	return mock.MatchedBy(func(n domain.Notice) bool {
		return n.Kind == kind
	})
}
