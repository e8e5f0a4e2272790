package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/docker/go-units"
	log "github.com/sirupsen/logrus"

	"model-inference-app/internal/core/domain"
	ports "model-inference-app/internal/core/ports/output"
)

// AcquisitionOptions tunes the fallback chain.
type AcquisitionOptions struct {
	// FallbackOnCorrupt lets an unreadable local artifact fall through to
	// the remote download instead of ending the chain.
	FallbackOnCorrupt bool

	// LookupTimeout bounds the remote URL lookup. Zero means DefaultLookupTimeout.
	LookupTimeout time.Duration
}

const DefaultLookupTimeout = 30 * time.Second

// ModelAcquisitionService loads the model artifact at most once per
// instance: local file first, then the configured URL, then nothing.
type ModelAcquisitionService struct {
	store    ports.ArtifactStore
	fetcher  ports.ArtifactFetcher
	decoder  ports.ModelDecoder
	urls     ports.URLSource
	notifier ports.Notifier
	opts     AcquisitionOptions

	once   sync.Once
	result atomic.Pointer[domain.Acquisition]
}

func NewModelAcquisitionService(
	store ports.ArtifactStore,
	fetcher ports.ArtifactFetcher,
	decoder ports.ModelDecoder,
	urls ports.URLSource,
	notifier ports.Notifier,
	opts AcquisitionOptions,
) *ModelAcquisitionService {
	return &ModelAcquisitionService{
		store:    store,
		fetcher:  fetcher,
		decoder:  decoder,
		urls:     urls,
		notifier: notifier,
		opts:     opts,
	}
}

// Acquire returns the model acquisition, running the fallback chain on the
// first call only. Concurrent first callers block until the single run
// finishes and then share its result. The run is detached from the
// caller's cancellation and bounded by the fetcher's timeout.
func (s *ModelAcquisitionService) Acquire(ctx context.Context) *domain.Acquisition {
	s.once.Do(func() {
		acq := s.acquire(context.WithoutCancel(ctx))
		acq.Path = s.store.Path()
		acq.CompletedAt = time.Now()
		s.result.Store(acq)
	})
	return s.result.Load()
}

// Status returns the memoized acquisition, or nil if Acquire has not completed.
func (s *ModelAcquisitionService) Status() *domain.Acquisition {
	return s.result.Load()
}

func (s *ModelAcquisitionService) acquire(ctx context.Context) *domain.Acquisition {
	path := s.store.Path()
	logger := log.WithFields(log.Fields{"path": path, "format": s.decoder.Format()})

	var localFailure *domain.Acquisition

	exists, err := s.store.Exists()
	if err != nil || exists {
		if err == nil {
			var model domain.Model
			var n int64
			model, n, err = s.readLocal()
			if err == nil {
				logger.WithField("size", units.HumanSize(float64(n))).Info("model loaded from local file")
				return &domain.Acquisition{Model: model, Source: domain.ModelSourceLocal, Bytes: n}
			}
		}

		localFailure = s.fail(ctx, domain.ModelSourceLocal, domain.ErrLocalRead, domain.NoticeLocalFileCorrupt,
			fmt.Sprintf("Failed to load local %s: %v", filepath.Base(path), err), err)
		if !s.opts.FallbackOnCorrupt {
			return localFailure
		}
		logger.Warn("local model unreadable, falling back to remote download")
	}

	url, ok, err := s.lookupURL(ctx)
	if err != nil {
		return s.fail(ctx, domain.ModelSourceRemote, domain.ErrDownload, domain.NoticeDownloadFailed,
			fmt.Sprintf("Failed to download model from URL: %v", err), err)
	}
	if !ok {
		if localFailure != nil {
			return localFailure
		}
		logger.Debug("no local model and no model URL configured")
		return &domain.Acquisition{Source: domain.ModelSourceNone, Reason: UnavailableMessage(path)}
	}

	logger = logger.WithField("url", url)
	logger.Info("downloading model")

	var downloaded int64
	err = s.store.Replace(func(w io.Writer) error {
		var ferr error
		downloaded, ferr = s.fetcher.Fetch(ctx, url, w)
		return ferr
	})
	if err != nil {
		return s.fail(ctx, domain.ModelSourceRemote, domain.ErrDownload, domain.NoticeDownloadFailed,
			fmt.Sprintf("Failed to download model from URL: %v", err), err)
	}
	logger.WithField("size", units.HumanSize(float64(downloaded))).Info("model downloaded")

	model, n, err := s.readLocal()
	if err != nil {
		acq := s.fail(ctx, domain.ModelSourceRemote, domain.ErrRemoteDeserialize, domain.NoticeRemoteDeserializeFailed,
			fmt.Sprintf("Downloaded model but failed to deserialize: %v", err), err)
		acq.Bytes = downloaded
		return acq
	}

	logger.Info("model loaded from downloaded file")
	return &domain.Acquisition{Model: model, Source: domain.ModelSourceRemote, Bytes: n}
}

// lookupURL runs the URL lookup under its own deadline, since the
// acquisition context carries none.
func (s *ModelAcquisitionService) lookupURL(ctx context.Context) (string, bool, error) {
	timeout := s.opts.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.urls.LookupURL(ctx)
}

// readLocal decodes the artifact at the store's path.
func (s *ModelAcquisitionService) readLocal() (domain.Model, int64, error) {
	f, err := s.store.Open()
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	cr := &countingReader{r: f}
	model, err := s.decoder.Decode(cr)
	if err != nil {
		return nil, cr.n, err
	}
	return model, cr.n, nil
}

func (s *ModelAcquisitionService) fail(
	ctx context.Context,
	source domain.ModelSource,
	kind error,
	noticeKind domain.NoticeKind,
	message string,
	cause error,
) *domain.Acquisition {
	log.WithFields(log.Fields{
		"path":   s.store.Path(),
		"source": source,
		"notice": noticeKind,
	}).WithError(cause).Error(kind.Error())

	notice := domain.NewNotice(noticeKind, domain.SeverityError, message)
	if err := s.notifier.Notify(ctx, notice); err != nil {
		log.WithError(err).Warn("notify failed")
	}

	return &domain.Acquisition{
		Source: source,
		Err:    fmt.Errorf("%w: %w", kind, cause),
		Reason: message,
	}
}

// UnavailableMessage is the warning shown when no model could be loaded.
func UnavailableMessage(path string) string {
	if path == "" {
		path = "model.pkl"
	}
	return fmt.Sprintf("Model not available. Add a %s to the app root or set MODEL_PKL_URL "+
		"in the app environment pointing to a raw model file URL.", filepath.Base(path))
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
