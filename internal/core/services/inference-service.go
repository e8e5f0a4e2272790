package services

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"model-inference-app/internal/core/domain"
	ports "model-inference-app/internal/core/ports/output"
)

// ModelProvider hands out the process-wide model acquisition.
type ModelProvider interface {
	Acquire(ctx context.Context) *domain.Acquisition
	Status() *domain.Acquisition
}

// InferenceService serves predictions from the acquired model.
type InferenceService struct {
	models   ModelProvider
	notifier ports.Notifier

	warnOnce sync.Once
}

func NewInferenceService(models ModelProvider, notifier ports.Notifier) *InferenceService {
	return &InferenceService{models: models, notifier: notifier}
}

// Describe returns the acquisition. When the model is absent the
// "model unavailable" guidance is surfaced to the UI once, after any
// tier-specific error notice.
func (s *InferenceService) Describe(ctx context.Context) *domain.Acquisition {
	acq := s.models.Acquire(ctx)
	if !acq.Available() {
		s.warnOnce.Do(func() {
			message := UnavailableMessage(acq.Path)
			notice := domain.NewNotice(domain.NoticeModelUnavailable, domain.SeverityWarning, message)
			if err := s.notifier.Notify(ctx, notice); err != nil {
				log.WithError(err).Warn("notify failed")
			}
		})
	}
	return acq
}

// Status reports the acquisition without triggering it; nil until it has run.
func (s *InferenceService) Status() *domain.Acquisition {
	return s.models.Status()
}

func (s *InferenceService) Predict(ctx context.Context, inputs map[string]float64) (*domain.Prediction, error) {
	acq := s.Describe(ctx)
	if !acq.Available() {
		return nil, domain.ErrModelUnavailable
	}
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	value, err := acq.Model.Predict(inputs)
	if err != nil {
		return nil, err
	}

	pred := &domain.Prediction{Value: value, ModelKind: acq.Model.Kind()}
	if lm, ok := acq.Model.(*domain.LinearModel); ok {
		pred.ModelName = lm.Name
	}
	return pred, nil
}
