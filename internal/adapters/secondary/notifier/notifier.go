package notifier

import (
	"context"

	log "github.com/sirupsen/logrus"

	"model-inference-app/internal/core/domain"
	ports "model-inference-app/internal/core/ports/output"
)

// Log writes notices to the process log.
type Log struct {
	Logger log.FieldLogger
}

func NewLog(logger log.FieldLogger) *Log {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Log{Logger: logger}
}

func (n *Log) Notify(ctx context.Context, notice domain.Notice) error {
	entry := n.Logger.WithFields(log.Fields{
		"notice_id": notice.ID.String(),
		"kind":      notice.Kind,
	})

	switch notice.Severity {
	case domain.SeverityError:
		entry.Error(notice.Message)
	case domain.SeverityWarning:
		entry.Warn(notice.Message)
	default:
		entry.Info(notice.Message)
	}
	return nil
}

// Multi fans a notice out to every notifier. A failing notifier is logged
// and does not stop the others; the last error is returned.
type Multi []ports.Notifier

func (m Multi) Notify(ctx context.Context, notice domain.Notice) error {
	var lastErr error
	for _, n := range m {
		if err := n.Notify(ctx, notice); err != nil {
			lastErr = err
			log.WithError(err).WithField("kind", notice.Kind).Warn("notifier failed")
		}
	}
	return lastErr
}

