package noticeboard

import (
	"context"
	"sync"

	"model-inference-app/internal/core/domain"
)

// Board keeps the notices surfaced during this process for the UI.
type Board struct {
	mu      sync.RWMutex
	notices []domain.Notice
}

func New() *Board {
	return &Board{}
}

func (b *Board) Notify(ctx context.Context, notice domain.Notice) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notices = append(b.notices, notice)
	return nil
}

// List returns notices oldest first.
func (b *Board) List() []domain.Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Notice, len(b.notices))
	copy(out, b.notices)
	return out
}
