package dto

import (
	"time"

	"github.com/google/uuid"

	"model-inference-app/internal/core/domain"
)

type NoticeResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"created_at"`
}

type ListNoticesResponse struct {
	Items []NoticeResponse `json:"items"`
	Total int              `json:"total"`
}

func ToNoticeResponse(n domain.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Severity:  n.Severity,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func ToListNoticesResponse(notices []domain.Notice) ListNoticesResponse {
	items := make([]NoticeResponse, 0, len(notices))
	for _, n := range notices {
		items = append(items, ToNoticeResponse(n))
	}
	return ListNoticesResponse{Items: items, Total: len(items)}
}
