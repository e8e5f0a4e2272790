package domain

import (
	"time"

	"github.com/google/uuid"
)

type NoticeKind string

const (
	NoticeLocalFileCorrupt        NoticeKind = "local_file_corrupt"
	NoticeDownloadFailed          NoticeKind = "download_failed"
	NoticeRemoteDeserializeFailed NoticeKind = "remote_deserialize_failed"
	NoticeModelUnavailable        NoticeKind = "model_unavailable"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Notice is a plain-text message shown to the user by the UI.
type Notice struct {
	ID        uuid.UUID
	Kind      NoticeKind
	Severity  string
	Message   string
	CreatedAt time.Time
}

func NewNotice(kind NoticeKind, severity, message string) Notice {
	return Notice{
		ID:        uuid.New(),
		Kind:      kind,
		Severity:  severity,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
