package ports

import (
	"context"
	"io"

	"model-inference-app/internal/core/domain"
)

// ArtifactStore is the well-known local location of the model artifact.
type ArtifactStore interface {
	// Path returns the location used both as read source and download destination.
	Path() string

	// Exists reports whether an artifact is present. Errors other than
	// "not found" are returned so the caller can treat them as unreadable.
	Exists() (bool, error)

	// Open opens the artifact for reading.
	Open() (io.ReadCloser, error)

	// Replace streams new content into the artifact location. The previous
	// content is only replaced if write returns nil.
	Replace(write func(w io.Writer) error) error
}

// ArtifactFetcher downloads a remote artifact.
type ArtifactFetcher interface {
	// Fetch streams the body of url into w and returns the number of bytes written.
	Fetch(ctx context.Context, url string, w io.Writer) (int64, error)
}

// ModelDecoder deserializes an artifact into a usable model.
type ModelDecoder interface {
	Format() string
	Decode(r io.Reader) (domain.Model, error)
}

// URLSource supplies the optional remote artifact URL.
type URLSource interface {
	// LookupURL returns the configured URL and whether one is configured.
	LookupURL(ctx context.Context) (string, bool, error)
}

// Notifier surfaces user-visible notices to the UI.
type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice) error
}

// NoticeReader lists the notices surfaced so far.
type NoticeReader interface {
	List() []domain.Notice
}
