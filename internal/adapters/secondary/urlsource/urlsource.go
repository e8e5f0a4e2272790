package urlsource

import (
	"context"
	"strings"

	ports "model-inference-app/internal/core/ports/output"
)

// Static is a URL taken from configuration; empty means not configured.
type Static string

func (s Static) LookupURL(ctx context.Context) (string, bool, error) {
	url := strings.TrimSpace(string(s))
	return url, url != "", nil
}

// Chain consults sources in order and returns the first configured URL.
type Chain []ports.URLSource

func (c Chain) LookupURL(ctx context.Context) (string, bool, error) {
	for _, src := range c {
		url, ok, err := src.LookupURL(ctx)
		if err != nil {
			return "", false, err
		}
		if ok {
			return url, true, nil
		}
	}
	return "", false, nil
}
