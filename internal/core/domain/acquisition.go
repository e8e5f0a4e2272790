package domain

import "time"

type ModelSource string

const (
	ModelSourceLocal  ModelSource = "local"
	ModelSourceRemote ModelSource = "remote"
	ModelSourceNone   ModelSource = "none"
)

// Acquisition is the memoized outcome of loading the model artifact.
// A nil Model means the model is absent; Err is then nil (nothing
// configured) or wraps ErrLocalRead, ErrDownload or ErrRemoteDeserialize.
type Acquisition struct {
	Model       Model
	Source      ModelSource
	Err         error
	Reason      string
	Path        string
	Bytes       int64
	CompletedAt time.Time
}

func (a *Acquisition) Available() bool {
	return a != nil && a.Model != nil
}
