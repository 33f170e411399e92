package artifact

import (
	"errors"
	"fmt"
)

var (
	ErrArtifactMissing = errors.New("artifact missing")
	ErrSchemaMismatch  = errors.New("schema mismatch")
)

// Error describes a load failure for a single artifact. It matches its Kind
// with errors.Is and unwraps to the underlying cause, if any.
type Error struct {
	Kind     error
	Artifact string
	Column   string
	Detail   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Artifact)
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func missing(artifact string, err error) *Error {
	return &Error{Kind: ErrArtifactMissing, Artifact: artifact, Err: err}
}

func schema(artifact, column, detail string) *Error {
	return &Error{Kind: ErrSchemaMismatch, Artifact: artifact, Column: column, Detail: detail}
}
