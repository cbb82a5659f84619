package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindInvalidInput
	KindInvalidArtifact
	KindGraphIntegrity
	KindRuntime
	KindStorage
	KindConfig
)

var kindNames = map[ErrorKind]string{
	KindUnknown:         "unknown",
	KindNotFound:        "not_found",
	KindInvalidInput:    "invalid_input",
	KindInvalidArtifact: "invalid_artifact",
	KindGraphIntegrity:  "graph_integrity",
	KindRuntime:         "runtime",
	KindStorage:         "storage",
	KindConfig:          "config",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ExitCode is the process status used when a failure of this kind ends the run.
func (k ErrorKind) ExitCode() int {
	switch k {
	case KindNotFound:
		return 2
	case KindInvalidInput:
		return 3
	case KindInvalidArtifact:
		return 4
	case KindGraphIntegrity:
		return 5
	case KindRuntime:
		return 6
	case KindStorage:
		return 7
	case KindConfig:
		return 8
	}
	return 1
}

// PipelineError is a classified failure from any stage of the pipeline.
type PipelineError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError builds a PipelineError with a formatted message.
func NewError(kind ErrorKind, op, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// WrapError classifies err. A nil err stays nil.
func WrapError(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &PipelineError{Kind: kind, Op: op, Err: err}
}

func (e *PipelineError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *PipelineError) Unwrap() error { return e.Err }

// KindOf returns the kind of the first PipelineError in err's chain.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// ExitCode maps err to a process exit status. A nil error exits 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
