package models

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the stage of a run that failed
type ErrorKind string

const (
	ErrorKindConfig      ErrorKind = "config"
	ErrorKindUsage       ErrorKind = "usage"
	ErrorKindTransport   ErrorKind = "transport"
	ErrorKindParse       ErrorKind = "parse"
	ErrorKindShape       ErrorKind = "shape"
	ErrorKindEmptyResult ErrorKind = "empty_result"
	ErrorKindUnsafePath  ErrorKind = "unsafe_path"
	ErrorKindWrite       ErrorKind = "write"
)

var kindLabels = map[ErrorKind]string{
	ErrorKindConfig:      "configuration error",
	ErrorKindUsage:       "usage error",
	ErrorKindTransport:   "transport error",
	ErrorKindParse:       "parse error",
	ErrorKindShape:       "shape error",
	ErrorKindEmptyResult: "empty result error",
	ErrorKindUnsafePath:  "unsafe path error",
	ErrorKindWrite:       "write error",
}

// RunError is a fatal run failure tagged with the stage that produced it.
type RunError struct {
	Kind ErrorKind
	Err  error
}

// Errorf builds a RunError. The format supports %w.
func Errorf(kind ErrorKind, format string, args ...interface{}) *RunError {
	return &RunError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *RunError) Error() string {
	label, ok := kindLabels[e.Kind]
	if !ok {
		label = string(e.Kind) + " error"
	}
	if e.Err == nil {
		return label
	}
	return fmt.Sprintf("%s: %v", label, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first RunError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Kind
	}
	return ""
}
