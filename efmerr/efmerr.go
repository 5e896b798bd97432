/*
NAME
  efmerr.go

DESCRIPTION
  efmerr.go defines the fatal error type shared by every pipeline stage.

LICENSE
  This file is part of the coldcathode/efm module and is distributed
  under the terms of the project's own license; see LICENSE.
*/

// Package efmerr defines the error taxonomy used across the EFM/CIRC
// pipeline: erasures and corruption propagate as counters and byte
// flags, never as errors, but structural and metadata conditions that
// the pipeline cannot recover from surface as a *FatalError.
package efmerr

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Component names a pipeline stage for diagnostic purposes.
type Component string

const (
	ComponentTValue     Component = "tvalue"
	ComponentEFMTable   Component = "efmtable"
	ComponentChannel    Component = "channel"
	ComponentSubcode    Component = "subcode"
	ComponentCIRC       Component = "circ"
	ComponentCorrection Component = "correction"
	ComponentSector     Component = "sector"
	ComponentAudio      Component = "audio"
	ComponentSection    Component = "section"
)

// FatalError is a structural or unreconstructible-metadata condition
// that halts the pipeline immediately; the driver surfaces it to the
// caller rather than retrying. It corresponds to spec's "Structural
// fatal" and "Metadata invalid, unreconstructible" taxonomy entries.
type FatalError struct {
	Component Component
	Reason    string
	cause     error
}

func (e *FatalError) Error() string {
	if e.cause != nil {
		return string(e.Component) + ": " + e.Reason + ": " + e.cause.Error()
	}
	return string(e.Component) + ": " + e.Reason
}

func (e *FatalError) Unwrap() error { return e.cause }

// New builds a FatalError naming the offending component and reason.
func New(c Component, reason string) *FatalError {
	return &FatalError{Component: c, Reason: reason}
}

// Wrap builds a FatalError that chains an underlying cause, preserving
// its stack via github.com/pkg/errors.
func Wrap(c Component, reason string, cause error) *FatalError {
	return &FatalError{Component: c, Reason: reason, cause: pkgerrors.WithStack(cause)}
}

// IsFatal reports whether err is (or wraps) a *FatalError.
func IsFatal(err error) bool {
	_, ok := err.(*FatalError)
	if ok {
		return true
	}
	var fe *FatalError
	return errors.As(err, &fe)
}
