// Package rendering populates the card template from a profile record and renders its
// content stream.
package rendering

import (
	"errors"
	"fmt"
)

// ErrPlaceholderVisible means a name or role slot still shows a loading, template or error
// sentinel after population.
var ErrPlaceholderVisible = errors.New("placeholder still visible")

// ErrNoRecord means population was asked to run without a record.
var ErrNoRecord = errors.New("no profile record")

// TemplateError represents a template that could not be brought into the populated state
type TemplateError struct {
	Slot    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.Slot, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.Slot, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a content block that could not be rendered
type RenderError struct {
	Index   int
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: item %d: %s: %v", e.Index, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: item %d: %s", e.Index, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
