package tago

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when the platform has no matching record.
	ErrRecordNotFound = errors.New("record not found")

	ErrMissingAccountToken = errors.New(`Missing "account_token" environment variable`)
	ErrInvalidAccountToken = errors.New(`Invalid "account_token" in the environment variable`)
)

// WidgetFailure is an error raised while handling a widget action. It ends up
// in the widget's validation field.
type WidgetFailure struct {
	Reason string
	Code   string
	Err    error
}

func (e *WidgetFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *WidgetFailure) Unwrap() error {
	return e.Err
}

func widgetFailureForError(err error) *WidgetFailure {
	if f, ok := err.(*WidgetFailure); ok {
		return f
	}
	return &WidgetFailure{
		Reason: "Unhandled error",
		Code:   "UNHANDLED_ERROR",
		Err:    err,
	}
}
