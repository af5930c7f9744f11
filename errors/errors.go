// Package errors provides the structured error type the vantage
// engine surfaces to producers and controller callers. Every error
// carries a code, a human message, and an optional cause so callers
// can branch on Code or walk the chain with Is/As.
package errors

import (
	"encoding/json"
	"fmt"
)

// Error codes the vantage engine can return (spec §7).
const (
	// CodeChannelFull means the producer could not enqueue a batch
	// or control request right now — the bounded channel is full.
	CodeChannelFull = "channel_full"
	// CodeChannelClosed means the aggregator is gone.
	CodeChannelClosed = "channel_closed"
	// CodeReplyDropped means a snapshot reply never arrived because
	// the aggregator stopped mid-service.
	CodeReplyDropped = "reply_dropped"
	// CodeInvalidConfig means Configuration.Build was called with an
	// invalid setting, e.g. zero capacity or batch size.
	CodeInvalidConfig = "invalid_config"
)

// Error is a structured error carrying a code, message, and optional
// cause. It implements the error and json.Marshaler interfaces.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// New creates an error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps a cause error with a vantage code and message. If cause
// is nil, returns nil.
func Wrap(code string, cause error, message string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// MarshalJSON serializes the error including the cause message.
func (e *Error) MarshalJSON() ([]byte, error) {
	type alias Error
	aux := struct {
		*alias
		Cause string `json:"cause,omitempty"`
	}{alias: (*alias)(e)}
	if e.Cause != nil {
		aux.Cause = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Code extracts the vantage error code from any error. Returns the
// empty string if err is nil or not a *Error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	if err == nil || target == nil {
		return err == target
	}
	for {
		if err == target {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
		if err == nil {
			return false
		}
	}
}

// As finds the first *Error in err's chain and stores it in target.
func As(err error, target **Error) bool {
	if err == nil {
		return false
	}
	for {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
		if err == nil {
			return false
		}
	}
}
