// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes provider errors for handling.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotConfigured
	KindTimeout
	KindUnavailable
	KindRateLimited
	KindAuth
	KindUnsupported
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindTimeout:
		return "timeout"
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate_limited"
	case KindAuth:
		return "auth"
	case KindUnsupported:
		return "unsupported"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is returned by every backend.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status when the error came from a response
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so wrapped errors compare equal to
// the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind != KindUnknown && t.Kind == e.Kind
}

// Sentinel errors for easy checking.
var (
	ErrNotConfigured = &Error{Kind: KindNotConfigured, Message: "provider not configured (missing API key)"}
	ErrTimeout       = &Error{Kind: KindTimeout, Message: "request timed out"}
	ErrUnavailable   = &Error{Kind: KindUnavailable, Message: "provider unavailable"}
	ErrRateLimited   = &Error{Kind: KindRateLimited, Message: "rate limited"}
	ErrAuth          = &Error{Kind: KindAuth, Message: "authentication failed"}
	ErrUnsupported   = &Error{Kind: KindUnsupported, Message: "operation not supported by backend"}
	ErrMalformed     = &Error{Kind: KindMalformed, Message: "malformed provider response"}
)

// KindOf returns the kind of err, mapping context errors to KindTimeout.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnknown
}

// IsNotConfigured reports whether err means no credentials are available.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// IsRetryable reports whether a request failing with err may succeed if sent
// again: rate limiting, 5xx responses and transport failures.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Kind {
	case KindRateLimited:
		return true
	case KindUnavailable:
		return pe.Status == 0 || pe.Status >= 500
	}
	return false
}

func malformed(msg string, cause error) error {
	return &Error{Kind: KindMalformed, Message: msg, Cause: cause}
}
