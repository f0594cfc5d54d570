// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single HTTP exchange.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the number of attempts for retryable failures.
	DefaultMaxRetries = 3

	// DefaultRequestsPerSecond is the steady request rate per backend.
	DefaultRequestsPerSecond = 2.0

	defaultRetryBase = 500 * time.Millisecond
	retryMaxDelay    = 10 * time.Second

	// MaxResponseSize caps a response body. Generated images arrive inline
	// as base64, so this is larger than a text-only client would need.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 24 * 1024 * 1024
)

// transport performs JSON POSTs with rate limiting, retries and
// exponential backoff.
type transport struct {
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryBase  time.Duration
	log        *zap.Logger
}

func newTransport(timeout time.Duration, maxRetries int, rps float64, retryBase time.Duration, log *zap.Logger) *transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if retryBase <= 0 {
		retryBase = defaultRetryBase
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &transport{
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: maxRetries,
		retryBase:  retryBase,
		log:        log,
	}
}

// errorDecoder turns a non-2xx body into a message.
type errorDecoder func(body []byte) string

// postJSON sends payload to url and decodes the 200 response into out.
// Retryable failures are retried up to maxRetries attempts in total.
func (t *transport) postJSON(ctx context.Context, url string, header http.Header, payload, out any, decodeErr errorDecoder) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < t.maxRetries; attempt++ {
		if attempt > 0 {
			delay := t.calculateBackoff(attempt - 1)
			t.log.Debug("retrying request", zap.Int("attempt", attempt+1), zap.Duration("delay", delay), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return contextError(ctx.Err())
			case <-time.After(delay):
			}
		}

		if err := t.limiter.Wait(ctx); err != nil {
			return contextError(err)
		}

		err := t.doOnce(ctx, url, header, body, out, decodeErr)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (t *transport) doOnce(ctx context.Context, url string, header http.Header, body []byte, out any, decodeErr errorDecoder) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return contextError(ctxErr)
		}
		var ne interface{ Timeout() bool }
		if errors.As(err, &ne) && ne.Timeout() {
			return &Error{Kind: KindTimeout, Message: "request timed out", Cause: err}
		}
		return &Error{Kind: KindUnavailable, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := readResponse(resp)
	t.log.Debug("response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(data)))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		msg := ""
		if decodeErr != nil {
			msg = decodeErr(data)
		}
		return statusError(resp.StatusCode, msg)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return malformed("decode response", err)
	}
	return nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Message: "read response", Cause: err}
	}
	if len(body) > MaxResponseSize {
		return nil, malformed(fmt.Sprintf("response exceeded %d bytes", MaxResponseSize), nil)
	}
	return body, nil
}

// statusError maps an HTTP status to a typed error.
func statusError(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	e := &Error{Status: status, Message: fmt.Sprintf("status %d: %s", status, msg)}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		e.Kind = KindTimeout
	case status >= 500:
		e.Kind = KindUnavailable
	default:
		e.Kind = KindMalformed
	}
	return e
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "request timed out", Cause: err}
	}
	return err
}

// calculateBackoff returns the delay before retry number attempt+1:
// base, 2*base, 4*base... capped at retryMaxDelay.
func (t *transport) calculateBackoff(attempt int) time.Duration {
	delay := t.retryBase * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay || delay <= 0 {
		delay = retryMaxDelay
	}
	return delay
}

var fenceRe = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.*?)\\s*```\\s*$")

// stripFence removes a surrounding markdown code fence, which some models
// add around JSON even when asked not to.
func stripFence(s string) string {
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return strings.TrimSpace(s)
}
