package httpx

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("upstream http %d", int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

func TestIsRetryableHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, false},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusRequestTimeout, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusServiceUnavailable, true},
		{599, true},
		{600, false},
	}
	for _, tt := range tests {
		if got := IsRetryableHTTPStatus(tt.code); got != tt.want {
			t.Errorf("IsRetryableHTTPStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	if IsRetryableError(nil) {
		t.Errorf("nil error must not be retryable")
	}
	if !IsRetryableError(context.DeadlineExceeded) {
		t.Errorf("deadline exceeded must be retryable")
	}
	if !IsRetryableError(fmt.Errorf("request failed: %w", statusErr(503))) {
		t.Errorf("wrapped 503 must be retryable")
	}
	if IsRetryableError(fmt.Errorf("request failed: %w", statusErr(400))) {
		t.Errorf("wrapped 400 must not be retryable")
	}
	if IsRetryableError(fmt.Errorf("schema mismatch")) {
		t.Errorf("plain error must not be retryable")
	}
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}

	if got := RetryAfterDuration(nil, 2*time.Second, 10*time.Second); got != 2*time.Second {
		t.Errorf("no response: got %v, want fallback", got)
	}
	if got := RetryAfterDuration(resp, 2*time.Second, 10*time.Second); got != 2*time.Second {
		t.Errorf("no header: got %v, want fallback", got)
	}

	resp.Header.Set("Retry-After", "5")
	if got := RetryAfterDuration(resp, 2*time.Second, 10*time.Second); got != 5*time.Second {
		t.Errorf("delta-seconds: got %v, want 5s", got)
	}

	resp.Header.Set("Retry-After", "30")
	if got := RetryAfterDuration(resp, 2*time.Second, 10*time.Second); got != 10*time.Second {
		t.Errorf("cap: got %v, want 10s", got)
	}

	resp.Header.Set("Retry-After", time.Now().UTC().Add(4*time.Second).Format(http.TimeFormat))
	got := RetryAfterDuration(resp, 2*time.Second, 10*time.Second)
	if got < 2*time.Second || got > 5*time.Second {
		t.Errorf("http-date: got %v, want roughly 4s", got)
	}
}

func TestJitterSleepBounds(t *testing.T) {
	if got := JitterSleep(0); got != 0 {
		t.Errorf("zero base: got %v, want 0", got)
	}
	base := time.Second
	for i := 0; i < 100; i++ {
		got := JitterSleep(base)
		if got < 800*time.Millisecond || got > 1200*time.Millisecond {
			t.Fatalf("JitterSleep(%v) = %v, outside ±20%%", base, got)
		}
	}
}
