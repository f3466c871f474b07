package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

var (
	down        = MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	garbled     = MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`nope`), Err: errors.New("bad")}}
	judgement   = JSON(`{"correct":true,"feedback":"Great job!"}`)
	truncated   = MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"corr`)}}
	blocked     = MockResponse{Err: &ErrContentBlocked{Reason: "SAFETY"}}
	rateLimited = MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}
)

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		wantCalls int
		wantErr   func(error) bool
	}{
		{"first attempt succeeds", []MockResponse{judgement}, 1, nil},
		{"transient then success", []MockResponse{down, judgement}, 2, nil},
		{"rate limit honours retry-after", []MockResponse{rateLimited, judgement}, 2, nil},
		{"attempts exhausted", []MockResponse{down, down, down, judgement}, 3, func(err error) bool {
			var u *ErrProviderUnavailable
			return errors.As(err, &u)
		}},
		{"truncation is final", []MockResponse{truncated, judgement}, 1, func(err error) bool {
			var e *ErrMaxTokensExceeded
			return errors.As(err, &e)
		}},
		{"blocked content is final", []MockResponse{blocked, judgement}, 1, func(err error) bool {
			var e *ErrContentBlocked
			return errors.As(err, &e)
		}},
		{"malformed output retried once", []MockResponse{garbled, garbled, judgement}, 2, func(err error) bool {
			var e *ErrInvalidResponse
			return errors.As(err, &e)
		}},
		{"malformed then fixed", []MockResponse{garbled, judgement}, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, fastRetry()).Generate(t.Context(), Request{})

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != string(judgement.Content) {
					t.Fatalf("unexpected content %s", resp.Content)
				}
			} else if !tt.wantErr(err) {
				t.Fatalf("unexpected error %T (%v)", err, err)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	mock := NewMockProvider(down, down, judgement)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_BackoffIsCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 150 * time.Millisecond, Multiplier: 10}}
	for attempt := range 4 {
		wait := r.backoff(attempt, errors.New("x"))
		if wait < 0 || wait > 180*time.Millisecond {
			t.Fatalf("attempt %d: wait %s outside jittered cap", attempt, wait)
		}
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if id := WithRetry(NewMockProvider(), fastRetry()).ModelID(); id != "mock" {
		t.Fatalf("expected 'mock', got %q", id)
	}
}
