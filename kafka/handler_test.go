package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"storyreel/types"
)

func TestVideoRequestHandler(t *testing.T) {
	boom := errors.New("render failed")

	cases := []struct {
		name     string
		message  string
		err      error
		wantMark bool
		wantErr  bool
		wantCall bool
	}{
		{"valid", `{"request_id":"r1","post":{"title":"AITA for this?","body":"story"}}`, nil, true, false, true},
		{"invalid json", `{not json`, nil, true, false, false},
		{"missing title", `{"request_id":"r2","post":{"body":"story"}}`, nil, true, false, false},
		{"process error", `{"request_id":"r3","post":{"title":"T"}}`, boom, false, true, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got *types.VideoRequest
			h := NewVideoRequestHandler(func(_ context.Context, req *types.VideoRequest) error {
				got = req
				return c.err
			})

			mark, err := h.HandleMessage(context.Background(), []byte(c.message))
			if mark != c.wantMark {
				t.Fatalf("mark = %v; want %v", mark, c.wantMark)
			}
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, c.wantErr)
			}
			if (got != nil) != c.wantCall {
				t.Fatalf("process called = %v; want %v", got != nil, c.wantCall)
			}
		})
	}
}

func TestTypedHandlerRetries(t *testing.T) {
	cases := []struct {
		name      string
		failures  int
		retries   int
		wantMark  bool
		wantCalls int
	}{
		{"first attempt succeeds", 0, 2, true, 1},
		{"recovers on retry", 2, 2, true, 3},
		{"gives up", 5, 2, false, 3},
		{"no retries", 1, 0, false, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			calls := 0
			h := &TypedMessageHandler[types.VideoRequest]{
				Process: func(context.Context, *types.VideoRequest) error {
					calls++
					if calls <= c.failures {
						return errors.New("transient")
					}
					return nil
				},
				Retries:    c.retries,
				RetryDelay: time.Millisecond,
			}

			mark, err := h.HandleMessage(context.Background(), []byte(`{"post":{"title":"T"}}`))
			if mark != c.wantMark || (err == nil) != c.wantMark {
				t.Fatalf("mark = %v, err = %v; want mark %v", mark, err, c.wantMark)
			}
			if calls != c.wantCalls {
				t.Fatalf("calls = %d; want %d", calls, c.wantCalls)
			}
		})
	}
}

func TestTypedHandlerRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	h := &TypedMessageHandler[types.VideoRequest]{
		Process: func(context.Context, *types.VideoRequest) error {
			calls++
			cancel()
			return errors.New("shutting down")
		},
		Retries:    3,
		RetryDelay: time.Hour,
	}

	mark, err := h.HandleMessage(ctx, []byte(`{"post":{"title":"T"}}`))
	if mark || err == nil || calls != 1 {
		t.Fatalf("mark=%v err=%v calls=%d; want unmarked error after one call", mark, err, calls)
	}
}

func TestNewConsumerRequiresBrokers(t *testing.T) {
	if _, err := NewConsumer(ConsumerConfig{Topic: "video-requests"}); err == nil {
		t.Fatal("expected error without brokers")
	}
}
