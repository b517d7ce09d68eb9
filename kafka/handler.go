package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"storyreel/types"
)

// TypedMessageHandler decodes JSON messages into T before processing them
type TypedMessageHandler[T any] struct {
	// Validate reports whether a decoded message should be processed
	Validate func(msg *T) bool
	Process  func(ctx context.Context, msg *T) error
	// AlwaysMark commits messages that fail to decode or validate
	AlwaysMark bool
	// Retries is how many more times Process runs after a failure
	Retries    int
	RetryDelay time.Duration
}

func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("❌ Failed to unmarshal message: %v", err)
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	err := h.Process(ctx, &msg)
	for attempt := 1; err != nil && attempt <= h.Retries; attempt++ {
		log.Printf("🔁 Retrying message (%d/%d) after: %v", attempt, h.Retries, err)
		select {
		case <-ctx.Done():
			return false, err
		case <-time.After(h.RetryDelay):
		}
		err = h.Process(ctx, &msg)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewVideoRequestHandler handles video requests with process. Requests without
// a title are dropped. A failed request is retried once and then left unmarked,
// which only brings it back if the consumer restarts before a later offset on
// the partition is committed.
func NewVideoRequestHandler(process func(ctx context.Context, req *types.VideoRequest) error) *TypedMessageHandler[types.VideoRequest] {
	return &TypedMessageHandler[types.VideoRequest]{
		Validate: func(req *types.VideoRequest) bool {
			if strings.TrimSpace(req.Post.Title) == "" {
				log.Printf("⚠️  Skipping video request %q without a title", req.RequestID)
				return false
			}
			return true
		},
		Process:    process,
		AlwaysMark: true,
		Retries:    1,
	}
}
