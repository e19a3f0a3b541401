package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/briahnloo/arbitrage-finder/internal/engine"
)

// PublishOpportunity writes one validated opportunity keyed by its
// fingerprint, so downstream consumers dedup the same way the engine does.
func PublishOpportunity(ctx context.Context, writer *kafka.Writer, c *engine.Candidate) error {
	if writer == nil || c == nil {
		return nil
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal opportunity %s: %w", c.EventName, err)
	}
	msg := kafka.Message{
		Key:   []byte(c.Fingerprint()),
		Value: payload,
	}
	return writer.WriteMessages(ctx, msg)
}
