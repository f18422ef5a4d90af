package submit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Kafka publishes payloads to an intake topic for guilds that wire the
// site into their own pipeline instead of a webhook.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka builds a Kafka submitter against the given brokers.
func NewKafka(brokers []string, topic string) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

// Submit produces the payload keyed by request id, so records for the
// same request land in the same partition.
func (k *Kafka) Submit(ctx context.Context, p Payload) error {
	rec, err := k.record(p)
	if err != nil {
		return err
	}
	if err := k.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce request %s: %w", p.RequestID, err)
	}
	return nil
}

func (k *Kafka) record(p Payload) (*kgo.Record, error) {
	value, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return &kgo.Record{
		Topic: k.topic,
		Key:   []byte(p.RequestID),
		Value: value,
	}, nil
}

// Close releases the underlying Kafka client.
func (k *Kafka) Close() {
	k.client.Close()
}
