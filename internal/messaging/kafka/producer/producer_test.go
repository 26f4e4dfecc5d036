package producer

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/abbie-leigh/hr-portal/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  []string
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.pending = append(f.pending, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
	err      error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func TestProcessOutboxEventsPublishesAndMarksSent(t *testing.T) {
	outbox := &fakeOutbox{
		pending: []kafka.OutboxEvent{
			{
				ID:            "evt-1",
				RequestID:     "trace-1",
				AggregateType: "leave_request",
				AggregateID:   "req-1",
				EventType:     "leave_requested",
				Topic:         "hr.leave.lifecycle.v1",
				Payload:       []byte(`{"request_id":"req-1"}`),
			},
		},
	}
	writer := &fakeWriter{}
	relay := NewRelay(outbox, writer)

	err := relay.ProcessOutboxEvents(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"evt-1"}, outbox.sent)
	assert.Empty(t, outbox.failed)
	if assert.Len(t, writer.messages, 1) {
		msg := writer.messages[0]
		assert.Equal(t, "hr.leave.lifecycle.v1", msg.Topic)
		assert.Equal(t, []byte("req-1"), msg.Key)
		assert.Equal(t, "event_type", msg.Headers[0].Key)
		assert.Equal(t, []byte("leave_requested"), msg.Headers[0].Value)
	}
}

func TestProcessOutboxEventsMarksFailedAndContinues(t *testing.T) {
	outbox := &fakeOutbox{
		pending: []kafka.OutboxEvent{
			{ID: "evt-1", Topic: "hr.leave.lifecycle.v1"},
			{ID: "evt-2", Topic: "hr.leave.lifecycle.v1"},
		},
	}
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	relay := NewRelay(outbox, writer)

	err := relay.ProcessOutboxEvents(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, outbox.sent)
	assert.Equal(t, []string{"evt-1", "evt-2"}, outbox.failed)
}
