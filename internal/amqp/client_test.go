package amqp

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAck struct {
	acked   int
	nacked  int
	requeue bool
}

func (r *recordingAck) Ack(tag uint64, multiple bool) error {
	r.acked++
	return nil
}

func (r *recordingAck) Nack(tag uint64, multiple, requeue bool) error {
	r.nacked++
	r.requeue = requeue
	return nil
}

func (r *recordingAck) Reject(tag uint64, requeue bool) error {
	return r.Nack(tag, false, requeue)
}

func delivery(t *testing.T, ack *recordingAck, body []byte) amqp091.Delivery {
	t.Helper()
	return amqp091.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestHandleDelivery(t *testing.T) {
	valid, err := NewTransactionEvent("u1", "t1", ActionCreated, 1).ToJSON()
	require.NoError(t, err)

	t.Run("success acks", func(t *testing.T) {
		ack := &recordingAck{}
		var got *TransactionEvent
		handleDelivery(context.Background(), delivery(t, ack, valid), func(_ context.Context, e *TransactionEvent) error {
			got = e
			return nil
		})
		assert.Equal(t, 1, ack.acked)
		require.NotNil(t, got)
		assert.Equal(t, "t1", got.TransactionID)
	})

	t.Run("handler error requeues", func(t *testing.T) {
		ack := &recordingAck{}
		handleDelivery(context.Background(), delivery(t, ack, valid), func(context.Context, *TransactionEvent) error {
			return errors.New("sheets down")
		})
		assert.Equal(t, 1, ack.nacked)
		assert.True(t, ack.requeue)
	})

	t.Run("malformed drops", func(t *testing.T) {
		ack := &recordingAck{}
		called := false
		handleDelivery(context.Background(), delivery(t, ack, []byte(`{"action":"exploded"}`)), func(context.Context, *TransactionEvent) error {
			called = true
			return nil
		})
		assert.False(t, called)
		assert.Equal(t, 1, ack.nacked)
		assert.False(t, ack.requeue)
	})
}

func TestTransactionEventFromJSON(t *testing.T) {
	_, err := TransactionEventFromJSON([]byte("not json"))
	assert.ErrorIs(t, err, errMalformedEvent)

	_, err = TransactionEventFromJSON([]byte(`{"transaction_id":"t","user_id":"u","action":"deleted"}`))
	assert.NoError(t, err)

	_, err = TransactionEventFromJSON([]byte(`{"transaction_id":"t","action":"deleted"}`))
	assert.ErrorIs(t, err, errMalformedEvent)
}

func TestNewTransactionEvent(t *testing.T) {
	a := NewTransactionEvent("u1", "t1", ActionUpdated, 3)
	b := NewTransactionEvent("u1", "t1", ActionUpdated, 3)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.Equal(t, int64(3), a.Version)
	assert.False(t, a.Timestamp.IsZero())
}
