package taskqueue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueAfterCloseFails(t *testing.T) {
	q := &AMQPQueue{exchange: "booking.tasks"}
	require.NoError(t, q.Close())

	_, err := q.Enqueue(context.Background(), "booking.reminder", nil, time.Now())
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestCloseIsIdempotent(t *testing.T) {
	q := &AMQPQueue{exchange: "booking.tasks"}
	require.NoError(t, q.Close())
	assert.NoError(t, q.Close())
}
