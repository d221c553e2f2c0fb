package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusNew, StatusConfirmed, true},
		{StatusNew, StatusCancelled, true},
		{StatusNew, StatusFinished, false},
		{StatusConfirmed, StatusFinished, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNew, false},
		{StatusCancelled, StatusNew, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusFinished, false},
		{StatusFinished, StatusCancelled, false},
		{StatusFinished, StatusConfirmed, false},
		{StatusNew, StatusNew, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusNew.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusFinished.Terminal())
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusNew.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCancelled.Active())
	assert.False(t, StatusFinished.Active())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.True(t, StatusFinished.Valid())
	assert.False(t, Status("pending").Valid())
	assert.False(t, Status("").Valid())
}
