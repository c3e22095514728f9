package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/domain"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from     domain.DeliveryState
		to       domain.DeliveryState
		expected bool
	}{
		{from: domain.StatePending, to: domain.StateProducing, expected: true},
		{from: domain.StatePending, to: domain.StateFailed, expected: true},
		{from: domain.StatePending, to: domain.StateStreaming, expected: false},
		{from: domain.StateProducing, to: domain.StateStreaming, expected: true},
		{from: domain.StateProducing, to: domain.StateAggregating, expected: true},
		{from: domain.StateStreaming, to: domain.StateCompleted, expected: true},
		{from: domain.StateStreaming, to: domain.StateAggregating, expected: false},
		{from: domain.StateAggregating, to: domain.StateFailed, expected: true},
		{from: domain.StateCompleted, to: domain.StateFailed, expected: false},
		{from: domain.StateFailed, to: domain.StatePending, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			require.Equal(t, tt.expected, domain.CanTransition(tt.from, tt.to))
		})
	}
}

func TestDeliveryState_Terminal(t *testing.T) {
	require.True(t, domain.StateCompleted.Terminal())
	require.True(t, domain.StateFailed.Terminal())
	require.False(t, domain.StateStreaming.Terminal())
	require.Equal(t, "state(99)", domain.DeliveryState(99).String())
}
