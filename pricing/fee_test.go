package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryFee_WithinFreeDistance(t *testing.T) {
	assert.Equal(t, BaseFee, DeliveryFee(0))
	assert.Equal(t, BaseFee, DeliveryFee(0.5))
	// Exactly at the boundary still pays only the base fee.
	assert.Equal(t, BaseFee, DeliveryFee(FreeDistanceKm))
}

func TestDeliveryFee_BeyondFreeDistance(t *testing.T) {
	// 1.49 km -> 5.0 + 0.49 * 2.5
	assert.InDelta(t, 6.22, DeliveryFee(1.49), 0.01)
	assert.InDelta(t, 27.5, DeliveryFee(10), 1e-9)
}

func TestDeliveryFee_MonotonicAndNeverBelowBase(t *testing.T) {
	prev := 0.0
	for d := 0.0; d <= 50; d += 0.25 {
		fee := DeliveryFee(d)
		assert.GreaterOrEqual(t, fee, BaseFee)
		assert.GreaterOrEqual(t, fee, prev)
		prev = fee
	}
}
