package pricing

// Delivery fee policy constants. Orders within FreeDistanceKm pay only the
// base fee; beyond that the fee grows linearly per kilometre. There is no
// upper cap.
const (
	BaseFee        = 5.0
	FreeDistanceKm = 1.0
	FeePerKm       = 2.5
)

// DeliveryFee maps a non-negative distance to a delivery fee. Monotonic
// non-decreasing and never below BaseFee.
func DeliveryFee(distanceKm float64) float64 {
	if distanceKm <= FreeDistanceKm {
		return BaseFee
	}
	return BaseFee + (distanceKm-FreeDistanceKm)*FeePerKm
}
