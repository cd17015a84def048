package search

import (
	"errors"
	"math"
	"sort"

	"restaurant-marketplace-api/geo"
	"restaurant-marketplace-api/models"
)

// DefaultRadiusKm is used when a caller doesn't specify a search radius.
const DefaultRadiusKm = 10.0

// ErrInvalidRadius is returned when the search radius is zero or negative.
var ErrInvalidRadius = errors.New("radius must be greater than zero")

// RankedRestaurant pairs a restaurant with its distance from the search origin.
type RankedRestaurant struct {
	Restaurant models.Restaurant
	DistanceKm float64
}

// Nearby filters candidates to those with coordinates within radiusKm of the
// origin and returns them sorted ascending by distance. Ties keep input order.
// An empty result is not an error. Invalid origin or radius fails before any
// filtering occurs.
func Nearby(origin geo.Coordinate, candidates []models.Restaurant, radiusKm float64) ([]RankedRestaurant, error) {
	if !origin.Valid() {
		return nil, geo.ErrInvalidCoordinate
	}
	if radiusKm <= 0 {
		return nil, ErrInvalidRadius
	}

	ranked := make([]RankedRestaurant, 0, len(candidates))
	for _, r := range candidates {
		loc, ok := r.Coordinate()
		if !ok {
			continue
		}
		d, err := geo.DistanceKm(origin, loc)
		if err != nil {
			// Restaurant stored with an out-of-range coordinate: skip it
			// rather than failing the whole search.
			continue
		}
		if d > radiusKm {
			continue
		}
		ranked = append(ranked, RankedRestaurant{Restaurant: r, DistanceKm: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})
	return ranked, nil
}

// RoundKm rounds a distance to 2 decimal places for display. Internal
// computation always keeps full precision.
func RoundKm(d float64) float64 {
	return math.Round(d*100) / 100
}
