package search

import (
	"testing"

	"restaurant-marketplace-api/geo"
	"restaurant-marketplace-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }

func restaurantAt(name string, lat, lon float64) models.Restaurant {
	return models.Restaurant{Name: name, Latitude: fptr(lat), Longitude: fptr(lon)}
}

func TestNearby_FiltersSortsAndSkipsMissingCoordinates(t *testing.T) {
	origin := geo.Coordinate{Latitude: 18.5204, Longitude: 73.8567}
	candidates := []models.Restaurant{
		restaurantAt("far", 19.0760, 72.8777),            // ~120 km away
		restaurantAt("near", 18.5304, 73.8667),           // ~1.5 km away
		{Name: "no-coords"},                              // skipped
		restaurantAt("closest", 18.5214, 73.8577),        // ~0.15 km away
	}

	got, err := Nearby(origin, candidates, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "closest", got[0].Restaurant.Name)
	assert.Equal(t, "near", got[1].Restaurant.Name)
	for _, r := range got {
		assert.LessOrEqual(t, r.DistanceKm, 10.0)
	}
}

func TestNearby_EmptyResultIsNotAnError(t *testing.T) {
	origin := geo.Coordinate{Latitude: 0, Longitude: 0}

	got, err := Nearby(origin, nil, DefaultRadiusKm)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Nearby(origin, []models.Restaurant{restaurantAt("antipode", 0, 179)}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNearby_TiesKeepInputOrder(t *testing.T) {
	origin := geo.Coordinate{Latitude: 0, Longitude: 0}
	candidates := []models.Restaurant{
		restaurantAt("first", 0, 0.01),
		restaurantAt("second", 0, 0.01),
	}
	got, err := Nearby(origin, candidates, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Restaurant.Name)
	assert.Equal(t, "second", got[1].Restaurant.Name)
}

func TestNearby_InvalidInput(t *testing.T) {
	_, err := Nearby(geo.Coordinate{Latitude: 91, Longitude: 0}, nil, 10)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)

	_, err = Nearby(geo.Coordinate{}, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidRadius)

	_, err = Nearby(geo.Coordinate{}, nil, -2)
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 1.49, RoundKm(1.4901))
	assert.Equal(t, 2.0, RoundKm(1.999))
	assert.Equal(t, 0.0, RoundKm(0))
}
