package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"restaurant-marketplace-api/search"
	"restaurant-marketplace-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nearbyResult struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
}

func TestGetNearbyRestaurants(t *testing.T) {
	r, db := setupServer(t, "public_nearby")
	testutil.SeedRestaurant(t, db, "near", testutil.Float(18.5304), testutil.Float(73.8667))
	testutil.SeedRestaurant(t, db, "closest", testutil.Float(18.5214), testutil.Float(73.8577))
	testutil.SeedRestaurant(t, db, "far-away", testutil.Float(19.0760), testutil.Float(72.8777))
	testutil.SeedRestaurant(t, db, "unmapped", nil, nil)

	env := mustHTTP(t, doJSON(r, http.MethodGet,
		"/restaurants/nearby?latitude=18.5204&longitude=73.8567&radiusKm=10", "", nil), http.StatusOK)

	var results []nearbyResult
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 2)
	assert.Equal(t, "closest", results[0].Name)
	assert.Equal(t, "near", results[1].Name)
	// Distances are rounded to 2 decimal places for display.
	for _, res := range results {
		assert.Equal(t, search.RoundKm(res.DistanceKm), res.DistanceKm)
		assert.LessOrEqual(t, res.DistanceKm, 10.0)
	}
	assert.InDelta(t, 1.49, results[1].DistanceKm, 0.02)
}

func TestGetNearbyRestaurants_InvalidParams(t *testing.T) {
	r, _ := setupServer(t, "public_nearby_invalid")

	tests := []struct {
		name string
		path string
	}{
		{"missing_coords", "/restaurants/nearby"},
		{"non_numeric", "/restaurants/nearby?latitude=abc&longitude=73.8"},
		{"out_of_range_lat", "/restaurants/nearby?latitude=95&longitude=73.8"},
		{"out_of_range_lon", "/restaurants/nearby?latitude=18.5&longitude=181"},
		{"negative_radius", "/restaurants/nearby?latitude=18.5&longitude=73.8&radiusKm=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, tt.path, "", nil)
			requireStatus(t, w, http.StatusBadRequest)
			env := decodeEnvelope(t, w)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestProximitySearch(t *testing.T) {
	r, db := setupServer(t, "public_proximity")
	testutil.SeedRestaurant(t, db, "here", testutil.Float(0), testutil.Float(0.01), 9.5)
	testutil.SeedRestaurant(t, db, "elsewhere", testutil.Float(45), testutil.Float(45))

	env := mustHTTP(t, doJSON(r, http.MethodGet,
		"/proximity-search?latitude=0&longitude=0", "", nil), http.StatusOK)

	var results []struct {
		Name      string `json:"name"`
		MenuItems []struct {
			Price float64 `json:"price"`
		} `json:"menu_items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "here", results[0].Name)
	require.Len(t, results[0].MenuItems, 1)
	assert.Equal(t, 9.5, results[0].MenuItems[0].Price)
}
