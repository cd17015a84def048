package handlers

import (
	"net/http"
	"strconv"

	"restaurant-marketplace-api/config"
	"restaurant-marketplace-api/geo"
	"restaurant-marketplace-api/models"
	"restaurant-marketplace-api/search"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns all restaurants (public), with optional filters
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if s := c.Query("search"); s != "" {
		query = query.Where("name LIKE ?", "%"+s+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	query.Find(&restaurants)
	respond(c, http.StatusOK, restaurants)
}

// GetRestaurant returns a single restaurant with its menu
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").First(&restaurant, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	respond(c, http.StatusOK, restaurant)
}

// GetMenu returns the menu for a specific restaurant (public)
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	var items []models.MenuItem
	query := config.DB.Where("restaurant_id = ?", restaurantID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isVeg := c.Query("is_veg"); isVeg == "true" {
		query = query.Where("is_veg = ?", true)
	}
	query.Find(&items)

	respond(c, http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"menu":       items,
	})
}

// NearbyRestaurant is the display shape for a proximity result. The distance
// is rounded to 2 decimal places for display only.
type NearbyRestaurant struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	Cuisine    string  `json:"cuisine"`
	ImageURL   string  `json:"imageUrl"`
	DistanceKm float64 `json:"distanceKm"`
}

// parseSearchParams reads latitude/longitude/radiusKm query parameters and
// validates them before any candidates are considered.
func parseSearchParams(c *gin.Context) (geo.Coordinate, float64, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLon != nil {
		fail(c, http.StatusBadRequest, "latitude and longitude must be valid numbers")
		return geo.Coordinate{}, 0, false
	}
	origin, err := geo.NewCoordinate(lat, lon)
	if err != nil {
		fail(c, http.StatusBadRequest, "latitude must be in [-90, 90] and longitude in [-180, 180]")
		return geo.Coordinate{}, 0, false
	}
	radius := search.DefaultRadiusKm
	if raw := c.Query("radiusKm"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			fail(c, http.StatusBadRequest, "radiusKm must be a positive number")
			return geo.Coordinate{}, 0, false
		}
	}
	return origin, radius, true
}

// GetNearbyRestaurants ranks restaurants within radiusKm of the given point
func GetNearbyRestaurants(c *gin.Context) {
	origin, radius, ok := parseSearchParams(c)
	if !ok {
		return
	}

	var candidates []models.Restaurant
	config.DB.Find(&candidates)

	ranked, err := search.Nearby(origin, candidates, radius)
	if err != nil {
		failWith(c, err)
		return
	}

	results := make([]NearbyRestaurant, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, NearbyRestaurant{
			ID:         r.Restaurant.ID,
			Name:       r.Restaurant.Name,
			Location:   r.Restaurant.Location,
			Cuisine:    r.Restaurant.Cuisine,
			ImageURL:   r.Restaurant.ImageURL,
			DistanceKm: search.RoundKm(r.DistanceKm),
		})
	}
	respond(c, http.StatusOK, results)
}

// ProximitySearch returns full restaurant records within radiusKm of the
// given point, nearest first
func ProximitySearch(c *gin.Context) {
	origin, radius, ok := parseSearchParams(c)
	if !ok {
		return
	}

	var candidates []models.Restaurant
	config.DB.Preload("MenuItems").Find(&candidates)

	ranked, err := search.Nearby(origin, candidates, radius)
	if err != nil {
		failWith(c, err)
		return
	}

	results := make([]models.Restaurant, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, r.Restaurant)
	}
	respond(c, http.StatusOK, results)
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	info := []gin.H{
		{"from": "pending", "to": "confirmed", "actor": "merchant"},
		{"from": "pending", "to": "cancelled", "actor": "merchant or customer"},
		{"from": "confirmed", "to": "preparing", "actor": "merchant"},
		{"from": "confirmed", "to": "cancelled", "actor": "merchant or customer"},
		{"from": "preparing", "to": "delivered", "actor": "merchant"},
		{"from": "preparing", "to": "cancelled", "actor": "merchant or customer"},
	}
	respond(c, http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"delivered", "cancelled"},
		"description":     "Order lifecycle state machine",
	})
}
