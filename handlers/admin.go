package handlers

import (
	"net/http"

	"restaurant-marketplace-api/config"
	"restaurant-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns all orders with full detail — admin only
func AdminGetAllOrders(c *gin.Context) {
	var allOrders []models.Order
	query := config.DB.Preload("LineItems").
		Preload("Customer").Preload("Restaurant").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	query.Order("created_at desc").Find(&allOrders)

	// Dashboard aggregate by status
	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range allOrders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.Total
		}
	}

	respond(c, http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"orders":        allOrders,
	})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	respond(c, http.StatusOK, users)
}

// AdminGetAllRestaurants returns all restaurants — admin only
func AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	config.DB.Preload("Owner").Preload("MenuItems").Find(&restaurants)
	respond(c, http.StatusOK, restaurants)
}
