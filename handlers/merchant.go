package handlers

import (
	"net/http"

	"restaurant-marketplace-api/config"
	"restaurant-marketplace-api/geo"
	"restaurant-marketplace-api/middleware"
	"restaurant-marketplace-api/models"
	"restaurant-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string   `json:"name" binding:"required"`
	Cuisine     string   `json:"cuisine"`
	Location    string   `json:"location" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func validRestaurantCoords(lat, lon *float64) bool {
	if lat == nil && lon == nil {
		return true
	}
	if lat == nil || lon == nil {
		return false
	}
	_, err := geo.NewCoordinate(*lat, *lon)
	return err == nil
}

// CreateRestaurant lets a merchant create their restaurant
func CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validRestaurantCoords(req.Latitude, req.Longitude) {
		fail(c, http.StatusBadRequest, "latitude and longitude must both be set and in range")
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsOpen:      true,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}
	respond(c, http.StatusCreated, restaurant)
}

// GetMyRestaurant fetches the restaurant owned by the logged-in merchant
func GetMyRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "No restaurant found for your account")
		return
	}
	respond(c, http.StatusOK, restaurant)
}

// UpdateRestaurant updates restaurant details
func UpdateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{
		"name": true, "cuisine": true, "location": true, "description": true,
		"image_url": true, "is_open": true, "latitude": true, "longitude": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&restaurant).Updates(update)
	respond(c, http.StatusOK, restaurant)
}

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	IsVeg       bool    `json:"is_veg"`
}

// AddMenuItem adds a new item to the restaurant's menu
func AddMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "Create a restaurant first before adding menu items")
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsVeg:        req.IsVeg,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to add menu item")
		return
	}
	respond(c, http.StatusCreated, item)
}

// UpdateMenuItem updates a menu item (only by the owner)
func UpdateMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		fail(c, http.StatusNotFound, "Menu item not found")
		return
	}

	// Verify ownership
	var restaurant models.Restaurant
	if err := config.DB.Where("id = ? AND owner_id = ?", item.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusForbidden, "You don't own this menu item")
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	config.DB.Model(&item).Updates(req)
	respond(c, http.StatusOK, item)
}

// DeleteMenuItem removes a menu item
func DeleteMenuItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		fail(c, http.StatusNotFound, "Menu item not found")
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.Where("id = ? AND owner_id = ?", item.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusForbidden, "You don't own this menu item")
		return
	}
	config.DB.Delete(&item)
	respond(c, http.StatusOK, gin.H{"deleted": item.ID})
}

// ── Order Management ────────────────────────────────────────────────────────

// GetMerchantOrders returns all orders for the merchant's restaurant with a
// per-status summary
func GetMerchantOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "No restaurant found for your account")
		return
	}

	var restaurantOrders []models.Order
	query := config.DB.Preload("LineItems").Preload("Customer").
		Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&restaurantOrders)

	summary := map[string]int{}
	for _, o := range restaurantOrders {
		summary[string(o.Status)]++
	}

	respond(c, http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"orders":        restaurantOrders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles the merchant's state transitions
func UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	orderID := c.Param("orderId")

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "No restaurant found for your account")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	if order.RestaurantID != restaurant.ID {
		fail(c, http.StatusForbidden, "This order does not belong to your restaurant")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "merchant"); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	prevStatus := order.Status
	// Transition and audit row commit together, like order placement.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  ownerID,
			Note:       req.Note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"order_id":        order.ID,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}
