package handlers

import (
	"errors"
	"net/http"

	"restaurant-marketplace-api/config"
	"restaurant-marketplace-api/middleware"
	"restaurant-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// getOrCreateCart lazily creates the customer's cart on first use
func getOrCreateCart(customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cart = models.Cart{CustomerID: customerID}
	if err := config.DB.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart returns the customer's cart with items and a running total
func GetCart(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var cart models.Cart
	if err := config.DB.Preload("Items.MenuItem").
		Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		// No cart yet is an empty cart, not an error.
		respond(c, http.StatusOK, gin.H{"items": []models.CartItem{}, "items_total": 0.0})
		return
	}

	var itemsTotal float64
	for _, item := range cart.Items {
		itemsTotal += item.UnitPrice * float64(item.Quantity)
	}
	respond(c, http.StatusOK, gin.H{"items": cart.Items, "items_total": itemsTotal})
}

type AddCartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// AddCartItem puts a menu item in the cart, snapshotting its current price.
// Adding an item already in the cart merges the quantities.
func AddCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var menuItem models.MenuItem
	if err := config.DB.First(&menuItem, req.MenuItemID).Error; err != nil {
		fail(c, http.StatusNotFound, "Menu item not found")
		return
	}
	if !menuItem.IsAvailable {
		fail(c, http.StatusBadRequest, "Menu item '"+menuItem.Name+"' is not available")
		return
	}

	cart, err := getOrCreateCart(customerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	var item models.CartItem
	err = config.DB.Where("cart_id = ? AND menu_item_id = ?", cart.ID, req.MenuItemID).
		First(&item).Error
	if err == nil {
		item.Quantity += req.Quantity
		if err := config.DB.Save(&item).Error; err != nil {
			fail(c, http.StatusInternalServerError, "Failed to update cart item")
			return
		}
		respond(c, http.StatusOK, item)
		return
	}

	item = models.CartItem{
		CartID:     cart.ID,
		MenuItemID: menuItem.ID,
		Quantity:   req.Quantity,
		UnitPrice:  menuItem.Price,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to add cart item")
		return
	}
	respond(c, http.StatusCreated, item)
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItem changes the quantity of a cart line
func UpdateCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var cart models.Cart
	if err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		fail(c, http.StatusNotFound, "Cart is empty")
		return
	}

	var item models.CartItem
	if err := config.DB.Where("id = ? AND cart_id = ?", c.Param("itemId"), cart.ID).
		First(&item).Error; err != nil {
		fail(c, http.StatusNotFound, "Cart item not found")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	item.Quantity = req.Quantity
	if err := config.DB.Save(&item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update cart item")
		return
	}
	respond(c, http.StatusOK, item)
}

// RemoveCartItem deletes one line from the cart
func RemoveCartItem(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var cart models.Cart
	if err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		fail(c, http.StatusNotFound, "Cart is empty")
		return
	}

	var item models.CartItem
	if err := config.DB.Where("id = ? AND cart_id = ?", c.Param("itemId"), cart.ID).
		First(&item).Error; err != nil {
		fail(c, http.StatusNotFound, "Cart item not found")
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": item.ID})
}

// ClearCart empties the customer's cart
func ClearCart(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var cart models.Cart
	if err := config.DB.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		respond(c, http.StatusOK, gin.H{"cleared": 0})
		return
	}

	result := config.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	respond(c, http.StatusOK, gin.H{"cleared": result.RowsAffected})
}
