package handlers

import (
	"net/http"

	"restaurant-marketplace-api/config"
	"restaurant-marketplace-api/middleware"
	"restaurant-marketplace-api/models"
	"restaurant-marketplace-api/orders"
	"restaurant-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	CustomerID   uint                 `json:"customerId"`
	RestaurantID uint                 `json:"restaurantId" binding:"required"`
	Items        []orders.ItemRequest `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates a new order for the authenticated customer
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	// The body may carry customerId for contract compatibility, but it must
	// match the authenticated identity.
	if req.CustomerID != 0 && req.CustomerID != customerID {
		fail(c, http.StatusForbidden, "Cannot place an order for another customer")
		return
	}

	workflow := orders.NewWorkflow(config.DB)
	receipt, err := workflow.PlaceOrder(customerID, req.RestaurantID, req.Items)
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusCreated, receipt)
}

// CheckoutCart places one order per restaurant represented in the cart.
// Groups are placed concurrently and independently — one restaurant failing
// does not undo another's order.
func CheckoutCart(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	workflow := orders.NewWorkflow(config.DB)
	result, err := workflow.CheckoutCart(customerID)
	if err != nil {
		failWith(c, err)
		return
	}
	respond(c, http.StatusCreated, result)
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var myOrders []models.Order
	config.DB.Preload("LineItems").Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&myOrders)
	respond(c, http.StatusOK, myOrders)
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("orderId")

	var order models.Order
	if err := config.DB.
		Preload("LineItems.MenuItem").
		Preload("Restaurant").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	if order.CustomerID != customerID {
		fail(c, http.StatusForbidden, "This order does not belong to you")
		return
	}
	respond(c, http.StatusOK, order)
}

// CancelOrder cancels an order while it is still in a cancellable status
// (pending, confirmed, or preparing)
func CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("orderId")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	if order.CustomerID != customerID {
		fail(c, http.StatusForbidden, "This order does not belong to you")
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	prevStatus := order.Status
	// Transition and audit row commit together, like order placement.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   models.StatusCancelled,
			ChangedBy:  customerID,
			Note:       "Order cancelled by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	respond(c, http.StatusOK, orders.Receipt{
		OrderID:     order.ID,
		Total:       order.Total,
		DeliveryFee: order.DeliveryFee,
		Status:      models.StatusCancelled,
		OrderDate:   order.CreatedAt,
		Address:     order.DeliveryAddress,
	})
}
