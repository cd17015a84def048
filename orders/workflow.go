package orders

import (
	"fmt"
	"log"
	"sync"
	"time"

	"restaurant-marketplace-api/models"
	"restaurant-marketplace-api/pricing"

	"gorm.io/gorm"
)

// ItemRequest is one (menu item, quantity) pairing in a placement request.
type ItemRequest struct {
	MenuItemID uint `json:"id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// Receipt is returned to the caller after a successful placement.
type Receipt struct {
	OrderID     uint               `json:"orderId"`
	Total       float64            `json:"total"`
	DeliveryFee float64            `json:"deliveryFee"`
	Status      models.OrderStatus `json:"status"`
	OrderDate   time.Time          `json:"orderDate"`
	Address     string             `json:"address"`
}

// FailedOrder describes one restaurant group that could not be placed
// during a multi-restaurant checkout.
type FailedOrder struct {
	RestaurantName string `json:"restaurantName"`
	Error          string `json:"error"`
}

// CheckoutResult aggregates the independent per-restaurant placements of a
// cart checkout. One group's failure never rolls back another's order.
type CheckoutResult struct {
	SuccessfulOrders []uint        `json:"successfulOrders"`
	FailedOrders     []FailedOrder `json:"failedOrders"`
}

// Workflow orchestrates order placement: validate, price, persist the order
// header and all line items in one transaction, then clear the matching cart
// items best-effort.
type Workflow struct {
	db     *gorm.DB
	engine *pricing.Engine
}

func NewWorkflow(db *gorm.DB) *Workflow {
	return &Workflow{db: db, engine: pricing.NewEngine(db)}
}

// PlaceOrder runs the full placement sequence for one restaurant. Any step's
// failure short-circuits and leaves no partial state visible: the order and
// its line items are committed together or not at all. Cart clearing happens
// after commit and its failure does not undo the order.
func (w *Workflow) PlaceOrder(customerID, restaurantID uint, items []ItemRequest) (*Receipt, error) {
	if err := validateRequest(customerID, restaurantID, items); err != nil {
		return nil, err
	}

	lines := make([]pricing.LineRequest, len(items))
	for i, it := range items {
		lines[i] = pricing.LineRequest{MenuItemID: it.MenuItemID, Quantity: it.Quantity}
	}
	priced, err := w.engine.Price(customerID, restaurantID, lines)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		Status:          models.StatusPending,
		Total:           priced.OrderTotal,
		DeliveryFee:     priced.DeliveryFee,
		DeliveryAddress: priced.DeliveryAddressLine,
	}
	for _, l := range priced.Lines {
		order.LineItems = append(order.LineItems, models.OrderLineItem{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Subtotal:   l.Subtotal,
		})
	}

	err = w.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: customerID,
			Note:      "Order placed by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	w.clearCartItems(customerID, items)

	return &Receipt{
		OrderID:     order.ID,
		Total:       order.Total,
		DeliveryFee: order.DeliveryFee,
		Status:      order.Status,
		OrderDate:   order.CreatedAt,
		Address:     order.DeliveryAddress,
	}, nil
}

// CheckoutCart partitions the customer's cart by restaurant and places one
// order per group. Groups run concurrently as independent transactions and
// the result waits for all of them — one failure never aborts the others.
func (w *Workflow) CheckoutCart(customerID uint) (*CheckoutResult, error) {
	var cart models.Cart
	if err := w.db.Preload("Items.MenuItem").
		Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		return nil, ErrEmptyCart
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	groups := map[uint][]ItemRequest{}
	for _, ci := range cart.Items {
		rid := ci.MenuItem.RestaurantID
		groups[rid] = append(groups[rid], ItemRequest{MenuItemID: ci.MenuItemID, Quantity: ci.Quantity})
	}

	restaurantNames := map[uint]string{}
	ids := make([]uint, 0, len(groups))
	for rid := range groups {
		ids = append(ids, rid)
	}
	var restaurants []models.Restaurant
	if err := w.db.Where("id IN ?", ids).Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("resolve restaurants: %w", err)
	}
	for _, r := range restaurants {
		restaurantNames[r.ID] = r.Name
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result CheckoutResult
	)
	result.SuccessfulOrders = []uint{}
	result.FailedOrders = []FailedOrder{}
	for rid, items := range groups {
		wg.Add(1)
		go func(rid uint, items []ItemRequest) {
			defer wg.Done()
			receipt, err := w.PlaceOrder(customerID, rid, items)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				name := restaurantNames[rid]
				if name == "" {
					name = fmt.Sprintf("restaurant #%d", rid)
				}
				result.FailedOrders = append(result.FailedOrders, FailedOrder{
					RestaurantName: name,
					Error:          err.Error(),
				})
				return
			}
			result.SuccessfulOrders = append(result.SuccessfulOrders, receipt.OrderID)
		}(rid, items)
	}
	wg.Wait()
	return &result, nil
}

func validateRequest(customerID, restaurantID uint, items []ItemRequest) error {
	if customerID == 0 {
		return fmt.Errorf("%w: customer id is required", ErrValidation)
	}
	if restaurantID == 0 {
		return fmt.Errorf("%w: restaurant id is required", ErrValidation)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: items must be a non-empty array", ErrValidation)
	}
	for _, it := range items {
		if it.MenuItemID == 0 {
			return fmt.Errorf("%w: item id must be a positive integer", ErrValidation)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
		}
	}
	return nil
}

// clearCartItems deletes the just-ordered items from the customer's cart.
// Best-effort: no cart is a no-op, and a failure here does not roll back the
// already-committed order.
func (w *Workflow) clearCartItems(customerID uint, items []ItemRequest) {
	var cart models.Cart
	if err := w.db.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
		return
	}
	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.MenuItemID
	}
	if err := w.db.Where("cart_id = ? AND menu_item_id IN ?", cart.ID, ids).
		Delete(&models.CartItem{}).Error; err != nil {
		log.Printf("cart clear after order failed (customer %d): %v", customerID, err)
	}
}
