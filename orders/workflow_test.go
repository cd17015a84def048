package orders

import (
	"testing"

	"restaurant-marketplace-api/models"
	"restaurant-marketplace-api/pricing"
	"restaurant-marketplace-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_Success(t *testing.T) {
	db := testutil.OpenTestDB(t, "workflow_success")
	customer := testutil.SeedCustomer(t, db, "alice", testutil.Float(0), testutil.Float(0))
	restaurant := testutil.SeedRestaurant(t, db, "corner", testutil.Float(0), testutil.Float(0), 100.0, 50.5)

	// Put the same items in the cart so placement can clear them.
	cart := models.Cart{CustomerID: customer.ID}
	require.NoError(t, db.Create(&cart).Error)
	for _, m := range restaurant.MenuItems {
		require.NoError(t, db.Create(&models.CartItem{
			CartID: cart.ID, MenuItemID: m.ID, Quantity: 1, UnitPrice: m.Price,
		}).Error)
	}

	w := NewWorkflow(db)
	receipt, err := w.PlaceOrder(customer.ID, restaurant.ID, []ItemRequest{
		{MenuItemID: restaurant.MenuItems[0].ID, Quantity: 2},
		{MenuItemID: restaurant.MenuItems[1].ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, receipt.Status)
	assert.Equal(t, 255.5, receipt.Total)
	assert.Equal(t, 5.0, receipt.DeliveryFee)
	assert.Equal(t, "alice's place", receipt.Address)

	var order models.Order
	require.NoError(t, db.Preload("LineItems").First(&order, receipt.OrderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.LineItems, 2)
	assert.Equal(t, 200.0, order.LineItems[0].Subtotal)

	var history []models.OrderStatusHistory
	db.Where("order_id = ?", order.ID).Find(&history)
	require.Len(t, history, 1)
	assert.Equal(t, models.StatusPending, history[0].ToStatus)

	// Cart was cleared of the ordered restaurant's items.
	var remaining int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestPlaceOrder_ValidationNeverReachesPersistence(t *testing.T) {
	db := testutil.OpenTestDB(t, "workflow_validation")
	w := NewWorkflow(db)

	tests := []struct {
		name         string
		customerID   uint
		restaurantID uint
		items        []ItemRequest
	}{
		{"missing_customer", 0, 1, []ItemRequest{{MenuItemID: 1, Quantity: 1}}},
		{"missing_restaurant", 1, 0, []ItemRequest{{MenuItemID: 1, Quantity: 1}}},
		{"empty_items", 1, 1, nil},
		{"zero_item_id", 1, 1, []ItemRequest{{MenuItemID: 0, Quantity: 1}}},
		{"zero_quantity", 1, 1, []ItemRequest{{MenuItemID: 1, Quantity: 0}}},
		{"negative_quantity", 1, 1, []ItemRequest{{MenuItemID: 1, Quantity: -3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.PlaceOrder(tt.customerID, tt.restaurantID, tt.items)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestPlaceOrder_NoDefaultAddressLeavesNoOrder(t *testing.T) {
	db := testutil.OpenTestDB(t, "workflow_no_address")
	customer := models.User{Name: "noaddr", Email: "noaddr@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&customer).Error)
	restaurant := testutil.SeedRestaurant(t, db, "somewhere", testutil.Float(0), testutil.Float(0), 10.0)

	w := NewWorkflow(db)
	_, err := w.PlaceOrder(customer.ID, restaurant.ID, []ItemRequest{
		{MenuItemID: restaurant.MenuItems[0].ID, Quantity: 1},
	})
	assert.ErrorIs(t, err, pricing.ErrNoDefaultAddress)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutCart_MultiRestaurant(t *testing.T) {
	db := testutil.OpenTestDB(t, "workflow_checkout")
	customer := testutil.SeedCustomer(t, db, "carol", testutil.Float(0), testutil.Float(0))
	restaurantA := testutil.SeedRestaurant(t, db, "alpha", testutil.Float(0), testutil.Float(0.01), 20.0, 30.0)
	restaurantB := testutil.SeedRestaurant(t, db, "beta", testutil.Float(0.01), testutil.Float(0), 40.0)

	cart := models.Cart{CustomerID: customer.ID}
	require.NoError(t, db.Create(&cart).Error)
	for _, m := range restaurantA.MenuItems {
		require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, MenuItemID: m.ID, Quantity: 1, UnitPrice: m.Price}).Error)
	}
	require.NoError(t, db.Create(&models.CartItem{
		CartID: cart.ID, MenuItemID: restaurantB.MenuItems[0].ID, Quantity: 2, UnitPrice: 40.0,
	}).Error)

	w := NewWorkflow(db)
	result, err := w.CheckoutCart(customer.ID)
	require.NoError(t, err)

	assert.Len(t, result.SuccessfulOrders, 2)
	assert.Empty(t, result.FailedOrders)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, 2, orderCount)

	var remaining int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestCheckoutCart_PartialFailureIsIndependent(t *testing.T) {
	db := testutil.OpenTestDB(t, "workflow_partial")
	customer := testutil.SeedCustomer(t, db, "dave", testutil.Float(0), testutil.Float(0))
	good := testutil.SeedRestaurant(t, db, "good", testutil.Float(0), testutil.Float(0.01), 20.0)
	// No coordinates: pricing for this group fails with MissingLocation.
	broken := testutil.SeedRestaurant(t, db, "broken", nil, nil, 15.0)

	cart := models.Cart{CustomerID: customer.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID: cart.ID, MenuItemID: good.MenuItems[0].ID, Quantity: 1, UnitPrice: 20.0,
	}).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID: cart.ID, MenuItemID: broken.MenuItems[0].ID, Quantity: 1, UnitPrice: 15.0,
	}).Error)

	w := NewWorkflow(db)
	result, err := w.CheckoutCart(customer.ID)
	require.NoError(t, err)

	assert.Len(t, result.SuccessfulOrders, 1)
	require.Len(t, result.FailedOrders, 1)
	assert.Equal(t, "broken", result.FailedOrders[0].RestaurantName)
	assert.Contains(t, result.FailedOrders[0].Error, "no location")

	// The successful branch committed; the failed branch's items stay in the
	// cart untouched.
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, 1, orderCount)

	var remaining []models.CartItem
	db.Where("cart_id = ?", cart.ID).Find(&remaining)
	require.Len(t, remaining, 1)
	assert.Equal(t, broken.MenuItems[0].ID, remaining[0].MenuItemID)
}

func TestCheckoutCart_EmptyCart(t *testing.T) {
	db := testutil.OpenTestDB(t, "workflow_empty_cart")
	customer := testutil.SeedCustomer(t, db, "erin", testutil.Float(0), testutil.Float(0))

	w := NewWorkflow(db)
	_, err := w.CheckoutCart(customer.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	cart := models.Cart{CustomerID: customer.ID}
	require.NoError(t, db.Create(&cart).Error)
	_, err = w.CheckoutCart(customer.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}
