package pricing

import (
	"errors"
	"fmt"

	"restaurant-marketplace-api/geo"
	"restaurant-marketplace-api/models"

	"gorm.io/gorm"
)

// LineRequest is one requested (menu item, quantity) pairing.
type LineRequest struct {
	MenuItemID uint
	Quantity   int
}

// PricedLine is a line item with its price snapshotted at resolution time.
type PricedLine struct {
	MenuItemID uint
	Name       string
	Quantity   int
	UnitPrice  float64
	Subtotal   float64
}

// PricedOrder is the full pricing breakdown for one order. It is the exact
// input to order persistence — no further computation happens after pricing.
type PricedOrder struct {
	ItemsTotal          float64
	DeliveryFee         float64
	OrderTotal          float64
	DistanceKm          float64
	DeliveryAddressLine string
	Lines               []PricedLine
}

// Engine resolves the customer's default address and the restaurant's
// location, computes distance and delivery fee, and prices line items
// against the restaurant's own catalog. Every pricing call re-reads current
// data so the result reflects the latest catalog and address state.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Price runs the pricing steps in order, each a hard precondition for the
// next: default address, restaurant, locations, distance and fee, catalog
// resolution, quantities, totals.
func (e *Engine) Price(customerID, restaurantID uint, lines []LineRequest) (*PricedOrder, error) {
	var customer models.User
	if err := e.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	var address models.Address
	if err := e.db.Where("customer_id = ? AND is_default = ?", customerID, true).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoDefaultAddress
		}
		return nil, fmt.Errorf("resolve default address: %w", err)
	}

	var restaurant models.Restaurant
	if err := e.db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("resolve restaurant: %w", err)
	}

	origin, ok := address.Coordinate()
	if !ok {
		return nil, ErrMissingLocation
	}
	destination, ok := restaurant.Coordinate()
	if !ok {
		return nil, ErrMissingLocation
	}

	distanceKm, err := geo.DistanceKm(origin, destination)
	if err != nil {
		return nil, fmt.Errorf("compute distance: %w", err)
	}
	fee := DeliveryFee(distanceKm)

	// Resolve requested items against this restaurant's catalog only.
	// A shortfall means at least one item belongs elsewhere (or doesn't
	// exist) — rejected wholesale, no partial acceptance.
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, l := range lines {
		if !seen[l.MenuItemID] {
			seen[l.MenuItemID] = true
			ids = append(ids, l.MenuItemID)
		}
	}
	var menuItems []models.MenuItem
	if err := e.db.Where("restaurant_id = ? AND id IN ?", restaurantID, ids).
		Find(&menuItems).Error; err != nil {
		return nil, fmt.Errorf("resolve menu items: %w", err)
	}
	if len(menuItems) != len(ids) {
		return nil, ErrInvalidLineItems
	}
	byID := make(map[uint]models.MenuItem, len(menuItems))
	for _, m := range menuItems {
		byID[m.ID] = m
	}

	priced := &PricedOrder{
		DeliveryFee:         fee,
		DistanceKm:          distanceKm,
		DeliveryAddressLine: address.AddressLine,
		Lines:               make([]PricedLine, 0, len(lines)),
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		item := byID[l.MenuItemID]
		subtotal := item.Price * float64(l.Quantity)
		priced.ItemsTotal += subtotal
		priced.Lines = append(priced.Lines, PricedLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   l.Quantity,
			UnitPrice:  item.Price,
			Subtotal:   subtotal,
		})
	}
	priced.OrderTotal = priced.ItemsTotal + priced.DeliveryFee
	return priced, nil
}
