package testutil

import (
	"testing"

	"restaurant-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens an in-memory SQLite database with all models migrated.
// The name keeps memory databases isolated between tests; the connection
// pool is capped at one so concurrent workers serialize instead of hitting
// SQLITE_BUSY.
func OpenTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Float returns a pointer for optional coordinate fields.
func Float(f float64) *float64 { return &f }

// SeedCustomer creates a customer, optionally with a default address at the
// given coordinates.
func SeedCustomer(t *testing.T, db *gorm.DB, name string, lat, lon *float64) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: models.RoleCustomer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	address := models.Address{
		CustomerID:  user.ID,
		AddressLine: name + "'s place",
		Latitude:    lat,
		Longitude:   lon,
		IsDefault:   true,
	}
	if err := db.Create(&address).Error; err != nil {
		t.Fatalf("seed address: %v", err)
	}
	return user
}

// SeedRestaurant creates a merchant-owned restaurant with menu items priced
// as given. Pass nil coordinates for a restaurant without a location.
func SeedRestaurant(t *testing.T, db *gorm.DB, name string, lat, lon *float64, prices ...float64) models.Restaurant {
	t.Helper()
	owner := models.User{Name: name + " owner", Email: name + "-owner@example.com", PasswordHash: "x", Role: models.RoleMerchant}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	restaurant := models.Restaurant{
		OwnerID:   owner.ID,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		IsOpen:    true,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	for _, p := range prices {
		item := models.MenuItem{
			RestaurantID: restaurant.ID,
			Name:         name + " item",
			Price:        p,
			IsAvailable:  true,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("seed menu item: %v", err)
		}
		restaurant.MenuItems = append(restaurant.MenuItems, item)
	}
	return restaurant
}
