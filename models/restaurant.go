package models

import (
	"time"

	"restaurant-marketplace-api/geo"
)

type Restaurant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	OwnerID     uint       `json:"owner_id" gorm:"not null"`
	Owner       User       `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string     `json:"name" gorm:"not null"`
	Cuisine     string     `json:"cuisine"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	// Optional coordinates — geospatial queries skip restaurants without them.
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	IsOpen    bool       `json:"is_open" gorm:"default:true"`
	Rating    float64    `json:"rating" gorm:"default:0"`
	MenuItems []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Coordinate returns the restaurant's location when both parts are set.
func (r *Restaurant) Coordinate() (geo.Coordinate, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}, true
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	IsVeg        bool      `json:"is_veg" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
