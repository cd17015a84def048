package models

import (
	"time"

	"restaurant-marketplace-api/geo"
)

// Address belongs to exactly one customer. Latitude/Longitude are optional —
// pricing and proximity queries skip addresses that lack them.
// A customer with at least one address has exactly one with IsDefault set.
type Address struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CustomerID  uint      `json:"customer_id" gorm:"not null;index"`
	AddressLine string    `json:"address_line" gorm:"not null"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	IsDefault   bool      `json:"is_default" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Coordinate returns the address location when both parts are set.
func (a *Address) Coordinate() (geo.Coordinate, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Latitude: *a.Latitude, Longitude: *a.Longitude}, true
}
