package handlers

import (
	"errors"
	"net/http"

	"restaurant-marketplace-api/config"
	"restaurant-marketplace-api/geo"
	"restaurant-marketplace-api/middleware"
	"restaurant-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// errSoleAddress aborts the delete transaction when the customer would be
// left with no addresses.
var errSoleAddress = errors.New("sole address")

type AddressRequest struct {
	AddressLine string   `json:"address_line" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsDefault   bool     `json:"is_default"`
}

func validateAddressCoords(req *AddressRequest) bool {
	if req.Latitude == nil && req.Longitude == nil {
		return true
	}
	// Partial coordinates are as useless as none — require both.
	if req.Latitude == nil || req.Longitude == nil {
		return false
	}
	_, err := geo.NewCoordinate(*req.Latitude, *req.Longitude)
	return err == nil
}

// ListAddresses returns the customer's address book, default first
func ListAddresses(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var addresses []models.Address
	config.DB.Where("customer_id = ?", customerID).
		Order("is_default desc, created_at asc").
		Find(&addresses)
	respond(c, http.StatusOK, addresses)
}

// CreateAddress adds an address. The customer's first address always becomes
// the default; an explicit is_default demotes the previous default.
func CreateAddress(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validateAddressCoords(&req) {
		fail(c, http.StatusBadRequest, "latitude and longitude must both be set and in range")
		return
	}

	address := models.Address{
		CustomerID:  customerID,
		AddressLine: req.AddressLine,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsDefault:   req.IsDefault,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).
			Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			address.IsDefault = true
		} else if req.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("customer_id = ? AND is_default = ?", customerID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create address")
		return
	}
	respond(c, http.StatusCreated, address)
}

// UpdateAddress edits an address the customer owns
func UpdateAddress(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var address models.Address
	if err := config.DB.Where("id = ? AND customer_id = ?", c.Param("addressId"), customerID).
		First(&address).Error; err != nil {
		fail(c, http.StatusNotFound, "Address not found")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validateAddressCoords(&req) {
		fail(c, http.StatusBadRequest, "latitude and longitude must both be set and in range")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("customer_id = ? AND is_default = ?", customerID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
			address.IsDefault = true
		}
		address.AddressLine = req.AddressLine
		address.Latitude = req.Latitude
		address.Longitude = req.Longitude
		return tx.Save(&address).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update address")
		return
	}
	respond(c, http.StatusOK, address)
}

// SetDefaultAddress marks one address as the default, demoting the rest
func SetDefaultAddress(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var address models.Address
	if err := config.DB.Where("id = ? AND customer_id = ?", c.Param("addressId"), customerID).
		First(&address).Error; err != nil {
		fail(c, http.StatusNotFound, "Address not found")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).
			Where("customer_id = ? AND is_default = ?", customerID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&address).Update("is_default", true).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to set default address")
		return
	}
	respond(c, http.StatusOK, address)
}

// DeleteAddress removes an address. Deleting the sole remaining address is
// forbidden; deleting the default promotes the oldest remaining address so
// the customer always keeps exactly one default.
func DeleteAddress(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var address models.Address
	if err := config.DB.Where("id = ? AND customer_id = ?", c.Param("addressId"), customerID).
		First(&address).Error; err != nil {
		fail(c, http.StatusNotFound, "Address not found")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).
			Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return errSoleAddress
		}
		if err := tx.Delete(&address).Error; err != nil {
			return err
		}
		if address.IsDefault {
			var next models.Address
			if err := tx.Where("customer_id = ?", customerID).
				Order("created_at asc").First(&next).Error; err != nil {
				return err
			}
			return tx.Model(&next).Update("is_default", true).Error
		}
		return nil
	})
	if errors.Is(err, errSoleAddress) {
		fail(c, http.StatusBadRequest, "Cannot delete the only address on file")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": address.ID})
}
