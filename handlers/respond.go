package handlers

import (
	"errors"
	"net/http"

	"restaurant-marketplace-api/geo"
	"restaurant-marketplace-api/orders"
	"restaurant-marketplace-api/pricing"
	"restaurant-marketplace-api/search"

	"github.com/gin-gonic/gin"
)

// respond writes the success envelope shared by every endpoint.
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail writes the failure envelope with a human-readable message.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// failWith maps a core error to its HTTP status: 400 for validation and
// business-rule failures, 404 for not-found, 500 for everything unexpected.
func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orders.ErrValidation),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, pricing.ErrNoDefaultAddress),
		errors.Is(err, pricing.ErrMissingLocation),
		errors.Is(err, pricing.ErrInvalidLineItems),
		errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, geo.ErrInvalidCoordinate),
		errors.Is(err, search.ErrInvalidRadius):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrCustomerNotFound),
		errors.Is(err, pricing.ErrRestaurantNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
