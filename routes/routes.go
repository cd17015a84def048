package routes

import (
	"restaurant-marketplace-api/handlers"
	"restaurant-marketplace-api/middleware"
	"restaurant-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Restaurants & menus (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		// Order lifecycle info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// Geospatial search — paths consumed verbatim by the frontend
	r.GET("/restaurants/nearby", handlers.GetNearbyRestaurants)
	r.GET("/proximity-search", handlers.ProximitySearch)

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.POST("/auth/refresh", handlers.RefreshToken)
	}

	// ── Customer routes — paths consumed verbatim by the frontend ──
	customer := r.Group("/Customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		// Orders
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/order/:orderId", handlers.GetOrderDetail)
		customer.PUT("/order/:orderId", handlers.CancelOrder)

		// Cart & checkout
		customer.GET("/cart", handlers.GetCart)
		customer.POST("/cart/items", handlers.AddCartItem)
		customer.PUT("/cart/items/:itemId", handlers.UpdateCartItem)
		customer.DELETE("/cart/items/:itemId", handlers.RemoveCartItem)
		customer.DELETE("/cart", handlers.ClearCart)
		customer.POST("/cart/checkout", handlers.CheckoutCart)

		// Address book
		customer.GET("/addresses", handlers.ListAddresses)
		customer.POST("/addresses", handlers.CreateAddress)
		customer.PUT("/addresses/:addressId", handlers.UpdateAddress)
		customer.PUT("/addresses/:addressId/default", handlers.SetDefaultAddress)
		customer.DELETE("/addresses/:addressId", handlers.DeleteAddress)
	}

	// ── Merchant routes ────────────────────────────────────────────
	merchant := r.Group("/api/merchant")
	merchant.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleMerchant))
	{
		// Restaurant management
		merchant.POST("/restaurant", handlers.CreateRestaurant)
		merchant.GET("/restaurant", handlers.GetMyRestaurant)
		merchant.PUT("/restaurant", handlers.UpdateRestaurant)

		// Menu management
		merchant.POST("/menu", handlers.AddMenuItem)
		merchant.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		merchant.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Order management
		merchant.GET("/orders", handlers.GetMerchantOrders)
		merchant.PUT("/orders/:orderId/status", handlers.UpdateOrderStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/restaurants", handlers.AdminGetAllRestaurants)
	}
}
