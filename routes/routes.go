package routes

import (
	"studio-akira-api/handlers"
	"studio-akira-api/middleware"
	"studio-akira-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog (no auth needed)
		public.GET("/products", handlers.ListProducts)
		public.GET("/products/:id", handlers.GetProduct)

		// CMS pages
		public.GET("/pages", handlers.GetPage)
		public.GET("/pages/:pageId", handlers.GetPage)

		// State machine info
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.GET("/auth/session", handlers.CheckSession)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		// Cart
		customer.GET("/cart", handlers.GetCart)
		customer.GET("/cart/count", handlers.CartCount)
		customer.POST("/cart", handlers.AddToCart)
		customer.PUT("/cart/:productId", handlers.UpdateCartItem)
		customer.DELETE("/cart/:productId", handlers.RemoveCartItem)
		customer.DELETE("/cart", handlers.ClearCart)

		// Wishlist
		customer.GET("/wishlist", handlers.GetWishlist)
		customer.POST("/wishlist/:productId", handlers.ToggleWishlist)

		// Orders
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Manufacturer routes ────────────────────────────────────────
	manufacturer := r.Group("/api/manufacturer")
	manufacturer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleManufacturer), middleware.ActiveRequired())
	{
		manufacturer.GET("/orders", handlers.GetProductionOrders)
		manufacturer.PUT("/orders/:id/status", handlers.UpdateProductionStatus)
	}

	// ── Delivery routes ────────────────────────────────────────────
	delivery := r.Group("/api/delivery")
	delivery.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDelivery), middleware.ActiveRequired())
	{
		delivery.GET("/orders/available", handlers.GetAvailableShipments)
		delivery.GET("/orders/my-shipments", handlers.GetMyShipments)
		delivery.PUT("/orders/:id/ship", handlers.ShipOrder)
		delivery.PUT("/orders/:id/deliver", handlers.DeliverOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/approvals", handlers.ListApprovalRequests)
		admin.PUT("/approvals/:id/approve", handlers.ApproveRequest)
		admin.PUT("/approvals/:id/reject", handlers.RejectRequest)

		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/force-status", handlers.AdminForceOrderStatus)

		admin.POST("/products", handlers.CreateProduct)
		admin.PUT("/products/:id", handlers.UpdateProduct)
		admin.DELETE("/products/:id", handlers.DeleteProduct)

		admin.PUT("/content/:docId", handlers.UpsertContentDocument)
	}
}
