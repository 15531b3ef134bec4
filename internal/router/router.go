package router

import (
	"github.com/gin-gonic/gin"

	"github.com/matmarket/matmarket-backend/config"
	"github.com/matmarket/matmarket-backend/internal/app/controller"
	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/middleware"
	"github.com/matmarket/matmarket-backend/internal/websocket"
)

type Router struct {
	authController      *controller.AuthController
	catalogController   *controller.CatalogController
	cartController      *controller.CartController
	favoritesController *controller.FavoritesController
	uploadController    *controller.UploadController
	feedHub             *websocket.Hub
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	favoritesController *controller.FavoritesController,
	uploadController *controller.UploadController,
	feedHub *websocket.Hub,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		catalogController:   catalogController,
		cartController:      cartController,
		favoritesController: favoritesController,
		uploadController:    uploadController,
		feedHub:             feedHub,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "MatMarket API is running",
		})
	})

	// Live catalog feed.
	router.GET("/ws/catalog", r.feedHub.ServeWS)

	admin := string(model.RoleAdmin)
	sellers := []string{string(model.RoleCompany), string(model.RoleHybrid), admin}

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register/customer", r.authController.RegisterCustomer)
			auth.POST("/register/company", r.authController.RegisterCompany)
			auth.POST("/register/admin", r.authController.RegisterAdmin)
			auth.POST("/login", r.authController.Login)
			auth.POST("/verify-admin-code", r.authController.VerifyAdminCode)
			auth.POST("/admin-codes",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.authController.GenerateAdminCode,
			)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.catalogController.ListProducts)
			products.GET("/featured", r.catalogController.FeaturedProducts)
			products.GET("/filters", r.catalogController.GetFilterOptions)
			products.GET("/export",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.catalogController.ExportProducts,
			)
			products.POST("/reload",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.catalogController.Reload,
			)
			products.GET("/:id", r.catalogController.GetProduct)
		}

		vendors := v1.Group("/vendors")
		{
			vendors.GET("", r.catalogController.ListVendors)
			vendors.GET("/:id", r.catalogController.GetVendor)
			vendors.GET("/:id/products", r.catalogController.VendorProducts)
		}

		v1.GET("/categories", r.catalogController.ListCategories)
		v1.GET("/locations", r.catalogController.ListLocations)

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:productId", r.cartController.UpdateItem)
			cart.DELETE("/items/:productId", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.ClearCart)
			cart.POST("/checkout", r.cartController.Checkout)
			cart.GET("/orders", r.cartController.Orders)
		}

		favorites := v1.Group("/favorites")
		favorites.Use(r.authMiddleware.Authenticate())
		{
			favorites.GET("", r.favoritesController.List)
			favorites.POST("", r.favoritesController.Add)
			favorites.DELETE("/:productId", r.favoritesController.Remove)
			favorites.DELETE("", r.favoritesController.Clear)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(sellers...))
		{
			upload.POST("/image", r.uploadController.PresignImageUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
