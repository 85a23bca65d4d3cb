package routes

import (
	"time"

	"bookstore-backend/handlers"
	"bookstore-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	bookHandler := &handlers.BookHandler{DB: db}
	albumHandler := &handlers.AlbumHandler{DB: db}
	licenseHandler := &handlers.LicenseHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/auth/login", authLimiter.Middleware(), authHandler.Login)

		// Public catalog routes
		api.GET("/books", bookHandler.GetBooks)
		api.GET("/books/:id", bookHandler.GetBook)
		api.GET("/albums", albumHandler.GetAlbums)
		api.GET("/albums/:id", albumHandler.GetAlbum)
		api.GET("/licenses", licenseHandler.GetLicenses)
		api.GET("/licenses/:id", licenseHandler.GetLicense)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// User profile
		protected.GET("/auth/profile", authHandler.GetProfile)

		// Cart routes
		protected.GET("/cart", cartHandler.GetCart)
		protected.POST("/cart/add", cartHandler.AddProduct)
		protected.POST("/cart/remove", cartHandler.RemoveProduct)
		protected.GET("/cart/totals", cartHandler.GetTotals)
		protected.DELETE("/cart", cartHandler.ClearCart)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Catalog management
		admin.POST("/books", bookHandler.CreateBook)
		admin.PUT("/books/:id", bookHandler.UpdateBook)
		admin.DELETE("/books/:id", bookHandler.DeleteBook)

		admin.POST("/albums", albumHandler.CreateAlbum)
		admin.DELETE("/albums/:id", albumHandler.DeleteAlbum)

		admin.POST("/licenses", licenseHandler.CreateLicense)
		admin.DELETE("/licenses/:id", licenseHandler.DeleteLicense)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
