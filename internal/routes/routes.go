package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trendovo/trendovo-golang/internal/handlers"
	"github.com/trendovo/trendovo-golang/internal/middleware"
)

// CORSMiddleware allows the storefront and the admin SPA to call the API
// from the browser.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	// Uploaded product images are served straight from disk.
	router.Static("/uploads", h.Cfg.UploadDir)

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Public Storefront Routes ---
		v1.GET("/categories", h.GetCategoryTree)
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:slug", h.GetProductBySlug)
		v1.POST("/checkout", h.Checkout)
		v1.POST("/inquiry", h.SubmitInquiry)

		// --- Admin Auth (Public) ---
		v1.POST("/admin/login", h.AdminLogin)

		// --- Admin Routes (Token Required) ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			// Products
			admin.GET("/products", h.GetAllProducts)
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.POST("/products/import", h.ImportProducts)

			// Categories
			admin.GET("/categories", h.GetAllCategories)
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)
			admin.PATCH("/categories/:id/move", h.MoveCategory)

			// Orders
			admin.GET("/orders", h.GetAllOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.PATCH("/orders/:id", h.UpdateOrder)
			admin.DELETE("/orders/:id", h.DeleteOrder)
			admin.GET("/orders/:id/invoice", h.GetOrderInvoice)

			// Image uploads
			admin.POST("/uploads", h.UploadImages)
		}
	}

	return router
}
