// Package router assembles the HTTP surface of the API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Yns1000/haybank/internal/docs" // Import swagger docs
	"github.com/Yns1000/haybank/internal/handlers"
	"github.com/Yns1000/haybank/internal/middleware"
)

// Options holds the HTTP-level settings.
type Options struct {
	AcceptRawToken bool
	AdminAPIKey    string
}

// New returns the Gin engine serving the /api/v1 routes.
func New(svc Services, opts Options) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Credentials, svc.Audit)
	userHandler := handlers.NewUserHandler(svc.Users)
	accountHandler := handlers.NewAccountHandler(svc.Accounts, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, svc.Audit)
	subCategoryHandler := handlers.NewSubCategoryHandler(svc.SubCategories, svc.Audit)
	counterpartyHandler := handlers.NewCounterpartyHandler(svc.Counterparties, svc.Audit)
	movementHandler := handlers.NewMovementHandler(svc.Movements, svc.Audit)
	transferHandler := handlers.NewTransferHandler(svc.Transfers, svc.Audit)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Total-Count, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.ContentNegotiation())

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Admin routes
	admin := v1.Group("/admin", middleware.AdminKeyMiddleware(opts.AdminAPIKey))
	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(svc.Credentials, opts.AcceptRawToken))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetUserAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PATCH("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/movements", movementHandler.GetAccountMovements)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	subCategories := protected.Group("/subcategories")
	subCategories.POST("", subCategoryHandler.CreateSubCategory)
	subCategories.GET("", subCategoryHandler.GetSubCategories)
	subCategories.GET("/:id", subCategoryHandler.GetSubCategoryByID)
	subCategories.PUT("/:id", subCategoryHandler.UpdateSubCategory)
	subCategories.DELETE("/:id", subCategoryHandler.DeleteSubCategory)

	counterparties := protected.Group("/counterparties")
	counterparties.POST("", counterpartyHandler.CreateCounterparty)
	counterparties.GET("", counterpartyHandler.GetCounterparties)
	counterparties.GET("/:id", counterpartyHandler.GetCounterpartyByID)
	counterparties.PATCH("/:id", counterpartyHandler.UpdateCounterparty)
	counterparties.DELETE("/:id", counterpartyHandler.DeleteCounterparty)

	movements := protected.Group("/movements")
	movements.POST("", movementHandler.CreateMovement)
	movements.GET("", movementHandler.GetMovements)
	movements.GET("/:id", movementHandler.GetMovementByID)
	movements.PATCH("/:id", movementHandler.UpdateMovement)
	movements.DELETE("/:id", movementHandler.DeleteMovement)

	transfers := protected.Group("/transfers")
	transfers.POST("", transferHandler.CreateTransfer)
	transfers.GET("", transferHandler.GetTransfers)
	transfers.GET("/:id", transferHandler.GetTransferByID)
	transfers.PATCH("/:id", transferHandler.UpdateTransfer)
	transfers.DELETE("/:id", transferHandler.DeleteTransfer)

	return router
}
