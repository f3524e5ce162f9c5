package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/config"
	domainRepo "github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/internal/presentation/http/handler"
	"github.com/peakers/pos-api/internal/presentation/http/middleware"
	"github.com/peakers/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Supplier  *handler.SupplierHandler
	Material  *handler.MaterialHandler
	Expense   *handler.ExpenseHandler
	Sale      *handler.SaleHandler
	Company   *handler.CompanyHandler
	Dashboard *handler.DashboardHandler
	Register  *handler.RegisterHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Company details (receipt header)
	protected.GET("/company", h.Company.Get)
	protected.PUT("/company", h.Company.Update)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Summary)

	// Products and categories
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)
		categories.POST("", h.Product.CreateCategory)
		categories.DELETE("/:id", h.Product.DeleteCategory)
	}

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Suppliers
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}

	// Materials
	materials := protected.Group("/materials")
	{
		materials.GET("", h.Material.List)
		materials.POST("", h.Material.Create)
		materials.GET("/:id", h.Material.Get)
		materials.PUT("/:id", h.Material.Update)
		materials.POST("/:id/adjust", h.Material.Adjust)
		materials.DELETE("/:id", h.Material.Delete)
	}

	// Expenses
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.DELETE("/:id", h.Expense.Delete)
	}

	// Sales history and direct submission. Creation requires an
	// idempotency key so a retried request never commits twice.
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", middleware.IdempotencyRequired(deps.IdempotencyRepo), h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id/status", h.Sale.UpdateStatus)
		sales.POST("/:id/cancel", h.Sale.Cancel)
	}

	// Thermal printer status and reprints
	printerRoutes := protected.Group("/printer")
	{
		printerRoutes.GET("/status", h.Printer.Status)
		printerRoutes.POST("/test", h.Printer.Test)
		printerRoutes.POST("/receipt/:id", h.Printer.PrintReceipt)
	}

	// The register: per-operator session driving cart and checkout
	register := protected.Group("/register")
	{
		register.GET("/catalog", h.Register.Catalog)
		register.GET("/cart", h.Register.Cart)
		register.POST("/cart/items", h.Register.AddItem)
		register.DELETE("/cart/items/:id", h.Register.RemoveItem)
		register.DELETE("/cart", h.Register.ClearCart)
		register.PUT("/vat-rate", h.Register.SetVATRate)
		register.PUT("/discount", h.Register.SetDiscount)
		register.GET("/customers", h.Register.Customers)
		register.POST("/customers", h.Register.CreateCustomer)
		register.PUT("/customer", h.Register.SelectCustomer)
		register.DELETE("/customer", h.Register.ClearCustomer)
		register.POST("/checkout", middleware.IdempotencyRequired(deps.IdempotencyRepo), h.Register.Checkout)
	}
}
