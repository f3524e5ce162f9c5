package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/config"
	"github.com/peakers/pos-api/internal/infrastructure/database"
	"github.com/peakers/pos-api/internal/infrastructure/repository"
	"github.com/peakers/pos-api/internal/pos"
	"github.com/peakers/pos-api/internal/presentation/http/handler"
	"github.com/peakers/pos-api/internal/presentation/http/routes"
	"github.com/peakers/pos-api/pkg/printer"
	"github.com/peakers/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, categoryRepo)
	customerService := service.NewCustomerService(customerRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	materialService := service.NewMaterialService(materialRepo, supplierRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo)
	companyService := service.NewCompanyService(userRepo)
	dashboardService := service.NewDashboardService(saleRepo, expenseRepo, customerRepo, productRepo)

	// Wire the register engine onto the services
	registerManager := pos.NewManager(
		service.NewCatalogAdapter(productService),
		service.NewCustomerAdapter(customerService),
		service.NewSaleAdapter(saleService),
		service.NewCompanyAdapter(companyService),
		cfg.Sales.Currency,
		cfg.Sales.VATRate,
	)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	printerService := service.NewPrinterService(
		thermalPrinter,
		saleService,
		companyService,
		cfg.Printer.Type,
		cfg.Printer.Width,
		cfg.Sales.Currency,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Material:  handler.NewMaterialHandler(materialService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Sale:      handler.NewSaleHandler(saleService),
		Company:   handler.NewCompanyHandler(companyService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Register:  handler.NewRegisterHandler(registerManager, thermalPrinter, cfg.Printer.Width),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
