package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-commerce-api/internal/handler"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/service"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database (embedded file, foreign keys on)
	db := database.ConnectDB()
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database schema. \n", err)
	}

	// 3. Setup change-notification hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	reportRepo := repository.NewReportRepo(db)

	customerService := service.NewCustomerService(customerRepo)
	catalogService := service.NewCatalogService(productRepo, wsHub)
	salesService := service.NewSalesService(productRepo, saleRepo, purchaseRepo, db, wsHub)
	dashService := service.NewDashboardService(reportRepo)
	adminService := service.NewAdminService(db, wsHub)

	customerHandler := handler.NewCustomerHandler(customerService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	salesHandler := handler.NewSalesHandler(salesService)
	dashHandler := handler.NewDashboardHandler(dashService)
	adminHandler := handler.NewAdminHandler(adminService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Gestion Commerciale v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// Customer Routes
	api.Get("/customers", customerHandler.GetCustomers)
	api.Post("/customers", customerHandler.CreateCustomer)
	api.Get("/customers/:id", customerHandler.GetCustomer)
	api.Put("/customers/:id", customerHandler.UpdateCustomer)
	api.Delete("/customers/:id", customerHandler.DeleteCustomer)
	api.Get("/customers/:id/sales", salesHandler.GetCustomerSales)

	// Product Routes
	api.Get("/products", catalogHandler.GetProducts)
	api.Post("/products", catalogHandler.CreateProduct)
	api.Get("/products/categories", catalogHandler.GetCategories)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Get("/products/:id/sale-details", catalogHandler.GetProductForSale)
	api.Put("/products/:id", catalogHandler.UpdateProduct)
	api.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Sale & Purchase Routes
	api.Get("/sales", salesHandler.GetSales)
	api.Post("/sales", salesHandler.CreateSale)
	api.Get("/sales/:id", salesHandler.GetSale)
	api.Get("/sales/:id/items", salesHandler.GetSaleItems)
	api.Get("/purchases", salesHandler.GetPurchases)
	api.Post("/purchases", salesHandler.CreatePurchase)

	// Dashboard Routes
	api.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	api.Get("/dashboard/sales-trend", dashHandler.GetSalesTrend)
	api.Get("/dashboard/top-products", dashHandler.GetTopProducts)

	// Maintenance Routes
	api.Post("/admin/reset", adminHandler.ResetAllData)

	// WebSocket Route (view refresh notifications)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
