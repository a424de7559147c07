package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-orders/internal/cache"
	"go-inventory-orders/internal/config"
	"go-inventory-orders/internal/export"
	"go-inventory-orders/internal/handler"
	"go-inventory-orders/internal/middleware"
	"go-inventory-orders/internal/model"
	"go-inventory-orders/internal/panel"
	"go-inventory-orders/internal/repository"
	"go-inventory-orders/internal/service"
	"go-inventory-orders/internal/sku"
	"go-inventory-orders/internal/storage"
	"go-inventory-orders/internal/store"
	"go-inventory-orders/internal/ws"
	"go-inventory-orders/pkg/database"
	"go-inventory-orders/pkg/jwt"
	"go-inventory-orders/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

const catalogCacheTTL = 10 * time.Minute

func main() {
	// 1. Load Env
	envErr := godotenv.Load()
	cfg := config.Load()
	jwt.SetSecret(cfg.JWTSecret)

	log := logger.New(cfg.IsProduction())
	if envErr != nil {
		log.Warn(".env file not found, relying on system env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DatabaseURL, log, cfg.IsProduction())
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	models := append(repository.Models(), &model.User{}, &model.Privilege{}, &model.Role{})
	if err := db.AutoMigrate(models...); err != nil {
		log.WithError(err).Fatal("auto migrate failed")
	}

	// 3. Repositories
	st := store.New(db)
	productRepo := repository.NewProductRepo(st)
	orderRepo := repository.NewOrderRepo(st)
	imageRepo := repository.NewImageRepo(st)
	categoryRepo := repository.NewCategoryRepo(st)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)

	// 4. Seed default privileges, roles, and the owner account
	accessService := service.NewAccessService(userRepo, roleRepo, privilegeRepo, logger.Component(log, "access"))
	if err := accessService.Seed(ctx, service.OwnerAccount{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	}); err != nil {
		log.WithError(err).Warn("seeding roles and owner failed")
	}

	// 5. WebSocket hub
	wsHub := ws.NewHub(logger.Component(log, "ws"))
	go wsHub.Run(ctx)

	// 6. Outside services; each one is optional
	catalogCache := cache.NewCatalogCache(cfg.RedisURL, catalogCacheTTL)
	defer catalogCache.Close()
	if !catalogCache.IsAvailable() {
		log.Info("redis not configured or unreachable, catalog cache disabled")
	}

	var objects storage.ObjectStore
	if cfg.Storage.Endpoint != "" {
		s3, err := storage.NewS3Store(cfg.Storage)
		if err != nil {
			log.WithError(err).Fatal("image storage misconfigured")
		}
		objects = s3
	} else {
		log.Warn("STORAGE_ENDPOINT not set, image uploads disabled")
	}

	exporter := export.NewSheetsExporter(cfg.SheetsWebhookURL, logger.Component(log, "sheets"))

	// 7. Services
	productService := service.NewProductService(productRepo, imageRepo, objects, catalogCache,
		sku.NewGenerator(cfg.SKUFallbackPrefix), wsHub, logger.Component(log, "products"))
	orderService := service.NewOrderService(orderRepo, productRepo, exporter, wsHub, logger.Component(log, "orders"))
	imageService := service.NewImageService(imageRepo, productRepo, objects, wsHub, logger.Component(log, "images"))
	categoryService := service.NewCategoryService(categoryRepo, catalogCache, wsHub, logger.Component(log, "categories"))
	dashService := service.NewDashboardService(productRepo, orderRepo)
	authService := service.NewAuthService(userRepo)

	adminPanel := panel.New(productService, orderService, categoryService, logger.Component(log, "panel"))
	if err := adminPanel.Load(ctx); err != nil {
		log.WithError(err).Warn("initial panel load failed, serving empty lists until reload")
	}

	// 8. Handlers
	handlerLog := logger.Component(log, "http")
	panelHandler := handler.NewPanelHandler(adminPanel, handlerLog)
	productHandler := handler.NewProductHandler(adminPanel, productService, handlerLog)
	imageHandler := handler.NewImageHandler(imageService, adminPanel, handlerLog)
	categoryHandler := handler.NewCategoryHandler(adminPanel, categoryService, handlerLog)
	orderHandler := handler.NewOrderHandler(adminPanel, orderService, handlerLog)
	dashHandler := handler.NewDashboardHandler(dashService, handlerLog)
	authHandler := handler.NewAuthHandler(authService, handlerLog)
	roleHandler := handler.NewRoleHandler(accessService, handlerLog)

	// 9. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Inventory Orders Admin v1.0",
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	// 10. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/panel", panelHandler.GetPanel)
	protected.Post("/panel/reload", panelHandler.Reload)

	protected.Get("/dashboard/stats", middleware.RequirePrivilege(model.PrivDashboardView), dashHandler.GetDashboardStats)

	// Products
	protected.Get("/products", middleware.RequirePrivilege(model.PrivProductView), productHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege(model.PrivProductCreate), productHandler.CreateProduct)
	protected.Get("/products/:id", middleware.RequirePrivilege(model.PrivProductView), productHandler.GetProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege(model.PrivProductUpdate), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege(model.PrivProductDelete), productHandler.DeleteProduct)
	protected.Patch("/products/:id/options/:optionId", middleware.RequirePrivilege(model.PrivProductUpdate), productHandler.UpdateOption)
	protected.Get("/product-types", productHandler.GetProductTypes)

	// Product images
	protected.Get("/products/:id/images", middleware.RequirePrivilege(model.PrivProductView), imageHandler.GetImages)
	protected.Post("/products/:id/images", middleware.RequirePrivilege(model.PrivImageManage), imageHandler.UploadImage)
	protected.Post("/products/:id/images/:imageId/move", middleware.RequirePrivilege(model.PrivImageManage), imageHandler.MoveImage)
	protected.Delete("/products/:id/images/:imageId", middleware.RequirePrivilege(model.PrivImageManage), imageHandler.DeleteImage)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", middleware.RequirePrivilege(model.PrivProductCreate), categoryHandler.CreateCategory)

	// Orders. Fixed paths are registered before /orders/:id.
	protected.Get("/orders/statuses", orderHandler.GetStatuses)
	protected.Get("/orders/export", middleware.RequirePrivilege(model.PrivExportOrders), orderHandler.Export)
	protected.Post("/orders/preview", middleware.RequireAnyPrivilege(model.PrivOrderCreate, model.PrivOrderUpdate), orderHandler.Preview)
	protected.Post("/orders/draft/items", middleware.RequireAnyPrivilege(model.PrivOrderCreate, model.PrivOrderUpdate), orderHandler.DraftItem)
	protected.Get("/orders", middleware.RequirePrivilege(model.PrivOrderView), orderHandler.GetOrders)
	protected.Post("/orders", middleware.RequirePrivilege(model.PrivOrderCreate), orderHandler.CreateOrder)
	protected.Get("/orders/:id", middleware.RequirePrivilege(model.PrivOrderView), orderHandler.GetOrder)
	protected.Put("/orders/:id", middleware.RequirePrivilege(model.PrivOrderUpdate), orderHandler.UpdateOrder)
	protected.Delete("/orders/:id", middleware.RequirePrivilege(model.PrivOrderDelete), orderHandler.DeleteOrder)
	protected.Put("/orders/:id/status", middleware.RequirePrivilege(model.PrivOrderUpdate), orderHandler.UpdateStatus)
	protected.Post("/orders/:id/items", middleware.RequirePrivilege(model.PrivOrderUpdate), orderHandler.AddItem)

	// Roles and privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket change feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !wsHub.Join(c) {
			return
		}
		defer wsHub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 11. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("server forced to shutdown")
		os.Exit(1)
	}
	log.Info("Server exited")
}
