package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"buildsite-be/internal/config"
	"buildsite-be/internal/handler"
	"buildsite-be/internal/middleware"
	"buildsite-be/internal/repository"
	"buildsite-be/internal/service"
	"buildsite-be/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (document upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Post("/auth/logout", h.Auth.Logout)
	protected.Get("/auth/me", h.Auth.Me)

	projects := protected.Group("/projects")
	projects.Post("/", middleware.RequireRole("supervisor"), h.Project.Create)
	projects.Get("/", h.Project.List)
	projects.Get("/:projectId", h.Project.Get)
	projects.Put("/:projectId", middleware.RequireRole("supervisor"), h.Project.Update)
	projects.Delete("/:projectId", middleware.RequireRole("admin"), h.Project.Delete)

	projects.Post("/:projectId/materials", middleware.RequireRole("supervisor"), h.Material.Create)
	projects.Get("/:projectId/materials", h.Material.List)
	projects.Post("/:projectId/documents", h.Document.Upload)
	projects.Get("/:projectId/documents", h.Document.List)

	materials := protected.Group("/materials")
	materials.Get("/:materialId", h.Material.Get)
	materials.Put("/:materialId", middleware.RequireRole("supervisor"), h.Material.Update)
	materials.Delete("/:materialId", middleware.RequireRole("supervisor"), h.Material.Delete)
	materials.Post("/:materialId/adjust-stock", h.Material.AdjustStock)

	documents := protected.Group("/documents")
	documents.Get("/:documentId", h.Document.Get)
	documents.Delete("/:documentId", middleware.RequireRole("supervisor"), h.Document.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/:notificationId/read", h.Notification.MarkRead)
	notifications.Post("/read-all", h.Notification.MarkAllRead)

	protected.Get("/activity/recent", h.Activity.Recent)
	protected.Get("/activity/:entityType/:entityId", h.Activity.ByEntity)

	protected.Get("/dashboard/stats", h.Dashboard.Stats)

	protected.Post("/ai/predict-cost", h.AI.PredictCost)
	protected.Get("/ai/risk/:projectId", h.AI.AssessRisk)

	protected.Get("/iot/sensors/:projectId", h.IoT.Readings)

	protected.Post("/blockchain/verify-document", h.Blockchain.VerifyDocument)

	// The websocket channel authenticates in-band with its first frame,
	// so it sits outside the bearer-token middleware.
	app.Use("/ws/notifications", h.WS.Upgrade)
	app.Get("/ws/notifications", h.WS.Serve())
}
