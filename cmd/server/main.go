package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/writedeck/writedeck-backend/internal/api"
	"github.com/writedeck/writedeck-backend/internal/auth"
	"github.com/writedeck/writedeck-backend/internal/config"
	"github.com/writedeck/writedeck-backend/internal/database"
	"github.com/writedeck/writedeck-backend/internal/providers/openai"
	"github.com/writedeck/writedeck-backend/internal/repository/postgres"
	"github.com/writedeck/writedeck-backend/internal/services"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Writedeck Backend",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getOrigins(),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Repositories
	workspaceRepo := postgres.NewWorkspaceRepository(db.DB)
	conversationRepo := postgres.NewConversationRepository(db.DB)
	messageRepo := postgres.NewMessageRepository(db.DB)

	// Upstream generator
	generator, err := openai.NewProvider(cfg.Generator)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize generator")
	}

	svc := services.NewServices(workspaceRepo, conversationRepo, messageRepo, generator, cfg.Context)

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "change-me-in-production"
		logrus.Warn("Using default JWT secret. Set WRITEDECK_JWT_SECRET in production!")
	}
	jwtService := auth.NewJWTService(jwtSecret, "writedeck")

	api.SetupRoutes(app, svc, jwtService, workspaceRepo)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.WithField("addr", addr).Info("Writedeck backend starting")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func getOrigins() string {
	origins := os.Getenv("WRITEDECK_CORS_ORIGINS")
	if origins == "" {
		return "http://localhost:5173,http://localhost:3000"
	}
	return origins
}
