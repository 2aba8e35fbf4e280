package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/circleshare/circleshare/circleshare"
	"github.com/circleshare/circleshare/circleshare/database"
	"github.com/circleshare/circleshare/circleshare/database/repositories"
	"github.com/circleshare/circleshare/circleshare/giveaway"
	"github.com/circleshare/circleshare/circleshare/logger"
	"github.com/circleshare/circleshare/circleshare/services"
	"github.com/circleshare/circleshare/circleshare/utils"
	"github.com/circleshare/circleshare/circleshare/web/handlers"
	"github.com/circleshare/circleshare/circleshare/web/middleware"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("CircleShare")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting CircleShare API",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "sys"))

	cfg, err := circleshare.LoadConfig(configPath)
	if err != nil {
		logger.LogError("Failed to load config", err)
		os.Exit(1)
	}
	customHandler.SetLevel(cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		logger.LogError("Failed to connect to database", err)
		os.Exit(1)
	}

	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize schema", err)
		os.Exit(1)
	}
	logger.LogSystem("Database connected successfully")

	memberRepo := repositories.NewMemberRepository(db.BunDB())
	itemRepo := repositories.NewItemRepository(db.BunDB())
	circleRepo := repositories.NewCircleRepository(db.BunDB())
	messageRepo := repositories.NewMessageRepository(db.BunDB())
	sessionRepo := repositories.NewSessionRepository(db.BunDB())
	giveawayRepo := repositories.NewGiveawayRepository(db.BunDB())

	var photoService *services.PhotoService
	if cfg.Photos.Key != "" {
		photoService, err = services.NewPhotoService(
			cfg.Photos.Key,
			cfg.Photos.Secret,
			cfg.Photos.Region,
			cfg.Photos.Bucket,
			cfg.Photos.Root,
		)
		if err != nil {
			slog.Error("Failed to initialize photo storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		slog.Warn("Photo storage not configured, uploads disabled")
	}

	searchService := services.NewSearchService(itemRepo)
	selector := giveaway.NewSelector(nil)
	dispatcher := giveaway.NewDispatcher(messageRepo)
	giveawayService := giveaway.NewService(giveawayRepo, selector, dispatcher)
	visibilityFilter := giveaway.NewVisibilityFilter(circleRepo, utils.MembershipCacheSize)

	app := fiber.New(fiber.Config{
		AppName:      "CircleShare API",
		ServerHeader: "CircleShare",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    utils.MaxPhotoSize + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With",
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		DB:         db,
		Members:    memberRepo,
		Items:      itemRepo,
		Circles:    circleRepo,
		Messages:   messageRepo,
		Sessions:   sessionRepo,
		Giveaways:  giveawayService,
		Visibility: visibilityFilter,
		Photos:     photoService,
		Search:     searchService,
		Version:    version,
	}

	setupRoutes(app, webApp)

	if cfg.Web.Debug {
		slog.Warn("Debug endpoints enabled")
		app.Post("/debug/reset", handlers.DebugReset(webApp))
	}

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()
	slog.Info("Server shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	auth := app.Group("/auth")
	auth.Post("/register", handlers.Register(webApp))
	auth.Post("/login", handlers.Login(webApp))
	auth.Post("/logout", handlers.Logout(webApp))

	// Discovery works for anonymous visitors; visibility rules narrow the
	// results instead of the router.
	app.Get("/giveaways", middleware.OptionalAuth(webApp.Sessions), handlers.GiveawayFeed(webApp))

	items := app.Group("/items")
	items.Get("/:public_id", middleware.OptionalAuth(webApp.Sessions), handlers.ItemsDetail(webApp))
	items.Get("/:public_id/suggestions", middleware.OptionalAuth(webApp.Sessions), handlers.GiveawaySuggestions(webApp))

	items.Use(middleware.AuthRequired(webApp.Sessions))
	items.Post("/", handlers.ItemsCreate(webApp))
	items.Put("/:public_id", handlers.ItemsUpdate(webApp))
	items.Delete("/:public_id", handlers.ItemsDelete(webApp))
	items.Post("/:public_id/photo", handlers.ItemsUploadPhoto(webApp))

	items.Post("/:public_id/interest", handlers.RegisterInterest(webApp))
	items.Delete("/:public_id/interest", handlers.WithdrawInterest(webApp))
	items.Get("/:public_id/interests", handlers.InterestPool(webApp))
	items.Post("/:public_id/select-recipient", handlers.SelectRecipient(webApp))
	items.Post("/:public_id/reassign", handlers.Reassign(webApp))
	items.Post("/:public_id/release", handlers.Release(webApp))
	items.Post("/:public_id/confirm-handoff", handlers.ConfirmHandoff(webApp))
	items.Post("/:public_id/message/:member_id", handlers.MessageRequester(webApp))

	me := app.Group("/me", middleware.AuthRequired(webApp.Sessions))
	me.Get("/", handlers.Me(webApp))
	me.Put("/", handlers.MeUpdate(webApp))
	me.Put("/vacation", handlers.MeVacation(webApp))
	me.Delete("/", handlers.MeDelete(webApp))
	me.Get("/inbox", handlers.Inbox(webApp))
	me.Get("/messages/:member_id", handlers.Conversation(webApp))
	me.Get("/circles", handlers.MyCircles(webApp))

	circles := app.Group("/circles", middleware.AuthRequired(webApp.Sessions))
	circles.Post("/", handlers.CirclesCreate(webApp))
	circles.Post("/:public_id/join", handlers.CircleJoin(webApp))
	circles.Post("/:public_id/leave", handlers.CircleLeave(webApp))
}
