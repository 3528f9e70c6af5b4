package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/chessduel/internal/config"
	"github.com/benbeisheim/chessduel/internal/controller"
	"github.com/benbeisheim/chessduel/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/exp/slices"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	level, _ := cfg.Log.FiberLevel()
	log.SetLevel(level)

	app := fiber.New(fiber.Config{
		AppName: "chessduel",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	origins := cfg.Server.AllowedOrigins
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
		// fiber refuses credentials with a wildcard origin
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
	}))

	// Initialize services
	gameManager := service.NewGameManager(service.Config{
		TimeControl:         cfg.Game.TimeControl,
		MatchmakingInterval: cfg.Game.MatchmakingInterval,
		StartFEN:            cfg.Game.StartFEN,
		Casual:              cfg.Game.Casual,
	})
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService, gameManager)
	wsController := controller.NewWebSocketController(gameService)
	controller.SetupRoutes(app, gameController, wsController, controller.WSBuffers{
		Read:    cfg.Server.WSReadBuffer,
		Write:   cfg.Server.WSWriteBuffer,
		Origins: cfg.Server.AllowedOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go gameManager.Run(ctx)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
