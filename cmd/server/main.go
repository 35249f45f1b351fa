package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/camelot-backend/internal/config"
	"github.com/benbeisheim/camelot-backend/internal/controller"
	"github.com/benbeisheim/camelot-backend/internal/model"
	"github.com/benbeisheim/camelot-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New(fiber.Config{
		AppName: "camelot-backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(model.TimeControl{
		Initial:   cfg.InitialTime,
		Increment: cfg.Increment,
	})
	gameService := service.NewGameService(gameManager)
	engineService := service.NewEngineService()

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	engineController := controller.NewEngineController(engineService)
	wsController := controller.NewWebSocketController(gameService)

	controller.RegisterRoutes(app, gameController, engineController, wsController, cfg.AllowedOrigins)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := gameManager.Shutdown(); err != nil {
			log.Warnf("closing game connections: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
