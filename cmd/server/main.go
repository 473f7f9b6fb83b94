package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/javekk/rusty-chess/internal/config"
	"github.com/javekk/rusty-chess/internal/controller"
	"github.com/javekk/rusty-chess/internal/middleware"
	"github.com/javekk/rusty-chess/internal/service"
	"github.com/javekk/rusty-chess/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	archive, err := openArchive(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open archive")
	}
	defer archive.Close()

	// Initialize services
	gameManager := service.NewGameManager(archive)
	gameService := service.NewGameService(gameManager, archive)

	app := newApp(cfg, gameService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		return app.Listen(cfg.Addr())
	})
	g.Go(func() error {
		return gameService.RunMatchmaking(ctx, cfg.MatchmakingInterval)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func openArchive(cfg config.Config) (store.Archive, error) {
	if cfg.ArchiveDSN == "" {
		return store.NewMemoryArchive(), nil
	}
	log.Info().Str("path", cfg.ArchiveDSN).Msg("using sqlite archive")
	return store.OpenSQLite(cfg.ArchiveDSN)
}

func newApp(cfg config.Config, gameService *service.GameService) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	wsRoutes := app.Group("/ws", middleware.EnsurePlayerID(), middleware.WebSocketUpgrade())
	wsConfig := websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.ClientOrigin},
	}
	wsRoutes.Get("/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))
	wsRoutes.Get("/matchmaking", websocket.New(wsController.HandleMatchmaking, wsConfig))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	gameController.Register(api.Group("/game"))

	return app
}
