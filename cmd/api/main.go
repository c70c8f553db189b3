package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/autocars-api/internal/application/auth"
	"github.com/jhoicas/autocars-api/internal/application/backup"
	"github.com/jhoicas/autocars-api/internal/application/ports"
	syncapp "github.com/jhoicas/autocars-api/internal/application/sync"
	"github.com/jhoicas/autocars-api/internal/application/usecase"
	infraai "github.com/jhoicas/autocars-api/internal/infrastructure/ai"
	"github.com/jhoicas/autocars-api/internal/infrastructure/dropbox"
	"github.com/jhoicas/autocars-api/internal/infrastructure/localstore"
	"github.com/jhoicas/autocars-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/autocars-api/internal/interfaces/http"
	"github.com/jhoicas/autocars-api/pkg/config"
	"github.com/jhoicas/autocars-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// El almacén local existe siempre: en modo remoto sigue siendo la caché de
	// credenciales para el login degradado y el guardián del token de nube.
	local, err := localstore.New(cfg.Local.DataDir, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacén local")
	}

	// Selección de backend: DATABASE_URL presente activa el modo remoto.
	var (
		backend  ports.PersistenceBackend = local
		identity ports.IdentityProvider
		licenses ports.LicenseStore = local
	)
	if cfg.DB.Remote() {
		pool, err := postgres.NewPool(ctx, cfg.DB.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema remoto")
		}
		backend = postgres.NewDocumentStore(pool, log.Zerolog())
		identity = postgres.NewIdentityRepository(pool, log.Zerolog())
		licenses = postgres.NewLicenseRepository(pool)
		log.Info().Msg("modo remoto activo (PostgreSQL)")
	} else {
		log.Info().Str("data_dir", cfg.Local.DataDir).Msg("modo local activo")
	}

	sessions := syncapp.NewManager(backend, log.Zerolog())

	authUC := auth.NewAuthUseCase(identity, local, licenses, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.MasterKey, log.Zerolog())

	vault := dropbox.NewClient(local, log.Zerolog())
	backupUC := backup.NewUseCase(sessions, vault, cfg.Dropbox.BackupFile, log.Zerolog())
	licenseUC := usecase.NewLicenseUseCase(licenses)

	geminiSvc := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	aiUC := usecase.NewAIUseCase(geminiSvc, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AutoCars API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "mode": backend.Kind()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Sessions:      sessions,
		BackupUC:      backupUC,
		LicenseUC:     licenseUC,
		AIUC:          aiUC,
		Users:         local,
		Tokens:        local,
		DropboxAppKey: cfg.Dropbox.AppKey,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
