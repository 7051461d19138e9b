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

	_ "github.com/deeptec/tenders-api/docs"
	appanalytics "github.com/deeptec/tenders-api/internal/application/analytics"
	"github.com/deeptec/tenders-api/internal/application/auth"
	"github.com/deeptec/tenders-api/internal/application/project"
	"github.com/deeptec/tenders-api/internal/application/usecase"
	"github.com/deeptec/tenders-api/internal/domain/repository"
	"github.com/deeptec/tenders-api/internal/infrastructure/memory"
	infrapdf "github.com/deeptec/tenders-api/internal/infrastructure/pdf"
	"github.com/deeptec/tenders-api/internal/infrastructure/postgres"
	httpRouter "github.com/deeptec/tenders-api/internal/interfaces/http"
	"github.com/deeptec/tenders-api/pkg/config"
	"github.com/deeptec/tenders-api/pkg/logger"
)

// @title                       Tenders API
// @version                     1.0
// @description                 Seguimiento de licitaciones en cuatro secciones con permisos por rol.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()

	var (
		userRepo      repository.UserRepository
		projectRepo   repository.ProjectRepository
		analyticsRepo repository.AnalyticsRepository
		txRunner      project.TxRunner
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		userRepo = memory.NewUserRepository(store)
		projectRepo = memory.NewProjectRepository(store)
		analyticsRepo = memory.NewAnalyticsRepository(store)
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		userRepo = postgres.NewUserRepository(pool)
		projectRepo = postgres.NewProjectRepository(pool)
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	projectUC := project.NewUseCase(txRunner, projectRepo, userRepo, log.Component("project"))
	sheetUC := project.NewSheetUseCase(projectUC, infrapdf.NewMarotoSheetGenerator())
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	userUC := usecase.NewUserUseCase(userRepo, log.Component("users"))
	authUC := auth.NewAuthUseCase(userRepo, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		ResetCodeTTL:  time.Duration(cfg.Auth.ResetCodeTTL) * time.Minute,
		EchoResetCode: cfg.App.IsDevelopment(),
	}, log.Component("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tenders API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProjectUC:   projectUC,
		SheetUC:     sheetUC,
		DashboardUC: dashboardUC,
		Users:       userRepo,
		JWTSecret:   cfg.JWT.Secret,
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
