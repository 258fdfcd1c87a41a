package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/almazgeobur/etp-api/internal/application/auth"
	"github.com/almazgeobur/etp-api/internal/application/usecase"
	infrapdf "github.com/almazgeobur/etp-api/internal/infrastructure/pdf"
	"github.com/almazgeobur/etp-api/internal/infrastructure/postgres"
	"github.com/almazgeobur/etp-api/internal/infrastructure/storage"
	httpRouter "github.com/almazgeobur/etp-api/internal/interfaces/http"
	"github.com/almazgeobur/etp-api/pkg/config"
	"github.com/almazgeobur/etp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewSupplierProfileRepository(pool)
	tenderRepo := postgres.NewTenderRepository(pool)
	applicationRepo := postgres.NewApplicationRepository(pool)
	proposalRepo := postgres.NewProposalRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	store, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, profileRepo)
	tenderUC := usecase.NewTenderUseCase(tenderRepo, proposalRepo, txRunner)
	proposalUC := usecase.NewProposalUseCase(proposalRepo, tenderRepo, userRepo, txRunner)
	applicationUC := usecase.NewApplicationUseCase(applicationRepo, tenderRepo, userRepo, profileRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo, applicationRepo, tenderRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo, proposalRepo, tenderRepo, userRepo)
	exportUC := usecase.NewExportUseCase(tenderRepo, applicationRepo, infrapdf.NewMarotoPDFGenerator())
	importUC := usecase.NewImportUseCase(tenderUC)
	fileUC := usecase.NewFileUseCase(store, cfg.Upload)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxSize) + 1<<20, // request overhead above the file limit
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.Origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AGB ETP API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		TenderUC:      tenderUC,
		ProposalUC:    proposalUC,
		ApplicationUC: applicationUC,
		DashboardUC:   dashboardUC,
		AnalyticsUC:   analyticsUC,
		ExportUC:      exportUC,
		ImportUC:      importUC,
		FileUC:        fileUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
