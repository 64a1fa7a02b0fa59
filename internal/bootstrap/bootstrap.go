package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/collegepredictor/internal/app/controllers"
	appMigrations "github.com/yigit/collegepredictor/internal/app/migrations"
	"github.com/yigit/collegepredictor/internal/app/models/dto"
	appRepos "github.com/yigit/collegepredictor/internal/app/repositories"
	appRoutes "github.com/yigit/collegepredictor/internal/app/routes"
	appServices "github.com/yigit/collegepredictor/internal/app/services"
	"github.com/yigit/collegepredictor/internal/config"
	"github.com/yigit/collegepredictor/internal/db"
	appMiddleware "github.com/yigit/collegepredictor/internal/middleware"
	"github.com/yigit/collegepredictor/internal/pkg/apperrors"
	"github.com/yigit/collegepredictor/internal/pkg/filestorage"
	"github.com/yigit/collegepredictor/internal/pkg/logger"
	"github.com/yigit/collegepredictor/internal/pkg/notifier"
	"github.com/yigit/collegepredictor/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services    appServices.Services
	Controllers appRoutes.Controllers
	Repos       *appRepos.Repositories
	FileStorage *filestorage.LocalStorage
	Registry    *prometheus.Registry
	DB          *db.PostgresDB
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Dur("queryTimeout", database.QueryTimeout).Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromFS(ctx, appMigrations.Embedded()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:   lgr,
		DB:       database,
		Registry: prometheus.NewRegistry(),
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps.Repos = appRepos.NewRepositories(database.Pool, database.QueryTimeout)

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, database, deps.Repos, lgr); err != nil {
			// Seeding is a convenience; the service still starts without it
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.PublicBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	var senders []notifier.Sender
	if cfg.WhatsApp.Enabled {
		senders = append(senders, notifier.NewWhatsAppSender(notifier.WhatsAppConfig{
			AccountSID:  cfg.WhatsApp.AccountSID,
			AuthToken:   cfg.WhatsApp.AuthToken,
			FromNumber:  cfg.WhatsApp.FromNumber,
			CountryCode: cfg.WhatsApp.CountryCode,
		}, logger.Component("whatsapp")))
	}
	if cfg.SMTP.Enabled {
		senders = append(senders, notifier.NewEmailSender(notifier.SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromName:  cfg.SMTP.FromName,
			FromEmail: cfg.SMTP.FromEmail,
			UseTLS:    cfg.SMTP.UseTLS,
		}, logger.Component("email")))
	}

	eligibility := appServices.NewEligibilityService(deps.Repos.OfferingRepository)
	deps.Services = appServices.Services{
		EligibilityService:  eligibility,
		CatalogService:      appServices.NewCatalogService(deps.Repos.OfferingRepository, deps.Repos.CollegeLocationRepository),
		RegistrationService: appServices.NewRegistrationService(deps.Repos.UserRepository),
		ReportService: appServices.NewReportService(eligibility, deps.FileStorage, appServices.ReportConfig{
			Title:  cfg.Report.Title,
			Subdir: cfg.Report.Subdir,
		}, senders...),
	}

	deps.Controllers = appRoutes.Controllers{
		Prediction:   appControllers.NewPredictionController(deps.Services.EligibilityService),
		Catalog:      appControllers.NewCatalogController(deps.Services.CatalogService),
		Registration: appControllers.NewRegistrationController(deps.Services.RegistrationService),
		Report:       appControllers.NewReportController(deps.Services.ReportService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.Logger(logger.Component("http")),
		appMiddleware.Metrics(appMiddleware.NewHTTPMetrics(deps.Registry)),
		appMiddleware.CORS(cfg.Server.CORSAllowOrigins),
	)

	appRoutes.SetupRouter(router, deps.Controllers)

	// Generated reports
	router.Static(filestorage.URLPrefix, deps.FileStorage.BasePath())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	router.GET("/health", func(c *gin.Context) {
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			lgr.Warn().Err(err).Msg("Health check failed to reach database")
			c.JSON(http.StatusServiceUnavailable, dto.APIResponse{
				Error:     dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unavailable"),
				Timestamp: time.Now(),
			})
			return
		}
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "College predictor backend is running")
	})
	router.NoRoute(func(c *gin.Context) {
		appMiddleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("route not found"))
	})

	return router
}
