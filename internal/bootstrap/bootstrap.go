package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/sdemirtas/registrar/internal/app/controllers"
	appMigrations "github.com/sdemirtas/registrar/internal/app/migrations"
	"github.com/sdemirtas/registrar/internal/app/models"
	appRepos "github.com/sdemirtas/registrar/internal/app/repositories"
	appRoutes "github.com/sdemirtas/registrar/internal/app/routes"
	appServices "github.com/sdemirtas/registrar/internal/app/services"
	"github.com/sdemirtas/registrar/internal/config"
	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/logger"
	"github.com/sdemirtas/registrar/internal/pkg/metrics"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Database         *db.PostgresDB
	Repos            *appRepos.Repositories
	Services         *appServices.Services
	Metrics          *metrics.Metrics
	PersonController *appControllers.PersonController
	RoleControllers  appRoutes.RoleControllers
	SearchController *appControllers.SearchController
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.ApplyDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Database: database,
		Logger:   lgr,
		Metrics:  metrics.New(),
	}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Services = appServices.NewServices(database, deps.Repos, deps.Metrics)

	deps.PersonController = appControllers.NewPersonController(deps.Services.Person)
	deps.SearchController = appControllers.NewSearchController(deps.Services.Query)

	deps.RoleControllers = make(appRoutes.RoleControllers, len(models.RoleTypes()))
	for _, roleType := range models.RoleTypes() {
		deps.RoleControllers[roleType] = appControllers.NewRoleController(
			roleType,
			deps.Services.Enrollment,
			deps.Services.Transition,
			deps.Services.Query,
		)
	}

	return deps
}

// SetupRouter configures the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.PersonController,
		deps.RoleControllers,
		deps.SearchController,
		deps.Metrics,
	)

	return router
}
