package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/traveltogether/api/internal/app/controllers"
	"github.com/traveltogether/api/internal/app/migrations"
	"github.com/traveltogether/api/internal/app/repositories"
	"github.com/traveltogether/api/internal/app/routes"
	"github.com/traveltogether/api/internal/app/services"
	"github.com/traveltogether/api/internal/config"
	"github.com/traveltogether/api/internal/db"
	"github.com/traveltogether/api/internal/middleware"
	"github.com/traveltogether/api/internal/pkg/auth"
	"github.com/traveltogether/api/internal/pkg/filestorage"
	"github.com/traveltogether/api/internal/pkg/logger"
)

// Dependencies holds the wired application graph
type Dependencies struct {
	Config         *config.Config
	Repositories   *repositories.Repositories
	Services       *services.Services
	Controllers    *controllers.Controllers
	AuthMiddleware *middleware.AuthMiddleware
}

// LoadConfig reads .env, the YAML config and environment overrides, and
// configures the global logger from the result.
func LoadConfig(configPath string) (*config.Config, error) {
	// .env is optional, used for local development
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
		Output: os.Stdout,
	})

	return cfg, nil
}

// SetupDatabase connects to Postgres and applies pending migrations
func SetupDatabase(cfg *config.Config, migrationsDir string) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrationsDir != "" {
		if _, err := os.Stat(migrationsDir); err != nil {
			database.Close()
			return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
		}
		migrator := migrations.NewMigrator(database.Pool)
		if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		logger.Info().Msg("Database migrations applied")
	}

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and middleware
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	tokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT expiration %q: %w", cfg.JWT.AccessTokenExpiration, err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: tokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	storage, err := filestorage.NewStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	repos := repositories.NewRepositories(database)
	svcs := services.NewServices(repos, jwtService, storage)

	return &Dependencies{
		Config:         cfg,
		Repositories:   repos,
		Services:       svcs,
		Controllers:    controllers.NewControllers(svcs),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
	}, nil
}

// SetupRouter builds the gin engine with middleware, routes and swagger
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.RegisterCustomValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	routes.SetupSwagger(router)

	// Uploaded files are served straight from disk
	router.Static("/uploads", deps.Config.Server.StoragePath)

	return router
}
