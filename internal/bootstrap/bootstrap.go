package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/unicampus/internal/app/controllers"
	appMigrations "github.com/yigit/unicampus/internal/app/migrations"
	appRepos "github.com/yigit/unicampus/internal/app/repositories"
	appRoutes "github.com/yigit/unicampus/internal/app/routes"
	appServices "github.com/yigit/unicampus/internal/app/services"
	"github.com/yigit/unicampus/internal/config"
	"github.com/yigit/unicampus/internal/db"
	appMiddleware "github.com/yigit/unicampus/internal/middleware"
	"github.com/yigit/unicampus/internal/pkg/cache"
	"github.com/yigit/unicampus/internal/pkg/helpers"
	"github.com/yigit/unicampus/internal/pkg/logger"
	"github.com/yigit/unicampus/internal/seed"
)

// DefaultConfigPath is read when no other path is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	DB                  *db.DB
	Repos               *appRepos.Repositories
	Services            *appServices.Services
	Cache               cache.ListCache
	FacultyController   *appControllers.FacultyController
	PromotionController *appControllers.PromotionController
	StudentController   *appControllers.StudentController
	HealthController    *appControllers.HealthController
	Logger              zerolog.Logger
}

// Close releases the cache client. The database is owned by the caller.
func (d *Dependencies) Close() error {
	if rc, ok := d.Cache.(*cache.RedisCache); ok {
		return rc.Close()
	}
	return nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and applies the schema.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.DB, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if cfg.Database.SkipMigrations {
		lgr.Warn().Msg("Skipping database migrations")
		return database, nil
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		_ = database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupCache connects to Redis when an address is configured. An unreachable
// Redis disables caching instead of failing startup.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) cache.ListCache {
	if cfg.Cache.RedisAddr == "" {
		lgr.Info().Msg("No Redis address configured, list cache disabled")
		return cache.Noop{}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rc, err := cache.Connect(pingCtx, cache.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      helpers.ParseDuration(cfg.Cache.TTL, 5*time.Minute),
	})
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, list cache disabled")
		return cache.Noop{}
	}
	lgr.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Redis list cache enabled")
	return rc
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.DB, listCache cache.ListCache, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		DB:     database,
		Cache:  listCache,
		Logger: lgr,
	}

	deps.Repos = appRepos.NewRepositories(database)
	deps.Services = appServices.NewServices(deps.Repos, listCache)

	if cfg.Seed.Enabled {
		if _, err := seed.CreateDefaultData(ctx, deps.Services, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	svc := deps.Services
	deps.FacultyController = appControllers.NewFacultyController(svc.FacultyService, svc.PromotionService)
	deps.PromotionController = appControllers.NewPromotionController(svc.PromotionService, svc.StudentService)
	deps.StudentController = appControllers.NewStudentController(svc.StudentService, svc.DirectoryService, svc.ExportService)
	deps.HealthController = appControllers.NewHealthController(database, database.Driver)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.FacultyController,
		deps.PromotionController,
		deps.StudentController,
		deps.HealthController,
	)

	return router
}
