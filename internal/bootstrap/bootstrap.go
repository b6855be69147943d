package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/nbadocs/internal/app/auth"
	appControllers "github.com/yigit/nbadocs/internal/app/controllers"
	appMigrations "github.com/yigit/nbadocs/internal/app/migrations"
	appRepos "github.com/yigit/nbadocs/internal/app/repositories"
	"github.com/yigit/nbadocs/internal/app/repositories/inmem"
	appRoutes "github.com/yigit/nbadocs/internal/app/routes"
	appServices "github.com/yigit/nbadocs/internal/app/services"
	"github.com/yigit/nbadocs/internal/config"
	"github.com/yigit/nbadocs/internal/db"
	appMiddleware "github.com/yigit/nbadocs/internal/middleware"
	pkgAuth "github.com/yigit/nbadocs/internal/pkg/auth"
	"github.com/yigit/nbadocs/internal/pkg/filestorage"
	"github.com/yigit/nbadocs/internal/pkg/helpers"
	"github.com/yigit/nbadocs/internal/pkg/logger"
	"github.com/yigit/nbadocs/internal/seed"
)

// Stores holds the persistence layer selected by database.driver
type Stores struct {
	Courses appServices.CourseStore
	Files   appServices.FileStore
	Users   appServices.UserStore

	closeFn func()
}

// Close releases the underlying connections
func (s *Stores) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService     *appServices.CourseService
	FileService       *appServices.FileService
	ComplianceService *appServices.ComplianceService
	DashboardService  *appServices.DashboardService
	AuthService       *appServices.AuthService
	UserService       *appServices.UserService
	AuthController    *appControllers.AuthController
	CourseController  *appControllers.CourseController
	FileController    *appControllers.FileController
	ReportController  *appControllers.ReportController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	JWTService        *pkgAuth.JWTService
	AuthzService      *appAuth.AuthorizationService
	FileStorage       filestorage.BlobStore
	Stores            *Stores
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
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

// OpenStores connects the configured store, running migrations for PostgreSQL.
func OpenStores(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Stores, error) {
	if cfg.UsesMemoryStore() {
		lgr.Warn().Msg("Using in-memory store, data will not survive a restart")
		memDB := inmem.Open()
		return &Stores{
			Courses: inmem.NewCourseRepository(memDB),
			Files:   inmem.NewCourseFileRepository(memDB),
			Users:   inmem.NewUserRepository(memDB),
		}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).Migrate(ctx); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(database.Pool)
	return &Stores{
		Courses: repos.CourseRepository,
		Files:   repos.CourseFileRepository,
		Users:   repos.UserRepository,
		closeFn: database.Close,
	}, nil
}

// BuildDependencies initializes storage, services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, stores *Stores, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Stores: stores, Logger: lgr}

	resolveTimeout := helpers.ParseDuration(cfg.Storage.ResolveTimeout, filestorage.DefaultResolveTimeout)
	blobs, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, resolveTimeout)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = blobs

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 0),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.CourseService = appServices.NewCourseService(stores.Courses, stores.Users, logger.Component("courses"))
	deps.FileService = appServices.NewFileService(stores.Files, stores.Courses, blobs, cfg.Server.MaxUploadSize, logger.Component("files"))
	deps.ComplianceService = appServices.NewComplianceService(stores.Courses, stores.Files, cfg.Reports.ComplianceWorkers, logger.Component("compliance"))
	deps.DashboardService = appServices.NewDashboardService(stores.Courses, stores.Files, stores.Users)
	deps.AuthService = appServices.NewAuthService(stores.Users, deps.JWTService, logger.Component("auth"))
	deps.UserService = appServices.NewUserService(stores.Users, logger.Component("users"))

	deps.AuthzService = appAuth.NewAuthorizationService(stores.Users, stores.Courses)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, stores.Users)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.UserService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.AuthzService)
	deps.FileController = appControllers.NewFileController(deps.FileService, cfg.Server.MaxUploadSize)
	deps.ReportController = appControllers.NewReportController(deps.ComplianceService, deps.DashboardService)

	if err := seed.CreateDefaultAdmin(ctx, deps.UserService, stores.Users, cfg, lgr); err != nil {
		// a missing admin is not fatal; accounts can still be seeded later
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())
	router.MaxMultipartMemory = cfg.Server.MaxUploadSize

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Auth:   deps.AuthController,
		Course: deps.CourseController,
		File:   deps.FileController,
		Report: deps.ReportController,
	}, deps.AuthMiddleware)

	return router, nil
}
