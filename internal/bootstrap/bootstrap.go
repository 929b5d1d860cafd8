package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/SMU-RES/smu-course-review/internal/app/controllers"
	appMigrations "github.com/SMU-RES/smu-course-review/internal/app/migrations"
	appRepos "github.com/SMU-RES/smu-course-review/internal/app/repositories"
	appRoutes "github.com/SMU-RES/smu-course-review/internal/app/routes"
	appServices "github.com/SMU-RES/smu-course-review/internal/app/services"
	"github.com/SMU-RES/smu-course-review/internal/config"
	"github.com/SMU-RES/smu-course-review/internal/db"
	appMiddleware "github.com/SMU-RES/smu-course-review/internal/middleware"
	"github.com/SMU-RES/smu-course-review/internal/pkg/logger"
	"github.com/SMU-RES/smu-course-review/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	CourseController     *appControllers.CourseController
	TeacherController    *appControllers.TeacherController
	DepartmentController *appControllers.DepartmentController
	ReviewController     *appControllers.ReviewController
	Logger               zerolog.Logger
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
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.SeedDepartments(context.Background(), appRepos.NewDepartmentRepository(dbPool)); err != nil {
		lgr.Error().Err(err).Msg("Department seeding failed")
		dbPool.Close()
		return nil, fmt.Errorf("department seeding failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services and controllers together.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(dbPool)
	svcs := appServices.NewServices(repos, cfg)

	return &Dependencies{
		Repos:                repos,
		Services:             svcs,
		CourseController:     appControllers.NewCourseController(svcs.CourseService),
		TeacherController:    appControllers.NewTeacherController(svcs.TeacherService),
		DepartmentController: appControllers.NewDepartmentController(svcs.DepartmentService),
		ReviewController:     appControllers.NewReviewController(svcs.RatingService, svcs.CommentService),
		Logger:               lgr,
	}, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(
		router,
		deps.CourseController,
		deps.TeacherController,
		deps.DepartmentController,
		deps.ReviewController,
	)

	lgr.Info().Msg("Router configured")
	return router
}
