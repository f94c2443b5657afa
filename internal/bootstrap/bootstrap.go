package bootstrap

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postigiusti/bacheca/internal/app/controllers"
	"github.com/postigiusti/bacheca/internal/app/migrations"
	"github.com/postigiusti/bacheca/internal/app/repositories"
	"github.com/postigiusti/bacheca/internal/app/routes"
	"github.com/postigiusti/bacheca/internal/app/services"
	"github.com/postigiusti/bacheca/internal/config"
	"github.com/postigiusti/bacheca/internal/db"
	"github.com/postigiusti/bacheca/internal/pkg/auth"
	"github.com/postigiusti/bacheca/internal/pkg/email"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
	"github.com/postigiusti/bacheca/internal/pkg/websocket"
	"github.com/postigiusti/bacheca/internal/seed"
)

// Dependencies holds everything the server needs to run
type Dependencies struct {
	Config      *config.Config
	DB          *db.PostgresDB
	JWTService  *auth.JWTService
	Hub         *websocket.Hub
	Controllers *controllers.Controllers
	Services    *services.Services
}

// LoadConfigAndSetupLogger loads configuration and configures logging
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	return cfg, nil
}

// SetupDatabase connects to postgres, applies migrations, and seeds
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	pgdb, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	migrator := migrations.NewMigrator(pgdb.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		pgdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos := repositories.NewRepositories(pgdb)
	err = seed.Run(ctx, repos, seed.Options{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminNickname: os.Getenv("ADMIN_NICKNAME"),
	})
	if err != nil {
		pgdb.Close()
		return nil, err
	}

	return pgdb, nil
}

// BuildDependencies wires repositories, services, and controllers
func BuildDependencies(cfg *config.Config, pgdb *db.PostgresDB) (*Dependencies, error) {
	accessExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, err
	}
	refreshExp, err := time.ParseDuration(cfg.JWT.RefreshTokenExpiration)
	if err != nil {
		return nil, err
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     cfg.JWT.Issuer,
	})

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, logger.WithField("component", "email"))

	hub := websocket.NewHub()
	go hub.Run()

	repos := repositories.NewRepositories(pgdb)
	svcs := services.NewServices(repos, jwtService, mailer, hub)
	ctrl := controllers.NewControllers(svcs)

	return &Dependencies{
		Config:      cfg,
		DB:          pgdb,
		JWTService:  jwtService,
		Hub:         hub,
		Controllers: ctrl,
		Services:    svcs,
	}, nil
}

// SetupRouter builds the gin engine with all routes registered
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupRoutes(router, deps.Controllers, deps.JWTService, deps.Hub)

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
