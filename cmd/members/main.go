package main

import (
	"time"

	"github.com/jmlagera/coop-kiosk/internal/pkg/config"
	"github.com/jmlagera/coop-kiosk/internal/pkg/database"
	"github.com/jmlagera/coop-kiosk/internal/pkg/health"
	"github.com/jmlagera/coop-kiosk/internal/pkg/logger"
	"github.com/jmlagera/coop-kiosk/internal/pkg/mail"
	"github.com/jmlagera/coop-kiosk/internal/pkg/middleware"
	"github.com/jmlagera/coop-kiosk/internal/pkg/server"
	"github.com/jmlagera/coop-kiosk/services/members/gateway"
	"github.com/jmlagera/coop-kiosk/services/members/handler"
	"github.com/jmlagera/coop-kiosk/services/members/repository"
	"github.com/jmlagera/coop-kiosk/services/members/usecase"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.InitConfig("config/members.env")

	zapLogger, err := logger.InitZapLoggerFromConfig(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize logger", logger.Err(err))
	}
	defer zapLogger.Close()

	pgClient, err := database.NewPostgresClient(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to postgres", logger.Err(err))
	}
	defer pgClient.Close()

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to redis", logger.Err(err))
	}
	defer redisClient.Close()

	memberRepo := repository.NewMemberRepo(cfg, pgClient.GetDB(), redisClient)
	notifier := gateway.NewEmailGW(cfg.SMTP, mail.NewSMTPSender(cfg.SMTP))
	memberUC := usecase.NewMemberUC(cfg, memberRepo, notifier)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, cfg.App.Name, pgClient.Ping)
	handler.RegisterRoutes(e, cfg, memberUC, memberRepo, redisClient.GetClient(), pgClient.Ping)

	srv := server.NewGracefulServer(e, zapLogger, cfg.Server.Port,
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server error", logger.Err(err))
	}
}
