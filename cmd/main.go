package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"studio"
	"studio/internal/api/handler/endpoints"
	"studio/internal/api/models"
	"studio/internal/api/service"
	"studio/internal/realtime"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	studio.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if studio.GetConfig().Mode == "dev" {
		if err := studio.DB.AutoMigrate(
			&models.User{},
			&models.Client{},
			&models.Job{},
			&models.Notification{},
			&models.Payment{},
			&models.Attendance{},
			&models.Package{},
			&models.Contract{},
		); err != nil {
			studio.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		studio.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(studio.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Status events go out over NATS; the realtime process fans them out to
	// websocket subscribers. The API runs fine without it.
	var publisher *realtime.Publisher
	if natsURL := studio.GetConfig().NatsURL; natsURL != "" {
		publisher, err = realtime.NewPublisher(natsURL)
		if err != nil {
			studio.Logger.Warn().Err(err).Msg("NATS unavailable, realtime push disabled")
		} else {
			defer publisher.Close()
		}
	}

	jobService := service.NewJobService(publisher)
	initAPI(router, jobService)

	studio.Logger.Debug().Msgf("Starting studio API on port %s", studio.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		studio.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful, jobService *service.JobService) {
	endpoints.AuthHandler(router)
	endpoints.UserHandler(router)
	endpoints.ClientHandler(router)
	endpoints.JobHandler(router, jobService)
	endpoints.PaymentHandler(router)
	endpoints.NotificationHandler(router)
	endpoints.AttendanceHandler(router)
	endpoints.PackageHandler(router)
	endpoints.ContractHandler(router)
	endpoints.MyHandler(router, jobService)
}
