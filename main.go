package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tastybites/tastybites-api/config"
	"github.com/tastybites/tastybites-api/controllers"
	"github.com/tastybites/tastybites-api/initializers"
	"github.com/tastybites/tastybites-api/middlewares"
	"github.com/tastybites/tastybites-api/payments"
	"github.com/tastybites/tastybites-api/routes"
	"github.com/tastybites/tastybites-api/storage"
	"github.com/tastybites/tastybites-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := initializers.ConnectToDB(cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := initializers.SyncDatabase(db); err != nil {
		log.WithError(err).Fatal("failed to sync database")
	}

	mailer := utils.NewMailer(cfg.SMTP)
	paymentsClient := payments.NewClient(cfg.Pesapal)

	var uploader *storage.S3Uploader
	if cfg.S3.Enabled() {
		uploader, err = storage.NewS3Uploader(context.Background(), cfg.S3)
		if err != nil {
			log.WithError(err).Warn("image storage unavailable, uploads disabled")
			uploader = nil
		}
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	am := middlewares.NewAuthMiddleware(db, cfg.JWT)

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, controllers.NewAuthController(db, cfg.JWT))
	routes.UserRoutes(server, am, controllers.NewUserController(db))
	routes.FoodRoutes(server, controllers.NewFoodController(db))
	routes.OrderRoutes(server, am, controllers.NewOrderController(db, cfg.Order, mailer, paymentsClient))
	routes.AdminRoutes(server, am, controllers.NewAdminController(db, uploader))

	if err := server.Run(cfg.ServiceAddr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
