package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MIA1kl/threads-api/config"
	"github.com/MIA1kl/threads-api/routes"
	"github.com/MIA1kl/threads-api/services"
)

func main() {
	logger := config.InitLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, relying on environment")
	}

	db := config.InitDB()

	redisClient := config.InitRedis()
	notifier := services.NewRedisNotifier(redisClient, logger)

	r := gin.Default()
	routes.SetupRoutes(r, db, notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Starting server", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
