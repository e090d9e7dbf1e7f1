package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MIA1kl/threads-api/controllers"
	"github.com/MIA1kl/threads-api/middleware"
	"github.com/MIA1kl/threads-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, notifier services.ThreadNotifier) {
	// Core services
	followService := services.NewFollowService(db)
	feedService := services.NewFeedService(db)
	contentService := services.NewContentService(db, notifier)
	interactionService := services.NewInteractionService(db, notifier)

	// Controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db, followService)
	threadController := controllers.NewThreadController(contentService)
	commentController := controllers.NewCommentController(contentService)
	interactionController := controllers.NewInteractionController(followService, interactionService)
	feedController := controllers.NewFeedController(feedService)
	uploadController := controllers.NewUploadController()

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.GET("/profile", userController.GetProfile)
		protected.PUT("/profile", userController.UpdateProfile)

		SetupThreadRoutes(protected, threadController, commentController, feedController, interactionController)
		SetupUserRoutes(protected, userController, feedController, interactionController)
		SetupUploadRoutes(protected, uploadController)
	}
}
