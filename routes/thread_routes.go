package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MIA1kl/threads-api/controllers"
)

func SetupThreadRoutes(protected *gin.RouterGroup, threadController *controllers.ThreadController, commentController *controllers.CommentController, feedController *controllers.FeedController, interactionController *controllers.InteractionController) {
	protected.GET("/feed", feedController.GetFeed)

	threads := protected.Group("/threads")
	{
		threads.POST("", threadController.CreateThread)
		threads.GET("/:id", threadController.GetThreadDetail)
		threads.DELETE("/:id", threadController.DeleteThread)
		threads.POST("/:id/quote", threadController.QuoteThread)
		threads.POST("/:id/repost", threadController.RepostThread)
		threads.POST("/:id/like", interactionController.LikeThread)
		threads.GET("/:id/liked_users", interactionController.GetThreadLikedUsers)
		threads.POST("/:id/comments", commentController.CreateComment)
	}

	comments := protected.Group("/comments")
	{
		comments.DELETE("/:id", commentController.DeleteComment)
		comments.POST("/:id/like", interactionController.LikeComment)
		comments.GET("/:id/liked_users", interactionController.GetCommentLikedUsers)
		comments.GET("/:id/replies", commentController.GetReplies)
	}
}
