package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MIA1kl/threads-api/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController, feedController *controllers.FeedController, interactionController *controllers.InteractionController) {
	users := protected.Group("/users")
	{
		users.GET("/by-username/:username", userController.GetUserByUsername)
		users.GET("/:id/threads", feedController.GetUserThreads)
		users.POST("/:id/follow", interactionController.FollowUser)
		users.POST("/:id/unfollow", interactionController.UnfollowUser)
		users.GET("/:id/followers", interactionController.GetUserFollowers)
		users.GET("/:id/following", interactionController.GetUserFollowing)
	}

	requests := protected.Group("/follow-requests")
	{
		requests.GET("", interactionController.GetPendingFollowRequests)
		requests.POST("/:id/approve", interactionController.ApproveFollowRequest)
		requests.POST("/:id/reject", interactionController.RejectFollowRequest)
	}
}
