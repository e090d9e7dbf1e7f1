package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MIA1kl/threads-api/services"
	"github.com/MIA1kl/threads-api/utils"
)

type InteractionController struct {
	FollowService      *services.FollowService
	InteractionService *services.InteractionService
}

func NewInteractionController(followService *services.FollowService, interactionService *services.InteractionService) *InteractionController {
	return &InteractionController{
		FollowService:      followService,
		InteractionService: interactionService,
	}
}

// FollowUser godoc
// @Summary Follow a user
// @Description Creates a follow edge; pending if the target account is private
// @Tags interactions
// @Produce json
// @Param id path integer true "User ID to follow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/follow [post]
func (ic *InteractionController) FollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	status, err := ic.FollowService.Follow(c.Request.Context(), user.UserID, uint(targetID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Tags interactions
// @Produce json
// @Param id path integer true "User ID to unfollow"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/unfollow [post]
func (ic *InteractionController) UnfollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := ic.FollowService.Unfollow(c.Request.Context(), user.UserID, uint(targetID)); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

// ApproveFollowRequest godoc
// @Summary Approve a pending follow request
// @Tags interactions
// @Produce json
// @Param id path integer true "Requesting user's ID"
// @Success 200 {object} map[string]interface{}
// @Router /follow-requests/{id}/approve [post]
func (ic *InteractionController) ApproveFollowRequest(c *gin.Context) {
	user := utils.GetUser(c)
	followerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := ic.FollowService.ApproveFollow(c.Request.Context(), user.UserID, uint(followerID)); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow request approved"})
}

// RejectFollowRequest godoc
// @Summary Reject a pending follow request
// @Tags interactions
// @Produce json
// @Param id path integer true "Requesting user's ID"
// @Success 200 {object} map[string]interface{}
// @Router /follow-requests/{id}/reject [post]
func (ic *InteractionController) RejectFollowRequest(c *gin.Context) {
	user := utils.GetUser(c)
	followerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := ic.FollowService.RejectFollow(c.Request.Context(), user.UserID, uint(followerID)); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follow request rejected"})
}

// GetUserFollowers godoc
// @Summary Get a user's approved followers
// @Tags interactions
// @Produce json
// @Param id path integer true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/followers [get]
func (ic *InteractionController) GetUserFollowers(c *gin.Context) {
	ic.listEdges(c, ic.FollowService.Followers, "followers")
}

// GetUserFollowing godoc
// @Summary Get the users someone follows
// @Tags interactions
// @Produce json
// @Param id path integer true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/following [get]
func (ic *InteractionController) GetUserFollowing(c *gin.Context) {
	ic.listEdges(c, ic.FollowService.Following, "following")
}

// GetPendingFollowRequests godoc
// @Summary Get the authenticated user's pending follow requests
// @Tags interactions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /follow-requests [get]
func (ic *InteractionController) GetPendingFollowRequests(c *gin.Context) {
	user := utils.GetUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	entries, total, err := ic.FollowService.PendingRequests(c.Request.Context(), user.UserID, page, pageSize)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":   entries,
		"pagination": paginationMeta(page, pageSize, total),
	})
}

func (ic *InteractionController) listEdges(c *gin.Context, list func(ctx context.Context, userID uint, page, pageSize int) ([]services.FollowEntry, int64, error), key string) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	entries, total, err := list(c.Request.Context(), uint(userID), page, pageSize)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		key:          entries,
		"pagination": paginationMeta(page, pageSize, total),
	})
}

// LikeThread godoc
// @Summary Like or unlike a thread
// @Description Toggles like status for a thread
// @Tags interactions
// @Produce json
// @Param id path integer true "Thread ID"
// @Success 200 {object} map[string]interface{}
// @Router /threads/{id}/like [post]
func (ic *InteractionController) LikeThread(c *gin.Context) {
	user := utils.GetUser(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	liked, err := ic.InteractionService.ToggleThreadLike(c.Request.Context(), user.UserID, uint(threadID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// LikeComment godoc
// @Summary Like or unlike a comment
// @Description Toggles like status for a comment
// @Tags interactions
// @Produce json
// @Param id path integer true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /comments/{id}/like [post]
func (ic *InteractionController) LikeComment(c *gin.Context) {
	user := utils.GetUser(c)
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	liked, err := ic.InteractionService.ToggleCommentLike(c.Request.Context(), user.UserID, uint(commentID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// GetThreadLikedUsers godoc
// @Summary List users who liked a thread
// @Tags interactions
// @Produce json
// @Param id path integer true "Thread ID"
// @Success 200 {object} map[string]interface{}
// @Router /threads/{id}/liked_users [get]
func (ic *InteractionController) GetThreadLikedUsers(c *gin.Context) {
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	users, err := ic.InteractionService.ThreadLikers(c.Request.Context(), uint(threadID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetCommentLikedUsers godoc
// @Summary List users who liked a comment
// @Tags interactions
// @Produce json
// @Param id path integer true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /comments/{id}/liked_users [get]
func (ic *InteractionController) GetCommentLikedUsers(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	users, err := ic.InteractionService.CommentLikers(c.Request.Context(), uint(commentID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
