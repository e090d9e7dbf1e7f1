package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MIA1kl/threads-api/services"
	"github.com/MIA1kl/threads-api/utils"
)

type FeedController struct {
	FeedService *services.FeedService
}

func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// GetFeed godoc
// @Summary Get the threads visible to the authenticated user
// @Description Returns reverse-chronological threads from the viewer, public authors, and approved-followed private authors
// @Tags feed
// @Produce json
// @Param page query integer false "Page number (default: 1)"
// @Param pageSize query integer false "Items per page (default: 20)"
// @Success 200 {object} map[string]interface{}
// @Router /feed [get]
func (fc *FeedController) GetFeed(c *gin.Context) {
	user := utils.GetUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	threads, total, err := fc.FeedService.VisibleThreads(c.Request.Context(), user.UserID, page, pageSize)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threads":    threads,
		"pagination": paginationMeta(page, pageSize, total),
	})
}

// GetUserThreads godoc
// @Summary Get a single user's threads
// @Description Private authors are only visible to themselves and approved followers
// @Tags feed
// @Produce json
// @Param id path integer true "Author's user ID"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/threads [get]
func (fc *FeedController) GetUserThreads(c *gin.Context) {
	user := utils.GetUser(c)
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	threads, total, err := fc.FeedService.UserThreads(c.Request.Context(), user.UserID, uint(authorID), page, pageSize)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threads":    threads,
		"pagination": paginationMeta(page, pageSize, total),
	})
}
