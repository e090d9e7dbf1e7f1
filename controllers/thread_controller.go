package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MIA1kl/threads-api/services"
	"github.com/MIA1kl/threads-api/utils"
)

type ThreadController struct {
	ContentService *services.ContentService
}

type CreateThreadRequest struct {
	Content        string   `json:"content"`
	MediaURLs      []string `json:"mediaUrls"`
	QuotedThreadID *uint    `json:"quotedThreadId"`
}

type QuoteThreadRequest struct {
	Content   string   `json:"content"`
	MediaURLs []string `json:"mediaUrls"`
}

func NewThreadController(contentService *services.ContentService) *ThreadController {
	return &ThreadController{ContentService: contentService}
}

// CreateThread godoc
// @Summary Create a new thread
// @Tags threads
// @Accept json
// @Produce json
// @Param thread body CreateThreadRequest true "Thread creation request"
// @Success 201 {object} models.Thread
// @Router /threads [post]
func (tc *ThreadController) CreateThread(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := tc.ContentService.CreateThread(c.Request.Context(), user.UserID, req.Content, req.MediaURLs, req.QuotedThreadID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, thread)
}

// GetThreadDetail godoc
// @Summary Get one thread with its comment tree
// @Tags threads
// @Produce json
// @Param id path integer true "Thread ID"
// @Success 200 {object} map[string]interface{}
// @Router /threads/{id} [get]
func (tc *ThreadController) GetThreadDetail(c *gin.Context) {
	user := utils.GetUser(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	thread, err := tc.ContentService.GetThread(c.Request.Context(), user.UserID, uint(threadID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	comments, err := tc.ContentService.ThreadComments(c.Request.Context(), user.UserID, uint(threadID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"thread":   thread,
		"comments": comments,
	})
}

// DeleteThread godoc
// @Summary Delete a thread
// @Description Deletes a thread and its comments and likes; author only
// @Tags threads
// @Produce json
// @Param id path integer true "Thread ID"
// @Success 200 {object} map[string]interface{}
// @Router /threads/{id} [delete]
func (tc *ThreadController) DeleteThread(c *gin.Context) {
	user := utils.GetUser(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	if err := tc.ContentService.DeleteThread(c.Request.Context(), user.UserID, uint(threadID)); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thread successfully deleted"})
}

// QuoteThread godoc
// @Summary Quote a thread
// @Description Creates a new thread referencing the original plus new content
// @Tags threads
// @Accept json
// @Produce json
// @Param id path integer true "Thread ID to quote"
// @Param quote body QuoteThreadRequest true "Quote content"
// @Success 201 {object} models.Thread
// @Router /threads/{id}/quote [post]
func (tc *ThreadController) QuoteThread(c *gin.Context) {
	user := utils.GetUser(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	var req QuoteThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := tc.ContentService.QuoteThread(c.Request.Context(), user.UserID, uint(threadID), req.Content, req.MediaURLs)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, thread)
}

// RepostThread godoc
// @Summary Repost a thread
// @Description Creates a bare repost: a new thread referencing the original with no content
// @Tags threads
// @Produce json
// @Param id path integer true "Thread ID to repost"
// @Success 201 {object} models.Thread
// @Router /threads/{id}/repost [post]
func (tc *ThreadController) RepostThread(c *gin.Context) {
	user := utils.GetUser(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	thread, err := tc.ContentService.RepostThread(c.Request.Context(), user.UserID, uint(threadID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, thread)
}
