package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MIA1kl/threads-api/services"
	"github.com/MIA1kl/threads-api/utils"
)

type CommentController struct {
	ContentService *services.ContentService
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

func NewCommentController(contentService *services.ContentService) *CommentController {
	return &CommentController{ContentService: contentService}
}

// CreateComment godoc
// @Summary Comment on a thread
// @Description Adds a comment, optionally nested under a parent comment of the same thread
// @Tags comments
// @Accept json
// @Produce json
// @Param id path integer true "Thread ID"
// @Param comment body CreateCommentRequest true "Comment request"
// @Success 201 {object} models.Comment
// @Router /threads/{id}/comments [post]
func (cc *CommentController) CreateComment(c *gin.Context) {
	user := utils.GetUser(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := cc.ContentService.CreateComment(c.Request.Context(), user.UserID, uint(threadID), req.Content, req.ParentID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Deletes a comment and its replies; allowed for the comment author or the thread author
// @Tags comments
// @Produce json
// @Param id path integer true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /comments/{id} [delete]
func (cc *CommentController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := cc.ContentService.DeleteComment(c.Request.Context(), user.UserID, uint(commentID)); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment successfully deleted"})
}

// GetReplies godoc
// @Summary List the nested replies of a comment
// @Tags comments
// @Produce json
// @Param id path integer true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /comments/{id}/replies [get]
func (cc *CommentController) GetReplies(c *gin.Context) {
	user := utils.GetUser(c)
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	replies, err := cc.ContentService.Replies(c.Request.Context(), user.UserID, uint(commentID))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"replies": replies})
}
