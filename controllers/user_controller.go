package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MIA1kl/threads-api/models"
	"github.com/MIA1kl/threads-api/services"
	"github.com/MIA1kl/threads-api/utils"
)

type UserController struct {
	DB            *gorm.DB
	FollowService *services.FollowService
}

func NewUserController(db *gorm.DB, followService *services.FollowService) *UserController {
	return &UserController{DB: db, FollowService: followService}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Router /profile [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)

	var profile models.User
	if err := uc.DB.First(&profile, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Router /profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		Name           *string `json:"name"`
		Bio            *string `json:"bio"`
		Link           *string `json:"link"`
		ProfilePicture *string `json:"profile_picture"`
		IsPrivate      *bool   `json:"is_private"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Link != nil {
		updates["link"] = *input.Link
	}
	if input.ProfilePicture != nil {
		updates["profile_picture"] = *input.ProfilePicture
	}
	if input.IsPrivate != nil {
		updates["is_private"] = *input.IsPrivate
	}

	var profile models.User
	if err := uc.DB.First(&profile, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if len(updates) > 0 {
		if err := uc.DB.Model(&profile).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, profile)
}

// GetUserByUsername godoc
// @Summary Look up a user's public info by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{}
// @Router /users/{username} [get]
func (uc *UserController) GetUserByUsername(c *gin.Context) {
	viewer := utils.GetUser(c)

	username := c.Param("username")

	var user models.User
	if err := uc.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var followersCount, followingCount int64
	uc.DB.Model(&models.Follow{}).Where("following_id = ? AND is_approved = ?", user.ID, true).Count(&followersCount)
	uc.DB.Model(&models.Follow{}).Where("follower_id = ? AND is_approved = ?", user.ID, true).Count(&followingCount)

	isFollowing, err := uc.FollowService.IsFollowing(c.Request.Context(), viewer.UserID, user.ID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"name":            user.Name,
		"bio":             user.Bio,
		"link":            user.Link,
		"profile_picture": user.ProfilePicture,
		"is_private":      user.IsPrivate,
		"followers_count": followersCount,
		"following_count": followingCount,
		"is_following":    isFollowing,
	})
}
