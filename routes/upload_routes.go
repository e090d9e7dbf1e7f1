package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MIA1kl/threads-api/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		upload.POST("/presigned-url", uploadController.GetPresignedURL)
	}
}
