package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
)

func ContactRoutes(server *gin.Engine) {
	contact := server.Group("/api/v1")
	{
		contact.POST("/contact", controllers.Contact)
		contact.POST("/package-inquiry", controllers.SendPackageInquiry)
	}
}
