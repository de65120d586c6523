package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
)

func SubmissionRoutes(server *gin.Engine) {
	poetry := server.Group("/api/v1")
	{
		poetry.POST("/poetry", controllers.SubmitPoetry)
		poetry.POST("/poetry/verify-payment", controllers.VerifyPayment)
	}
}
