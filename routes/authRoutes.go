package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
	"github.com/milaanpub/bookhouse-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/v1")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password/:resetToken", controllers.ResetPassword)
	}

	user := server.Group("/api/v1", middlewares.RequireAuth())
	{
		user.GET("/user", controllers.GetUserData)
		user.PUT("/user/address", controllers.UpdateUserAddress)
	}
}
