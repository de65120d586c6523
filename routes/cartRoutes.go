package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
	"github.com/milaanpub/bookhouse-api/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/api/v1", middlewares.RequireAuth())
	{
		cart.POST("/cart", controllers.AddToCart)
		cart.PUT("/cart", controllers.UpdateCart)
		cart.DELETE("/cart/:bookId", controllers.RemoveFromCart)
		cart.GET("/cart", controllers.GetUserCart)
	}
}
