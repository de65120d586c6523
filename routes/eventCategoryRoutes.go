package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
	"github.com/milaanpub/bookhouse-api/middlewares"
)

func EventCategoryRoutes(server *gin.Engine) {
	public := server.Group("/api/v1")
	{
		public.GET("/event-category", controllers.GetEventCategories)
		public.GET("/event-category/:id/events", controllers.GetEventsOfCategory)
	}

	admin := server.Group("/api/v1", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/event-category", controllers.CreateEventCategory)
		admin.PUT("/event-category/:id", controllers.UpdateEventCategory)
		admin.DELETE("/event-category/:id", controllers.DeleteEventCategory)
	}
}
