package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
	"github.com/milaanpub/bookhouse-api/middlewares"
)

func EventRoutes(server *gin.Engine) {
	public := server.Group("/api/v1")
	{
		public.GET("/event", controllers.GetAllEvents)
		public.GET("/event/:id", controllers.GetSingleEvent)
		public.GET("/event/:id/form", controllers.GetRegistrationForm)
		public.POST("/event/:id/register", controllers.RegisterForEvent)
	}

	admin := server.Group("/api/v1", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/event", controllers.CreateEvent)
		admin.PUT("/event/:id", controllers.UpdateEvent)
		admin.POST("/event/:id/form", controllers.UpsertRegistrationForm)
		admin.GET("/event/:id/registrations", controllers.GetEventRegistrations)
		admin.POST("/event/:id/leaderboard", controllers.CreateLeaderboard)
	}
}
