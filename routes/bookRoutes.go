package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
	"github.com/milaanpub/bookhouse-api/middlewares"
)

func BookRoutes(server *gin.Engine) {
	public := server.Group("/api/v1")
	{
		public.GET("/book", controllers.GetAllBooks)
		public.GET("/book/recent", controllers.GetRecentBooks)
		public.GET("/book/search", controllers.SearchBooks)
		public.GET("/book/details/:id", controllers.GetBookByID)
		public.GET("/book/category/:category", controllers.GetBooksByCategory)
		public.GET("/category", controllers.GetCategories)
	}

	admin := server.Group("/api/v1", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/book", controllers.AddBook)
		admin.PUT("/book/:id", controllers.UpdateBook)
		admin.DELETE("/book/:id", controllers.DeleteBook)
		admin.POST("/category", controllers.AddCategory)
	}

	favourites := server.Group("/api/v1", middlewares.RequireAuth())
	{
		favourites.POST("/favourite", controllers.AddBookToFavourite)
		favourites.DELETE("/favourite/:bookId", controllers.RemoveBookFromFavourite)
		favourites.GET("/favourite", controllers.GetFavouriteBooks)
	}
}
