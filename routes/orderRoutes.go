package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/milaanpub/bookhouse-api/controllers"
	"github.com/milaanpub/bookhouse-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	order := server.Group("/api/v1", middlewares.RequireAuth())
	{
		order.POST("/order", controllers.PlaceOrder)
		order.POST("/order/:orderId/manual-payment", controllers.ManualPaymentDone)
		order.POST("/order/:orderId/pay", controllers.InitiatePayment)
		order.GET("/order/history", controllers.GetOrderHistory)
		order.GET("/order/details/:orderId", controllers.GetOrderDetails)
	}

	admin := server.Group("/api/v1", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/orders", controllers.GetAllOrders)
		admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		admin.PATCH("/orders/:id/payment-status", controllers.UpdatePaymentStatus)
	}

	// Gateway callbacks arrive unauthenticated.
	server.POST("/api/v1/payment/ipn", controllers.HandlePaymentIPN)
	server.GET("/api/v1/payment/ipn", controllers.HandlePaymentIPN)
}
