package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tastybites/tastybites-api/controllers"
	"github.com/tastybites/tastybites-api/middlewares"
)

func OrderRoutes(server *gin.Engine, am *middlewares.AuthMiddleware, orders *controllers.OrderController) {
	group := server.Group("/api/orders", am.RequireAuth())
	{
		group.POST("", orders.CreateOrder)
		group.GET("", orders.GetMyOrders)
		group.GET("/:id", orders.GetOrder)
		group.POST("/:id/cancel", orders.CancelOrder)
	}
}
