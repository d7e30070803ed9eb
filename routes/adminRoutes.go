package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tastybites/tastybites-api/controllers"
	"github.com/tastybites/tastybites-api/middlewares"
)

func AdminRoutes(server *gin.Engine, am *middlewares.AuthMiddleware, admin *controllers.AdminController) {
	group := server.Group("/api/admin", am.RequireAuth(), am.RequireAdmin())
	{
		group.GET("/dashboard", admin.GetDashboard)

		group.GET("/users", admin.GetUsers)
		group.PUT("/users/:id/toggle-active", admin.ToggleUserActive)
		group.POST("/users/:id/make-admin", admin.MakeUserAdmin)

		group.POST("/categories", admin.CreateCategory)
		group.DELETE("/categories/:id", admin.DeleteCategory)

		group.GET("/foods", admin.GetFoods)
		group.POST("/foods", admin.CreateFood)
		group.PUT("/foods/:id", admin.UpdateFood)
		group.DELETE("/foods/:id", admin.DeleteFood)
		group.POST("/foods/:id/image", admin.UploadFoodImage)

		group.GET("/orders", admin.GetOrders)
		group.PUT("/orders/:id/status", admin.UpdateOrderStatus)
	}
}
