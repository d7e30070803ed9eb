package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tastybites/tastybites-api/controllers"
)

func FoodRoutes(server *gin.Engine, foods *controllers.FoodController) {
	group := server.Group("/api/foods")
	{
		group.GET("", foods.GetFoods)
		group.GET("/categories", foods.GetCategories)
		group.GET("/:id", foods.GetFood)
	}
}
