package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tastybites/tastybites-api/controllers"
	"github.com/tastybites/tastybites-api/middlewares"
)

func UserRoutes(server *gin.Engine, am *middlewares.AuthMiddleware, users *controllers.UserController) {
	group := server.Group("/api/users", am.RequireAuth())
	{
		group.GET("/me", users.GetProfile)
		group.PUT("/me", users.UpdateProfile)
		group.PUT("/me/password", users.ChangePassword)
	}
}
