package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tastybites/tastybites-api/controllers"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController) {
	group := server.Group("/api/auth")
	{
		group.POST("/register", auth.Register)
		group.POST("/login", auth.Login)
	}
}
