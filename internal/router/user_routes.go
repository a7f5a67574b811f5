package router

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/infrastructure/middleware"
)

// registerUserRoutes registers account and auth routes.
func (rt *Router) registerUserRoutes(r *gin.Engine) {
	// public
	r.POST("/user/register", rt.handlers.User.Register)
	r.POST("/user/login", rt.handlers.User.Login)
	r.POST("/user/refreshToken", rt.handlers.User.RefreshToken)

	// authenticated
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/therapists", rt.handlers.User.TherapistList)
		userGroup.GET("/patients", rt.handlers.User.PatientList)
		userGroup.GET("/:userId", rt.handlers.User.GetUserInfo)
	}
}
