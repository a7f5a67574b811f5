package router

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/infrastructure/middleware"
)

// registerNotificationRoutes registers the alert feed routes.
func (rt *Router) registerNotificationRoutes(r *gin.Engine) {
	notificationGroup := r.Group("/notification")
	notificationGroup.Use(middleware.JWTAuth())
	{
		notificationGroup.GET("/feed", rt.handlers.Notification.Feed)
		notificationGroup.POST("/markRead", rt.handlers.Notification.MarkRead)
		notificationGroup.POST("/markAllRead", rt.handlers.Notification.MarkAllRead)
	}
}
