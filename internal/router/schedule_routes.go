package router

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/infrastructure/middleware"
)

// registerScheduleRoutes registers the dashboard view routes.
func (rt *Router) registerScheduleRoutes(r *gin.Engine) {
	scheduleGroup := r.Group("/schedule")
	scheduleGroup.Use(middleware.JWTAuth())
	{
		scheduleGroup.GET("/dashboard", rt.handlers.Schedule.Dashboard)
		scheduleGroup.GET("/today", rt.handlers.Schedule.TodaySchedule)
		scheduleGroup.GET("/sessions", rt.handlers.Schedule.SessionList)
		scheduleGroup.GET("/session", rt.handlers.Schedule.SessionDetail)
	}
}
