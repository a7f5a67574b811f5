// Package router registers the HTTP routes.
// This file holds the router aggregate; the per-module registrations live in
// the sibling files.
package router

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/handler"
)

// Router binds the handler aggregate to the gin engine.
type Router struct {
	handlers *handler.Handlers
}

// NewRouter creates the router.
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes registers every module's routes.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.registerUserRoutes(r)
	rt.registerScheduleRoutes(r)
	rt.registerBookingRoutes(r)
	rt.registerChatRoutes(r)
	rt.registerNotificationRoutes(r)
	rt.registerSummaryRoutes(r)
	rt.registerWebSocketRoutes(r)
}
