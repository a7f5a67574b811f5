package router

import (
	"github.com/gin-gonic/gin"
)

// registerWebSocketRoutes registers the push connection route. The upgrade
// request cannot carry an Authorization header from a browser, so the route
// stays outside the JWT group and the gateway checks a token query parameter
// itself; the connection is push-only.
func (rt *Router) registerWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", rt.handlers.Ws.Connect)
}
