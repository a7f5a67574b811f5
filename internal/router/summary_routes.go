package router

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/infrastructure/middleware"
)

// registerSummaryRoutes registers the enrichment pipeline routes. The /api
// prefix matches what the dashboards and the video room call.
func (rt *Router) registerSummaryRoutes(r *gin.Engine) {
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.JWTAuth())
	{
		apiGroup.PUT("/sessions/:sessionId", rt.handlers.Summary.UpdateSession)
		apiGroup.POST("/getSummary", rt.handlers.Summary.GetSummary)
		apiGroup.POST("/getTranscription", rt.handlers.Summary.GetTranscription)
		apiGroup.POST("/transcription", rt.handlers.Summary.AppendTranscript)
	}
}
