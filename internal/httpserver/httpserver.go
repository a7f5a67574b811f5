// Package httpserver creates and configures the gin engine: middleware,
// static files and the route registrations.
package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"theracare_server/internal/config"
	"theracare_server/internal/handler"
	"theracare_server/internal/infrastructure/logger"
	"theracare_server/internal/router"
)

// Init builds the engine. Middleware order: logging, recovery, CORS, then
// the routes.
func Init(handlers *handler.Handlers) *gin.Engine {
	// blank engine to keep full control over the middleware chain
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // tighten for production deployments
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// TLS redirect when SSL terminates here rather than at a proxy
	// engine.Use(middleware.TlsHandler(config.GetConfig().MainConfig.Host, config.GetConfig().MainConfig.Port))

	// saved room transcripts are served read-only
	if path := config.GetConfig().StaticSrcConfig.TranscriptPath; path != "" {
		engine.Static("/static/transcriptions", path)
	}

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
