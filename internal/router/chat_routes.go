package router

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/infrastructure/middleware"
)

// registerChatRoutes registers the messaging routes.
func (rt *Router) registerChatRoutes(r *gin.Engine) {
	chatGroup := r.Group("/chat")
	chatGroup.Use(middleware.JWTAuth())
	{
		chatGroup.GET("/contacts", rt.handlers.Chat.Contacts)
		chatGroup.POST("/open", rt.handlers.Chat.OpenConversation)
		chatGroup.POST("/send", rt.handlers.Chat.SendMessage)
		chatGroup.GET("/messages", rt.handlers.Chat.MessageHistory)
	}
}
