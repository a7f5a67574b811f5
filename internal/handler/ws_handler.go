// Package handler implements the HTTP layer.
// This file bridges the push gateway into the router.
package handler

import (
	"github.com/gin-gonic/gin"

	"theracare_server/internal/gateway/websocket"
)

// WsHandler upgrades push connections.
type WsHandler struct {
	gateway *websocket.Gateway
}

// NewWsHandler creates the websocket handler.
func NewWsHandler(gateway *websocket.Gateway) *WsHandler {
	return &WsHandler{gateway: gateway}
}

// Connect upgrades the request to a push connection.
// GET /ws?token=
func (h *WsHandler) Connect(c *gin.Context) {
	h.gateway.Handle(c)
}
