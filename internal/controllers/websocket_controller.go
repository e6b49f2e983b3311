package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/pkg/utils"
	appwebsocket "machinery-registry/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub    *appwebsocket.Hub
	logger *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, logger: logger}
}

// ServeWs upgrades the connection. The route sits behind the query-token auth
// middleware, so the user id is already on the request context.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("ServeWs: upgrade failed", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(c.hub, conn, userID)
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	username, _ := utils.GetUsernameFromCtx(ctx.Request().Context())
	c.logger.Info("websocket client connected", zap.Uint64("userID", userID), zap.String("username", username))
	return nil
}
