package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/utils"
	appwebsocket "os-manager/pkg/websocket"
)

type WebSocketController struct {
	hub      *appwebsocket.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketController - allowedOrigins пустой означает "разрешить всё" (режим разработки).
func NewWebSocketController(hub *appwebsocket.Hub, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// ServeWs вызывается после AuthQuery, пользователь уже в контексте.
func (ctrl *WebSocketController) ServeWs(c echo.Context) error {
	actor, ok := utils.GetActorFromCtx(c.Request().Context())
	if !ok {
		return utils.ErrorResponse(c, apperrors.ErrUnauthenticated, ctrl.logger)
	}

	conn, err := ctrl.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ctrl.logger.Error("WebSocket: не удалось улучшить соединение", zap.Error(err))
		return nil
	}

	client := appwebsocket.NewClient(ctrl.hub, conn, actor.ID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	ctrl.logger.Info("WebSocket: клиент подключен", zap.String("userID", actor.ID))
	return nil
}
