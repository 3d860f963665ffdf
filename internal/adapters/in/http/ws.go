package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// closeGracePeriod bounds the close handshake on a rejected subscription.
const closeGracePeriod = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from arbitrary origins; the token carries
	// the actual authorization.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// SubscribeOrders godoc
//
//	@Summary	Subscribe to live order status events
//	@Tags		orders
//	@Param		token	query	string	true	"bearer token"
//	@Success	101
//	@Router		/ws/orders [get]
func (s *Server) SubscribeOrders(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	principal, err := s.auth.PrincipalFromToken(c.QueryParam("token"))
	if err != nil {
		// Policy violation close (1008), mirroring the HTTP 401.
		deadline := time.Now().Add(closeGracePeriod)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid token"),
			deadline,
		)
		return conn.Close()
	}

	sub := s.hub.Register(conn, principal)
	defer s.hub.Unregister(sub)

	// Inbound frames are not part of the protocol; the read loop only
	// notices disconnects and keeps the connection's control handling alive.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
