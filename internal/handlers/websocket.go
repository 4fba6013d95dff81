package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/store"
	ws "juntos-mais-api/internal/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams confirmation alerts for one campaign to widgets
// and dashboards watching it.
type WebSocketHandler struct {
	Store *store.Store
	Hub   *ws.Hub
	Log   *logger.Logger
}

func NewWebSocketHandler(st *store.Store, hub *ws.Hub, log *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{Store: st, Hub: hub, Log: log}
}

func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	campaignID, err := pathID(c, "campanha_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	if _, err := h.Store.GetCampaign(c.Request.Context(), campaignID); err != nil {
		writeError(c, h.Log, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &ws.Client{
		Hub:        h.Hub,
		Conn:       conn,
		Send:       make(chan []byte, 256),
		CampaignID: campaignID,
	}
	client.Hub.Register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) writePump(client *ws.Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *ws.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Debug("websocket read ended", "error", err)
			}
			break
		}
	}
}
