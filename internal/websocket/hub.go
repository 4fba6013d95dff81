package websocket

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"juntos-mais-api/internal/logger"
)

type Client struct {
	Hub        *Hub
	Conn       *websocket.Conn
	Send       chan []byte
	CampaignID int64
}

// ConfirmationAlert is pushed to every watcher of a campaign when a donation
// is confirmed.
type ConfirmationAlert struct {
	CampanhaID          int64   `json:"-"`
	DoacaoID            int64   `json:"doacao_id"`
	DoadorNome          string  `json:"doador_nome"`
	Valor               float64 `json:"valor"`
	NovoValorArrecadado float64 `json:"novo_valor_arrecadado"`
	PercentualAtingido  float64 `json:"percentual_atingido"`
}

// Hub fans confirmation alerts out to the websocket clients watching each
// campaign. All map access happens on the Run goroutine.
type Hub struct {
	clients        map[int64]map[*Client]bool
	Register       chan *Client
	Unregister     chan *Client
	BroadcastAlert chan ConfirmationAlert
	log            *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:        make(map[int64]map[*Client]bool),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		BroadcastAlert: make(chan ConfirmationAlert),
		log:            log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if h.clients[client.CampaignID] == nil {
				h.clients[client.CampaignID] = make(map[*Client]bool)
			}
			h.clients[client.CampaignID][client] = true
			h.log.Debug("websocket client registered", "campanha_id", client.CampaignID)

		case client := <-h.Unregister:
			if watchers, ok := h.clients[client.CampaignID]; ok {
				if watchers[client] {
					delete(watchers, client)
					close(client.Send)
					if len(watchers) == 0 {
						delete(h.clients, client.CampaignID)
					}
				}
			}

		case alert := <-h.BroadcastAlert:
			watchers := h.clients[alert.CampanhaID]
			if len(watchers) == 0 {
				continue
			}
			payload, err := json.Marshal(alert)
			if err != nil {
				h.log.Error("failed to marshal confirmation alert", "error", err)
				continue
			}
			for client := range watchers {
				select {
				case client.Send <- payload:
				default:
					close(client.Send)
					delete(watchers, client)
				}
			}
		}
	}
}
