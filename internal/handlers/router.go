package handlers

import (
	"github.com/gin-gonic/gin"

	"juntos-mais-api/internal/donations"
	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/store"
	ws "juntos-mais-api/internal/websocket"
)

// RegisterRoutes wires every endpoint onto the router. The hub may be nil
// when websocket alerts are not wanted (tests).
func RegisterRoutes(r *gin.Engine, st *store.Store, ctrl *donations.Controller, hub *ws.Hub, log *logger.Logger) {
	authHandler := NewAuthHandler(st, log)
	campaignHandler := NewCampaignHandler(st, log)
	donationHandler := NewDonationHandler(st, ctrl, log)
	statsHandler := NewStatsHandler(st, log)
	miscHandler := NewMiscHandler(st, log)

	r.GET("/", miscHandler.Index)
	r.GET("/health", miscHandler.Health)

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/users/me/:user_id", authHandler.GetProfile)

	campanhas := r.Group("/campanhas")
	{
		campanhas.POST("", campaignHandler.Create)
		campanhas.GET("", campaignHandler.List)
		campanhas.GET("/:campanha_id", campaignHandler.Get)
		campanhas.DELETE("/:campanha_id", campaignHandler.Deactivate)
	}

	doacoes := r.Group("/doacoes")
	{
		doacoes.POST("", donationHandler.Create)
		doacoes.GET("/campanha/:campanha_id", donationHandler.ListByCampaign)
		doacoes.GET("/:doacao_id", donationHandler.Get)
		doacoes.PATCH("/:doacao_id/confirmar", donationHandler.Confirm)
		doacoes.PATCH("/:doacao_id/cancelar", donationHandler.Cancel)
	}

	stats := r.Group("/stats")
	{
		stats.GET("/campanha/:campanha_id", statsHandler.Campaign)
		stats.GET("/geral", statsHandler.Platform)
	}

	if hub != nil {
		wsHandler := NewWebSocketHandler(st, hub, log)
		r.GET("/ws/campanha/:campanha_id", wsHandler.ServeWS)
	}
}
