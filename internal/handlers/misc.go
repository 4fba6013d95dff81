package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/store"
)

type MiscHandler struct {
	Store *store.Store
	Log   *logger.Logger
}

func NewMiscHandler(st *store.Store, log *logger.Logger) *MiscHandler {
	return &MiscHandler{Store: st, Log: log}
}

func (h *MiscHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API de Doações para ONGs",
		"version": "2.0.0",
		"endpoints": gin.H{
			"auth": gin.H{
				"register": "POST /register",
				"login":    "POST /login",
				"profile":  "GET /users/me/{user_id}",
			},
			"campanhas": gin.H{
				"listar":    "GET /campanhas",
				"criar":     "POST /campanhas",
				"detalhes":  "GET /campanhas/{id}",
				"desativar": "DELETE /campanhas/{id}",
			},
			"doacoes": gin.H{
				"criar":           "POST /doacoes",
				"confirmar":       "PATCH /doacoes/{id}/confirmar",
				"cancelar":        "PATCH /doacoes/{id}/cancelar",
				"listar_campanha": "GET /doacoes/campanha/{campanha_id}",
				"detalhes":        "GET /doacoes/{id}",
			},
			"stats": gin.H{
				"campanha": "GET /stats/campanha/{id}",
				"geral":    "GET /stats/geral",
			},
			"ws": gin.H{
				"alertas": "GET /ws/campanha/{campanha_id}",
			},
		},
	})
}

func (h *MiscHandler) Health(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"message":  "API funcionando corretamente",
	})
}
