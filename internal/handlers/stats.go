package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/models"
	"juntos-mais-api/internal/store"
)

type StatsHandler struct {
	Store *store.Store
	Log   *logger.Logger
}

func NewStatsHandler(st *store.Store, log *logger.Logger) *StatsHandler {
	return &StatsHandler{Store: st, Log: log}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (h *StatsHandler) Campaign(c *gin.Context) {
	id, err := pathID(c, "campanha_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	campaign, err := h.Store.GetCampaign(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	total, media, err := h.Store.ConfirmedDonationStats(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campanha_id":         campaign.ID,
		"nome":                campaign.Nome,
		"meta_valor":          campaign.MetaValor,
		"valor_arrecadado":    campaign.ValorArrecadado,
		"percentual_atingido": round2(models.PercentGoal(campaign.ValorArrecadado, campaign.MetaValor)),
		"total_doacoes":       total,
		"doacao_media":        round2(media),
		"falta_arrecadar":     campaign.MetaValor - campaign.ValorArrecadado,
	})
}

func (h *StatsHandler) Platform(c *gin.Context) {
	stats, err := h.Store.PlatformStats(c.Request.Context())
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_campanhas_ativas": stats.TotalCampanhasAtivas,
		"total_arrecadado":       stats.TotalArrecadado,
		"total_doacoes":          stats.TotalDoacoes,
		"total_usuarios":         stats.TotalUsuarios,
	})
}
