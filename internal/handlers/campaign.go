package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/models"
	"juntos-mais-api/internal/store"
)

type CampaignHandler struct {
	Store *store.Store
	Log   *logger.Logger
}

func NewCampaignHandler(st *store.Store, log *logger.Logger) *CampaignHandler {
	return &CampaignHandler{Store: st, Log: log}
}

type CreateCampaignRequest struct {
	Nome          string     `json:"nome" binding:"required,min=3,max=200"`
	TipoCategoria *string    `json:"tipo_categoria" binding:"omitempty,max=1000"`
	Descricao     *string    `json:"descricao" binding:"omitempty,max=1000"`
	Localizacao   *string    `json:"localizacao" binding:"omitempty,max=100"`
	MetaValor     float64    `json:"meta_valor" binding:"required,gt=0"`
	Website       *string    `json:"website" binding:"omitempty,max=1000"`
	Telefone      *string    `json:"telefone" binding:"omitempty,max=20"`
	Email         *string    `json:"email" binding:"omitempty,email"`
	DataFim       *time.Time `json:"data_fim"`
}

// CampaignResponse is built field by field from the entity so the derived
// fields (percentual_atingido, defaulted rating) stay visibly separate from
// the stored ones.
type CampaignResponse struct {
	ID                 int64      `json:"id"`
	Nome               string     `json:"nome"`
	TipoCategoria      *string    `json:"tipo_categoria"`
	Descricao          *string    `json:"descricao"`
	Localizacao        string     `json:"localizacao"`
	MetaValor          float64    `json:"meta_valor"`
	ValorArrecadado    float64    `json:"valor_arrecadado"`
	Website            *string    `json:"website"`
	Telefone           *string    `json:"telefone"`
	DataInicio         time.Time  `json:"data_inicio"`
	DataFim            *time.Time `json:"data_fim"`
	Ativa              bool       `json:"ativa"`
	Email              *string    `json:"email"`
	Rating             float64    `json:"rating"`
	PercentualAtingido float64    `json:"percentual_atingido"`
}

func newCampaignResponse(c models.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:                 c.ID,
		Nome:               c.Nome,
		TipoCategoria:      c.TipoCategoria,
		Descricao:          c.Descricao,
		Localizacao:        c.Localizacao,
		MetaValor:          c.MetaValor,
		ValorArrecadado:    c.ValorArrecadado,
		Website:            c.Website,
		Telefone:           c.Telefone,
		DataInicio:         c.DataInicio,
		DataFim:            c.DataFim,
		Ativa:              c.Ativa,
		Email:              c.Email,
		Rating:             c.Rated(),
		PercentualAtingido: models.PercentGoal(c.ValorArrecadado, c.MetaValor),
	}
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Log, bindError(err))
		return
	}

	localizacao := models.DefaultLocation
	if req.Localizacao != nil && *req.Localizacao != "" {
		localizacao = *req.Localizacao
	}
	rating := models.DefaultRating

	campaign := &models.Campaign{
		Nome:            req.Nome,
		TipoCategoria:   req.TipoCategoria,
		Descricao:       req.Descricao,
		Localizacao:     localizacao,
		MetaValor:       req.MetaValor,
		ValorArrecadado: 0,
		Website:         req.Website,
		Telefone:        req.Telefone,
		DataInicio:      time.Now().UTC(),
		DataFim:         req.DataFim,
		Ativa:           true,
		Email:           req.Email,
		Rating:          &rating,
	}
	if err := h.Store.CreateCampaign(c.Request.Context(), campaign); err != nil {
		writeError(c, h.Log, err)
		return
	}

	h.Log.Info("campaign created", "campanha_id", campaign.ID, "meta_valor", campaign.MetaValor)
	c.JSON(http.StatusCreated, newCampaignResponse(*campaign))
}

func (h *CampaignHandler) List(c *gin.Context) {
	ativas := true
	if raw := c.Query("ativas"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, h.Log, apperrors.Validation(apperrors.FieldError{Field: "ativas", Reason: "Deve ser um booleano"}))
			return
		}
		ativas = parsed
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(c, h.Log, apperrors.Validation(apperrors.FieldError{Field: "limit", Reason: "Deve ser um inteiro positivo"}))
			return
		}
		limit = parsed
	}

	campaigns, err := h.Store.ListCampaigns(c.Request.Context(), ativas, limit)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	out := make([]CampaignResponse, 0, len(campaigns))
	for _, campaign := range campaigns {
		out = append(out, newCampaignResponse(campaign))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, newCampaignResponse(*campaign))
}

// Deactivate soft-deletes the campaign: it only flips the active flag.
func (h *CampaignHandler) Deactivate(c *gin.Context) {
	id, err := pathID(c, "campanha_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	if err := h.Store.DeactivateCampaign(c.Request.Context(), id); err != nil {
		writeError(c, h.Log, err)
		return
	}
	h.Log.Info("campaign deactivated", "campanha_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Campanha desativada com sucesso"})
}
