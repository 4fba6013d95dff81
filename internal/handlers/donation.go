package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/donations"
	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/models"
	"juntos-mais-api/internal/store"
)

type DonationHandler struct {
	Store      *store.Store
	Controller *donations.Controller
	Log        *logger.Logger
}

func NewDonationHandler(st *store.Store, ctrl *donations.Controller, log *logger.Logger) *DonationHandler {
	return &DonationHandler{Store: st, Controller: ctrl, Log: log}
}

type CreateDonationRequest struct {
	CampanhaID  int64   `json:"campanha_id" binding:"required"`
	UserID      *int64  `json:"user_id"`
	Valor       float64 `json:"valor" binding:"required"`
	DoadorNome  string  `json:"doador_nome" binding:"required"`
	DoadorCPF   string  `json:"doador_cpf" binding:"required"`
	DoadorEmail *string `json:"doador_email" binding:"omitempty,email"`
	Rua         string  `json:"rua" binding:"required"`
	Numero      string  `json:"numero" binding:"required"`
	Complemento *string `json:"complemento"`
	Bairro      string  `json:"bairro" binding:"required"`
	Cidade      string  `json:"cidade" binding:"required"`
	UF          string  `json:"uf" binding:"required"`
	CEP         string  `json:"cep" binding:"required"`
}

type DonationResponse struct {
	ID              int64     `json:"id"`
	CampanhaID      int64     `json:"campanha_id"`
	UserID          *int64    `json:"user_id"`
	Valor           float64   `json:"valor"`
	DoadorNome      string    `json:"doador_nome"`
	DoadorCPF       string    `json:"doador_cpf"`
	DoadorEmail     *string   `json:"doador_email"`
	Rua             string    `json:"rua"`
	Numero          string    `json:"numero"`
	Complemento     *string   `json:"complemento"`
	Bairro          string    `json:"bairro"`
	Cidade          string    `json:"cidade"`
	UF              string    `json:"uf"`
	CEP             string    `json:"cep"`
	DataDoacao      time.Time `json:"data_doacao"`
	MetodoPagamento string    `json:"metodo_pagamento"`
	Status          string    `json:"status"`
	PixCode         *string   `json:"pix_code"`
	PixQRCode       *string   `json:"pix_qr_code"`
}

func newDonationResponse(d models.Donation) DonationResponse {
	return DonationResponse{
		ID:              d.ID,
		CampanhaID:      d.CampanhaID,
		UserID:          d.UserID,
		Valor:           d.Valor,
		DoadorNome:      d.DoadorNome,
		DoadorCPF:       d.DoadorCPF,
		DoadorEmail:     d.DoadorEmail,
		Rua:             d.Rua,
		Numero:          d.Numero,
		Complemento:     d.Complemento,
		Bairro:          d.Bairro,
		Cidade:          d.Cidade,
		UF:              d.UF,
		CEP:             d.CEP,
		DataDoacao:      d.DataDoacao,
		MetodoPagamento: d.MetodoPagamento,
		Status:          d.Status,
		PixCode:         d.PixCode,
		PixQRCode:       d.PixQRCode,
	}
}

func (h *DonationHandler) Create(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Log, bindError(err))
		return
	}

	donation, err := h.Controller.Create(c.Request.Context(), donations.CreateInput{
		CampanhaID:  req.CampanhaID,
		UserID:      req.UserID,
		Valor:       req.Valor,
		DoadorNome:  req.DoadorNome,
		DoadorCPF:   req.DoadorCPF,
		DoadorEmail: req.DoadorEmail,
		Rua:         req.Rua,
		Numero:      req.Numero,
		Complemento: req.Complemento,
		Bairro:      req.Bairro,
		Cidade:      req.Cidade,
		UF:          req.UF,
		CEP:         req.CEP,
	})
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, newDonationResponse(*donation))
}

func (h *DonationHandler) Confirm(c *gin.Context) {
	id, err := pathID(c, "doacao_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	result, err := h.Controller.Confirm(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":               "Doação confirmada com sucesso",
		"novo_valor_arrecadado": result.NovoValorArrecadado,
		"percentual_atingido":   result.PercentualAtingido,
	})
}

func (h *DonationHandler) Cancel(c *gin.Context) {
	id, err := pathID(c, "doacao_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	if err := h.Controller.Cancel(c.Request.Context(), id); err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doação cancelada com sucesso"})
}

func (h *DonationHandler) ListByCampaign(c *gin.Context) {
	campaignID, err := pathID(c, "campanha_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	status := c.Query("status")
	switch status {
	case "", models.StatusPending, models.StatusConfirmed, models.StatusCancelled:
	default:
		writeError(c, h.Log, apperrors.Validation(apperrors.FieldError{
			Field:  "status",
			Reason: "Deve ser pendente, confirmado ou cancelado",
		}))
		return
	}

	list, err := h.Store.ListDonationsByCampaign(c.Request.Context(), campaignID, status)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	out := make([]DonationResponse, 0, len(list))
	for _, donation := range list {
		out = append(out, newDonationResponse(donation))
	}
	c.JSON(http.StatusOK, out)
}

func (h *DonationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "doacao_id")
	if err != nil {
		writeError(c, h.Log, err)
		return
	}

	donation, err := h.Store.GetDonation(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, newDonationResponse(*donation))
}
