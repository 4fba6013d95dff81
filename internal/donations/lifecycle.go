// Package donations implements the donation lifecycle: pendente at creation,
// then exactly one transition to confirmado or cancelado. The controller is
// the only writer of a donation's status and of the owning campaign's
// valor_arrecadado after creation; no other code path updates either column.
package donations

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/models"
	"juntos-mais-api/internal/store"
	"juntos-mais-api/internal/validation"
	ws "juntos-mais-api/internal/websocket"
)

type Controller struct {
	store *store.Store
	log   *logger.Logger
	hub   *ws.Hub
}

// NewController wires the lifecycle to the store and, optionally, to the
// websocket hub (nil disables alerts, used in tests).
func NewController(st *store.Store, log *logger.Logger, hub *ws.Hub) *Controller {
	return &Controller{store: st, log: log, hub: hub}
}

// CreateInput carries the already-bound donation fields. Normalization
// (CPF/CEP digits, UF case) happens here, before any write.
type CreateInput struct {
	CampanhaID  int64
	UserID      *int64
	Valor       float64
	DoadorNome  string
	DoadorCPF   string
	DoadorEmail *string
	Rua         string
	Numero      string
	Complemento *string
	Bairro      string
	Cidade      string
	UF          string
	CEP         string
}

func (in *CreateInput) validate() []apperrors.FieldError {
	var fields []apperrors.FieldError

	if fe := validation.Positive("valor", in.Valor); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := validation.Length("doador_nome", in.DoadorNome, 3, 200); fe != nil {
		fields = append(fields, *fe)
	}
	if cpf, fe := validation.CPF("doador_cpf", in.DoadorCPF); fe != nil {
		fields = append(fields, *fe)
	} else {
		in.DoadorCPF = cpf
	}
	if fe := validation.Length("rua", in.Rua, 3, 200); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := validation.Length("numero", in.Numero, 1, 20); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := validation.Length("bairro", in.Bairro, 2, 100); fe != nil {
		fields = append(fields, *fe)
	}
	if fe := validation.Length("cidade", in.Cidade, 2, 100); fe != nil {
		fields = append(fields, *fe)
	}
	if uf, fe := validation.UF("uf", in.UF); fe != nil {
		fields = append(fields, *fe)
	} else {
		in.UF = uf
	}
	if cep, fe := validation.CEP("cep", in.CEP); fe != nil {
		fields = append(fields, *fe)
	} else {
		in.CEP = cep
	}
	return fields
}

// Create registers a pending donation against an existing, active campaign.
// It never touches the campaign aggregate.
func (c *Controller) Create(ctx context.Context, in CreateInput) (*models.Donation, error) {
	if fields := in.validate(); len(fields) > 0 {
		return nil, apperrors.Validation(fields...)
	}

	campaign, err := c.store.GetCampaign(ctx, in.CampanhaID)
	if err != nil {
		return nil, err
	}
	if !campaign.Ativa {
		return nil, apperrors.InvalidState("Campanha não está ativa")
	}

	donation := &models.Donation{
		CampanhaID:      in.CampanhaID,
		UserID:          in.UserID,
		Valor:           in.Valor,
		DoadorNome:      in.DoadorNome,
		DoadorCPF:       in.DoadorCPF,
		DoadorEmail:     in.DoadorEmail,
		Rua:             in.Rua,
		Numero:          in.Numero,
		Complemento:     in.Complemento,
		Bairro:          in.Bairro,
		Cidade:          in.Cidade,
		UF:              in.UF,
		CEP:             in.CEP,
		DataDoacao:      time.Now().UTC(),
		MetodoPagamento: models.DefaultPaymentMethod,
		Status:          models.StatusPending,
	}
	if err := c.store.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}
	c.log.Info("donation created", "doacao_id", donation.ID, "campanha_id", donation.CampanhaID)
	return donation, nil
}

// ConfirmResult reports the campaign aggregate after a confirmation.
type ConfirmResult struct {
	NovoValorArrecadado float64
	PercentualAtingido  float64
}

// Confirm moves a pending donation to confirmado and increments the owning
// campaign's valor_arrecadado by the donation amount. Both writes happen in
// one transaction, and the increment is a single relative UPDATE, so
// concurrent confirmations of distinct donations on the same campaign cannot
// lose updates. Confirmado and cancelado are terminal: re-confirming would
// double-count the amount, and a cancelled donation never comes back.
func (c *Controller) Confirm(ctx context.Context, donationID int64) (*ConfirmResult, error) {
	tx, err := c.store.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperrors.Unavailable("Erro no banco de dados", err)
	}
	defer tx.Rollback()

	var donation models.Donation
	err = tx.GetContext(ctx, &donation, tx.Rebind(`SELECT * FROM doacoes WHERE id = ?`), donationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Doação não encontrada")
		}
		return nil, apperrors.Unavailable("Erro no banco de dados", err)
	}
	switch donation.Status {
	case models.StatusConfirmed:
		return nil, apperrors.Conflict("Doação já confirmada")
	case models.StatusCancelled:
		return nil, apperrors.Conflict("Não é possível confirmar doação cancelada")
	}

	// Guarded flip: only a still-pending row matches, so under concurrent
	// confirms exactly one UPDATE wins.
	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE doacoes SET status = ? WHERE id = ? AND status = ?`),
		models.StatusConfirmed, donationID, models.StatusPending)
	if err != nil {
		return nil, apperrors.Unavailable("Erro no banco de dados", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, apperrors.Unavailable("Erro no banco de dados", err)
	}
	if affected == 0 {
		// A concurrent transition won between the read and the flip.
		return nil, apperrors.Conflict("Doação não está mais pendente")
	}

	var novoValor, metaValor float64
	err = tx.QueryRowxContext(ctx,
		tx.Rebind(`UPDATE campanhas SET valor_arrecadado = valor_arrecadado + ?
			WHERE id = ? RETURNING valor_arrecadado, meta_valor`),
		donation.Valor, donation.CampanhaID,
	).Scan(&novoValor, &metaValor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Campanha não encontrada")
		}
		return nil, apperrors.Unavailable("Erro no banco de dados", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Unavailable("Erro no banco de dados", err)
	}

	result := &ConfirmResult{
		NovoValorArrecadado: novoValor,
		PercentualAtingido:  models.PercentGoal(novoValor, metaValor),
	}
	c.log.Info("donation confirmed",
		"doacao_id", donationID,
		"campanha_id", donation.CampanhaID,
		"novo_valor_arrecadado", novoValor)

	if c.hub != nil {
		c.hub.BroadcastAlert <- ws.ConfirmationAlert{
			CampanhaID:          donation.CampanhaID,
			DoacaoID:            donationID,
			DoadorNome:          donation.DoadorNome,
			Valor:               donation.Valor,
			NovoValorArrecadado: result.NovoValorArrecadado,
			PercentualAtingido:  result.PercentualAtingido,
		}
	}
	return result, nil
}

// Cancel moves a donation to cancelado. Confirmed donations can never be
// cancelled: the design has no decrement path for the campaign aggregate.
// Cancelling an already-cancelled donation is a harmless rewrite.
func (c *Controller) Cancel(ctx context.Context, donationID int64) error {
	donation, err := c.store.GetDonation(ctx, donationID)
	if err != nil {
		return err
	}
	if donation.Status == models.StatusConfirmed {
		return apperrors.Conflict("Não é possível cancelar doação já confirmada")
	}

	res, err := c.store.DB.ExecContext(ctx,
		c.store.DB.Rebind(`UPDATE doacoes SET status = ? WHERE id = ? AND status <> ?`),
		models.StatusCancelled, donationID, models.StatusConfirmed)
	if err != nil {
		return apperrors.Unavailable("Erro no banco de dados", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.Unavailable("Erro no banco de dados", err)
	}
	if affected == 0 {
		// Lost the race against a concurrent confirmation.
		return apperrors.Conflict("Não é possível cancelar doação já confirmada")
	}
	c.log.Info("donation cancelled", "doacao_id", donationID, "campanha_id", donation.CampanhaID)
	return nil
}
