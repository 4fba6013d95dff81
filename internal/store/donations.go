package store

import (
	"context"
	"database/sql"
	"errors"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/models"
)

// CreateDonation inserts a new donation row. Status and payment method come
// pre-set by the lifecycle controller; this is an insert-only path.
func (s *Store) CreateDonation(ctx context.Context, d *models.Donation) error {
	query := s.rebind(`INSERT INTO doacoes
		(campanha_id, user_id, valor, doador_nome, doador_cpf, doador_email,
		 rua, numero, complemento, bairro, cidade, uf, cep,
		 data_doacao, metodo_pagamento, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := s.DB.QueryRowxContext(ctx, query,
		d.CampanhaID, d.UserID, d.Valor, d.DoadorNome, d.DoadorCPF, d.DoadorEmail,
		d.Rua, d.Numero, d.Complemento, d.Bairro, d.Cidade, d.UF, d.CEP,
		d.DataDoacao, d.MetodoPagamento, d.Status,
	).Scan(&d.ID)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Store) GetDonation(ctx context.Context, id int64) (*models.Donation, error) {
	var d models.Donation
	query := s.rebind(`SELECT * FROM doacoes WHERE id = ?`)
	if err := s.DB.GetContext(ctx, &d, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Doação não encontrada")
		}
		return nil, storeErr(err)
	}
	return &d, nil
}

// ListDonationsByCampaign returns a campaign's donations newest first,
// optionally filtered by status ("" means all).
func (s *Store) ListDonationsByCampaign(ctx context.Context, campaignID int64, status string) ([]models.Donation, error) {
	donations := []models.Donation{}
	if status != "" {
		query := s.rebind(`SELECT * FROM doacoes WHERE campanha_id = ? AND status = ?
			ORDER BY data_doacao DESC, id DESC`)
		if err := s.DB.SelectContext(ctx, &donations, query, campaignID, status); err != nil {
			return nil, storeErr(err)
		}
		return donations, nil
	}
	query := s.rebind(`SELECT * FROM doacoes WHERE campanha_id = ?
		ORDER BY data_doacao DESC, id DESC`)
	if err := s.DB.SelectContext(ctx, &donations, query, campaignID); err != nil {
		return nil, storeErr(err)
	}
	return donations, nil
}
