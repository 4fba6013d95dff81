package store

import (
	"context"
	"database/sql"
	"errors"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/models"
)

func (s *Store) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	query := s.rebind(`INSERT INTO campanhas
		(nome, tipo_categoria, descricao, localizacao, meta_valor, valor_arrecadado,
		 website, telefone, data_inicio, data_fim, ativa, email, rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := s.DB.QueryRowxContext(ctx, query,
		c.Nome, c.TipoCategoria, c.Descricao, c.Localizacao, c.MetaValor, c.ValorArrecadado,
		c.Website, c.Telefone, c.DataInicio, c.DataFim, c.Ativa, c.Email, c.Rating,
	).Scan(&c.ID)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Store) GetCampaign(ctx context.Context, id int64) (*models.Campaign, error) {
	var c models.Campaign
	query := s.rebind(`SELECT * FROM campanhas WHERE id = ?`)
	if err := s.DB.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Campanha não encontrada")
		}
		return nil, storeErr(err)
	}
	return &c, nil
}

// ListCampaigns returns campaigns newest first, filtered by the active flag.
func (s *Store) ListCampaigns(ctx context.Context, ativas bool, limit int) ([]models.Campaign, error) {
	campaigns := []models.Campaign{}
	query := s.rebind(`SELECT * FROM campanhas WHERE ativa = ?
		ORDER BY data_inicio DESC, id DESC LIMIT ?`)
	if err := s.DB.SelectContext(ctx, &campaigns, query, ativas, limit); err != nil {
		return nil, storeErr(err)
	}
	return campaigns, nil
}

// DeactivateCampaign flips the active flag; rows are never deleted.
func (s *Store) DeactivateCampaign(ctx context.Context, id int64) error {
	query := s.rebind(`UPDATE campanhas SET ativa = ? WHERE id = ?`)
	res, err := s.DB.ExecContext(ctx, query, false, id)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Campanha não encontrada")
	}
	return nil
}

// ConfirmedDonationStats returns the count and average amount of confirmed
// donations for one campaign. The average is 0 when there are none.
func (s *Store) ConfirmedDonationStats(ctx context.Context, campaignID int64) (count int64, avg float64, err error) {
	var row struct {
		Total int64   `db:"total"`
		Media float64 `db:"media"`
	}
	query := s.rebind(`SELECT COUNT(*) AS total, COALESCE(AVG(valor), 0) AS media
		FROM doacoes WHERE campanha_id = ? AND status = ?`)
	if err := s.DB.GetContext(ctx, &row, query, campaignID, models.StatusConfirmed); err != nil {
		return 0, 0, storeErr(err)
	}
	return row.Total, row.Media, nil
}

// PlatformStats aggregates the platform-wide counters.
func (s *Store) PlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	var stats models.PlatformStats
	if err := s.DB.GetContext(ctx, &stats.TotalCampanhasAtivas,
		s.rebind(`SELECT COUNT(*) FROM campanhas WHERE ativa = ?`), true); err != nil {
		return nil, storeErr(err)
	}
	if err := s.DB.GetContext(ctx, &stats.TotalArrecadado,
		s.rebind(`SELECT COALESCE(SUM(valor_arrecadado), 0) FROM campanhas WHERE ativa = ?`), true); err != nil {
		return nil, storeErr(err)
	}
	if err := s.DB.GetContext(ctx, &stats.TotalDoacoes,
		s.rebind(`SELECT COUNT(*) FROM doacoes WHERE status = ?`), models.StatusConfirmed); err != nil {
		return nil, storeErr(err)
	}
	users, err := s.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsuarios = users
	return &stats, nil
}
