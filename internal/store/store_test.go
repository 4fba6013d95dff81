package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	// One connection keeps concurrent writers queued at the pool instead of
	// hitting SQLITE_BUSY.
	st.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { st.Close() })

	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}

func testUser(username, cpf, email string) *models.User {
	return &models.User{
		Username:     username,
		CPF:          cpf,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.CreateUser(ctx, testUser("maria", "12345678901", "maria@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := st.CreateUser(ctx, testUser("outra", "10987654321", "maria@example.com"))
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The duplicate attempt must not have written a row.
	n, err := st.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestCreateUserDuplicateUsernameAndCPF(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.CreateUser(ctx, testUser("maria", "12345678901", "maria@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := st.CreateUser(ctx, testUser("maria", "10987654321", "m2@example.com"))
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("expected username conflict, got %v", err)
	}
	err = st.CreateUser(ctx, testUser("joana", "12345678901", "joana@example.com"))
	if apperrors.KindOf(err) != apperrors.KindConflict {
		t.Fatalf("expected cpf conflict, got %v", err)
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetCampaign(context.Background(), 999)
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func testCampaign(nome string, meta float64, inicio time.Time) *models.Campaign {
	rating := models.DefaultRating
	return &models.Campaign{
		Nome:        nome,
		Localizacao: models.DefaultLocation,
		MetaValor:   meta,
		DataInicio:  inicio,
		Ativa:       true,
		Rating:      &rating,
	}
}

func TestListCampaignsOrderAndFilter(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	older := testCampaign("Campanha Antiga", 1000, base)
	newer := testCampaign("Campanha Nova", 2000, base.Add(48*time.Hour))
	inactive := testCampaign("Campanha Encerrada", 500, base.Add(24*time.Hour))
	inactive.Ativa = false

	for _, campaign := range []*models.Campaign{older, newer, inactive} {
		if err := st.CreateCampaign(ctx, campaign); err != nil {
			t.Fatalf("create campaign: %v", err)
		}
	}

	active, err := st.ListCampaigns(ctx, true, 100)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active campaigns, got %d", len(active))
	}
	if active[0].Nome != "Campanha Nova" || active[1].Nome != "Campanha Antiga" {
		t.Fatalf("expected newest first, got %q then %q", active[0].Nome, active[1].Nome)
	}

	closed, err := st.ListCampaigns(ctx, false, 100)
	if err != nil {
		t.Fatalf("list inactive: %v", err)
	}
	if len(closed) != 1 || closed[0].Nome != "Campanha Encerrada" {
		t.Fatalf("unexpected inactive list: %+v", closed)
	}
}

func TestListCampaignsLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		campaign := testCampaign("Campanha", 1000, base.Add(time.Duration(i)*time.Hour))
		if err := st.CreateCampaign(ctx, campaign); err != nil {
			t.Fatalf("create campaign: %v", err)
		}
	}

	got, err := st.ListCampaigns(ctx, true, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 campaigns, got %d", len(got))
	}
}

func TestDeactivateCampaignIsSoft(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	campaign := testCampaign("Campanha", 1000, time.Now().UTC())
	if err := st.CreateCampaign(ctx, campaign); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	if err := st.DeactivateCampaign(ctx, campaign.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// Row still exists, only the flag flipped.
	got, err := st.GetCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("get after deactivate: %v", err)
	}
	if got.Ativa {
		t.Fatalf("expected campaign to be inactive")
	}

	if err := st.DeactivateCampaign(ctx, 999); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func testDonation(campaignID int64, valor float64, status string) *models.Donation {
	return &models.Donation{
		CampanhaID:      campaignID,
		Valor:           valor,
		DoadorNome:      "João da Silva",
		DoadorCPF:       "12345678901",
		Rua:             "Rua das Flores",
		Numero:          "100",
		Bairro:          "Centro",
		Cidade:          "São Paulo",
		UF:              "SP",
		CEP:             "01310100",
		DataDoacao:      time.Now().UTC(),
		MetodoPagamento: models.DefaultPaymentMethod,
		Status:          status,
	}
}

func TestListDonationsByCampaignStatusFilter(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	campaign := testCampaign("Campanha", 1000, time.Now().UTC())
	if err := st.CreateCampaign(ctx, campaign); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	for _, status := range []string{models.StatusPending, models.StatusConfirmed, models.StatusConfirmed} {
		if err := st.CreateDonation(ctx, testDonation(campaign.ID, 50, status)); err != nil {
			t.Fatalf("create donation: %v", err)
		}
	}

	all, err := st.ListDonationsByCampaign(ctx, campaign.ID, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 donations, got %d", len(all))
	}

	confirmed, err := st.ListDonationsByCampaign(ctx, campaign.ID, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("list confirmed: %v", err)
	}
	if len(confirmed) != 2 {
		t.Fatalf("expected 2 confirmed donations, got %d", len(confirmed))
	}
}

func TestConfirmedDonationStatsEmpty(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	campaign := testCampaign("Campanha", 1000, time.Now().UTC())
	if err := st.CreateCampaign(ctx, campaign); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	count, avg, err := st.ConfirmedDonationStats(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 0 || avg != 0 {
		t.Fatalf("expected zero stats, got count=%d avg=%v", count, avg)
	}
}

func TestPlatformStats(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	active := testCampaign("Ativa", 1000, time.Now().UTC())
	if err := st.CreateCampaign(ctx, active); err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	inactive := testCampaign("Inativa", 500, time.Now().UTC())
	inactive.Ativa = false
	inactive.ValorArrecadado = 300
	if err := st.CreateCampaign(ctx, inactive); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	if err := st.CreateUser(ctx, testUser("maria", "12345678901", "maria@example.com")); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := st.CreateDonation(ctx, testDonation(active.ID, 80, models.StatusConfirmed)); err != nil {
		t.Fatalf("create donation: %v", err)
	}
	if err := st.CreateDonation(ctx, testDonation(active.ID, 20, models.StatusPending)); err != nil {
		t.Fatalf("create donation: %v", err)
	}

	stats, err := st.PlatformStats(ctx)
	if err != nil {
		t.Fatalf("platform stats: %v", err)
	}
	if stats.TotalCampanhasAtivas != 1 {
		t.Fatalf("expected 1 active campaign, got %d", stats.TotalCampanhasAtivas)
	}
	if stats.TotalArrecadado != 0 {
		t.Fatalf("expected 0 raised over active campaigns, got %v", stats.TotalArrecadado)
	}
	if stats.TotalDoacoes != 1 {
		t.Fatalf("expected 1 confirmed donation, got %d", stats.TotalDoacoes)
	}
	if stats.TotalUsuarios != 1 {
		t.Fatalf("expected 1 user, got %d", stats.TotalUsuarios)
	}
}
