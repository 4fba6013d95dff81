package store

import (
	"context"
	"database/sql"
	"errors"

	"juntos-mais-api/internal/apperrors"
	"juntos-mais-api/internal/models"
)

// CreateUser inserts a new account. Username, CPF and email are checked
// individually first so the caller gets a specific conflict message; the
// unique constraints remain the backstop under races.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	checks := []struct {
		query   string
		value   string
		message string
	}{
		{`SELECT COUNT(*) FROM users WHERE username = ?`, u.Username, "Nome de usuário já existente"},
		{`SELECT COUNT(*) FROM users WHERE email = ?`, u.Email, "Email já cadastrado"},
		{`SELECT COUNT(*) FROM users WHERE cpf = ?`, u.CPF, "CPF já cadastrado"},
	}
	for _, check := range checks {
		var n int64
		if err := s.DB.GetContext(ctx, &n, s.rebind(check.query), check.value); err != nil {
			return storeErr(err)
		}
		if n > 0 {
			return apperrors.Conflict(check.message)
		}
	}

	query := s.rebind(`INSERT INTO users (username, cpf, email, password)
		VALUES (?, ?, ?, ?) RETURNING id`)
	if err := s.DB.QueryRowxContext(ctx, query, u.Username, u.CPF, u.Email, u.PasswordHash).Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("Usuário, CPF ou email já cadastrado")
		}
		return storeErr(err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	query := s.rebind(`SELECT * FROM users WHERE email = ?`)
	if err := s.DB.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Usuário não encontrado")
		}
		return nil, storeErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	query := s.rebind(`SELECT * FROM users WHERE id = ?`)
	if err := s.DB.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Usuário não encontrado")
		}
		return nil, storeErr(err)
	}
	return &u, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}
