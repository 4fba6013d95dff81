package store

import "context"

// Migrate applies the idempotent schema for the three tables. DDL differs per
// driver, the column set does not.
func (s *Store) Migrate(ctx context.Context) error {
	var stmts []string
	if s.driver == driverPostgres {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				username VARCHAR(50) NOT NULL UNIQUE,
				cpf VARCHAR(14) NOT NULL UNIQUE,
				email VARCHAR(100) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS campanhas (
				id BIGSERIAL PRIMARY KEY,
				nome VARCHAR(200) NOT NULL,
				tipo_categoria VARCHAR(1000),
				descricao VARCHAR(1000),
				localizacao VARCHAR(100) NOT NULL DEFAULT 'São Paulo, SP',
				meta_valor DOUBLE PRECISION NOT NULL,
				valor_arrecadado DOUBLE PRECISION NOT NULL DEFAULT 0.0,
				website VARCHAR(1000),
				telefone VARCHAR(20),
				data_inicio TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				data_fim TIMESTAMPTZ NULL,
				ativa BOOLEAN NOT NULL DEFAULT TRUE,
				email VARCHAR(1000),
				rating DOUBLE PRECISION DEFAULT 4.8
			);`,
			`CREATE TABLE IF NOT EXISTS doacoes (
				id BIGSERIAL PRIMARY KEY,
				campanha_id BIGINT NOT NULL REFERENCES campanhas(id) ON DELETE CASCADE,
				user_id BIGINT NULL REFERENCES users(id) ON DELETE SET NULL,
				valor DOUBLE PRECISION NOT NULL,
				doador_nome VARCHAR(200) NOT NULL,
				doador_cpf VARCHAR(14) NOT NULL,
				doador_email VARCHAR(100),
				rua VARCHAR(200) NOT NULL,
				numero VARCHAR(20) NOT NULL,
				complemento VARCHAR(100),
				bairro VARCHAR(100) NOT NULL,
				cidade VARCHAR(100) NOT NULL,
				uf VARCHAR(2) NOT NULL,
				cep VARCHAR(8) NOT NULL,
				data_doacao TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				metodo_pagamento VARCHAR(50) NOT NULL DEFAULT 'PIX',
				status VARCHAR(20) NOT NULL DEFAULT 'pendente',
				pix_code VARCHAR(500),
				pix_qr_code VARCHAR(1000)
			);`,
			`CREATE INDEX IF NOT EXISTS idx_doacoes_campanha_id ON doacoes(campanha_id);`,
			`CREATE INDEX IF NOT EXISTS idx_doacoes_status ON doacoes(status);`,
		}
	} else {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				cpf TEXT NOT NULL UNIQUE,
				email TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL
			);`,
			`CREATE TABLE IF NOT EXISTS campanhas (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				nome TEXT NOT NULL,
				tipo_categoria TEXT,
				descricao TEXT,
				localizacao TEXT NOT NULL DEFAULT 'São Paulo, SP',
				meta_valor REAL NOT NULL,
				valor_arrecadado REAL NOT NULL DEFAULT 0.0,
				website TEXT,
				telefone TEXT,
				data_inicio TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				data_fim TIMESTAMP NULL,
				ativa BOOLEAN NOT NULL DEFAULT 1,
				email TEXT,
				rating REAL DEFAULT 4.8
			);`,
			`CREATE TABLE IF NOT EXISTS doacoes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				campanha_id INTEGER NOT NULL,
				user_id INTEGER NULL,
				valor REAL NOT NULL,
				doador_nome TEXT NOT NULL,
				doador_cpf TEXT NOT NULL,
				doador_email TEXT,
				rua TEXT NOT NULL,
				numero TEXT NOT NULL,
				complemento TEXT,
				bairro TEXT NOT NULL,
				cidade TEXT NOT NULL,
				uf TEXT NOT NULL,
				cep TEXT NOT NULL,
				data_doacao TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				metodo_pagamento TEXT NOT NULL DEFAULT 'PIX',
				status TEXT NOT NULL DEFAULT 'pendente',
				pix_code TEXT,
				pix_qr_code TEXT,
				FOREIGN KEY(campanha_id) REFERENCES campanhas(id) ON DELETE CASCADE,
				FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE SET NULL
			);`,
			`CREATE INDEX IF NOT EXISTS idx_doacoes_campanha_id ON doacoes(campanha_id);`,
			`CREATE INDEX IF NOT EXISTS idx_doacoes_status ON doacoes(status);`,
		}
	}

	for _, stmt := range stmts {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return storeErr(err)
		}
	}
	return nil
}
