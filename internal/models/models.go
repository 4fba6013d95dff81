package models

import "time"

// 'db' tags let sqlx map the snake_case columns onto these fields.
// Column names are Portuguese; they are part of the API contract.

// Donation status values as stored and served on the wire.
const (
	StatusPending   = "pendente"
	StatusConfirmed = "confirmado"
	StatusCancelled = "cancelado"
)

// Campaign defaults applied at creation and on read.
const (
	DefaultLocation      = "São Paulo, SP"
	DefaultRating        = 4.8
	DefaultPaymentMethod = "PIX"
)

// User holds a registered account. The password column stores the bcrypt
// hash, never the raw password.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	CPF          string `db:"cpf"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
}

// Campaign is a fundraising effort. ValorArrecadado is the materialized sum
// of confirmed donations and is only ever written by the donation lifecycle.
type Campaign struct {
	ID              int64      `db:"id"`
	Nome            string     `db:"nome"`
	TipoCategoria   *string    `db:"tipo_categoria"`
	Descricao       *string    `db:"descricao"`
	Localizacao     string     `db:"localizacao"`
	MetaValor       float64    `db:"meta_valor"`
	ValorArrecadado float64    `db:"valor_arrecadado"`
	Website         *string    `db:"website"`
	Telefone        *string    `db:"telefone"`
	DataInicio      time.Time  `db:"data_inicio"`
	DataFim         *time.Time `db:"data_fim"`
	Ativa           bool       `db:"ativa"`
	Email           *string    `db:"email"`
	Rating          *float64   `db:"rating"`
}

// Donation is a single pledge toward a campaign. PixCode and PixQRCode are
// opaque references populated externally; nothing here generates them.
type Donation struct {
	ID              int64     `db:"id"`
	CampanhaID      int64     `db:"campanha_id"`
	UserID          *int64    `db:"user_id"`
	Valor           float64   `db:"valor"`
	DoadorNome      string    `db:"doador_nome"`
	DoadorCPF       string    `db:"doador_cpf"`
	DoadorEmail     *string   `db:"doador_email"`
	Rua             string    `db:"rua"`
	Numero          string    `db:"numero"`
	Complemento     *string   `db:"complemento"`
	Bairro          string    `db:"bairro"`
	Cidade          string    `db:"cidade"`
	UF              string    `db:"uf"`
	CEP             string    `db:"cep"`
	DataDoacao      time.Time `db:"data_doacao"`
	MetodoPagamento string    `db:"metodo_pagamento"`
	Status          string    `db:"status"`
	PixCode         *string   `db:"pix_code"`
	PixQRCode       *string   `db:"pix_qr_code"`
}

// PlatformStats aggregates platform-wide counters for /stats/geral.
type PlatformStats struct {
	TotalCampanhasAtivas int64   `db:"total_campanhas_ativas"`
	TotalArrecadado      float64 `db:"total_arrecadado"`
	TotalDoacoes         int64   `db:"total_doacoes"`
	TotalUsuarios        int64   `db:"total_usuarios"`
}

// PercentGoal computes the percentage of the goal reached. A zero or negative
// goal yields 0; goals are validated > 0 at creation.
func PercentGoal(raised, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return raised / goal * 100
}

// Rated returns the campaign rating, defaulting when the column is NULL.
func (c Campaign) Rated() float64 {
	if c.Rating == nil {
		return DefaultRating
	}
	return *c.Rating
}
