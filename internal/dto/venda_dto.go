package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVendaRequest struct {
	ProdutoID     string          `json:"produto_id"     validate:"required,uuid"`
	Quantidade    int             `json:"quantidade"     validate:"required,min=1"`
	// PrecoUnitario is supplied by the caller and frozen at sale time,
	// allowing promo/override prices at the register.
	PrecoUnitario decimal.Decimal `json:"preco_unitario" validate:"required,gt=0"`
	Observacao    *string         `json:"observacao"`
}

type RegistrarVendaRequest struct {
	Itens           []ItemVendaRequest `json:"itens"            validate:"required,min=1,dive"`
	Desconto        decimal.Decimal    `json:"desconto"         validate:"min=0"`
	MetodoPagamento string             `json:"metodo_pagamento" validate:"required,oneof=DINHEIRO CREDITO DEBITO PIX COMANDA"`
	Parcelas        *int               `json:"parcelas"         validate:"omitempty,min=1"`
	ClienteCPF      *string            `json:"cliente_cpf"      validate:"omitempty,min=11"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	ProdutoID     string          `json:"produto_id"`
	Produto       string          `json:"produto,omitempty"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Total         decimal.Decimal `json:"total"`
	Observacao    *string         `json:"observacao,omitempty"`
}

type VendaResponse struct {
	ID              string              `json:"id"`
	SessaoCaixaID   string              `json:"sessao_caixa_id"`
	OperadorID      string              `json:"operador_id"`
	Itens           []ItemVendaResponse `json:"itens"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	Desconto        decimal.Decimal     `json:"desconto"`
	Total           decimal.Decimal     `json:"total"`
	MetodoPagamento string              `json:"metodo_pagamento"`
	Parcelas        *int                `json:"parcelas,omitempty"`
	ClienteCPF      *string             `json:"cliente_cpf,omitempty"`
	CreatedAt       string              `json:"created_at"`
}

// VendaFilter is bound from the query string of GET /v1/vendas.
type VendaFilter struct {
	Inicio string `form:"inicio"` // YYYY-MM-DD
	Fim    string `form:"fim"`    // YYYY-MM-DD
	Limit  int    `form:"limit,default=100" validate:"min=1,max=500"`
}
