package dto

import "github.com/shopspring/decimal"

// DashboardResponse is the cached snapshot served to the back-office home.
type DashboardResponse struct {
	TotalVendasHoje decimal.Decimal `json:"total_vendas_hoje"`
	VisitasAbertas  int64           `json:"visitas_abertas"`
	EstoqueBaixo    int64           `json:"estoque_baixo"`
	NotasHoje       int64           `json:"notas_hoje"`
}

// RelatorioFilter bounds the sales report period.
type RelatorioFilter struct {
	Inicio string `form:"inicio"` // YYYY-MM-DD; default first day of month
	Fim    string `form:"fim"`    // YYYY-MM-DD; default today
}

type ProdutoRanking struct {
	Nome       string          `json:"nome"`
	Quantidade int             `json:"quantidade"`
	Valor      decimal.Decimal `json:"valor"`
}

type RelatorioVendasResponse struct {
	Inicio       string                     `json:"inicio"`
	Fim          string                     `json:"fim"`
	TotalVendas  decimal.Decimal            `json:"total_vendas"`
	QtdVendas    int                        `json:"qtd_vendas"`
	PorPagamento map[string]decimal.Decimal `json:"por_pagamento"`
	TopProdutos  []ProdutoRanking           `json:"top_produtos"`
}
