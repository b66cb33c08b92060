package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	ValorInicial decimal.Decimal `json:"valor_inicial" validate:"min=0"`
	Observacoes  *string         `json:"observacoes"`
}

type MovimentacaoCaixaRequest struct {
	Tipo   string          `json:"tipo"   validate:"required,oneof=SANGRIA SUPRIMENTO"`
	Valor  decimal.Decimal `json:"valor"  validate:"required,gt=0"`
	Motivo string          `json:"motivo" validate:"required,min=3"`
}

type FecharCaixaRequest struct {
	// ValorContado omitted = close with no discrepancy (counted == expected).
	ValorContado *decimal.Decimal `json:"valor_contado" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentacaoCaixaResponse struct {
	ID            string          `json:"id"`
	SessaoCaixaID string          `json:"sessao_caixa_id"`
	Tipo          string          `json:"tipo"`
	Valor         decimal.Decimal `json:"valor"`
	Motivo        string          `json:"motivo"`
	CreatedAt     string          `json:"created_at"`
}

type SessaoCaixaResponse struct {
	ID            string                      `json:"id"`
	OperadorID    string                      `json:"operador_id"`
	ValorInicial  decimal.Decimal             `json:"valor_inicial"`
	Status        string                      `json:"status"`
	Observacoes   *string                     `json:"observacoes"`
	OpenedAt      string                      `json:"opened_at"`
	ClosedAt      *string                     `json:"closed_at"`
	Movimentacoes []MovimentacaoCaixaResponse `json:"movimentacoes,omitempty"`
}

// FechamentoCaixaResponse carries the reconciliation result of a close.
type FechamentoCaixaResponse struct {
	Sessao    SessaoCaixaResponse `json:"sessao"`
	Esperado  decimal.Decimal     `json:"esperado"`
	Contado   decimal.Decimal     `json:"contado"`
	Diferenca decimal.Decimal     `json:"diferenca"`
}
