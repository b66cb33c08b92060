package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessaoCaixa status values.
const (
	CaixaAberto  = "ABERTO"
	CaixaFechado = "FECHADO"
)

// MovimentacaoCaixa kinds.
const (
	MovSangria    = "SANGRIA"    // manual cash withdrawal
	MovSuprimento = "SUPRIMENTO" // manual cash deposit
)

// SessaoCaixa is one operator's cash register session: an append-only
// ledger from open to close. At most one ABERTO session may exist per
// operator — enforced by a partial unique index besides the app check.
// FECHADO is terminal; there is no reopen path.
type SessaoCaixa struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperadorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ValorInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status       string          `gorm:"type:varchar(10);not null;default:'ABERTO'"`
	// Observacoes receives the reconciliation summary on close
	// ("COUNTED:x | EXPECTED:y | DIFF:z") — informational only.
	Observacoes *string
	OpenedAt    time.Time
	ClosedAt    *time.Time

	Movimentacoes []MovimentacaoCaixa `gorm:"foreignKey:SessaoCaixaID"`
	Vendas        []Venda             `gorm:"foreignKey:SessaoCaixaID"`
}

func (SessaoCaixa) TableName() string { return "sessoes_caixa" }

// MovimentacaoCaixa is an immutable manual cash event against an open
// session. Movements are never updated, deleted or reassigned.
type MovimentacaoCaixa struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessaoCaixaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OperadorID    uuid.UUID       `gorm:"type:uuid;not null"`
	Tipo          string          `gorm:"type:varchar(15);not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo        string          `gorm:"not null"`
	CreatedAt     time.Time
}

func (MovimentacaoCaixa) TableName() string { return "movimentacoes_caixa" }
