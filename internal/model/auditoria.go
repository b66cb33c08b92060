package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistroAuditoria is the persisted audit trail entry. Rows are written
// asynchronously by the auditoria worker — business transactions never
// block on the audit store.
type RegistroAuditoria struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ColaboradorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Acao          string    `gorm:"not null;index"` // e.g. CASH_OPEN, SALE_CREATE
	TipoAlvo      string    `gorm:"not null"`       // e.g. SESSAO_CAIXA, VENDA
	AlvoID        string    `gorm:"not null"`
	Detalhes      *string   // JSON payload
	EnderecoIP    *string
	CreatedAt     time.Time
}

func (RegistroAuditoria) TableName() string { return "registros_auditoria" }
