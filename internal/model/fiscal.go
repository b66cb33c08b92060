package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice types and statuses.
const (
	NotaNFE  = "NFE"
	NotaNFCE = "NFCE"

	NotaAutorizada = "AUTORIZADA"
	NotaCancelada  = "CANCELADA"
)

// ConfigFiscal is a singleton row holding the issuing environment and the
// next invoice numbers. Counters are plain incrementing integers with no
// regulatory logic — the SEFAZ side is simulated.
type ConfigFiscal struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Ambiente         string    `gorm:"type:varchar(20);not null;default:'HOMOLOGACAO'"`
	Serie            int       `gorm:"not null;default:1"`
	ProximoNumeroNFE int       `gorm:"not null;default:1"`
	ProximoNumeroNFCE int      `gorm:"not null;default:1"`
	UpdatedAt        time.Time
}

func (ConfigFiscal) TableName() string { return "config_fiscal" }

// NotaFiscal is an issued invoice. XMLPath and DanfePath point at files
// the DANFE worker writes under the configured storage path.
type NotaFiscal struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero           int             `gorm:"not null;index"`
	Serie            int             `gorm:"not null"`
	Tipo             string          `gorm:"type:varchar(5);not null"`
	NomeCliente      string          `gorm:"not null"`
	DocumentoCliente string          `gorm:"not null"`
	ValorTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status           string          `gorm:"type:varchar(15);not null;default:'AUTORIZADA'"`
	NomeOperador     string          `gorm:"not null"`
	XMLPath          *string
	DanfePath        *string
	EmitidaEm        time.Time `gorm:"autoCreateTime"`
}

func (NotaFiscal) TableName() string { return "notas_fiscais" }

// CancelamentoFiscal records who cancelled an invoice and why.
type CancelamentoFiscal struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NotaFiscalID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Justificativa string    `gorm:"not null"`
	NomeOperador  string    `gorm:"not null"`
	CreatedAt     time.Time
}

func (CancelamentoFiscal) TableName() string { return "cancelamentos_fiscais" }

// CertificadoDigital tracks imported A1 certificates. Only validity is
// checked — there is no real signing.
type CertificadoDigital struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string    `gorm:"not null"`
	ValidoAte   time.Time `gorm:"not null"`
	ImportadoEm time.Time `gorm:"autoCreateTime"`
}

func (CertificadoDigital) TableName() string { return "certificados_digitais" }
