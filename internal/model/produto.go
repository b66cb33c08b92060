package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categoria groups products; created on demand by name when a product
// references a category that does not exist yet.
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Ativa     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (Categoria) TableName() string { return "categorias" }

// Produto is the catalog entry sold at the register. Fiscal fields carry
// flat stored rates only — no tax-engine computation happens here.
// Estoque is the single contended resource of the sale commit: it is only
// ever decremented through a guarded conditional UPDATE and is backed by a
// CHECK (estoque >= 0) constraint.
type Produto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string    `gorm:"index;not null"`
	Descricao     *string
	CodigoBarras  string `gorm:"uniqueIndex;not null"`
	CodigoInterno *string
	CategoriaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PrecoVenda    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoPromo    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrecoCusto    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Estoque       int             `gorm:"not null;default:0"`
	EstoqueMinimo int             `gorm:"not null;default:5"`
	Unidade       string          `gorm:"not null;default:'UN'"`
	Tipo          string          `gorm:"not null"`

	// Fiscal classification (flat stored rates)
	NCM            string          `gorm:"not null"`
	CFOP           string          `gorm:"not null"`
	CstCsosn       string          `gorm:"not null"`
	AliquotaICMS   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	AliquotaPIS    decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	AliquotaCOFINS decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	OrigemFiscal   *string

	Ativo           bool `gorm:"not null;default:true"`
	ImagemURL       *string
	ObservacoesInternas *string
	VendaPorComanda bool `gorm:"not null;default:false"`
	Fornecedor      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

func (Produto) TableName() string { return "produtos" }
