package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PagamentoDinheiro = "DINHEIRO"
	PagamentoCredito  = "CREDITO"
	PagamentoDebito   = "DEBITO"
	PagamentoPix      = "PIX"
	PagamentoComanda  = "COMANDA"
)

// Venda is an immutable sale record tied to the till session that was open
// when it was committed. There is no edit or void path.
type Venda struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OperadorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	SessaoCaixaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Desconto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPagamento string          `gorm:"type:varchar(15);not null"`
	// Parcelas is set only for CREDITO payments.
	Parcelas   *int
	ClienteCPF *string
	CreatedAt  time.Time

	Itens    []VendaItem  `gorm:"foreignKey:VendaID"`
	Operador *Colaborador `gorm:"foreignKey:OperadorID"`
}

func (Venda) TableName() string { return "vendas" }

// VendaItem is one product line within a sale. PrecoUnitario is the
// caller-supplied price frozen at transaction time — later catalog price
// changes never alter historical line items.
type VendaItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendaID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observacao    *string

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (VendaItem) TableName() string { return "venda_itens" }
