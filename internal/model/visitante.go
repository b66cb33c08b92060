package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Visita statuses.
const (
	VisitaAberta     = "ABERTA"
	VisitaFinalizada = "FINALIZADA"
)

// Tutor is the responsible adult registered for one or more children.
type Tutor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeCompleto   string    `gorm:"index;not null"`
	CPF            string    `gorm:"uniqueIndex;not null"`
	DataNascimento time.Time `gorm:"not null"`
	Email          string    `gorm:"not null"`
	Telefone1      string    `gorm:"not null"`
	Telefone2      *string
	Endereco       string `gorm:"not null"`
	CreatedAt      time.Time

	Criancas []Crianca `gorm:"foreignKey:TutorID"`
	Visitas  []Visita  `gorm:"foreignKey:TutorID"`
}

func (Tutor) TableName() string { return "tutores" }

// Crianca is a child linked to a tutor.
type Crianca struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TutorID          uuid.UUID `gorm:"type:uuid;not null;index"`
	NomeCompleto     string    `gorm:"not null"`
	DataNascimento   time.Time `gorm:"not null"`
	DescontoEspecial bool      `gorm:"not null;default:false"`
	LimiteConsumo    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CreatedAt        time.Time
}

func (Crianca) TableName() string { return "criancas" }

// Visita tracks a child's stay against a ticket product. SaidaPrevistaEm
// is derived from the ticket's allowed minutes at entry time.
type Visita struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TutorID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CriancaID         uuid.UUID `gorm:"type:uuid;not null;index"`
	IngressoProdutoID uuid.UUID `gorm:"type:uuid;not null"`
	EntradaEm         time.Time `gorm:"not null"`
	SaidaPrevistaEm   time.Time `gorm:"not null"`
	SaidaEm           *time.Time
	Status            string `gorm:"type:varchar(15);not null;default:'ABERTA'"`
	CreatedAt         time.Time

	Crianca  *Crianca `gorm:"foreignKey:CriancaID"`
	Ingresso *Produto `gorm:"foreignKey:IngressoProdutoID"`
}

func (Visita) TableName() string { return "visitas" }
