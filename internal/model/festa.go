package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Festa statuses.
const (
	FestaAgendada  = "AGENDADA"
	FestaCancelada = "CANCELADA"
)

// PacoteFesta is a bookable party package with weekday/weekend pricing.
type PacoteFesta struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome             string          `gorm:"uniqueIndex;not null"`
	MaxConvidados    int             `gorm:"not null"`
	PrecoSemana      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoFimDeSemana decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descricao        *string
}

func (PacoteFesta) TableName() string { return "pacotes_festa" }

// Festa is a party booking. A date+timeSlot pair can host at most one
// non-cancelled booking.
type Festa struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeAniversariante string          `gorm:"not null"`
	NomeTutor          string          `gorm:"not null"`
	CPFTutor           string          `gorm:"not null"`
	EmailTutor         string          `gorm:"not null"`
	TelefoneTutor      string          `gorm:"not null"`
	EnderecoTutor      string          `gorm:"not null"`
	Data               time.Time       `gorm:"not null;index"`
	Horario            string          `gorm:"not null"`
	PacoteID           uuid.UUID       `gorm:"type:uuid;not null"`
	FeriadoCustom      bool            `gorm:"not null;default:false"`
	ValorTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorPago          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status             string          `gorm:"type:varchar(15);not null;default:'AGENDADA'"`
	MotivoCancelamento *string
	Observacoes        *string
	CreatedAt          time.Time

	Pacote *PacoteFesta `gorm:"foreignKey:PacoteID"`
}

func (Festa) TableName() string { return "festas" }
