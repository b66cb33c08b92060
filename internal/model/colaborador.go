package model

import (
	"time"

	"github.com/google/uuid"
)

// Papel values for Colaborador.
const (
	PapelAdministrador = "ADMINISTRADOR"
	PapelGerente       = "GERENTE"
	PapelOperacional   = "OPERACIONAL"
)

// Colaborador stores staff accounts with role-based access.
// Login is by CPF; passwords are bcrypt hashes.
type Colaborador struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomeCompleto string    `gorm:"not null"`
	CPF          string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"not null"`
	Telefone     string
	PasswordHash string `gorm:"not null"`
	Papel        string `gorm:"type:varchar(20);not null"`
	Ativo        bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Colaborador) TableName() string { return "colaboradores" }
