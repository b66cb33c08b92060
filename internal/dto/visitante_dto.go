package dto

import "github.com/shopspring/decimal"

type CriarTutorRequest struct {
	NomeCompleto   string  `json:"nome_completo"   validate:"required,min=3"`
	CPF            string  `json:"cpf"             validate:"required,min=11"`
	DataNascimento string  `json:"data_nascimento" validate:"required"` // YYYY-MM-DD
	Email          string  `json:"email"           validate:"required,email"`
	Telefone1      string  `json:"telefone1"       validate:"required,min=10"`
	Telefone2      *string `json:"telefone2"`
	Endereco       string  `json:"endereco"        validate:"required,min=5"`
}

type CriarCriancaRequest struct {
	TutorID          string           `json:"tutor_id"          validate:"required,uuid"`
	NomeCompleto     string           `json:"nome_completo"     validate:"required,min=2"`
	DataNascimento   string           `json:"data_nascimento"   validate:"required"`
	DescontoEspecial bool             `json:"desconto_especial"`
	LimiteConsumo    *decimal.Decimal `json:"limite_consumo"    validate:"omitempty,min=0"`
}

type IniciarVisitaRequest struct {
	TutorID           string `json:"tutor_id"            validate:"required,uuid"`
	CriancaID         string `json:"crianca_id"          validate:"required,uuid"`
	IngressoProdutoID string `json:"ingresso_produto_id" validate:"required,uuid"`
}

type TutorFilter struct {
	CPF  string `form:"cpf"`
	Nome string `form:"nome"`
}

type VisitaResponse struct {
	ID              string  `json:"id"`
	TutorID         string  `json:"tutor_id"`
	CriancaID       string  `json:"crianca_id"`
	Ingresso        string  `json:"ingresso,omitempty"`
	EntradaEm       string  `json:"entrada_em"`
	SaidaPrevistaEm string  `json:"saida_prevista_em"`
	SaidaEm         *string `json:"saida_em,omitempty"`
	Status          string  `json:"status"`
}

type CriancaResponse struct {
	ID               string           `json:"id"`
	NomeCompleto     string           `json:"nome_completo"`
	DataNascimento   string           `json:"data_nascimento"`
	DescontoEspecial bool             `json:"desconto_especial"`
	LimiteConsumo    *decimal.Decimal `json:"limite_consumo,omitempty"`
}

type TutorResponse struct {
	ID           string            `json:"id"`
	NomeCompleto string            `json:"nome_completo"`
	CPF          string            `json:"cpf"`
	Email        string            `json:"email"`
	Telefone1    string            `json:"telefone1"`
	Criancas     []CriancaResponse `json:"criancas"`
	Visitas      []VisitaResponse  `json:"visitas"`
}
