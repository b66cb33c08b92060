package dto

import "github.com/shopspring/decimal"

type CriarFestaRequest struct {
	NomeAniversariante string          `json:"nome_aniversariante" validate:"required,min=2"`
	NomeTutor          string          `json:"nome_tutor"          validate:"required,min=3"`
	CPFTutor           string          `json:"cpf_tutor"           validate:"required,min=11"`
	EmailTutor         string          `json:"email_tutor"         validate:"required,email"`
	TelefoneTutor      string          `json:"telefone_tutor"      validate:"required,min=10"`
	EnderecoTutor      string          `json:"endereco_tutor"      validate:"required,min=5"`
	Data               string          `json:"data"                validate:"required"` // YYYY-MM-DD
	Horario            string          `json:"horario"             validate:"required"`
	PacoteID           string          `json:"pacote_id"           validate:"required,uuid"`
	FeriadoCustom      bool            `json:"feriado_custom"`
	ValorTotal         decimal.Decimal `json:"valor_total"         validate:"required,gt=0"`
	ValorPago          decimal.Decimal `json:"valor_pago"          validate:"min=0"`
	Observacoes        *string         `json:"observacoes"`
}

type CancelarFestaRequest struct {
	FestaID string `json:"festa_id" validate:"required,uuid"`
	Motivo  string `json:"motivo"   validate:"required,min=5"`
}

type FestaResponse struct {
	ID                 string          `json:"id"`
	NomeAniversariante string          `json:"nome_aniversariante"`
	NomeTutor          string          `json:"nome_tutor"`
	Data               string          `json:"data"`
	Horario            string          `json:"horario"`
	Pacote             string          `json:"pacote"`
	ValorTotal         decimal.Decimal `json:"valor_total"`
	ValorPago          decimal.Decimal `json:"valor_pago"`
	Status             string          `json:"status"`
	MotivoCancelamento *string         `json:"motivo_cancelamento,omitempty"`
}

type PacoteFestaResponse struct {
	ID               string          `json:"id"`
	Nome             string          `json:"nome"`
	MaxConvidados    int             `json:"max_convidados"`
	PrecoSemana      decimal.Decimal `json:"preco_semana"`
	PrecoFimDeSemana decimal.Decimal `json:"preco_fim_de_semana"`
	Descricao        *string         `json:"descricao,omitempty"`
}

// AgendaFestasResponse is the month view with aggregate stats.
type AgendaFestasResponse struct {
	Festas  []FestaResponse       `json:"festas"`
	Pacotes []PacoteFestaResponse `json:"pacotes"`
	Stats   FestaStats            `json:"stats"`
}

type FestaStats struct {
	TotalFestas     int             `json:"total_festas"`
	ReceitaEstimada decimal.Decimal `json:"receita_estimada"`
	PacoteMaisVendido string        `json:"pacote_mais_vendido"`
}
