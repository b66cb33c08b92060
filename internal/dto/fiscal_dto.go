package dto

import "github.com/shopspring/decimal"

type EmitirNotaRequest struct {
	Tipo             string          `json:"tipo"              validate:"required,oneof=NFE NFCE"`
	NomeCliente      string          `json:"nome_cliente"      validate:"required,min=2"`
	DocumentoCliente string          `json:"documento_cliente" validate:"required,min=11"`
	ValorTotal       decimal.Decimal `json:"valor_total"       validate:"required,gt=0"`
}

type CancelarNotaRequest struct {
	NotaID        string `json:"nota_id"       validate:"required,uuid"`
	Justificativa string `json:"justificativa" validate:"required,min=15"`
}

type ConfigFiscalRequest struct {
	Ambiente          *string `json:"ambiente"            validate:"omitempty,oneof=HOMOLOGACAO PRODUCAO"`
	Serie             *int    `json:"serie"               validate:"omitempty,min=1"`
	ProximoNumeroNFE  *int    `json:"proximo_numero_nfe"  validate:"omitempty,min=1"`
	ProximoNumeroNFCE *int    `json:"proximo_numero_nfce" validate:"omitempty,min=1"`
}

type NotaFiscalResponse struct {
	ID               string          `json:"id"`
	Numero           int             `json:"numero"`
	Serie            int             `json:"serie"`
	Tipo             string          `json:"tipo"`
	NomeCliente      string          `json:"nome_cliente"`
	DocumentoCliente string          `json:"documento_cliente"`
	ValorTotal       decimal.Decimal `json:"valor_total"`
	Status           string          `json:"status"`
	NomeOperador     string          `json:"nome_operador"`
	XMLPath          *string         `json:"xml_path,omitempty"`
	DanfePath        *string         `json:"danfe_path,omitempty"`
	EmitidaEm        string          `json:"emitida_em"`
}

type ConfigFiscalResponse struct {
	Ambiente          string `json:"ambiente"`
	Serie             int    `json:"serie"`
	ProximoNumeroNFE  int    `json:"proximo_numero_nfe"`
	ProximoNumeroNFCE int    `json:"proximo_numero_nfce"`
}

// TesteSefazResponse is returned by the simulated connectivity check.
type TesteSefazResponse struct {
	CertificadoValido   bool   `json:"certificado_valido"`
	AmbienteAcessivel   bool   `json:"ambiente_acessivel"`
	SefazRespondendo    bool   `json:"sefaz_respondendo"`
	Mensagem            string `json:"mensagem"`
}
