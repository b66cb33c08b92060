package dto

import "github.com/shopspring/decimal"

type ProdutoRequest struct {
	Nome           string           `json:"nome"            validate:"required,min=2"`
	Descricao      *string          `json:"descricao"`
	CodigoBarras   string           `json:"codigo_barras"   validate:"required,min=3"`
	CodigoInterno  *string          `json:"codigo_interno"`
	NomeCategoria  string           `json:"nome_categoria"  validate:"required,min=2"`
	PrecoVenda     decimal.Decimal  `json:"preco_venda"     validate:"min=0"`
	PrecoPromo     *decimal.Decimal `json:"preco_promo"     validate:"omitempty,min=0"`
	PrecoCusto     *decimal.Decimal `json:"preco_custo"     validate:"omitempty,min=0"`
	Estoque        int              `json:"estoque"         validate:"min=0"`
	EstoqueMinimo  int              `json:"estoque_minimo"  validate:"min=0"`
	Unidade        string           `json:"unidade"         validate:"required,min=1"`
	Tipo           string           `json:"tipo"            validate:"required,min=1"`
	NCM            string           `json:"ncm"             validate:"required,min=3"`
	CFOP           string           `json:"cfop"            validate:"required,min=3"`
	CstCsosn       string           `json:"cst_csosn"       validate:"required,min=2"`
	AliquotaICMS   decimal.Decimal  `json:"aliquota_icms"   validate:"min=0"`
	AliquotaPIS    decimal.Decimal  `json:"aliquota_pis"    validate:"min=0"`
	AliquotaCOFINS decimal.Decimal  `json:"aliquota_cofins" validate:"min=0"`
	OrigemFiscal   *string          `json:"origem_fiscal"`
	Ativo          bool             `json:"ativo"`
	ImagemURL      *string          `json:"imagem_url"`
	ObservacoesInternas *string     `json:"observacoes_internas"`
	VendaPorComanda bool            `json:"venda_por_comanda"`
	Fornecedor     *string          `json:"fornecedor"`
}

type ProdutoFilter struct {
	Busca     string `form:"busca"`
	Categoria string `form:"categoria"`
	Status    string `form:"status"` // active | inactive | all (default active)
}

type ProdutoResponse struct {
	ID             string           `json:"id"`
	Nome           string           `json:"nome"`
	Descricao      *string          `json:"descricao,omitempty"`
	CodigoBarras   string           `json:"codigo_barras"`
	Categoria      string           `json:"categoria"`
	PrecoVenda     decimal.Decimal  `json:"preco_venda"`
	PrecoPromo     *decimal.Decimal `json:"preco_promo,omitempty"`
	Estoque        int              `json:"estoque"`
	EstoqueMinimo  int              `json:"estoque_minimo"`
	Unidade        string           `json:"unidade"`
	Tipo           string           `json:"tipo"`
	Ativo          bool             `json:"ativo"`
	VendaPorComanda bool            `json:"venda_por_comanda"`
}
