package dto

type LoginRequest struct {
	CPF      string `json:"cpf"      validate:"required,min=11"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	TokenType    string              `json:"token_type"`
	ExpiresIn    int                 `json:"expires_in"`
	User         ColaboradorResponse `json:"user"`
}

// ─── Colaborador CRUD ────────────────────────────────────────────────────────

type CriarColaboradorRequest struct {
	NomeCompleto string `json:"nome_completo" validate:"required,min=3"`
	CPF          string `json:"cpf"           validate:"required,min=11"`
	Email        string `json:"email"         validate:"required,email"`
	Telefone     string `json:"telefone"      validate:"required,min=10"`
	Papel        string `json:"papel"         validate:"required,oneof=ADMINISTRADOR GERENTE OPERACIONAL"`
	Password     string `json:"password"      validate:"required,min=6"`
}

type AtualizarColaboradorRequest struct {
	NomeCompleto string  `json:"nome_completo" validate:"omitempty,min=3"`
	Email        string  `json:"email"         validate:"omitempty,email"`
	Telefone     *string `json:"telefone"`
	Papel        string  `json:"papel"         validate:"omitempty,oneof=ADMINISTRADOR GERENTE OPERACIONAL"`
	Password     string  `json:"password"      validate:"omitempty,min=6"`
}

type ColaboradorResponse struct {
	ID           string `json:"id"`
	NomeCompleto string `json:"nome_completo"`
	CPF          string `json:"cpf"`
	Email        string `json:"email"`
	Telefone     string `json:"telefone,omitempty"`
	Papel        string `json:"papel"`
	Ativo        bool   `json:"ativo"`
}
