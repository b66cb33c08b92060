package service

import (
	"context"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/config"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CriarColaborador(ctx context.Context, req dto.CriarColaboradorRequest) (*dto.ColaboradorResponse, error)
	ListarColaboradores(ctx context.Context) ([]dto.ColaboradorResponse, error)
	AtualizarColaborador(ctx context.Context, id uuid.UUID, req dto.AtualizarColaboradorRequest) (*dto.ColaboradorResponse, error)
	DesativarColaborador(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.ColaboradorRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.ColaboradorRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// Login authenticates by CPF. Wrong CPF and wrong password return the
// same message so credentials cannot be probed.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	colab, err := s.repo.FindByCPF(ctx, req.CPF)
	if err != nil {
		return nil, apierror.Validation("credenciais inválidas")
	}
	if !colab.Ativo {
		return nil, apierror.Validation("credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(colab.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Validation("credenciais inválidas")
	}

	accessToken, err := s.generateToken(colab, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(colab, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *colaboradorToResponse(colab),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.Validation("refresh token inválido ou expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Validation("token mal formado")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, apierror.Validation("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apierror.Validation("token mal formado")
	}

	colab, err := s.repo.FindByID(ctx, uid)
	if err != nil || !colab.Ativo {
		return nil, apierror.Validation("colaborador não encontrado ou inativo")
	}

	accessToken, err := s.generateToken(colab, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(colab, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *colaboradorToResponse(colab),
	}, nil
}

func (s *authService) CriarColaborador(ctx context.Context, req dto.CriarColaboradorRequest) (*dto.ColaboradorResponse, error) {
	if existing, err := s.repo.FindByCPF(ctx, req.CPF); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, apierror.Conflict("Já existe colaborador com este CPF")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	colab := &model.Colaborador{
		NomeCompleto: req.NomeCompleto,
		CPF:          req.CPF,
		Email:        req.Email,
		Telefone:     req.Telefone,
		PasswordHash: string(hash),
		Papel:        req.Papel,
		Ativo:        true,
	}
	if err := s.repo.Create(ctx, colab); err != nil {
		return nil, err
	}
	return colaboradorToResponse(colab), nil
}

func (s *authService) ListarColaboradores(ctx context.Context) ([]dto.ColaboradorResponse, error) {
	colabs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ColaboradorResponse, len(colabs))
	for i := range colabs {
		resp[i] = *colaboradorToResponse(&colabs[i])
	}
	return resp, nil
}

func (s *authService) AtualizarColaborador(ctx context.Context, id uuid.UUID, req dto.AtualizarColaboradorRequest) (*dto.ColaboradorResponse, error) {
	colab, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Colaborador não encontrado")
	}
	if req.NomeCompleto != "" {
		colab.NomeCompleto = req.NomeCompleto
	}
	if req.Email != "" {
		colab.Email = req.Email
	}
	if req.Telefone != nil {
		colab.Telefone = *req.Telefone
	}
	if req.Papel != "" {
		colab.Papel = req.Papel
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		colab.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, colab); err != nil {
		return nil, err
	}
	return colaboradorToResponse(colab), nil
}

func (s *authService) DesativarColaborador(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Colaborador não encontrado")
	}
	return s.repo.Desativar(ctx, id)
}

func (s *authService) generateToken(c *model.Colaborador, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": c.ID.String(),
		"cpf":     c.CPF,
		"papel":   c.Papel,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func colaboradorToResponse(c *model.Colaborador) *dto.ColaboradorResponse {
	return &dto.ColaboradorResponse{
		ID:           c.ID.String(),
		NomeCompleto: c.NomeCompleto,
		CPF:          c.CPF,
		Email:        c.Email,
		Telefone:     c.Telefone,
		Papel:        c.Papel,
		Ativo:        c.Ativo,
	}
}
