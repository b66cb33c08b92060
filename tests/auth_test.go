package tests

import (
	"context"
	"testing"

	"github.com/JanRocha/sencto-pdv/internal/config"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Full in-memory ColaboradorRepository ─────────────────────────────────────

type fullColaboradorRepo struct {
	colaboradores map[uuid.UUID]*model.Colaborador
}

func newFullColaboradorRepo() *fullColaboradorRepo {
	return &fullColaboradorRepo{colaboradores: make(map[uuid.UUID]*model.Colaborador)}
}

func (r *fullColaboradorRepo) Create(_ context.Context, c *model.Colaborador) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.colaboradores[c.ID] = c
	return nil
}

func (r *fullColaboradorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Colaborador, error) {
	c, ok := r.colaboradores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fullColaboradorRepo) FindByCPF(_ context.Context, cpf string) (*model.Colaborador, error) {
	for _, c := range r.colaboradores {
		if c.CPF == cpf {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fullColaboradorRepo) List(_ context.Context) ([]model.Colaborador, error) {
	var out []model.Colaborador
	for _, c := range r.colaboradores {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fullColaboradorRepo) Update(_ context.Context, c *model.Colaborador) error {
	r.colaboradores[c.ID] = c
	return nil
}

func (r *fullColaboradorRepo) Desativar(_ context.Context, id uuid.UUID) error {
	if c, ok := r.colaboradores[id]; ok {
		c.Ativo = false
	}
	return nil
}

var _ repository.ColaboradorRepository = (*fullColaboradorRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

func authFixture(t *testing.T) (service.AuthService, *fullColaboradorRepo) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    168,
	}
	repo := newFullColaboradorRepo()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.Colaborador{
		NomeCompleto: "Maria Operadora",
		CPF:          "11122233344",
		Email:        "maria@senctopdv.local",
		PasswordHash: string(hash),
		Papel:        model.PapelOperacional,
		Ativo:        true,
	}))
	return service.NewAuthService(repo, cfg), repo
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	svc, _ := authFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		CPF: "11122233344", Password: "senha123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.PapelOperacional, resp.User.Papel)
}

func TestLoginCredenciaisInvalidas(t *testing.T) {
	svc, repo := authFixture(t)
	ctx := context.Background()

	// Wrong password and unknown CPF yield the same message
	_, err := svc.Login(ctx, dto.LoginRequest{CPF: "11122233344", Password: "errada"})
	assert.ErrorContains(t, err, "credenciais inválidas")

	_, err = svc.Login(ctx, dto.LoginRequest{CPF: "00000000099", Password: "senha123"})
	assert.ErrorContains(t, err, "credenciais inválidas")

	// Deactivated account cannot log in, same message again
	for _, c := range repo.colaboradores {
		c.Ativo = false
	}
	_, err = svc.Login(ctx, dto.LoginRequest{CPF: "11122233344", Password: "senha123"})
	assert.ErrorContains(t, err, "credenciais inválidas")
}

func TestRefreshToken(t *testing.T) {
	svc, _ := authFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{CPF: "11122233344", Password: "senha123"})
	require.NoError(t, err)

	renewed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.Equal(t, login.User.ID, renewed.User.ID)

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.ErrorContains(t, err, "inválido")
}

func TestCriarColaboradorCPFDuplicado(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.CriarColaborador(context.Background(), dto.CriarColaboradorRequest{
		NomeCompleto: "Outro Nome",
		CPF:          "11122233344",
		Email:        "outro@senctopdv.local",
		Telefone:     "11988887777",
		Papel:        model.PapelGerente,
		Password:     "senha456",
	})
	assert.ErrorContains(t, err, "Já existe colaborador")
}

func TestAtualizarEDesativarColaborador(t *testing.T) {
	svc, repo := authFixture(t)
	ctx := context.Background()

	criado, err := svc.CriarColaborador(ctx, dto.CriarColaboradorRequest{
		NomeCompleto: "João Gerente",
		CPF:          "55566677788",
		Email:        "joao@senctopdv.local",
		Telefone:     "11977776666",
		Papel:        model.PapelGerente,
		Password:     "senha456",
	})
	require.NoError(t, err)
	id := uuid.MustParse(criado.ID)

	atualizado, err := svc.AtualizarColaborador(ctx, id, dto.AtualizarColaboradorRequest{
		Papel: model.PapelAdministrador,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PapelAdministrador, atualizado.Papel)
	assert.Equal(t, "João Gerente", atualizado.NomeCompleto) // untouched fields survive

	require.NoError(t, svc.DesativarColaborador(ctx, id))
	assert.False(t, repo.colaboradores[id].Ativo)

	err = svc.DesativarColaborador(ctx, uuid.New())
	assert.ErrorContains(t, err, "não encontrado")
}
