package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Full in-memory CaixaRepository ────────────────────────────────────────────

type fullCaixaRepo struct {
	sessoes       map[uuid.UUID]*model.SessaoCaixa
	movimentacoes []model.MovimentacaoCaixa
	vendas        []model.Venda
}

func newFullCaixaRepo() *fullCaixaRepo {
	return &fullCaixaRepo{
		sessoes: make(map[uuid.UUID]*model.SessaoCaixa),
	}
}

func (r *fullCaixaRepo) CreateSessao(_ context.Context, s *model.SessaoCaixa) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sessoes[s.ID] = s
	return nil
}

func (r *fullCaixaRepo) FindSessaoAbertaPorOperador(_ context.Context, operadorID uuid.UUID) (*model.SessaoCaixa, error) {
	for _, s := range r.sessoes {
		if s.OperadorID == operadorID && s.Status == model.CaixaAberto {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fullCaixaRepo) FindSessaoByID(_ context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	s, ok := r.sessoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fullCaixaRepo) UpdateSessao(_ context.Context, s *model.SessaoCaixa) error {
	r.sessoes[s.ID] = s
	return nil
}

func (r *fullCaixaRepo) CreateMovimentacao(_ context.Context, m *model.MovimentacaoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentacoes = append(r.movimentacoes, *m)
	return nil
}

func (r *fullCaixaRepo) ListMovimentacoes(_ context.Context, sessaoID uuid.UUID) ([]model.MovimentacaoCaixa, error) {
	var result []model.MovimentacaoCaixa
	for _, m := range r.movimentacoes {
		if m.SessaoCaixaID == sessaoID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fullCaixaRepo) SumVendas(_ context.Context, sessaoID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, v := range r.vendas {
		if v.SessaoCaixaID == sessaoID {
			sum = sum.Add(v.Total)
		}
	}
	return sum, nil
}

func (r *fullCaixaRepo) ListSessoes(_ context.Context, limit int) ([]model.SessaoCaixa, error) {
	all := make([]model.SessaoCaixa, 0, len(r.sessoes))
	for _, s := range r.sessoes {
		all = append(all, *s)
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

var _ repository.CaixaRepository = (*fullCaixaRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAbrirCaixa(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)

	resp, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(200),
	})

	require.NoError(t, err)
	assert.Equal(t, model.CaixaAberto, resp.Status)
	assert.Equal(t, decimal.NewFromFloat(200).String(), resp.ValorInicial.String())
}

func TestAbrirCaixaDuplicado(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)
	operador := uuid.New()

	_, err := svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(200),
	})
	require.NoError(t, err)

	// Second open by the same operator must fail
	_, err = svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	assert.ErrorContains(t, err, "Já existe caixa aberto")

	// A different operator can still open their own session
	_, err = svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	assert.NoError(t, err)
}

func TestMovimentacaoSemCaixaAberto(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)

	_, err := svc.RegistrarMovimentacao(context.Background(), uuid.New(), dto.MovimentacaoCaixaRequest{
		Tipo:   model.MovSangria,
		Valor:  decimal.NewFromFloat(50),
		Motivo: "Troco para outro caixa",
	})
	assert.ErrorContains(t, err, "Não há caixa aberto")
}

func TestMovimentacaoValorInvalido(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)
	operador := uuid.New()

	_, err := svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimentacao(context.Background(), operador, dto.MovimentacaoCaixaRequest{
		Tipo:   model.MovSuprimento,
		Valor:  decimal.Zero,
		Motivo: "Valor zerado",
	})
	assert.ErrorContains(t, err, "maior que zero")

	_, err = svc.RegistrarMovimentacao(context.Background(), operador, dto.MovimentacaoCaixaRequest{
		Tipo:   "AJUSTE",
		Valor:  decimal.NewFromFloat(10),
		Motivo: "Tipo desconhecido",
	})
	assert.ErrorContains(t, err, "SANGRIA ou SUPRIMENTO")
}

func TestMovimentacaoMotivoVazio(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)
	operador := uuid.New()

	_, err := svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	for _, motivo := range []string{"", "   "} {
		_, err = svc.RegistrarMovimentacao(context.Background(), operador, dto.MovimentacaoCaixaRequest{
			Tipo:   model.MovSangria,
			Valor:  decimal.NewFromFloat(30),
			Motivo: motivo,
		})
		assert.ErrorContains(t, err, "motivo é obrigatório")
		assert.True(t, apierror.IsKind(err, apierror.KindValidation))
	}
	assert.Empty(t, repo.movimentacoes)
}

func TestFecharCaixaReconciliacao(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)
	operador := uuid.New()

	resp, err := svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(200),
	})
	require.NoError(t, err)
	sessaoID := uuid.MustParse(resp.ID)

	// Sale of 150 committed against the session
	repo.vendas = append(repo.vendas, model.Venda{
		ID: uuid.New(), SessaoCaixaID: sessaoID, OperadorID: operador,
		Total: decimal.NewFromFloat(150),
	})

	// +50 SUPRIMENTO, -80 SANGRIA
	_, err = svc.RegistrarMovimentacao(context.Background(), operador, dto.MovimentacaoCaixaRequest{
		Tipo: model.MovSuprimento, Valor: decimal.NewFromFloat(50), Motivo: "Fundo de troco",
	})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimentacao(context.Background(), operador, dto.MovimentacaoCaixaRequest{
		Tipo: model.MovSangria, Valor: decimal.NewFromFloat(80), Motivo: "Depósito no cofre",
	})
	require.NoError(t, err)

	// esperado = 200 + 150 + 50 - 80 = 320; contado 300 → diferença -20
	contado := decimal.NewFromFloat(300)
	fechamento, err := svc.Fechar(context.Background(), operador, dto.FecharCaixaRequest{
		ValorContado: &contado,
	})
	require.NoError(t, err)
	assert.Equal(t, "320", fechamento.Esperado.String())
	assert.Equal(t, "300", fechamento.Contado.String())
	assert.Equal(t, "-20", fechamento.Diferenca.String())
	assert.Equal(t, model.CaixaFechado, fechamento.Sessao.Status)
	require.NotNil(t, fechamento.Sessao.Observacoes)
	assert.Contains(t, *fechamento.Sessao.Observacoes, "COUNTED:300.00")
	assert.Contains(t, *fechamento.Sessao.Observacoes, "EXPECTED:320.00")
	assert.Contains(t, *fechamento.Sessao.Observacoes, "DIFF:-20.00")
}

func TestFecharCaixaSemContagem(t *testing.T) {
	// Missing valor_contado closes with contado == esperado, zero discrepancy.
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)
	operador := uuid.New()

	_, err := svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(500),
	})
	require.NoError(t, err)

	fechamento, err := svc.Fechar(context.Background(), operador, dto.FecharCaixaRequest{})
	require.NoError(t, err)
	assert.Equal(t, "500", fechamento.Esperado.String())
	assert.Equal(t, "500", fechamento.Contado.String())
	assert.True(t, fechamento.Diferenca.IsZero())
}

func TestFecharCaixaSemSessao(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)

	_, err := svc.Fechar(context.Background(), uuid.New(), dto.FecharCaixaRequest{})
	assert.ErrorContains(t, err, "Não há caixa aberto")
}

func TestFecharCaixaEhTerminal(t *testing.T) {
	repo := newFullCaixaRepo()
	svc := service.NewCaixaService(repo, nil)
	operador := uuid.New()

	_, err := svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	require.NoError(t, err)

	_, err = svc.Fechar(context.Background(), operador, dto.FecharCaixaRequest{})
	require.NoError(t, err)

	// Closed session is gone from SessaoAberta — no reopen, no second close
	_, err = svc.Fechar(context.Background(), operador, dto.FecharCaixaRequest{})
	assert.ErrorContains(t, err, "Não há caixa aberto")

	// But a brand new session can be opened afterwards
	_, err = svc.Abrir(context.Background(), operador, dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	assert.NoError(t, err)
}

// faultyCaixaRepo injects repository errors into the open path.
type faultyCaixaRepo struct {
	*fullCaixaRepo
	findErr   error
	createErr error
}

func (r *faultyCaixaRepo) FindSessaoAbertaPorOperador(ctx context.Context, operadorID uuid.UUID) (*model.SessaoCaixa, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.fullCaixaRepo.FindSessaoAbertaPorOperador(ctx, operadorID)
}

func (r *faultyCaixaRepo) CreateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.fullCaixaRepo.CreateSessao(ctx, s)
}

func TestAbrirCaixaErroDeConsulta(t *testing.T) {
	// A transient lookup failure must not be read as "no open session" —
	// the open is aborted instead of slipping past the guard.
	repo := &faultyCaixaRepo{
		fullCaixaRepo: newFullCaixaRepo(),
		findErr:       errors.New("connection reset by peer"),
	}
	svc := service.NewCaixaService(repo, nil)

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	require.Error(t, err)
	assert.False(t, apierror.IsKind(err, apierror.KindConflict))
	assert.Empty(t, repo.sessoes)
}

func TestAbrirCaixaCorridaIndiceUnico(t *testing.T) {
	// Two opens race past the app-level check; the partial unique index
	// rejects the loser, which surfaces as a conflict.
	repo := &faultyCaixaRepo{
		fullCaixaRepo: newFullCaixaRepo(),
		createErr:     gorm.ErrDuplicatedKey,
	}
	svc := service.NewCaixaService(repo, nil)

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{
		ValorInicial: decimal.NewFromFloat(100),
	})
	assert.ErrorContains(t, err, "Já existe caixa aberto")
	assert.True(t, apierror.IsKind(err, apierror.KindConflict))
}
