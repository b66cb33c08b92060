package tests

import (
	"context"
	"testing"
	"time"

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

// ── Full in-memory VisitanteRepository ───────────────────────────────────────

type fullVisitanteRepo struct {
	tutores  map[uuid.UUID]*model.Tutor
	criancas map[uuid.UUID]*model.Crianca
	visitas  map[uuid.UUID]*model.Visita
}

func newFullVisitanteRepo() *fullVisitanteRepo {
	return &fullVisitanteRepo{
		tutores:  make(map[uuid.UUID]*model.Tutor),
		criancas: make(map[uuid.UUID]*model.Crianca),
		visitas:  make(map[uuid.UUID]*model.Visita),
	}
}

func (r *fullVisitanteRepo) CreateTutor(_ context.Context, t *model.Tutor) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tutores[t.ID] = t
	return nil
}

func (r *fullVisitanteRepo) FindTutorByID(_ context.Context, id uuid.UUID) (*model.Tutor, error) {
	t, ok := r.tutores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fullVisitanteRepo) FindTutorByCPF(_ context.Context, cpf string) (*model.Tutor, error) {
	for _, t := range r.tutores {
		if t.CPF == cpf {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fullVisitanteRepo) ListTutores(_ context.Context, filter dto.TutorFilter) ([]model.Tutor, error) {
	var out []model.Tutor
	for _, t := range r.tutores {
		if filter.CPF != "" && t.CPF != filter.CPF {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fullVisitanteRepo) CreateCrianca(_ context.Context, c *model.Crianca) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.criancas[c.ID] = c
	return nil
}

func (r *fullVisitanteRepo) FindCriancaByID(_ context.Context, id uuid.UUID) (*model.Crianca, error) {
	c, ok := r.criancas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fullVisitanteRepo) CreateVisita(_ context.Context, v *model.Visita) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.visitas[v.ID] = v
	return nil
}

func (r *fullVisitanteRepo) FindVisitaByID(_ context.Context, id uuid.UUID) (*model.Visita, error) {
	v, ok := r.visitas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fullVisitanteRepo) FindVisitaAbertaPorCrianca(_ context.Context, criancaID uuid.UUID) (*model.Visita, error) {
	for _, v := range r.visitas {
		if v.CriancaID == criancaID && v.Status == model.VisitaAberta {
			return v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fullVisitanteRepo) UpdateVisita(_ context.Context, v *model.Visita) error {
	r.visitas[v.ID] = v
	return nil
}

func (r *fullVisitanteRepo) ListVisitasAbertas(_ context.Context) ([]model.Visita, error) {
	var out []model.Visita
	for _, v := range r.visitas {
		if v.Status == model.VisitaAberta {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fullVisitanteRepo) ContarVisitasAbertas(_ context.Context) (int64, error) {
	visitas, _ := r.ListVisitasAbertas(context.Background())
	return int64(len(visitas)), nil
}

var _ repository.VisitanteRepository = (*fullVisitanteRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type visitaFixture struct {
	svc      service.VisitanteService
	repo     *fullVisitanteRepo
	produtos *fullProdutoRepo
	tutorID  uuid.UUID
	crianca  *model.Crianca
}

func newVisitaFixture(t *testing.T) *visitaFixture {
	t.Helper()
	repo := newFullVisitanteRepo()
	produtos := newFullProdutoRepo()
	svc := service.NewVisitanteService(repo, produtos)

	tutor, err := svc.CriarTutor(context.Background(), dto.CriarTutorRequest{
		NomeCompleto:   "Carla Souza",
		CPF:            "12345678901",
		DataNascimento: "1988-03-14",
		Email:          "carla@example.com",
		Telefone1:      "11999990000",
		Endereco:       "Rua das Flores, 10",
	})
	require.NoError(t, err)
	tutorID := uuid.MustParse(tutor.ID)

	criancaResp, err := svc.CriarCrianca(context.Background(), dto.CriarCriancaRequest{
		TutorID:        tutor.ID,
		NomeCompleto:   "Alice",
		DataNascimento: "2018-07-02",
	})
	require.NoError(t, err)

	return &visitaFixture{
		svc:      svc,
		repo:     repo,
		produtos: produtos,
		tutorID:  tutorID,
		crianca:  repo.criancas[uuid.MustParse(criancaResp.ID)],
	}
}

func (f *visitaFixture) ingresso(nome string) *model.Produto {
	p := &model.Produto{
		ID: uuid.New(), Nome: nome, CodigoBarras: nome,
		PrecoVenda: decimal.NewFromFloat(45), Estoque: 9999, Ativo: true,
	}
	f.produtos.produtos[p.ID] = p
	return p
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCriarTutorCPFDuplicado(t *testing.T) {
	f := newVisitaFixture(t)

	_, err := f.svc.CriarTutor(context.Background(), dto.CriarTutorRequest{
		NomeCompleto:   "Outra Pessoa",
		CPF:            "12345678901",
		DataNascimento: "1990-01-01",
		Email:          "outra@example.com",
		Telefone1:      "11888880000",
		Endereco:       "Av. Central, 55",
	})
	assert.ErrorContains(t, err, "Já existe responsável")
}

func TestIniciarVisitaDuracaoPorIngresso(t *testing.T) {
	cases := []struct {
		nome    string
		minutos int
	}{
		{"Ingresso 30 minutos", 30},
		{"Ingresso 60 minutos", 60},
		{"Ingresso 120 minutos", 120},
		{"Ingresso dia livre", 720},
		{"Ingresso promocional", 60}, // no hint → default
	}
	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			f := newVisitaFixture(t)
			ing := f.ingresso(tc.nome)

			resp, err := f.svc.IniciarVisita(context.Background(), dto.IniciarVisitaRequest{
				TutorID:           f.tutorID.String(),
				CriancaID:         f.crianca.ID.String(),
				IngressoProdutoID: ing.ID.String(),
			})
			require.NoError(t, err)
			assert.Equal(t, model.VisitaAberta, resp.Status)

			entrada, err := time.Parse(time.RFC3339, resp.EntradaEm)
			require.NoError(t, err)
			prevista, err := time.Parse(time.RFC3339, resp.SaidaPrevistaEm)
			require.NoError(t, err)
			assert.Equal(t, time.Duration(tc.minutos)*time.Minute, prevista.Sub(entrada))
		})
	}
}

func TestIniciarVisitaUmaAbertaPorCrianca(t *testing.T) {
	f := newVisitaFixture(t)
	ing := f.ingresso("Ingresso 60 minutos")

	_, err := f.svc.IniciarVisita(context.Background(), dto.IniciarVisitaRequest{
		TutorID:           f.tutorID.String(),
		CriancaID:         f.crianca.ID.String(),
		IngressoProdutoID: ing.ID.String(),
	})
	require.NoError(t, err)

	_, err = f.svc.IniciarVisita(context.Background(), dto.IniciarVisitaRequest{
		TutorID:           f.tutorID.String(),
		CriancaID:         f.crianca.ID.String(),
		IngressoProdutoID: ing.ID.String(),
	})
	assert.ErrorContains(t, err, "visita em andamento")
}

func TestIniciarVisitaCriancaDeOutroTutor(t *testing.T) {
	f := newVisitaFixture(t)
	ing := f.ingresso("Ingresso 60 minutos")

	outro, err := f.svc.CriarTutor(context.Background(), dto.CriarTutorRequest{
		NomeCompleto:   "Bruno Lima",
		CPF:            "98765432100",
		DataNascimento: "1985-11-20",
		Email:          "bruno@example.com",
		Telefone1:      "11777770000",
		Endereco:       "Rua Azul, 3",
	})
	require.NoError(t, err)

	_, err = f.svc.IniciarVisita(context.Background(), dto.IniciarVisitaRequest{
		TutorID:           outro.ID,
		CriancaID:         f.crianca.ID.String(),
		IngressoProdutoID: ing.ID.String(),
	})
	assert.ErrorContains(t, err, "não pertence a este responsável")
}

func TestFinalizarVisita(t *testing.T) {
	f := newVisitaFixture(t)
	ing := f.ingresso("Ingresso 60 minutos")

	resp, err := f.svc.IniciarVisita(context.Background(), dto.IniciarVisitaRequest{
		TutorID:           f.tutorID.String(),
		CriancaID:         f.crianca.ID.String(),
		IngressoProdutoID: ing.ID.String(),
	})
	require.NoError(t, err)
	visitaID := uuid.MustParse(resp.ID)

	finalizada, err := f.svc.FinalizarVisita(context.Background(), visitaID)
	require.NoError(t, err)
	assert.Equal(t, model.VisitaFinalizada, finalizada.Status)
	require.NotNil(t, finalizada.SaidaEm)

	// Finalize twice fails
	_, err = f.svc.FinalizarVisita(context.Background(), visitaID)
	assert.ErrorContains(t, err, "já foi finalizada")

	// And the child can start a new visit now
	_, err = f.svc.IniciarVisita(context.Background(), dto.IniciarVisitaRequest{
		TutorID:           f.tutorID.String(),
		CriancaID:         f.crianca.ID.String(),
		IngressoProdutoID: ing.ID.String(),
	})
	assert.NoError(t, err)
}

func TestListarVisitasAbertas(t *testing.T) {
	f := newVisitaFixture(t)
	ing := f.ingresso("Ingresso 120 minutos")

	abertas, err := f.svc.ListarVisitasAbertas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, abertas)

	_, err = f.svc.IniciarVisita(context.Background(), dto.IniciarVisitaRequest{
		TutorID:           f.tutorID.String(),
		CriancaID:         f.crianca.ID.String(),
		IngressoProdutoID: ing.ID.String(),
	})
	require.NoError(t, err)

	abertas, err = f.svc.ListarVisitasAbertas(context.Background())
	require.NoError(t, err)
	assert.Len(t, abertas, 1)
}
