package service

import (
	"context"
	"strings"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"

	"github.com/google/uuid"
)

type VisitanteService interface {
	CriarTutor(ctx context.Context, req dto.CriarTutorRequest) (*dto.TutorResponse, error)
	ObterTutor(ctx context.Context, id uuid.UUID) (*dto.TutorResponse, error)
	ListarTutores(ctx context.Context, filter dto.TutorFilter) ([]dto.TutorResponse, error)
	CriarCrianca(ctx context.Context, req dto.CriarCriancaRequest) (*dto.CriancaResponse, error)
	IniciarVisita(ctx context.Context, req dto.IniciarVisitaRequest) (*dto.VisitaResponse, error)
	FinalizarVisita(ctx context.Context, visitaID uuid.UUID) (*dto.VisitaResponse, error)
	ListarVisitasAbertas(ctx context.Context) ([]dto.VisitaResponse, error)
}

type visitanteService struct {
	repo        repository.VisitanteRepository
	produtoRepo repository.ProdutoRepository
}

func NewVisitanteService(repo repository.VisitanteRepository, produtoRepo repository.ProdutoRepository) VisitanteService {
	return &visitanteService{repo: repo, produtoRepo: produtoRepo}
}

func (s *visitanteService) CriarTutor(ctx context.Context, req dto.CriarTutorRequest) (*dto.TutorResponse, error) {
	if existing, err := s.repo.FindTutorByCPF(ctx, req.CPF); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, apierror.Conflict("Já existe responsável com este CPF")
	}
	nascimento, err := time.ParseInLocation("2006-01-02", req.DataNascimento, time.Local)
	if err != nil {
		return nil, apierror.Validation("data_nascimento inválida, use YYYY-MM-DD")
	}

	tutor := &model.Tutor{
		NomeCompleto:   req.NomeCompleto,
		CPF:            req.CPF,
		DataNascimento: nascimento,
		Email:          req.Email,
		Telefone1:      req.Telefone1,
		Telefone2:      req.Telefone2,
		Endereco:       req.Endereco,
	}
	if err := s.repo.CreateTutor(ctx, tutor); err != nil {
		return nil, err
	}
	return tutorToResponse(tutor), nil
}

func (s *visitanteService) ObterTutor(ctx context.Context, id uuid.UUID) (*dto.TutorResponse, error) {
	tutor, err := s.repo.FindTutorByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Responsável não encontrado")
	}
	return tutorToResponse(tutor), nil
}

func (s *visitanteService) ListarTutores(ctx context.Context, filter dto.TutorFilter) ([]dto.TutorResponse, error) {
	tutores, err := s.repo.ListTutores(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TutorResponse, len(tutores))
	for i := range tutores {
		out[i] = *tutorToResponse(&tutores[i])
	}
	return out, nil
}

func (s *visitanteService) CriarCrianca(ctx context.Context, req dto.CriarCriancaRequest) (*dto.CriancaResponse, error) {
	tutorID, err := uuid.Parse(req.TutorID)
	if err != nil {
		return nil, apierror.Validation("tutor_id inválido")
	}
	if _, err := s.repo.FindTutorByID(ctx, tutorID); err != nil {
		return nil, apierror.NotFound("Responsável não encontrado")
	}
	nascimento, err := time.ParseInLocation("2006-01-02", req.DataNascimento, time.Local)
	if err != nil {
		return nil, apierror.Validation("data_nascimento inválida, use YYYY-MM-DD")
	}

	crianca := &model.Crianca{
		TutorID:          tutorID,
		NomeCompleto:     req.NomeCompleto,
		DataNascimento:   nascimento,
		DescontoEspecial: req.DescontoEspecial,
		LimiteConsumo:    req.LimiteConsumo,
	}
	if err := s.repo.CreateCrianca(ctx, crianca); err != nil {
		return nil, err
	}
	return criancaToResponse(crianca), nil
}

// ── IniciarVisita ─────────────────────────────────────────────────────────────
// The allowed stay is derived from the ticket product's name. A child can
// hold at most one open visit.

func (s *visitanteService) IniciarVisita(ctx context.Context, req dto.IniciarVisitaRequest) (*dto.VisitaResponse, error) {
	tutorID, err := uuid.Parse(req.TutorID)
	if err != nil {
		return nil, apierror.Validation("tutor_id inválido")
	}
	criancaID, err := uuid.Parse(req.CriancaID)
	if err != nil {
		return nil, apierror.Validation("crianca_id inválido")
	}
	ingressoID, err := uuid.Parse(req.IngressoProdutoID)
	if err != nil {
		return nil, apierror.Validation("ingresso_produto_id inválido")
	}

	crianca, err := s.repo.FindCriancaByID(ctx, criancaID)
	if err != nil {
		return nil, apierror.NotFound("Criança não encontrada")
	}
	if crianca.TutorID != tutorID {
		return nil, apierror.Validation("criança não pertence a este responsável")
	}
	if aberta, err := s.repo.FindVisitaAbertaPorCrianca(ctx, criancaID); err == nil && aberta != nil && aberta.ID != uuid.Nil {
		return nil, apierror.Conflict("Criança já possui visita em andamento")
	}

	ingresso, err := s.produtoRepo.FindByID(ctx, ingressoID)
	if err != nil {
		return nil, apierror.NotFound("Ingresso não encontrado")
	}
	if !ingresso.Ativo {
		return nil, apierror.Precondition("Ingresso está inativo")
	}

	entrada := time.Now()
	visita := &model.Visita{
		TutorID:           tutorID,
		CriancaID:         criancaID,
		IngressoProdutoID: ingressoID,
		EntradaEm:         entrada,
		SaidaPrevistaEm:   entrada.Add(time.Duration(minutosIngresso(ingresso.Nome)) * time.Minute),
		Status:            model.VisitaAberta,
	}
	if err := s.repo.CreateVisita(ctx, visita); err != nil {
		return nil, err
	}
	visita.Ingresso = ingresso
	return visitaToResponse(visita), nil
}

func (s *visitanteService) FinalizarVisita(ctx context.Context, visitaID uuid.UUID) (*dto.VisitaResponse, error) {
	visita, err := s.repo.FindVisitaByID(ctx, visitaID)
	if err != nil {
		return nil, apierror.NotFound("Visita não encontrada")
	}
	if visita.Status != model.VisitaAberta {
		return nil, apierror.Precondition("Visita já foi finalizada")
	}

	now := time.Now()
	visita.SaidaEm = &now
	visita.Status = model.VisitaFinalizada
	if err := s.repo.UpdateVisita(ctx, visita); err != nil {
		return nil, err
	}
	return visitaToResponse(visita), nil
}

func (s *visitanteService) ListarVisitasAbertas(ctx context.Context) ([]dto.VisitaResponse, error) {
	visitas, err := s.repo.ListVisitasAbertas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VisitaResponse, len(visitas))
	for i := range visitas {
		out[i] = *visitaToResponse(&visitas[i])
	}
	return out, nil
}

// minutosIngresso maps a ticket product name to the allowed stay in
// minutes. "dia livre" wins over any digits in the name.
func minutosIngresso(nome string) int {
	lower := strings.ToLower(nome)
	switch {
	case strings.Contains(lower, "dia livre"):
		return 720
	case strings.Contains(lower, "120"):
		return 120
	case strings.Contains(lower, "30"):
		return 30
	default:
		return 60
	}
}

func tutorToResponse(t *model.Tutor) *dto.TutorResponse {
	resp := &dto.TutorResponse{
		ID:           t.ID.String(),
		NomeCompleto: t.NomeCompleto,
		CPF:          t.CPF,
		Email:        t.Email,
		Telefone1:    t.Telefone1,
		Criancas:     []dto.CriancaResponse{},
		Visitas:      []dto.VisitaResponse{},
	}
	for i := range t.Criancas {
		resp.Criancas = append(resp.Criancas, *criancaToResponse(&t.Criancas[i]))
	}
	for i := range t.Visitas {
		resp.Visitas = append(resp.Visitas, *visitaToResponse(&t.Visitas[i]))
	}
	return resp
}

func criancaToResponse(c *model.Crianca) *dto.CriancaResponse {
	return &dto.CriancaResponse{
		ID:               c.ID.String(),
		NomeCompleto:     c.NomeCompleto,
		DataNascimento:   c.DataNascimento.Format("2006-01-02"),
		DescontoEspecial: c.DescontoEspecial,
		LimiteConsumo:    c.LimiteConsumo,
	}
}

func visitaToResponse(v *model.Visita) *dto.VisitaResponse {
	resp := &dto.VisitaResponse{
		ID:              v.ID.String(),
		TutorID:         v.TutorID.String(),
		CriancaID:       v.CriancaID.String(),
		EntradaEm:       v.EntradaEm.Format(time.RFC3339),
		SaidaPrevistaEm: v.SaidaPrevistaEm.Format(time.RFC3339),
		Status:          v.Status,
	}
	if v.Ingresso != nil {
		resp.Ingresso = v.Ingresso.Nome
	}
	if v.SaidaEm != nil {
		t := v.SaidaEm.Format(time.RFC3339)
		resp.SaidaEm = &t
	}
	return resp
}
