package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"
	"github.com/JanRocha/sencto-pdv/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FestaService interface {
	Criar(ctx context.Context, req dto.CriarFestaRequest) (*dto.FestaResponse, error)
	Cancelar(ctx context.Context, req dto.CancelarFestaRequest) (*dto.FestaResponse, error)
	// Agenda returns the month view with packages and aggregate stats.
	Agenda(ctx context.Context, ano int, mes time.Month) (*dto.AgendaFestasResponse, error)
	ListarPacotes(ctx context.Context) ([]dto.PacoteFestaResponse, error)
}

type festaService struct {
	repo       repository.FestaRepository
	dispatcher *worker.Dispatcher
}

func NewFestaService(repo repository.FestaRepository, dispatcher *worker.Dispatcher) FestaService {
	return &festaService{repo: repo, dispatcher: dispatcher}
}

// ── Criar ─────────────────────────────────────────────────────────────────────
// A date+horario slot holds at most one non-cancelled booking. Cancelled
// parties free their slot for rebooking.

func (s *festaService) Criar(ctx context.Context, req dto.CriarFestaRequest) (*dto.FestaResponse, error) {
	data, err := time.ParseInLocation("2006-01-02", req.Data, time.Local)
	if err != nil {
		return nil, apierror.Validation("data inválida, use YYYY-MM-DD")
	}
	if data.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, apierror.Validation("data da festa não pode estar no passado")
	}

	pacoteID, err := uuid.Parse(req.PacoteID)
	if err != nil {
		return nil, apierror.Validation("pacote_id inválido")
	}
	pacote, err := s.repo.FindPacoteByID(ctx, pacoteID)
	if err != nil {
		return nil, apierror.NotFound("Pacote de festa não encontrado")
	}

	if ocupada, err := s.repo.FindAgendadaNoSlot(ctx, data, req.Horario); err == nil && ocupada != nil && ocupada.ID != uuid.Nil {
		return nil, apierror.Conflict(
			fmt.Sprintf("Já existe festa agendada em %s às %s", req.Data, req.Horario))
	}

	festa := &model.Festa{
		NomeAniversariante: req.NomeAniversariante,
		NomeTutor:          req.NomeTutor,
		CPFTutor:           req.CPFTutor,
		EmailTutor:         req.EmailTutor,
		TelefoneTutor:      req.TelefoneTutor,
		EnderecoTutor:      req.EnderecoTutor,
		Data:               data,
		Horario:            req.Horario,
		PacoteID:           pacoteID,
		FeriadoCustom:      req.FeriadoCustom,
		ValorTotal:         req.ValorTotal,
		ValorPago:          req.ValorPago,
		Status:             model.FestaAgendada,
		Observacoes:        req.Observacoes,
	}
	if err := s.repo.Create(ctx, festa); err != nil {
		return nil, err
	}
	festa.Pacote = pacote

	// Booking confirmation email, async
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailPayload{
			To:      req.EmailTutor,
			Subject: fmt.Sprintf("Festa confirmada — %s", req.Data),
			Body: fmt.Sprintf(
				"Olá %s,\n\nA festa de %s está confirmada para %s às %s (pacote %s).\n\nAté breve!",
				req.NomeTutor, req.NomeAniversariante, req.Data, req.Horario, pacote.Nome),
		})
	}

	return festaToResponse(festa), nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────

func (s *festaService) Cancelar(ctx context.Context, req dto.CancelarFestaRequest) (*dto.FestaResponse, error) {
	festaID, err := uuid.Parse(req.FestaID)
	if err != nil {
		return nil, apierror.Validation("festa_id inválido")
	}
	festa, err := s.repo.FindByID(ctx, festaID)
	if err != nil {
		return nil, apierror.NotFound("Festa não encontrada")
	}
	if festa.Status == model.FestaCancelada {
		return nil, apierror.Precondition("Festa já está cancelada")
	}

	festa.Status = model.FestaCancelada
	festa.MotivoCancelamento = &req.Motivo
	if err := s.repo.Update(ctx, festa); err != nil {
		return nil, err
	}
	return festaToResponse(festa), nil
}

// ── Agenda ────────────────────────────────────────────────────────────────────

func (s *festaService) Agenda(ctx context.Context, ano int, mes time.Month) (*dto.AgendaFestasResponse, error) {
	inicio := time.Date(ano, mes, 1, 0, 0, 0, 0, time.Local)
	fim := inicio.AddDate(0, 1, 0)

	festas, err := s.repo.ListPorPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	pacotes, err := s.ListarPacotes(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.AgendaFestasResponse{Pacotes: pacotes}
	receita := decimal.Zero
	porPacote := map[string]int{}
	for i := range festas {
		f := &festas[i]
		resp.Festas = append(resp.Festas, *festaToResponse(f))
		if f.Status != model.FestaCancelada {
			resp.Stats.TotalFestas++
			receita = receita.Add(f.ValorTotal)
			if f.Pacote != nil {
				porPacote[f.Pacote.Nome]++
			}
		}
	}
	resp.Stats.ReceitaEstimada = receita

	maisVendido, max := "", 0
	for nome, n := range porPacote {
		if n > max {
			maisVendido, max = nome, n
		}
	}
	resp.Stats.PacoteMaisVendido = maisVendido
	return resp, nil
}

func (s *festaService) ListarPacotes(ctx context.Context) ([]dto.PacoteFestaResponse, error) {
	pacotes, err := s.repo.ListPacotes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PacoteFestaResponse, len(pacotes))
	for i, p := range pacotes {
		out[i] = dto.PacoteFestaResponse{
			ID:               p.ID.String(),
			Nome:             p.Nome,
			MaxConvidados:    p.MaxConvidados,
			PrecoSemana:      p.PrecoSemana,
			PrecoFimDeSemana: p.PrecoFimDeSemana,
			Descricao:        p.Descricao,
		}
	}
	return out, nil
}

func festaToResponse(f *model.Festa) *dto.FestaResponse {
	pacote := ""
	if f.Pacote != nil {
		pacote = f.Pacote.Nome
	}
	return &dto.FestaResponse{
		ID:                 f.ID.String(),
		NomeAniversariante: f.NomeAniversariante,
		NomeTutor:          f.NomeTutor,
		Data:               f.Data.Format("2006-01-02"),
		Horario:            f.Horario,
		Pacote:             pacote,
		ValorTotal:         f.ValorTotal,
		ValorPago:          f.ValorPago,
		Status:             f.Status,
		MotivoCancelamento: f.MotivoCancelamento,
	}
}
