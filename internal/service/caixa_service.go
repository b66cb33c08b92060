package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"
	"github.com/JanRocha/sencto-pdv/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaService interface {
	Abrir(ctx context.Context, operadorID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error)
	RegistrarMovimentacao(ctx context.Context, operadorID uuid.UUID, req dto.MovimentacaoCaixaRequest) (*dto.MovimentacaoCaixaResponse, error)
	Fechar(ctx context.Context, operadorID uuid.UUID, req dto.FecharCaixaRequest) (*dto.FechamentoCaixaResponse, error)
	Status(ctx context.Context, operadorID uuid.UUID) (*dto.SessaoCaixaResponse, error)
	// SessaoAberta is called by VendaService before committing a sale.
	SessaoAberta(ctx context.Context, operadorID uuid.UUID) (*model.SessaoCaixa, error)
	ListSessoes(ctx context.Context, limit int) ([]dto.SessaoCaixaResponse, error)
}

type caixaService struct {
	repo       repository.CaixaRepository
	dispatcher *worker.Dispatcher
}

func NewCaixaService(repo repository.CaixaRepository, dispatcher *worker.Dispatcher) CaixaService {
	return &caixaService{repo: repo, dispatcher: dispatcher}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Abrir(ctx context.Context, operadorID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error) {
	if req.ValorInicial.IsNegative() {
		return nil, apierror.Validation("valor_inicial não pode ser negativo")
	}

	// Guard: one ABERTO session per operator. The partial unique index
	// backs this check against concurrent opens.
	existing, err := s.repo.FindSessaoAbertaPorOperador(ctx, operadorID)
	switch {
	case err == nil && existing != nil && existing.ID != uuid.Nil:
		return nil, apierror.Conflict("Já existe caixa aberto para este usuário")
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	sessao := &model.SessaoCaixa{
		OperadorID:   operadorID,
		ValorInicial: req.ValorInicial,
		Status:       model.CaixaAberto,
		Observacoes:  req.Observacoes,
		OpenedAt:     time.Now(),
	}
	if err := s.repo.CreateSessao(ctx, sessao); err != nil {
		// A concurrent open that beat us to the partial unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("Já existe caixa aberto para este usuário")
		}
		return nil, err
	}

	s.audit(ctx, operadorID, "CASH_OPEN", sessao.ID.String(), map[string]interface{}{
		"valor_inicial": req.ValorInicial.String(),
	})
	return sessaoToResponse(sessao), nil
}

// ── RegistrarMovimentacao ─────────────────────────────────────────────────────
// SANGRIA / SUPRIMENTO against the operator's open session. Movements are
// immutable — there is no update or delete path.

func (s *caixaService) RegistrarMovimentacao(ctx context.Context, operadorID uuid.UUID, req dto.MovimentacaoCaixaRequest) (*dto.MovimentacaoCaixaResponse, error) {
	if req.Tipo != model.MovSangria && req.Tipo != model.MovSuprimento {
		return nil, apierror.Validation("tipo deve ser SANGRIA ou SUPRIMENTO")
	}
	if !req.Valor.IsPositive() {
		return nil, apierror.Validation("valor deve ser maior que zero")
	}
	if strings.TrimSpace(req.Motivo) == "" {
		return nil, apierror.Validation("motivo é obrigatório")
	}

	sessao, err := s.SessaoAberta(ctx, operadorID)
	if err != nil {
		return nil, apierror.Precondition("Não há caixa aberto")
	}

	mov := &model.MovimentacaoCaixa{
		SessaoCaixaID: sessao.ID,
		OperadorID:    operadorID,
		Tipo:          req.Tipo,
		Valor:         req.Valor,
		Motivo:        req.Motivo,
	}
	if err := s.repo.CreateMovimentacao(ctx, mov); err != nil {
		return nil, err
	}

	s.audit(ctx, operadorID, "CASH_"+req.Tipo, mov.ID.String(), map[string]interface{}{
		"valor": req.Valor.String(),
	})
	return movToResponse(mov), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────
// Reconciliation on close:
//   esperado = valor_inicial + Σ vendas + Σ (+SUPRIMENTO / −SANGRIA)
// A missing valor_contado closes with contado == esperado (no discrepancy).
// The summary line is appended to observacoes; the session row keeps no
// dedicated reconciliation columns.

func (s *caixaService) Fechar(ctx context.Context, operadorID uuid.UUID, req dto.FecharCaixaRequest) (*dto.FechamentoCaixaResponse, error) {
	sessao, err := s.SessaoAberta(ctx, operadorID)
	if err != nil {
		return nil, apierror.Precondition("Não há caixa aberto")
	}
	if req.ValorContado != nil && req.ValorContado.IsNegative() {
		return nil, apierror.Validation("valor_contado não pode ser negativo")
	}

	esperado, err := s.calcularEsperado(ctx, sessao)
	if err != nil {
		return nil, err
	}

	contado := esperado
	if req.ValorContado != nil {
		contado = *req.ValorContado
	}
	diferenca := contado.Sub(esperado)

	resumo := fmt.Sprintf("COUNTED:%s | EXPECTED:%s | DIFF:%s",
		contado.StringFixed(2), esperado.StringFixed(2), diferenca.StringFixed(2))
	if sessao.Observacoes != nil && *sessao.Observacoes != "" {
		resumo = *sessao.Observacoes + " | " + resumo
	}

	now := time.Now()
	sessao.Status = model.CaixaFechado
	sessao.Observacoes = &resumo
	sessao.ClosedAt = &now
	if err := s.repo.UpdateSessao(ctx, sessao); err != nil {
		return nil, err
	}

	s.audit(ctx, operadorID, "CASH_CLOSE", sessao.ID.String(), map[string]interface{}{
		"esperado":  esperado.StringFixed(2),
		"contado":   contado.StringFixed(2),
		"diferenca": diferenca.StringFixed(2),
	})

	return &dto.FechamentoCaixaResponse{
		Sessao:    *sessaoToResponse(sessao),
		Esperado:  esperado,
		Contado:   contado,
		Diferenca: diferenca,
	}, nil
}

// ── Status / SessaoAberta ─────────────────────────────────────────────────────

func (s *caixaService) Status(ctx context.Context, operadorID uuid.UUID) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.SessaoAberta(ctx, operadorID)
	if err != nil {
		return nil, apierror.NotFound("Não há caixa aberto")
	}
	movs, err := s.repo.ListMovimentacoes(ctx, sessao.ID)
	if err != nil {
		return nil, err
	}
	resp := sessaoToResponse(sessao)
	for i := range movs {
		resp.Movimentacoes = append(resp.Movimentacoes, *movToResponse(&movs[i]))
	}
	return resp, nil
}

func (s *caixaService) SessaoAberta(ctx context.Context, operadorID uuid.UUID) (*model.SessaoCaixa, error) {
	sessao, err := s.repo.FindSessaoAbertaPorOperador(ctx, operadorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierror.Precondition("Não há caixa aberto")
		}
		return nil, err
	}
	if sessao == nil || sessao.Status != model.CaixaAberto {
		return nil, apierror.Precondition("Não há caixa aberto")
	}
	return sessao, nil
}

func (s *caixaService) ListSessoes(ctx context.Context, limit int) ([]dto.SessaoCaixaResponse, error) {
	if limit < 1 {
		limit = 50
	}
	sessoes, err := s.repo.ListSessoes(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessaoCaixaResponse, len(sessoes))
	for i := range sessoes {
		out[i] = *sessaoToResponse(&sessoes[i])
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *caixaService) calcularEsperado(ctx context.Context, sessao *model.SessaoCaixa) (decimal.Decimal, error) {
	vendas, err := s.repo.SumVendas(ctx, sessao.ID)
	if err != nil {
		return decimal.Zero, err
	}
	movs, err := s.repo.ListMovimentacoes(ctx, sessao.ID)
	if err != nil {
		return decimal.Zero, err
	}

	esperado := sessao.ValorInicial.Add(vendas)
	for _, m := range movs {
		switch m.Tipo {
		case model.MovSuprimento:
			esperado = esperado.Add(m.Valor)
		case model.MovSangria:
			esperado = esperado.Sub(m.Valor)
		}
	}
	return esperado, nil
}

func (s *caixaService) audit(ctx context.Context, operadorID uuid.UUID, acao, alvoID string, detalhes map[string]interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaPayload{
		ColaboradorID: operadorID.String(),
		Acao:          acao,
		TipoAlvo:      "SESSAO_CAIXA",
		AlvoID:        alvoID,
		Detalhes:      detalhes,
	})
}

func sessaoToResponse(s *model.SessaoCaixa) *dto.SessaoCaixaResponse {
	resp := &dto.SessaoCaixaResponse{
		ID:           s.ID.String(),
		OperadorID:   s.OperadorID.String(),
		ValorInicial: s.ValorInicial,
		Status:       s.Status,
		Observacoes:  s.Observacoes,
		OpenedAt:     s.OpenedAt.Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}

func movToResponse(m *model.MovimentacaoCaixa) *dto.MovimentacaoCaixaResponse {
	return &dto.MovimentacaoCaixaResponse{
		ID:            m.ID.String(),
		SessaoCaixaID: m.SessaoCaixaID.String(),
		Tipo:          m.Tipo,
		Valor:         m.Valor,
		Motivo:        m.Motivo,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}
