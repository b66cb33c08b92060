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
	"gorm.io/gorm"
)

type FiscalService interface {
	EmitirNota(ctx context.Context, operador string, req dto.EmitirNotaRequest) (*dto.NotaFiscalResponse, error)
	CancelarNota(ctx context.Context, operador string, req dto.CancelarNotaRequest) (*dto.NotaFiscalResponse, error)
	ListarNotas(ctx context.Context, limit int) ([]dto.NotaFiscalResponse, error)
	ObterConfig(ctx context.Context) (*dto.ConfigFiscalResponse, error)
	AtualizarConfig(ctx context.Context, req dto.ConfigFiscalRequest) (*dto.ConfigFiscalResponse, error)
	// TestarSefaz runs the simulated connectivity check. No real SEFAZ
	// round trip happens in any environment.
	TestarSefaz(ctx context.Context) (*dto.TesteSefazResponse, error)
}

type fiscalService struct {
	repo       repository.FiscalRepository
	dispatcher *worker.Dispatcher
}

func NewFiscalService(repo repository.FiscalRepository, dispatcher *worker.Dispatcher) FiscalService {
	return &fiscalService{repo: repo, dispatcher: dispatcher}
}

// ── EmitirNota ────────────────────────────────────────────────────────────────
// Number allocation and invoice insert share one transaction: the config
// row is locked, the counter read and bumped, and the invoice written with
// the allocated number. Concurrent emissions serialize on the row lock, so
// numbers never repeat or skip.

func (s *fiscalService) EmitirNota(ctx context.Context, operador string, req dto.EmitirNotaRequest) (*dto.NotaFiscalResponse, error) {
	if req.Tipo != model.NotaNFE && req.Tipo != model.NotaNFCE {
		return nil, apierror.Validation("tipo deve ser NFE ou NFCE")
	}
	if !req.ValorTotal.IsPositive() {
		return nil, apierror.Validation("valor_total deve ser maior que zero")
	}

	var nota model.NotaFiscal
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cfg, err := s.repo.GetConfigTx(tx)
		if err != nil {
			return apierror.Internal("configuração fiscal não inicializada")
		}

		var numero int
		if req.Tipo == model.NotaNFE {
			numero = cfg.ProximoNumeroNFE
			cfg.ProximoNumeroNFE++
		} else {
			numero = cfg.ProximoNumeroNFCE
			cfg.ProximoNumeroNFCE++
		}

		nota = model.NotaFiscal{
			Numero:           numero,
			Serie:            cfg.Serie,
			Tipo:             req.Tipo,
			NomeCliente:      req.NomeCliente,
			DocumentoCliente: req.DocumentoCliente,
			ValorTotal:       req.ValorTotal,
			Status:           model.NotaAutorizada,
			NomeOperador:     operador,
		}
		if err := s.repo.CreateNotaTx(tx, &nota); err != nil {
			return err
		}
		return s.repo.SaveConfigTx(tx, cfg)
	})
	if txErr != nil {
		return nil, txErr
	}

	// DANFE + XML rendering is offloaded; the nota row is updated with
	// file paths when the job completes.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueDanfe(ctx, worker.DanfePayload{NotaID: nota.ID.String()})
	}

	return notaToResponse(&nota), nil
}

// ── CancelarNota ──────────────────────────────────────────────────────────────

func (s *fiscalService) CancelarNota(ctx context.Context, operador string, req dto.CancelarNotaRequest) (*dto.NotaFiscalResponse, error) {
	notaID, err := uuid.Parse(req.NotaID)
	if err != nil {
		return nil, apierror.Validation("nota_id inválido")
	}
	if len(req.Justificativa) < 15 {
		return nil, apierror.Validation("justificativa deve ter ao menos 15 caracteres")
	}

	nota, err := s.repo.FindNotaByID(ctx, notaID)
	if err != nil {
		return nil, apierror.NotFound("Nota fiscal não encontrada")
	}
	if nota.Status == model.NotaCancelada {
		return nil, apierror.Precondition("Nota fiscal já está cancelada")
	}

	nota.Status = model.NotaCancelada
	if err := s.repo.UpdateNota(ctx, nota); err != nil {
		return nil, err
	}
	cancelamento := &model.CancelamentoFiscal{
		NotaFiscalID:  nota.ID,
		Justificativa: req.Justificativa,
		NomeOperador:  operador,
	}
	if err := s.repo.CreateCancelamento(ctx, cancelamento); err != nil {
		return nil, err
	}
	return notaToResponse(nota), nil
}

func (s *fiscalService) ListarNotas(ctx context.Context, limit int) ([]dto.NotaFiscalResponse, error) {
	if limit < 1 {
		limit = 100
	}
	notas, err := s.repo.ListNotas(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotaFiscalResponse, len(notas))
	for i := range notas {
		out[i] = *notaToResponse(&notas[i])
	}
	return out, nil
}

func (s *fiscalService) ObterConfig(ctx context.Context) (*dto.ConfigFiscalResponse, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return nil, apierror.NotFound("Configuração fiscal não inicializada")
	}
	return configToResponse(cfg), nil
}

func (s *fiscalService) AtualizarConfig(ctx context.Context, req dto.ConfigFiscalRequest) (*dto.ConfigFiscalResponse, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return nil, apierror.NotFound("Configuração fiscal não inicializada")
	}
	if req.Ambiente != nil {
		cfg.Ambiente = *req.Ambiente
	}
	if req.Serie != nil {
		cfg.Serie = *req.Serie
	}
	if req.ProximoNumeroNFE != nil {
		cfg.ProximoNumeroNFE = *req.ProximoNumeroNFE
	}
	if req.ProximoNumeroNFCE != nil {
		cfg.ProximoNumeroNFCE = *req.ProximoNumeroNFCE
	}
	if err := s.repo.SaveConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return configToResponse(cfg), nil
}

func (s *fiscalService) TestarSefaz(ctx context.Context) (*dto.TesteSefazResponse, error) {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return nil, apierror.NotFound("Configuração fiscal não inicializada")
	}

	cert, certErr := s.repo.FindCertificadoVigente(ctx)
	certOK := certErr == nil && cert != nil && cert.ValidoAte.After(time.Now())

	resp := &dto.TesteSefazResponse{
		CertificadoValido: certOK,
		AmbienteAcessivel: true,
		SefazRespondendo:  true,
		Mensagem:          fmt.Sprintf("Ambiente %s: comunicação simulada OK", cfg.Ambiente),
	}
	if !certOK {
		resp.Mensagem = "Nenhum certificado digital vigente importado"
	}
	return resp, nil
}

func notaToResponse(n *model.NotaFiscal) *dto.NotaFiscalResponse {
	return &dto.NotaFiscalResponse{
		ID:               n.ID.String(),
		Numero:           n.Numero,
		Serie:            n.Serie,
		Tipo:             n.Tipo,
		NomeCliente:      n.NomeCliente,
		DocumentoCliente: n.DocumentoCliente,
		ValorTotal:       n.ValorTotal,
		Status:           n.Status,
		NomeOperador:     n.NomeOperador,
		XMLPath:          n.XMLPath,
		DanfePath:        n.DanfePath,
		EmitidaEm:        n.EmitidaEm.Format(time.RFC3339),
	}
}

func configToResponse(c *model.ConfigFiscal) *dto.ConfigFiscalResponse {
	return &dto.ConfigFiscalResponse{
		Ambiente:          c.Ambiente,
		Serie:             c.Serie,
		ProximoNumeroNFE:  c.ProximoNumeroNFE,
		ProximoNumeroNFCE: c.ProximoNumeroNFCE,
	}
}
