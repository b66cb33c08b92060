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
	"gorm.io/gorm"
)

type VendaService interface {
	RegistrarVenda(ctx context.Context, operadorID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
	ObterVenda(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error)
	ListVendas(ctx context.Context, filter dto.VendaFilter) ([]dto.VendaResponse, error)
}

type vendaService struct {
	repo        repository.VendaRepository
	caixa       CaixaService
	produtoRepo repository.ProdutoRepository
	dispatcher  *worker.Dispatcher
}

func NewVendaService(
	repo repository.VendaRepository,
	caixa CaixaService,
	produtoRepo repository.ProdutoRepository,
	dispatcher *worker.Dispatcher,
) VendaService {
	return &vendaService{
		repo:        repo,
		caixa:       caixa,
		produtoRepo: produtoRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenda ────────────────────────────────────────────────────────────
// Atomic sale commit:
//   1. Operator must have an open till session
//   2. Pre-flight: resolve products, reject inactive, check stock,
//      validate discount and installments
//   3. BEGIN TX: insert venda + itens, guarded stock decrement per item
//   4. COMMIT — all rows or none
//   5. (async) audit trail job, fire & forget
//
// The unit price is the caller's, frozen into the line item at commit.
// Catalog price changes never rewrite sale history.

func (s *vendaService) RegistrarVenda(ctx context.Context, operadorID uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	// 1. Open session guard
	sessao, err := s.caixa.SessaoAberta(ctx, operadorID)
	if err != nil {
		return nil, apierror.Precondition("Caixa fechado. Abra o caixa para realizar vendas.")
	}

	if len(req.Itens) == 0 {
		return nil, apierror.Validation("a venda deve ter ao menos um item")
	}

	// 2. Installment rules: required for CREDITO, forbidden otherwise.
	switch req.MetodoPagamento {
	case model.PagamentoCredito:
		if req.Parcelas == nil || *req.Parcelas < 1 {
			return nil, apierror.Validation("parcelas é obrigatório para pagamento em crédito")
		}
	case model.PagamentoDinheiro, model.PagamentoDebito, model.PagamentoPix, model.PagamentoComanda:
		if req.Parcelas != nil {
			return nil, apierror.Validation("parcelas só é permitido para pagamento em crédito")
		}
	default:
		return nil, apierror.Validation("método de pagamento inválido")
	}

	if req.Desconto.IsNegative() {
		return nil, apierror.Validation("desconto não pode ser negativo")
	}

	// 3. Resolve products and compute totals (pre-flight, outside TX)
	type resolvedItem struct {
		produtoID  uuid.UUID
		nome       string
		preco      decimal.Decimal
		quantidade int
		total      decimal.Decimal
		observacao *string
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero

	for _, item := range req.Itens {
		pid, err := uuid.Parse(item.ProdutoID)
		if err != nil {
			return nil, apierror.Validation(fmt.Sprintf("produto_id inválido: %s", item.ProdutoID))
		}
		if item.Quantidade < 1 {
			return nil, apierror.Validation("quantidade deve ser maior que zero")
		}
		if !item.PrecoUnitario.IsPositive() {
			return nil, apierror.Validation("preco_unitario deve ser maior que zero")
		}
		// Missing and inactive products are both caller-input problems:
		// the item references something that cannot be sold.
		p, err := s.produtoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, apierror.Validation(fmt.Sprintf("produto inválido: %s não encontrado", item.ProdutoID))
		}
		if !p.Ativo {
			return nil, apierror.Validation(fmt.Sprintf("produto inválido: %s está inativo", p.Nome))
		}
		if p.Estoque < item.Quantidade {
			return nil, apierror.Validation(
				fmt.Sprintf("Estoque insuficiente para %s: disponível %d, solicitado %d",
					p.Nome, p.Estoque, item.Quantidade))
		}

		lineTotal := item.PrecoUnitario.Mul(decimal.NewFromInt(int64(item.Quantidade)))
		subtotal = subtotal.Add(lineTotal)
		resolved = append(resolved, resolvedItem{
			produtoID:  pid,
			nome:       p.Nome,
			preco:      item.PrecoUnitario,
			quantidade: item.Quantidade,
			total:      lineTotal,
			observacao: item.Observacao,
		})
	}

	if req.Desconto.GreaterThan(subtotal) {
		return nil, apierror.Validation("desconto não pode exceder o subtotal")
	}
	total := subtotal.Sub(req.Desconto)

	// 4. ACID transaction: sale rows + guarded decrements
	venda := model.Venda{
		OperadorID:      operadorID,
		SessaoCaixaID:   sessao.ID,
		Subtotal:        subtotal,
		Desconto:        req.Desconto,
		Total:           total,
		MetodoPagamento: req.MetodoPagamento,
		Parcelas:        req.Parcelas,
		ClienteCPF:      req.ClienteCPF,
	}
	for _, r := range resolved {
		venda.Itens = append(venda.Itens, model.VendaItem{
			ProdutoID:     r.produtoID,
			Quantidade:    r.quantidade,
			PrecoUnitario: r.preco,
			Total:         r.total,
			Observacao:    r.observacao,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &venda); err != nil {
			return err
		}
		for _, r := range resolved {
			rows, err := s.produtoRepo.DecrementarEstoqueTx(tx, r.produtoID, r.quantidade)
			if err != nil {
				return err
			}
			// The pre-flight check passed but the guarded UPDATE matched
			// nothing: a concurrent sale consumed the stock first.
			if rows == 0 {
				return apierror.Concurrency(
					fmt.Sprintf("Estoque de %s foi consumido por outra venda. Tente novamente.", r.nome))
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 5. Async audit (best-effort)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaPayload{
			ColaboradorID: operadorID.String(),
			Acao:          "SALE_CREATE",
			TipoAlvo:      "VENDA",
			AlvoID:        venda.ID.String(),
			Detalhes: map[string]interface{}{
				"total":            total.StringFixed(2),
				"metodo_pagamento": req.MetodoPagamento,
				"itens":            len(resolved),
			},
		})
	}

	resp := vendaToResponse(&venda)
	for i, r := range resolved {
		resp.Itens[i].Produto = r.nome
	}
	return resp, nil
}

func (s *vendaService) ObterVenda(ctx context.Context, id uuid.UUID) (*dto.VendaResponse, error) {
	venda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venda não encontrada")
	}
	return vendaToResponse(venda), nil
}

// ListVendas returns sales for a period, newest first. With no filter the
// period defaults to today.
func (s *vendaService) ListVendas(ctx context.Context, filter dto.VendaFilter) ([]dto.VendaResponse, error) {
	inicio, fim, err := parsePeriodo(filter.Inicio, filter.Fim)
	if err != nil {
		return nil, err
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	vendas, err := s.repo.ListByPeriodo(ctx, inicio, fim, filter.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendaResponse, len(vendas))
	for i := range vendas {
		out[i] = *vendaToResponse(&vendas[i])
	}
	return out, nil
}

// parsePeriodo turns inclusive YYYY-MM-DD bounds into a [inicio, fim)
// half-open interval, defaulting to today.
func parsePeriodo(inicioStr, fimStr string) (time.Time, time.Time, error) {
	agora := time.Now()
	hoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.Local)
	inicio := hoje
	fim := hoje.Add(24 * time.Hour)

	if inicioStr != "" {
		t, err := time.ParseInLocation("2006-01-02", inicioStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, apierror.Validation("inicio inválido, use YYYY-MM-DD")
		}
		inicio = t
	}
	if fimStr != "" {
		t, err := time.ParseInLocation("2006-01-02", fimStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, apierror.Validation("fim inválido, use YYYY-MM-DD")
		}
		fim = t.Add(24 * time.Hour)
	}
	if fim.Before(inicio) {
		return time.Time{}, time.Time{}, apierror.Validation("fim não pode ser anterior a inicio")
	}
	return inicio, fim, nil
}

func vendaToResponse(v *model.Venda) *dto.VendaResponse {
	itens := make([]dto.ItemVendaResponse, 0, len(v.Itens))
	for _, item := range v.Itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		itens = append(itens, dto.ItemVendaResponse{
			ProdutoID:     item.ProdutoID.String(),
			Produto:       nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			Total:         item.Total,
			Observacao:    item.Observacao,
		})
	}
	return &dto.VendaResponse{
		ID:              v.ID.String(),
		SessaoCaixaID:   v.SessaoCaixaID.String(),
		OperadorID:      v.OperadorID.String(),
		Itens:           itens,
		Subtotal:        v.Subtotal,
		Desconto:        v.Desconto,
		Total:           v.Total,
		MetodoPagamento: v.MetodoPagamento,
		Parcelas:        v.Parcelas,
		ClienteCPF:      v.ClienteCPF,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}
