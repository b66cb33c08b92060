package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dashboardCacheKey = "cache:dashboard"

type RelatorioService interface {
	// Dashboard serves the back-office snapshot, cached in Redis.
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	RelatorioVendas(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioVendasResponse, error)
}

type relatorioService struct {
	vendaRepo     repository.VendaRepository
	produtoRepo   repository.ProdutoRepository
	visitanteRepo repository.VisitanteRepository
	fiscalRepo    repository.FiscalRepository
	rdb           *redis.Client
	cacheTTL      time.Duration
}

func NewRelatorioService(
	vendaRepo repository.VendaRepository,
	produtoRepo repository.ProdutoRepository,
	visitanteRepo repository.VisitanteRepository,
	fiscalRepo repository.FiscalRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) RelatorioService {
	return &relatorioService{
		vendaRepo:     vendaRepo,
		produtoRepo:   produtoRepo,
		visitanteRepo: visitanteRepo,
		fiscalRepo:    fiscalRepo,
		rdb:           rdb,
		cacheTTL:      cacheTTL,
	}
}

func (s *relatorioService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	hoje := time.Now().Truncate(24 * time.Hour)
	amanha := hoje.Add(24 * time.Hour)

	totalVendas, _, err := s.vendaRepo.SumByPeriodo(ctx, hoje, amanha)
	if err != nil {
		return nil, err
	}
	visitasAbertas, err := s.visitanteRepo.ContarVisitasAbertas(ctx)
	if err != nil {
		return nil, err
	}
	estoqueBaixo, err := s.produtoRepo.ContarEstoqueBaixo(ctx)
	if err != nil {
		return nil, err
	}
	notasHoje, err := s.fiscalRepo.ContarNotasDesde(ctx, hoje)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalVendasHoje: totalVendas,
		VisitasAbertas:  visitasAbertas,
		EstoqueBaixo:    estoqueBaixo,
		NotasHoje:       notasHoje,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *relatorioService) RelatorioVendas(ctx context.Context, filter dto.RelatorioFilter) (*dto.RelatorioVendasResponse, error) {
	// Default period: current month to date
	hoje := time.Now()
	inicioStr := filter.Inicio
	if inicioStr == "" {
		inicioStr = time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, time.Local).Format("2006-01-02")
	}
	fimStr := filter.Fim
	if fimStr == "" {
		fimStr = hoje.Format("2006-01-02")
	}

	inicio, fim, err := parsePeriodo(inicioStr, fimStr)
	if err != nil {
		return nil, err
	}

	total, qtd, err := s.vendaRepo.SumByPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	porPagamento, err := s.vendaRepo.SumPorPagamento(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	top, err := s.vendaRepo.TopProdutos(ctx, inicio, fim, 10)
	if err != nil {
		return nil, err
	}

	resp := &dto.RelatorioVendasResponse{
		Inicio:       inicioStr,
		Fim:          fimStr,
		TotalVendas:  total,
		QtdVendas:    int(qtd),
		PorPagamento: porPagamento,
	}
	for _, r := range top {
		resp.TopProdutos = append(resp.TopProdutos, dto.ProdutoRanking{
			Nome:       r.Nome,
			Quantidade: r.Quantidade,
			Valor:      r.Valor,
		})
	}
	return resp, nil
}
