package repository

import (
	"context"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VendaRepository interface {
	// CreateTx inserts the sale and its items inside the caller's
	// transaction. The sale either commits whole or not at all.
	CreateTx(tx *gorm.DB, v *model.Venda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error)
	ListByPeriodo(ctx context.Context, inicio, fim time.Time, limit int) ([]model.Venda, error)
	ListBySessao(ctx context.Context, sessaoID uuid.UUID) ([]model.Venda, error)
	SumByPeriodo(ctx context.Context, inicio, fim time.Time) (decimal.Decimal, int64, error)
	SumPorPagamento(ctx context.Context, inicio, fim time.Time) (map[string]decimal.Decimal, error)
	TopProdutos(ctx context.Context, inicio, fim time.Time, limit int) ([]RankingProduto, error)

	DB() *gorm.DB
}

// RankingProduto is a GROUP BY row for the sales report.
type RankingProduto struct {
	Nome       string
	Quantidade int
	Valor      decimal.Decimal
}

type vendaRepo struct{ db *gorm.DB }

func NewVendaRepository(db *gorm.DB) VendaRepository { return &vendaRepo{db: db} }

func (r *vendaRepo) CreateTx(tx *gorm.DB, v *model.Venda) error {
	return tx.Create(v).Error
}

func (r *vendaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venda, error) {
	var v model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Itens.Produto").Preload("Operador").
		First(&v, id).Error
	return &v, err
}

func (r *vendaRepo) ListByPeriodo(ctx context.Context, inicio, fim time.Time, limit int) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Itens.Produto").
		Where("created_at >= ? AND created_at < ?", inicio, fim).
		Order("created_at DESC").
		Limit(limit).
		Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) ListBySessao(ctx context.Context, sessaoID uuid.UUID) ([]model.Venda, error) {
	var vendas []model.Venda
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Where("sessao_caixa_id = ?", sessaoID).
		Order("created_at ASC").
		Find(&vendas).Error
	return vendas, err
}

func (r *vendaRepo) SumByPeriodo(ctx context.Context, inicio, fim time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.NullDecimal
		Qtd   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Where("created_at >= ? AND created_at < ?", inicio, fim).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS qtd").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	if !row.Total.Valid {
		return decimal.Zero, row.Qtd, nil
	}
	return row.Total.Decimal, row.Qtd, nil
}

func (r *vendaRepo) SumPorPagamento(ctx context.Context, inicio, fim time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		MetodoPagamento string
		Total           decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Where("created_at >= ? AND created_at < ?", inicio, fim).
		Select("metodo_pagamento, COALESCE(SUM(total), 0) AS total").
		Group("metodo_pagamento").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.MetodoPagamento] = row.Total
	}
	return out, nil
}

func (r *vendaRepo) TopProdutos(ctx context.Context, inicio, fim time.Time, limit int) ([]RankingProduto, error) {
	var rows []RankingProduto
	err := r.db.WithContext(ctx).Model(&model.VendaItem{}).
		Joins("JOIN vendas ON vendas.id = venda_itens.venda_id").
		Joins("JOIN produtos ON produtos.id = venda_itens.produto_id").
		Where("vendas.created_at >= ? AND vendas.created_at < ?", inicio, fim).
		Select("produtos.nome AS nome, SUM(venda_itens.quantidade) AS quantidade, COALESCE(SUM(venda_itens.total), 0) AS valor").
		Group("produtos.nome").
		Order("quantidade DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *vendaRepo) DB() *gorm.DB { return r.db }
