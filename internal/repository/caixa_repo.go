package repository

import (
	"context"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CaixaRepository is the data access contract for till sessions and
// their manual cash movements. Services depend on this interface, not on
// the concrete GORM implementation, so unit tests can swap in stubs.
type CaixaRepository interface {
	CreateSessao(ctx context.Context, s *model.SessaoCaixa) error
	FindSessaoAbertaPorOperador(ctx context.Context, operadorID uuid.UUID) (*model.SessaoCaixa, error)
	FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error)
	UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error
	CreateMovimentacao(ctx context.Context, m *model.MovimentacaoCaixa) error
	ListMovimentacoes(ctx context.Context, sessaoID uuid.UUID) ([]model.MovimentacaoCaixa, error)
	// SumVendas totals committed sales of a session regardless of
	// payment method; used by the close reconciliation.
	SumVendas(ctx context.Context, sessaoID uuid.UUID) (decimal.Decimal, error)
	ListSessoes(ctx context.Context, limit int) ([]model.SessaoCaixa, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) CreateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *caixaRepo) FindSessaoAbertaPorOperador(ctx context.Context, operadorID uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).
		Where("operador_id = ? AND status = ?", operadorID, model.CaixaAberto).
		First(&s).Error
	return &s, err
}

func (r *caixaRepo) FindSessaoByID(ctx context.Context, id uuid.UUID) (*model.SessaoCaixa, error) {
	var s model.SessaoCaixa
	err := r.db.WithContext(ctx).Preload("Movimentacoes").First(&s, id).Error
	return &s, err
}

func (r *caixaRepo) UpdateSessao(ctx context.Context, s *model.SessaoCaixa) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *caixaRepo) CreateMovimentacao(ctx context.Context, m *model.MovimentacaoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) ListMovimentacoes(ctx context.Context, sessaoID uuid.UUID) ([]model.MovimentacaoCaixa, error) {
	var movs []model.MovimentacaoCaixa
	err := r.db.WithContext(ctx).
		Where("sessao_caixa_id = ?", sessaoID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) SumVendas(ctx context.Context, sessaoID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Venda{}).
		Where("sessao_caixa_id = ?", sessaoID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *caixaRepo) ListSessoes(ctx context.Context, limit int) ([]model.SessaoCaixa, error) {
	var sessoes []model.SessaoCaixa
	err := r.db.WithContext(ctx).
		Order("opened_at DESC").
		Limit(limit).
		Find(&sessoes).Error
	return sessoes, err
}
