package repository

import (
	"context"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FiscalRepository interface {
	// GetConfigTx loads the singleton config row with a row lock when
	// running inside a transaction, serializing number allocation.
	GetConfigTx(tx *gorm.DB) (*model.ConfigFiscal, error)
	GetConfig(ctx context.Context) (*model.ConfigFiscal, error)
	SaveConfigTx(tx *gorm.DB, cfg *model.ConfigFiscal) error
	SaveConfig(ctx context.Context, cfg *model.ConfigFiscal) error

	CreateNotaTx(tx *gorm.DB, n *model.NotaFiscal) error
	FindNotaByID(ctx context.Context, id uuid.UUID) (*model.NotaFiscal, error)
	UpdateNota(ctx context.Context, n *model.NotaFiscal) error
	ListNotas(ctx context.Context, limit int) ([]model.NotaFiscal, error)
	ContarNotasDesde(ctx context.Context, desde time.Time) (int64, error)

	CreateCancelamento(ctx context.Context, c *model.CancelamentoFiscal) error
	FindCertificadoVigente(ctx context.Context) (*model.CertificadoDigital, error)
	CreateCertificado(ctx context.Context, c *model.CertificadoDigital) error

	DB() *gorm.DB
}

type fiscalRepo struct{ db *gorm.DB }

func NewFiscalRepository(db *gorm.DB) FiscalRepository { return &fiscalRepo{db: db} }

func (r *fiscalRepo) GetConfigTx(tx *gorm.DB) (*model.ConfigFiscal, error) {
	var cfg model.ConfigFiscal
	err := tx.Clauses(lockForUpdate()).First(&cfg).Error
	return &cfg, err
}

func (r *fiscalRepo) GetConfig(ctx context.Context) (*model.ConfigFiscal, error) {
	var cfg model.ConfigFiscal
	err := r.db.WithContext(ctx).First(&cfg).Error
	return &cfg, err
}

func (r *fiscalRepo) SaveConfigTx(tx *gorm.DB, cfg *model.ConfigFiscal) error {
	return tx.Save(cfg).Error
}

func (r *fiscalRepo) SaveConfig(ctx context.Context, cfg *model.ConfigFiscal) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

func (r *fiscalRepo) CreateNotaTx(tx *gorm.DB, n *model.NotaFiscal) error {
	return tx.Create(n).Error
}

func (r *fiscalRepo) FindNotaByID(ctx context.Context, id uuid.UUID) (*model.NotaFiscal, error) {
	var n model.NotaFiscal
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *fiscalRepo) UpdateNota(ctx context.Context, n *model.NotaFiscal) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *fiscalRepo) ListNotas(ctx context.Context, limit int) ([]model.NotaFiscal, error) {
	var notas []model.NotaFiscal
	err := r.db.WithContext(ctx).Order("emitida_em DESC").Limit(limit).Find(&notas).Error
	return notas, err
}

func (r *fiscalRepo) ContarNotasDesde(ctx context.Context, desde time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.NotaFiscal{}).
		Where("emitida_em >= ?", desde).Count(&n).Error
	return n, err
}

func (r *fiscalRepo) CreateCancelamento(ctx context.Context, c *model.CancelamentoFiscal) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *fiscalRepo) FindCertificadoVigente(ctx context.Context) (*model.CertificadoDigital, error) {
	var c model.CertificadoDigital
	err := r.db.WithContext(ctx).
		Where("valido_ate > now()").
		Order("valido_ate DESC").
		First(&c).Error
	return &c, err
}

func (r *fiscalRepo) CreateCertificado(ctx context.Context, c *model.CertificadoDigital) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *fiscalRepo) DB() *gorm.DB { return r.db }
