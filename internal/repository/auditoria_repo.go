package repository

import (
	"context"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, r *model.RegistroAuditoria) error
	ListPorColaborador(ctx context.Context, colaboradorID uuid.UUID, limit int) ([]model.RegistroAuditoria, error)
	ListRecentes(ctx context.Context, limit int) ([]model.RegistroAuditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, reg *model.RegistroAuditoria) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *auditoriaRepo) ListPorColaborador(ctx context.Context, colaboradorID uuid.UUID, limit int) ([]model.RegistroAuditoria, error) {
	var regs []model.RegistroAuditoria
	err := r.db.WithContext(ctx).
		Where("colaborador_id = ?", colaboradorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&regs).Error
	return regs, err
}

func (r *auditoriaRepo) ListRecentes(ctx context.Context, limit int) ([]model.RegistroAuditoria, error) {
	var regs []model.RegistroAuditoria
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&regs).Error
	return regs, err
}
