package repository

import (
	"context"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ColaboradorRepository interface {
	Create(ctx context.Context, c *model.Colaborador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Colaborador, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Colaborador, error)
	List(ctx context.Context) ([]model.Colaborador, error)
	Update(ctx context.Context, c *model.Colaborador) error
	Desativar(ctx context.Context, id uuid.UUID) error
}

type colaboradorRepo struct{ db *gorm.DB }

func NewColaboradorRepository(db *gorm.DB) ColaboradorRepository { return &colaboradorRepo{db: db} }

func (r *colaboradorRepo) Create(ctx context.Context, c *model.Colaborador) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *colaboradorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Colaborador, error) {
	var c model.Colaborador
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *colaboradorRepo) FindByCPF(ctx context.Context, cpf string) (*model.Colaborador, error) {
	var c model.Colaborador
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&c).Error
	return &c, err
}

func (r *colaboradorRepo) List(ctx context.Context) ([]model.Colaborador, error) {
	var cols []model.Colaborador
	err := r.db.WithContext(ctx).Order("nome_completo ASC").Find(&cols).Error
	return cols, err
}

func (r *colaboradorRepo) Update(ctx context.Context, c *model.Colaborador) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *colaboradorRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Colaborador{}).
		Where("id = ?", id).Update("ativo", false).Error
}
