package repository

import (
	"context"

	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitanteRepository interface {
	CreateTutor(ctx context.Context, t *model.Tutor) error
	FindTutorByID(ctx context.Context, id uuid.UUID) (*model.Tutor, error)
	FindTutorByCPF(ctx context.Context, cpf string) (*model.Tutor, error)
	ListTutores(ctx context.Context, filter dto.TutorFilter) ([]model.Tutor, error)

	CreateCrianca(ctx context.Context, c *model.Crianca) error
	FindCriancaByID(ctx context.Context, id uuid.UUID) (*model.Crianca, error)

	CreateVisita(ctx context.Context, v *model.Visita) error
	FindVisitaByID(ctx context.Context, id uuid.UUID) (*model.Visita, error)
	FindVisitaAbertaPorCrianca(ctx context.Context, criancaID uuid.UUID) (*model.Visita, error)
	UpdateVisita(ctx context.Context, v *model.Visita) error
	ListVisitasAbertas(ctx context.Context) ([]model.Visita, error)
	ContarVisitasAbertas(ctx context.Context) (int64, error)
}

type visitanteRepo struct{ db *gorm.DB }

func NewVisitanteRepository(db *gorm.DB) VisitanteRepository { return &visitanteRepo{db: db} }

func (r *visitanteRepo) CreateTutor(ctx context.Context, t *model.Tutor) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *visitanteRepo) FindTutorByID(ctx context.Context, id uuid.UUID) (*model.Tutor, error) {
	var t model.Tutor
	err := r.db.WithContext(ctx).
		Preload("Criancas").
		Preload("Visitas").
		First(&t, id).Error
	return &t, err
}

func (r *visitanteRepo) FindTutorByCPF(ctx context.Context, cpf string) (*model.Tutor, error) {
	var t model.Tutor
	err := r.db.WithContext(ctx).Preload("Criancas").Where("cpf = ?", cpf).First(&t).Error
	return &t, err
}

func (r *visitanteRepo) ListTutores(ctx context.Context, filter dto.TutorFilter) ([]model.Tutor, error) {
	var tutores []model.Tutor
	q := r.db.WithContext(ctx).Preload("Criancas")
	if filter.CPF != "" {
		q = q.Where("cpf = ?", filter.CPF)
	}
	if filter.Nome != "" {
		q = q.Where("nome_completo ILIKE ?", "%"+filter.Nome+"%")
	}
	err := q.Order("nome_completo ASC").Find(&tutores).Error
	return tutores, err
}

func (r *visitanteRepo) CreateCrianca(ctx context.Context, c *model.Crianca) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *visitanteRepo) FindCriancaByID(ctx context.Context, id uuid.UUID) (*model.Crianca, error) {
	var c model.Crianca
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *visitanteRepo) CreateVisita(ctx context.Context, v *model.Visita) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *visitanteRepo) FindVisitaByID(ctx context.Context, id uuid.UUID) (*model.Visita, error) {
	var v model.Visita
	err := r.db.WithContext(ctx).Preload("Crianca").Preload("Ingresso").First(&v, id).Error
	return &v, err
}

func (r *visitanteRepo) FindVisitaAbertaPorCrianca(ctx context.Context, criancaID uuid.UUID) (*model.Visita, error) {
	var v model.Visita
	err := r.db.WithContext(ctx).
		Where("crianca_id = ? AND status = ?", criancaID, model.VisitaAberta).
		First(&v).Error
	return &v, err
}

func (r *visitanteRepo) UpdateVisita(ctx context.Context, v *model.Visita) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *visitanteRepo) ListVisitasAbertas(ctx context.Context) ([]model.Visita, error) {
	var visitas []model.Visita
	err := r.db.WithContext(ctx).
		Preload("Crianca").Preload("Ingresso").
		Where("status = ?", model.VisitaAberta).
		Order("entrada_em ASC").
		Find(&visitas).Error
	return visitas, err
}

func (r *visitanteRepo) ContarVisitasAbertas(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Visita{}).
		Where("status = ?", model.VisitaAberta).Count(&n).Error
	return n, err
}
