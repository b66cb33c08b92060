package repository

import (
	"context"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FestaRepository interface {
	Create(ctx context.Context, f *model.Festa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Festa, error)
	Update(ctx context.Context, f *model.Festa) error
	// FindAgendadaNoSlot reports the non-cancelled booking occupying a
	// date+time slot, if any.
	FindAgendadaNoSlot(ctx context.Context, data time.Time, horario string) (*model.Festa, error)
	ListPorPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Festa, error)

	FindPacoteByID(ctx context.Context, id uuid.UUID) (*model.PacoteFesta, error)
	ListPacotes(ctx context.Context) ([]model.PacoteFesta, error)
	CreatePacote(ctx context.Context, p *model.PacoteFesta) error
}

type festaRepo struct{ db *gorm.DB }

func NewFestaRepository(db *gorm.DB) FestaRepository { return &festaRepo{db: db} }

func (r *festaRepo) Create(ctx context.Context, f *model.Festa) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *festaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Festa, error) {
	var f model.Festa
	err := r.db.WithContext(ctx).Preload("Pacote").First(&f, id).Error
	return &f, err
}

func (r *festaRepo) Update(ctx context.Context, f *model.Festa) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *festaRepo) FindAgendadaNoSlot(ctx context.Context, data time.Time, horario string) (*model.Festa, error) {
	var f model.Festa
	err := r.db.WithContext(ctx).
		Where("data = ? AND horario = ? AND status <> ?", data, horario, model.FestaCancelada).
		First(&f).Error
	return &f, err
}

func (r *festaRepo) ListPorPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Festa, error) {
	var festas []model.Festa
	err := r.db.WithContext(ctx).
		Preload("Pacote").
		Where("data >= ? AND data < ?", inicio, fim).
		Order("data ASC, horario ASC").
		Find(&festas).Error
	return festas, err
}

func (r *festaRepo) FindPacoteByID(ctx context.Context, id uuid.UUID) (*model.PacoteFesta, error) {
	var p model.PacoteFesta
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *festaRepo) ListPacotes(ctx context.Context) ([]model.PacoteFesta, error) {
	var pacotes []model.PacoteFesta
	err := r.db.WithContext(ctx).Order("preco_semana ASC").Find(&pacotes).Error
	return pacotes, err
}

func (r *festaRepo) CreatePacote(ctx context.Context, p *model.PacoteFesta) error {
	return r.db.WithContext(ctx).Create(p).Error
}
