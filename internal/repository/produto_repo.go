package repository

import (
	"context"

	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	FindByCodigoBarras(ctx context.Context, codigo string) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	Desativar(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ContarItensVenda counts sale line items referencing the product;
	// products with history are deactivated instead of deleted.
	ContarItensVenda(ctx context.Context, id uuid.UUID) (int64, error)
	ContarEstoqueBaixo(ctx context.Context) (int64, error)

	FindCategoriaPorNome(ctx context.Context, nome string) (*model.Categoria, error)
	CreateCategoria(ctx context.Context, c *model.Categoria) error
	ListCategorias(ctx context.Context) ([]model.Categoria, error)

	// Used inside sale transactions — callers pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	// DecrementarEstoqueTx runs the guarded conditional decrement and
	// reports how many rows matched. Zero rows after a passing pre-check
	// means a concurrent sale consumed the stock first.
	DecrementarEstoqueTx(tx *gorm.DB, id uuid.UUID, quantidade int) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Categoria").First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) FindByCodigoBarras(ctx context.Context, codigo string) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Categoria").
		Where("codigo_barras = ?", codigo).First(&p).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, error) {
	var produtos []model.Produto
	q := r.db.WithContext(ctx).Model(&model.Produto{}).Preload("Categoria")

	switch filter.Status {
	case "inactive":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}
	if filter.Busca != "" {
		like := "%" + filter.Busca + "%"
		q = q.Where("nome ILIKE ? OR codigo_barras = ?", like, filter.Busca)
	}
	if filter.Categoria != "" {
		q = q.Joins("JOIN categorias ON categorias.id = produtos.categoria_id").
			Where("categorias.nome = ?", filter.Categoria)
	}

	err := q.Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) Desativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).
		Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Produto{}, id).Error
}

func (r *produtoRepo) ContarItensVenda(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VendaItem{}).
		Where("produto_id = ?", id).Count(&n).Error
	return n, err
}

func (r *produtoRepo) ContarEstoqueBaixo(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).
		Where("ativo = true AND estoque <= estoque_minimo").Count(&n).Error
	return n, err
}

func (r *produtoRepo) FindCategoriaPorNome(ctx context.Context, nome string) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).Where("nome = ?", nome).First(&c).Error
	return &c, err
}

func (r *produtoRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *produtoRepo) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var cats []model.Categoria
	err := r.db.WithContext(ctx).Where("ativa = true").Order("nome ASC").Find(&cats).Error
	return cats, err
}

func (r *produtoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) DecrementarEstoqueTx(tx *gorm.DB, id uuid.UUID, quantidade int) (int64, error) {
	res := tx.Model(&model.Produto{}).
		Where("id = ? AND estoque >= ?", id, quantidade).
		Update("estoque", gorm.Expr("estoque - ?", quantidade))
	return res.RowsAffected, res.Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
