package service

import (
	"context"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProdutoService interface {
	Criar(ctx context.Context, req dto.ProdutoRequest) (*dto.ProdutoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	BuscarPorCodigoBarras(ctx context.Context, codigo string) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ProdutoRequest) (*dto.ProdutoResponse, error)
	// Remover deactivates products already referenced by sales instead of
	// deleting them, keeping sale history intact. Reports whether a hard
	// delete happened.
	Remover(ctx context.Context, id uuid.UUID) (deleted bool, err error)
	ListarCategorias(ctx context.Context) ([]string, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
}

func NewProdutoService(repo repository.ProdutoRepository) ProdutoService {
	return &produtoService{repo: repo}
}

func (s *produtoService) Criar(ctx context.Context, req dto.ProdutoRequest) (*dto.ProdutoResponse, error) {
	if existing, err := s.repo.FindByCodigoBarras(ctx, req.CodigoBarras); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, apierror.Conflict("Já existe produto com este código de barras")
	}

	cat, err := s.resolverCategoria(ctx, req.NomeCategoria)
	if err != nil {
		return nil, err
	}

	p := &model.Produto{
		Nome:           req.Nome,
		Descricao:      req.Descricao,
		CodigoBarras:   req.CodigoBarras,
		CodigoInterno:  req.CodigoInterno,
		CategoriaID:    cat.ID,
		PrecoVenda:     req.PrecoVenda,
		PrecoPromo:     req.PrecoPromo,
		PrecoCusto:     req.PrecoCusto,
		Estoque:        req.Estoque,
		EstoqueMinimo:  req.EstoqueMinimo,
		Unidade:        req.Unidade,
		Tipo:           req.Tipo,
		NCM:            req.NCM,
		CFOP:           req.CFOP,
		CstCsosn:       req.CstCsosn,
		AliquotaICMS:   req.AliquotaICMS,
		AliquotaPIS:    req.AliquotaPIS,
		AliquotaCOFINS: req.AliquotaCOFINS,
		OrigemFiscal:   req.OrigemFiscal,
		Ativo:          true,
		ImagemURL:      req.ImagemURL,
		ObservacoesInternas: req.ObservacoesInternas,
		VendaPorComanda: req.VendaPorComanda,
		Fornecedor:     req.Fornecedor,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Categoria = cat
	return produtoToResponse(p), nil
}

func (s *produtoService) Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Produto não encontrado")
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) BuscarPorCodigoBarras(ctx context.Context, codigo string) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByCodigoBarras(ctx, codigo)
	if err != nil {
		return nil, apierror.NotFound("Produto não encontrado")
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, len(produtos))
	for i := range produtos {
		out[i] = *produtoToResponse(&produtos[i])
	}
	return out, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Produto não encontrado")
	}
	if req.CodigoBarras != p.CodigoBarras {
		if existing, err := s.repo.FindByCodigoBarras(ctx, req.CodigoBarras); err == nil && existing != nil && existing.ID != p.ID {
			return nil, apierror.Conflict("Já existe produto com este código de barras")
		}
	}

	cat, err := s.resolverCategoria(ctx, req.NomeCategoria)
	if err != nil {
		return nil, err
	}

	p.Nome = req.Nome
	p.Descricao = req.Descricao
	p.CodigoBarras = req.CodigoBarras
	p.CodigoInterno = req.CodigoInterno
	p.CategoriaID = cat.ID
	p.PrecoVenda = req.PrecoVenda
	p.PrecoPromo = req.PrecoPromo
	p.PrecoCusto = req.PrecoCusto
	p.Estoque = req.Estoque
	p.EstoqueMinimo = req.EstoqueMinimo
	p.Unidade = req.Unidade
	p.Tipo = req.Tipo
	p.NCM = req.NCM
	p.CFOP = req.CFOP
	p.CstCsosn = req.CstCsosn
	p.AliquotaICMS = req.AliquotaICMS
	p.AliquotaPIS = req.AliquotaPIS
	p.AliquotaCOFINS = req.AliquotaCOFINS
	p.OrigemFiscal = req.OrigemFiscal
	p.Ativo = req.Ativo
	p.ImagemURL = req.ImagemURL
	p.ObservacoesInternas = req.ObservacoesInternas
	p.VendaPorComanda = req.VendaPorComanda
	p.Fornecedor = req.Fornecedor

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	p.Categoria = cat
	return produtoToResponse(p), nil
}

func (s *produtoService) Remover(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return false, apierror.NotFound("Produto não encontrado")
	}
	vendidos, err := s.repo.ContarItensVenda(ctx, id)
	if err != nil {
		return false, err
	}
	if vendidos > 0 {
		return false, s.repo.Desativar(ctx, id)
	}
	return true, s.repo.Delete(ctx, id)
}

func (s *produtoService) ListarCategorias(ctx context.Context) ([]string, error) {
	cats, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	nomes := make([]string, len(cats))
	for i, c := range cats {
		nomes[i] = c.Nome
	}
	return nomes, nil
}

// resolverCategoria finds a category by name, creating it on demand.
func (s *produtoService) resolverCategoria(ctx context.Context, nome string) (*model.Categoria, error) {
	cat, err := s.repo.FindCategoriaPorNome(ctx, nome)
	if err == nil && cat != nil && cat.ID != uuid.Nil {
		return cat, nil
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	novo := &model.Categoria{Nome: nome, Ativa: true}
	if err := s.repo.CreateCategoria(ctx, novo); err != nil {
		return nil, err
	}
	return novo, nil
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	categoria := ""
	if p.Categoria != nil {
		categoria = p.Categoria.Nome
	}
	return &dto.ProdutoResponse{
		ID:             p.ID.String(),
		Nome:           p.Nome,
		Descricao:      p.Descricao,
		CodigoBarras:   p.CodigoBarras,
		Categoria:      categoria,
		PrecoVenda:     p.PrecoVenda,
		PrecoPromo:     p.PrecoPromo,
		Estoque:        p.Estoque,
		EstoqueMinimo:  p.EstoqueMinimo,
		Unidade:        p.Unidade,
		Tipo:           p.Tipo,
		Ativo:          p.Ativo,
		VendaPorComanda: p.VendaPorComanda,
	}
}
