package router

import (
	"time"

	"github.com/JanRocha/sencto-pdv/internal/config"
	"github.com/JanRocha/sencto-pdv/internal/handler"
	"github.com/JanRocha/sencto-pdv/internal/middleware"
	"github.com/JanRocha/sencto-pdv/internal/model"
	"github.com/JanRocha/sencto-pdv/internal/repository"
	"github.com/JanRocha/sencto-pdv/internal/service"
	"github.com/JanRocha/sencto-pdv/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	colaboradorRepo := repository.NewColaboradorRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	fiscalRepo := repository.NewFiscalRepository(db)
	festaRepo := repository.NewFestaRepository(db)
	visitanteRepo := repository.NewVisitanteRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(colaboradorRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, dispatcher)
	vendaSvc := service.NewVendaService(vendaRepo, caixaSvc, produtoRepo, dispatcher)
	fiscalSvc := service.NewFiscalService(fiscalRepo, dispatcher)
	festaSvc := service.NewFestaService(festaRepo, dispatcher)
	visitanteSvc := service.NewVisitanteService(visitanteRepo, produtoRepo)
	relatorioSvc := service.NewRelatorioService(vendaRepo, produtoRepo, visitanteRepo, fiscalRepo, rdb, time.Duration(cfg.DashboardCacheTTL)*time.Second)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutoHandler(produtoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	vendasH := handler.NewVendaHandler(vendaSvc)
	fiscalH := handler.NewFiscalHandler(fiscalSvc)
	festasH := handler.NewFestaHandler(festaSvc)
	visitantesH := handler.NewVisitanteHandler(visitanteSvc)
	relatoriosH := handler.NewRelatorioHandler(relatorioSvc)

	// ── Public routes ────────────────────────────────────────────────────────
	r.GET("/health", handler.Health)
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/v1/auth/refresh", authH.Refresh)

	// ── Protected routes ─────────────────────────────────────────────────────
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.PapelOperacional, model.PapelGerente, model.PapelAdministrador)
	gestao := middleware.RequireRole(model.PapelGerente, model.PapelAdministrador)
	admin := middleware.RequireRole(model.PapelAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", todos, caixaH.Abrir)
			caixa.POST("/movimentacao", todos, caixaH.RegistrarMovimentacao)
			caixa.POST("/fechar", todos, caixaH.Fechar)
			caixa.GET("/status", todos, caixaH.Status)
			caixa.GET("/historico", gestao, caixaH.Historico)
		}

		vendas := v1.Group("/vendas", todos)
		{
			vendas.POST("", vendasH.Registrar)
			vendas.GET("", vendasH.Listar)
			vendas.GET("/:id", vendasH.Obter)
		}

		// Produtos — leitura para todos os papéis, escrita só administrador
		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/:id", todos, produtosH.Obter)
		v1.GET("/produtos/codigo/:codigo", todos, produtosH.BuscarPorCodigoBarras)
		v1.GET("/categorias", todos, produtosH.ListarCategorias)
		produtos := v1.Group("/produtos", admin)
		{
			produtos.POST("", produtosH.Criar)
			produtos.PUT("/:id", produtosH.Atualizar)
			produtos.DELETE("/:id", produtosH.Remover)
		}

		fiscal := v1.Group("/fiscal", gestao)
		{
			fiscal.POST("/notas", fiscalH.Emitir)
			fiscal.POST("/notas/cancelar", fiscalH.Cancelar)
			fiscal.GET("/notas", fiscalH.Listar)
			fiscal.GET("/sefaz/teste", fiscalH.TestarSefaz)
			fiscal.GET("/config", fiscalH.ObterConfig)
			fiscal.PUT("/config", admin, fiscalH.AtualizarConfig)
		}

		festas := v1.Group("/festas", gestao)
		{
			festas.POST("", festasH.Criar)
			festas.POST("/cancelar", festasH.Cancelar)
			festas.GET("/agenda", festasH.Agenda)
			festas.GET("/pacotes", festasH.ListarPacotes)
		}

		visitantes := v1.Group("/visitantes", todos)
		{
			visitantes.POST("/tutores", visitantesH.CriarTutor)
			visitantes.GET("/tutores", visitantesH.ListarTutores)
			visitantes.GET("/tutores/:id", visitantesH.ObterTutor)
			visitantes.POST("/criancas", visitantesH.CriarCrianca)
		}
		visitas := v1.Group("/visitas", todos)
		{
			visitas.POST("", visitantesH.IniciarVisita)
			visitas.GET("/abertas", visitantesH.ListarVisitasAbertas)
			visitas.POST("/:id/finalizar", visitantesH.FinalizarVisita)
		}

		v1.GET("/dashboard", gestao, relatoriosH.Dashboard)
		v1.GET("/relatorios/vendas", gestao, relatoriosH.Vendas)

		colaboradores := v1.Group("/colaboradores", admin)
		{
			colaboradores.POST("", authH.CriarColaborador)
			colaboradores.GET("", authH.ListarColaboradores)
			colaboradores.PUT("/:id", authH.AtualizarColaborador)
			colaboradores.DELETE("/:id", authH.DesativarColaborador)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
