package handler

import (
	"net/http"
	"strconv"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/middleware"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Abrir godoc
// @Summary Abre uma sessão de caixa para o operador autenticado
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Dados de abertura"
// @Success 201 {object} dto.SessaoCaixaResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operadorID, ok := operadorFromClaims(c)
	if !ok {
		return
	}

	resp, err := h.svc.Abrir(c.Request.Context(), operadorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarMovimentacao godoc
// @Summary Registra sangria ou suprimento no caixa aberto
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentacaoCaixaRequest true "Movimentação manual"
// @Success 201 {object} dto.MovimentacaoCaixaResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/caixa/movimentacao [post]
func (h *CaixaHandler) RegistrarMovimentacao(c *gin.Context) {
	var req dto.MovimentacaoCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operadorID, ok := operadorFromClaims(c)
	if !ok {
		return
	}

	resp, err := h.svc.RegistrarMovimentacao(c.Request.Context(), operadorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha o caixa aberto com conferência de valores
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FecharCaixaRequest true "Valor contado (opcional)"
// @Success 200 {object} dto.FechamentoCaixaResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operadorID, ok := operadorFromClaims(c)
	if !ok {
		return
	}

	resp, err := h.svc.Fechar(c.Request.Context(), operadorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status returns the open session, with movements, for the operator.
func (h *CaixaHandler) Status(c *gin.Context) {
	operadorID, ok := operadorFromClaims(c)
	if !ok {
		return
	}
	resp, err := h.svc.Status(c.Request.Context(), operadorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historico lists recent sessions, newest first.
func (h *CaixaHandler) Historico(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	resp, err := h.svc.ListSessoes(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// operadorFromClaims extracts the operator id from JWT claims, writing
// the error response on failure.
func operadorFromClaims(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.Validation("Autenticação requerida"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("ID de usuário inválido"))
		return uuid.Nil, false
	}
	return id, true
}
