package handler

import (
	"net/http"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendaHandler struct{ svc service.VendaService }

func NewVendaHandler(svc service.VendaService) *VendaHandler { return &VendaHandler{svc: svc} }

// Registrar godoc
// @Summary Registra uma venda no caixa aberto
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVendaRequest true "Itens e pagamento"
// @Success 201 {object} dto.VendaResponse
// @Failure 409 {object} apierror.Error
// @Failure 422 {object} apierror.Error
// @Router /v1/vendas [post]
func (h *VendaHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operadorID, ok := operadorFromClaims(c)
	if !ok {
		return
	}

	resp, err := h.svc.RegistrarVenda(c.Request.Context(), operadorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obter godoc
// @Summary Consulta uma venda pelo ID
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.VendaResponse
// @Failure 404 {object} apierror.Error
// @Router /v1/vendas/{id} [get]
func (h *VendaHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("ID inválido"))
		return
	}
	resp, err := h.svc.ObterVenda(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar returns sales filtered by period (default: today).
func (h *VendaHandler) Listar(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("filtro inválido: "+err.Error()))
		return
	}
	resp, err := h.svc.ListVendas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
