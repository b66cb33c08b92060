package handler

import (
	"net/http"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatorioHandler struct{ svc service.RelatorioService }

func NewRelatorioHandler(svc service.RelatorioService) *RelatorioHandler {
	return &RelatorioHandler{svc: svc}
}

// Dashboard godoc
// @Summary Snapshot do dia para o painel administrativo
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard [get]
func (h *RelatorioHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Vendas godoc
// @Summary Relatório de vendas por período
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param inicio query string false "Data inicial YYYY-MM-DD"
// @Param fim query string false "Data final YYYY-MM-DD"
// @Success 200 {object} dto.RelatorioVendasResponse
// @Router /v1/relatorios/vendas [get]
func (h *RelatorioHandler) Vendas(c *gin.Context) {
	var filter dto.RelatorioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("filtro inválido: "+err.Error()))
		return
	}
	resp, err := h.svc.RelatorioVendas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
