package handler

import (
	"net/http"
	"strconv"

	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/middleware"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/gin-gonic/gin"
)

type FiscalHandler struct{ svc service.FiscalService }

func NewFiscalHandler(svc service.FiscalService) *FiscalHandler { return &FiscalHandler{svc: svc} }

// Emitir godoc
// @Summary Emite uma NFE ou NFCE com numeração sequencial
// @Tags fiscal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.EmitirNotaRequest true "Dados da nota"
// @Success 201 {object} dto.NotaFiscalResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/fiscal/notas [post]
func (h *FiscalHandler) Emitir(c *gin.Context) {
	var req dto.EmitirNotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.EmitirNota(c.Request.Context(), claims.CPF, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar godoc
// @Summary Cancela uma nota fiscal autorizada
// @Tags fiscal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CancelarNotaRequest true "Justificativa"
// @Success 200 {object} dto.NotaFiscalResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/fiscal/notas/cancelar [post]
func (h *FiscalHandler) Cancelar(c *gin.Context) {
	var req dto.CancelarNotaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.CancelarNota(c.Request.Context(), claims.CPF, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FiscalHandler) Listar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.ListarNotas(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FiscalHandler) ObterConfig(c *gin.Context) {
	resp, err := h.svc.ObterConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FiscalHandler) AtualizarConfig(c *gin.Context) {
	var req dto.ConfigFiscalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarConfig(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TestarSefaz runs the simulated SEFAZ connectivity check.
func (h *FiscalHandler) TestarSefaz(c *gin.Context) {
	resp, err := h.svc.TestarSefaz(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
