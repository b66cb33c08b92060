package handler

import (
	"net/http"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VisitanteHandler struct{ svc service.VisitanteService }

func NewVisitanteHandler(svc service.VisitanteService) *VisitanteHandler {
	return &VisitanteHandler{svc: svc}
}

func (h *VisitanteHandler) CriarTutor(c *gin.Context) {
	var req dto.CriarTutorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarTutor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VisitanteHandler) ObterTutor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("ID inválido"))
		return
	}
	resp, err := h.svc.ObterTutor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VisitanteHandler) ListarTutores(c *gin.Context) {
	var filter dto.TutorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("filtro inválido: "+err.Error()))
		return
	}
	resp, err := h.svc.ListarTutores(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VisitanteHandler) CriarCrianca(c *gin.Context) {
	var req dto.CriarCriancaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarCrianca(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// IniciarVisita godoc
// @Summary Inicia uma visita usando um ingresso do catálogo
// @Tags visitantes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.IniciarVisitaRequest true "Tutor, criança e ingresso"
// @Success 201 {object} dto.VisitaResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/visitas [post]
func (h *VisitanteHandler) IniciarVisita(c *gin.Context) {
	var req dto.IniciarVisitaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.IniciarVisita(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VisitanteHandler) FinalizarVisita(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("ID inválido"))
		return
	}
	resp, err := h.svc.FinalizarVisita(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VisitanteHandler) ListarVisitasAbertas(c *gin.Context) {
	resp, err := h.svc.ListarVisitasAbertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
