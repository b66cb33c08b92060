package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/gin-gonic/gin"
)

type FestaHandler struct{ svc service.FestaService }

func NewFestaHandler(svc service.FestaService) *FestaHandler { return &FestaHandler{svc: svc} }

// Criar godoc
// @Summary Agenda uma festa em um slot de data e horário
// @Tags festas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarFestaRequest true "Dados da festa"
// @Success 201 {object} dto.FestaResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/festas [post]
func (h *FestaHandler) Criar(c *gin.Context) {
	var req dto.CriarFestaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancelar frees the slot for rebooking.
func (h *FestaHandler) Cancelar(c *gin.Context) {
	var req dto.CancelarFestaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agenda godoc
// @Summary Agenda mensal de festas com pacotes e estatísticas
// @Tags festas
// @Produce json
// @Security BearerAuth
// @Param ano query int false "Ano (default: atual)"
// @Param mes query int false "Mês 1-12 (default: atual)"
// @Success 200 {object} dto.AgendaFestasResponse
// @Router /v1/festas/agenda [get]
func (h *FestaHandler) Agenda(c *gin.Context) {
	now := time.Now()
	ano, _ := strconv.Atoi(c.DefaultQuery("ano", strconv.Itoa(now.Year())))
	mes, _ := strconv.Atoi(c.DefaultQuery("mes", strconv.Itoa(int(now.Month()))))
	if mes < 1 || mes > 12 {
		c.JSON(http.StatusBadRequest, apierror.Validation("mes deve estar entre 1 e 12"))
		return
	}
	resp, err := h.svc.Agenda(c.Request.Context(), ano, time.Month(mes))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FestaHandler) ListarPacotes(c *gin.Context) {
	resp, err := h.svc.ListarPacotes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
