package handler

import (
	"net/http"

	"github.com/JanRocha/sencto-pdv/internal/apierror"
	"github.com/JanRocha/sencto-pdv/internal/dto"
	"github.com/JanRocha/sencto-pdv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Autentica um colaborador por CPF e senha
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 422 {object} apierror.Error
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		// Always 401 for credential failures, regardless of kind
		c.JSON(http.StatusUnauthorized, apierror.From(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Renova o par de tokens a partir do refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.Error
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.From(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Colaboradores (admin only) ───────────────────────────────────────────────

func (h *AuthHandler) CriarColaborador(c *gin.Context) {
	var req dto.CriarColaboradorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarColaborador(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) ListarColaboradores(c *gin.Context) {
	resp, err := h.svc.ListarColaboradores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) AtualizarColaborador(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("ID inválido"))
		return
	}
	var req dto.AtualizarColaboradorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarColaborador(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) DesativarColaborador(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.Validation("ID inválido"))
		return
	}
	if err := h.svc.DesativarColaborador(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
