package v1

import (
	"net/http"

	"github.com/financeflow/financeflow/internal/api/dto"
	ierr "github.com/financeflow/financeflow/internal/errors"
	"github.com/financeflow/financeflow/internal/logger"
	"github.com/financeflow/financeflow/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// @Summary Register
// @Description Create an account and return a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param register body dto.SignUpRequest true "Register request"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Email and password are required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Email and password are required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Infow("login rejected", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
