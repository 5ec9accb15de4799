package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fornex/internal/pkg/logger"
	"fornex/internal/pkg/response"
)

// LoginPage is where browsers land after a form registration.
const LoginPage = "/login.html"

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{service: service, log: log}
}

// Login checks the credentials and returns the session record the browser
// caches.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Requisição inválida.")
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.Error(c, http.StatusBadRequest, "MISSING_FIELDS", "Preencha todos os campos!")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "E-mail ou senha incorretos!")
		default:
			h.log.Error().Err(err).Msg("login failed")
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Erro interno ao fazer login.")
		}
		return
	}

	var data any = sess.User
	if sess.Company != nil {
		data = sess.Company
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso!",
		"tipo":    sess.Kind,
		"dados":   data,
		"avatar":  sess.AvatarPath(),
	})
}

func (h *Handler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Requisição inválida.")
		return
	}

	user, err := h.service.RegisterClient(c.Request.Context(), req)
	if err != nil {
		h.registrationError(c, err)
		return
	}

	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, LoginPage)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Cadastro realizado com sucesso!",
		"usuario": user.Public(),
	})
}

func (h *Handler) RegisterCompany(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Requisição inválida.")
		return
	}

	company, err := h.service.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		h.registrationError(c, err)
		return
	}

	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, LoginPage)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Cadastro realizado com sucesso!",
		"empresa": company.Public(),
	})
}

func (h *Handler) registrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "MISSING_FIELDS", "Preencha todos os campos obrigatórios!")
	case errors.Is(err, ErrPasswordMismatch):
		response.Error(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "As senhas não coincidem!")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "Este e-mail já está cadastrado!")
	case errors.Is(err, ErrTaxIDAlreadyExists):
		response.Error(c, http.StatusBadRequest, "TAX_ID_EXISTS", "Este CNPJ já está cadastrado.")
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("registration failed")
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Erro interno ao processar cadastro.")
	}
}

// wantsJSON is true for API clients; HTML form posts get a redirect.
func wantsJSON(c *gin.Context) bool {
	if c.ContentType() == gin.MIMEJSON {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}
