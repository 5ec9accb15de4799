package inquiry

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fornex/internal/pkg/logger"
	"fornex/internal/pkg/response"
	"fornex/internal/session"
)

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

// Submit handles POST /api/orcamento
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Requisição inválida.")
		return
	}

	q, err := h.service.Submit(c.Request.Context(), req.Session, req.CompanyID, req.Message)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Orçamento enviado com sucesso!",
		"orcamento": q,
	})
}

// ListByCompany handles GET /api/empresa/:id/orcamentos. The company's
// session travels in the session.Header header.
func (h *Handler) ListByCompany(c *gin.Context) {
	sess := session.FromHeader(c.GetHeader(session.Header))

	list, err := h.service.ListByCompany(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotClient):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Faça login como cliente para solicitar um orçamento.")
	case errors.Is(err, ErrNoSession):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Faça login como empresa para ver os orçamentos.")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Você não tem acesso aos orçamentos desta empresa.")
	case errors.Is(err, ErrCompanyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Empresa não encontrada.")
	case errors.Is(err, ErrEmptyMessage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Descreva o que você precisa.")
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("inquiry request failed")
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno ao processar orçamento.")
	}
}
