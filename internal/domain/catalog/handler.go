package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fornex/internal/domain/upload"
	"fornex/internal/pkg/logger"
	"fornex/internal/pkg/response"
)

// Catalog endpoints answer with bare JSON values: the browser pages read the
// array or object directly.
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

// GetCompanies handles GET /api/empresas?estado=&categoria=&produto=&q=
func (h *Handler) GetCompanies(c *gin.Context) {
	var f *Filter
	if q := c.Request.URL.Query(); HasFilterParams(q) {
		parsed := ParseFilter(q)
		f = &parsed
	}

	companies, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.internalError(c, err, "Erro ao carregar empresas.")
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *Handler) GetCompany(c *gin.Context) {
	company, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Empresa não encontrada.")
			return
		}
		h.internalError(c, err, "Erro ao carregar empresa.")
		return
	}
	c.JSON(http.StatusOK, company)
}

// UpdateCompany handles the multipart form of the company page. Only fields
// present in the form are changed; produtos and categorias are comma lists.
func (h *Handler) UpdateCompany(c *gin.Context) {
	req := updateRequestFromForm(c)

	image, err := c.FormFile("imagem")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Formulário inválido.")
			return
		}
		image = nil
	}

	company, err := h.service.Update(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Empresa não encontrada.")
			return
		}
		if !upload.WriteError(c, err) {
			h.internalError(c, err, "Erro ao salvar empresa.")
		}
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *Handler) GetCategories(c *gin.Context) {
	opts, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Erro ao carregar categorias.")
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *Handler) GetStates(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.States())
}

func (h *Handler) internalError(c *gin.Context, err error, message string) {
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("catalog request failed")
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

func updateRequestFromForm(c *gin.Context) UpdateCompanyRequest {
	var req UpdateCompanyRequest
	text := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}

	req.Name = text("nome")
	req.LongDescription = text("sobre")
	req.ShortDescription = text("descricao")
	req.Phone = text("telefone")
	req.Location = text("localizacao")
	if v, ok := c.GetPostFormArray("produtos"); ok {
		req.SetProducts(SplitList(v...))
	}
	if v, ok := c.GetPostFormArray("categorias"); ok {
		req.SetCategories(SplitList(v...))
	}
	return req
}
