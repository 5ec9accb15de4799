package catalog

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the catalog API under /api
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/empresas", h.GetCompanies)
	r.GET("/empresa/:id", h.GetCompany)
	r.PUT("/empresa/:id", h.UpdateCompany)

	r.GET("/categorias", h.GetCategories)
	r.GET("/estados", h.GetStates)
}
