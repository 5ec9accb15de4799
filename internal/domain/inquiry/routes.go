package inquiry

import "github.com/gin-gonic/gin"

// RegisterRoutes registers quote routes under /api
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/orcamento", handler.Submit)
	r.GET("/empresa/:id/orcamentos", handler.ListByCompany)
}
