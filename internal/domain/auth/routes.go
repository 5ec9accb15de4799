package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/login", h.Login)
	r.POST("/cadastro", h.RegisterClient)
	r.POST("/cadastroEmpresa", h.RegisterCompany)
}
