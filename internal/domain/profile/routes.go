package profile

import "github.com/gin-gonic/gin"

// RegisterRoutes registers client profile routes under /api
func RegisterRoutes(r *gin.RouterGroup, clientHandler *ClientHandler) {
	r.POST("/usuario/upload-perfil/:cpf", clientHandler.UploadPicture)
}
