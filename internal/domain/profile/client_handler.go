package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fornex/internal/domain/upload"
	"fornex/internal/pkg/logger"
	"fornex/internal/pkg/response"
)

// ClientHandler handles client profile HTTP requests
type ClientHandler struct {
	service *Service
	log     *logger.Logger
}

func NewClientHandler(service *Service, log *logger.Logger) *ClientHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ClientHandler{service: service, log: log}
}

// UploadPicture handles POST /api/usuario/upload-perfil/:cpf with the image
// in the "imagem" multipart field.
func (h *ClientHandler) UploadPicture(c *gin.Context) {
	file, err := c.FormFile("imagem")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "Nenhum arquivo enviado.")
		return
	}

	user, path, err := h.service.ReplacePicture(c.Request.Context(), c.Param("cpf"), file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile):
			response.Error(c, http.StatusBadRequest, "NO_FILE", "Nenhum arquivo enviado.")
		case errors.Is(err, ErrProfileNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Usuário não encontrado.")
		default:
			if !upload.WriteError(c, err) {
				h.log.Error().Err(err).Msg("profile picture upload failed")
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro ao salvar imagem.")
			}
		}
		return
	}

	// imagemPath is the key the navbar script reads.
	c.JSON(http.StatusOK, gin.H{
		"message":    "Foto de perfil atualizada com sucesso!",
		"imagePath":  path,
		"imagemPath": path,
		"usuario":    user,
	})
}
