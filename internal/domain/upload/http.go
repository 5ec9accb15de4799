package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fornex/internal/pkg/response"
)

// WriteError maps image rejections to 4xx responses. It returns false for
// errors that are not upload errors.
func WriteError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Imagem muito grande.")
	case errors.Is(err, ErrInvalidMimeType):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Envie uma imagem JPG, PNG, GIF ou WEBP.")
	case errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Arquivo vazio.")
	case errors.Is(err, ErrInvalidSubject):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Identificador inválido.")
	default:
		return false
	}
	return true
}
