package response

import "github.com/gin-gonic/gin"

// Error writes the error envelope. The top-level "erro" key carries the
// message the browser pages display.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"erro":    message,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// Abort is Error for middleware: it stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
