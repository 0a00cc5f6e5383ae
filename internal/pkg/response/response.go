package response

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
// {"success": true, "data": ...} or
// {"success": false, "error": {"code", "message", "details"}}.

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// FieldErrors reports a validation failure with a per-field error map
// so the client can render inline messages.
func FieldErrors(c *gin.Context, statusCode int, message string, fields map[string]string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": message,
			"details": fields,
		},
	})
}
