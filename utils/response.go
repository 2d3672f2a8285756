package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondData writes {"success": true, "data": data}
func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"success": true,
		"data":    data,
	})
}

// RespondError writes {"success": false, "error": {"code": ..., "message": ...}}
func RespondError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
		},
	})
}

// RespondErrorDetails is RespondError with a details payload
func RespondErrorDetails(c *gin.Context, code int, errCode, message string, details interface{}) {
	c.JSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
			"details": details,
		},
	})
}

// AbortWithError writes an error response and stops the handler chain
func AbortWithError(c *gin.Context, code int, errCode, message string) {
	RespondError(c, code, errCode, message)
	c.Abort()
}
