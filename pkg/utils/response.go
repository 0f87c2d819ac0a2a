package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse sends a 201 with the created resource and a message
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// ValidationErrorResponse sends a 400 listing the missing and rejected fields
func ValidationErrorResponse(c *gin.Context, message string, missing []string, invalid map[string]string) {
	body := gin.H{
		"success": false,
		"error":   message,
	}
	if len(missing) > 0 {
		body["campos_faltantes"] = missing
	}
	if len(invalid) > 0 {
		body["campos_invalidos"] = invalid
	}
	c.JSON(http.StatusBadRequest, body)
}

// MessageResponse sends a simple message response
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}
