// Package apiresponse implements the uniform JSON envelope every
// endpoint responds with: {status, message, data|errors}.
package apiresponse

import "github.com/gin-gonic/gin"

// successBody is the envelope for successful operations.
type successBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// errorBody is the envelope for failed operations. Errors may carry a
// message string, a field->message map, or null.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

// Success writes the success envelope with the given HTTP status code.
// An empty message falls back to a generic one.
func Success(c *gin.Context, code int, message string, data any) {
	if message == "" {
		message = "operation completed successfully"
	}
	c.JSON(code, successBody{Status: "success", Message: message, Data: data})
}

// Error writes the error envelope with the given HTTP status code.
// An empty message falls back to a generic one.
func Error(c *gin.Context, code int, message string, errs any) {
	if message == "" {
		message = "an error occurred during the operation"
	}
	c.JSON(code, errorBody{Status: "error", Message: message, Errors: errs})
}

// Abort writes the error envelope and stops the handler chain.
// Intended for middleware.
func Abort(c *gin.Context, code int, message string, errs any) {
	Error(c, code, message, errs)
	c.Abort()
}
