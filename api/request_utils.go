package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the wire shape of every error response.
type Error struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// RequestError represents an error that should be returned as an HTTP response
type RequestError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// HandleRequestError sends an appropriate HTTP error response
func HandleRequestError(c *gin.Context, err error) {
	if reqErr, ok := err.(*RequestError); ok {
		c.JSON(reqErr.Status, Error{
			Error:            reqErr.Code,
			ErrorDescription: reqErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Error{
		Error:            "server_error",
		ErrorDescription: "Internal server error",
	})
}

// InvalidInputError creates a RequestError for validation failures
func InvalidInputError(message string) *RequestError {
	return &RequestError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_input",
		Message: message,
	}
}

// InvalidIDError creates a RequestError for invalid ID formats
func InvalidIDError(message string) *RequestError {
	return &RequestError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_id",
		Message: message,
	}
}

// NotFoundError creates a RequestError for resource not found
func NotFoundError(message string) *RequestError {
	return &RequestError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: message,
	}
}

// ServerError creates a RequestError for internal server errors
func ServerError(message string) *RequestError {
	return &RequestError{
		Status:  http.StatusInternalServerError,
		Code:    "server_error",
		Message: message,
	}
}

// RateLimitedError creates a RequestError for admission rejections
func RateLimitedError(message string) *RequestError {
	return &RequestError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limit_exceeded",
		Message: message,
	}
}
