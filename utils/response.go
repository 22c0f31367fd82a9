package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

// SendValidationError: required field missing or malformed input.
// The operation aborts with no partial state change.
func SendValidationError(c *gin.Context, err string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: err,
		Code:    http.StatusBadRequest,
	})
}

// SendNotFound: share code or id does not resolve.
func SendNotFound(c *gin.Context, err string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   "Not found",
		Message: err,
		Code:    http.StatusNotFound,
	})
}

// SendStorageError: the durable store rejected or failed the operation.
// Always surfaced, never silently swallowed.
func SendStorageError(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Storage error",
		Message: err,
		Code:    http.StatusInternalServerError,
	})
}

// SendExternalServiceError: a vendor call (email/SMS/places/weather)
// failed. Non-fatal; the rest of the application keeps working.
func SendExternalServiceError(c *gin.Context, err string) {
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   "External service error",
		Message: err,
		Code:    http.StatusBadGateway,
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
		Data:    data,
	}
	c.JSON(http.StatusCreated, response)
}
