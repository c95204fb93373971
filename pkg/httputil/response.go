package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finddoctor/scheduling-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithSuccess sends a success response with the given status code
func RespondWithSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError maps the error taxonomy to HTTP: NotFound 404,
// Conflict 409, InvalidInput 400, anything else 500. Callers never see
// internal error details for unexpected failures.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Code {
		case errors.ErrNotFound:
			statusCode = http.StatusNotFound
		case errors.ErrConflict:
			statusCode = http.StatusConflict
		case errors.ErrInvalidInput:
			statusCode = http.StatusBadRequest
		default:
			message = "internal server error"
		}
	}

	c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
	})
}

// RespondWithValidationError reports a request binding failure.
func RespondWithValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Status:  "error",
		Message: err.Error(),
	})
}
