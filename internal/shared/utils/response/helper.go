package response

import (
	"net/http"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/apperrors"
	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError translates a kinded service error into an HTTP response.
// This is the only place error kinds become transport status codes.
func RespondError(c *gin.Context, err error) {
	code := StatusCodeFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		// Do not leak internals to clients
		message = "something went wrong"
	}
	RespondJSON(c, "error", code, message, nil, nil)
}

// StatusCodeFor maps an error kind to an HTTP status code.
func StatusCodeFor(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
