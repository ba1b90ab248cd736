package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-inventory-ledger/internal/domain"
)

// Msg 统一错误/提示体：{"message": "..."}
type Msg struct {
	Message string `json:"message"`
}

// StatusOf 业务错误 → HTTP 状态码；未知错误一律 500，不外漏细节
func StatusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "user already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrNotActive):
		return http.StatusForbidden, "user not active"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden: insufficient role"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	}
	return http.StatusInternalServerError, "internal server error"
}

func Error(c *gin.Context, err error) {
	status, msg := StatusOf(err)
	c.JSON(status, Msg{Message: msg})
}

func AbortError(c *gin.Context, err error) {
	status, msg := StatusOf(err)
	c.AbortWithStatusJSON(status, Msg{Message: msg})
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}
