package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "rentpe.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, translating domain sentinels to HTTP status
// codes so handlers can propagate usecase errors unchanged.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithStatus sends an error response with an explicit status and message
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized),
		errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest),
		errors.Is(err, domainerrors.ErrInvalidAmount),
		errors.Is(err, domainerrors.ErrInsufficientBalance),
		errors.Is(err, domainerrors.ErrWalletInactive),
		errors.Is(err, domainerrors.ErrInvalidTransactionType),
		errors.Is(err, domainerrors.ErrInvalidPaymentMethod),
		errors.Is(err, domainerrors.ErrInvalidReferralCode),
		errors.Is(err, domainerrors.ErrReferralCodeExhausted):
		return domainerrors.NewAppError(http.StatusBadRequest, err.Error(), err)
	default:
		return domainerrors.InternalError(err)
	}
}
