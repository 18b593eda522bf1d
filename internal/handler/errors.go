package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/pkg/logger"
	"github.com/Torqix/aarohan-backend/pkg/response"
)

// domainErrorCodes maps rejection sentinels to response error codes. Anything
// not listed is treated as an internal failure.
var domainErrorCodes = map[error]string{
	domain.ErrEventNotFound:        response.ErrCodeNotFound,
	domain.ErrEventCancelled:       response.ErrCodeEventCancelled,
	domain.ErrEventFull:            response.ErrCodeEventFull,
	domain.ErrAlreadyRegistered:    response.ErrCodeAlreadyRegistered,
	domain.ErrNotTeamEvent:         response.ErrCodeBadRequest,
	domain.ErrTeamRequired:         response.ErrCodeBadRequest,
	domain.ErrInvalidInviteCode:    response.ErrCodeInvalidInviteCode,
	domain.ErrTeamFull:             response.ErrCodeTeamFull,
	domain.ErrNotApproved:          response.ErrCodeNotApproved,
	domain.ErrPaymentPending:       response.ErrCodePaymentPending,
	domain.ErrAlreadyCheckedIn:     response.ErrCodeAlreadyCheckedIn,
	domain.ErrEventMismatch:        response.ErrCodeBadRequest,
	domain.ErrInvalidSignature:     response.ErrCodeInvalidSignature,
	domain.ErrPaymentNotPending:    response.ErrCodeConflict,
	domain.ErrOrderCreationFailed:  response.ErrCodeOrderFailed,
	domain.ErrRegistrationNotFound: response.ErrCodeNotFound,
	domain.ErrPaymentNotFound:      response.ErrCodeNotFound,
	domain.ErrUserNotFound:         response.ErrCodeNotFound,
	domain.ErrTeamNotFound:         response.ErrCodeNotFound,
}

// respondError writes the envelope for a service error, mapping known domain
// sentinels to their codes and everything else to a 500.
func respondError(c *gin.Context, err error) {
	for sentinel, code := range domainErrorCodes {
		if errors.Is(err, sentinel) {
			c.JSON(response.GetHTTPStatus(code), response.Error(code, sentinel.Error()))
			return
		}
	}
	logger.ErrorCtx(c.Request.Context(), "request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, response.InternalError(""))
}
