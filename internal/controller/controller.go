package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quorum/internal/apperror"
	"github.com/lshigami/Quorum/internal/dto"
	"github.com/rs/zerolog/log"
)

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	appErr, ok := apperror.As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case apperror.KindValidation, apperror.KindRejected:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a dto.ErrorResponse. Unexpected errors are
// logged and hidden behind a generic message.
func RespondError(ctx *gin.Context, op string, err error) {
	if appErr, ok := apperror.As(err); ok {
		log.Warn().Err(err).Str("op", op).Str("kind", string(appErr.Kind)).Msg("Request rejected")
		ctx.JSON(StatusFor(err), dto.ErrorResponse{Message: appErr.Message, Details: appErr.Details})
		return
	}
	log.Error().Err(err).Str("op", op).Msg("Internal error")
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
}

// BindError answers a request whose body failed to bind.
func BindError(ctx *gin.Context, op string, err error) {
	log.Warn().Err(err).Str("op", op).Msg("Failed to bind JSON")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// ParseID reads a positive numeric path parameter. On failure it has already
// answered with 400.
func ParseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
