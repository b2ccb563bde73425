package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ardalabs/olympiad-engine/internal/apperr"
	"github.com/ardalabs/olympiad-engine/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// WriteError maps the service error taxonomy onto HTTP statuses. Unrecognized
// errors are treated as internal and logged with the request path.
func WriteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrPaymentRequired):
		ctx.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNotRegistered), errors.Is(err, apperr.ErrResultsNotOpen):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrAlreadyRegistered),
		errors.Is(err, apperr.ErrAlreadySubmitted),
		errors.Is(err, apperr.ErrAlreadyDistributed),
		errors.Is(err, apperr.ErrImmutableQuestions),
		errors.Is(err, apperr.ErrFull),
		errors.Is(err, apperr.ErrConflict):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case apperr.Precondition(err):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}

// PathID parses a uint path parameter; writes a 400 and returns false when the
// value is not a positive integer.
func PathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
