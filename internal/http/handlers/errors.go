package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferryops/internal/domain"
	"ferryops/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsCurrencyInconsistency(err):
		respondError(c, http.StatusConflict, "currency_inconsistency", err.Error())
	case domain.IsNotCancellable(err):
		respondError(c, http.StatusNotAcceptable, "not_cancellable", err.Error())
	case domain.IsPricing(err):
		respondError(c, http.StatusBadGateway, "pricing_failed", err.Error())
	case domain.IsIntegrity(err):
		respondError(c, http.StatusInternalServerError, "integrity_violation", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
