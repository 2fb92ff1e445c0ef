package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferryops/internal/http/middleware"
)

// GET /api/bookings/:id/confirmation
//
// Returns the customer confirmation PDF inline.
func (a *API) GetConfirmationPDF(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}

	pdfBytes, filename, err := a.docs(middleware.GetRequestID(c)).GenerateConfirmation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
