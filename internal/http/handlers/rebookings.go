package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ferryops/internal/http/middleware"
	"ferryops/internal/services"
	"ferryops/internal/utils"
)

// POST /api/rebookings
func (a *API) Rebook(c *gin.Context) {
	var req services.RebookRequest
	if !a.bindAndValidate(c, &req) {
		return
	}

	result, err := a.Rebooking.Rebook(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "rebookings", "rebook",
		fmt.Sprintf("source=%d dest=%d moved=%d", req.SourceBookingID, req.DestinationBookingID, len(result.Moved)))
	if result.Failed != nil {
		// Items moved before the failure stay moved; the caller decides
		// whether to retry the remainder.
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type rebookingDestinationRequest struct {
	SourceBookingID int64 `json:"source_booking_id" validate:"required"`
	VoyageID        int64 `json:"voyage_id" validate:"required"`
}

// POST /api/rebookings/destination
//
// Opens an empty booking on the target voyage to rebook into.
func (a *API) CreateRebookingDestination(c *gin.Context) {
	var req rebookingDestinationRequest
	if !a.bindAndValidate(c, &req) {
		return
	}

	b, err := a.Bookings.CreateEmptyBasedOn(req.SourceBookingID, req.VoyageID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "rebookings", "create_destination", "booking "+b.Number)
	c.JSON(http.StatusCreated, b)
}

type changeVoyageRequest struct {
	VoyageID int64 `json:"voyage_id" validate:"required"`
}

// PUT /api/bookings/:id/voyage
//
// Re-points a whole booking at another voyage, for the case where every
// passenger moves together and no per-item relocation is needed.
func (a *API) ChangeVoyage(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	var req changeVoyageRequest
	if !a.bindAndValidate(c, &req) {
		return
	}

	if _, err := a.Bookings.Bookings.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := a.Bookings.Bookings.UpdateVoyage(id, req.VoyageID); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "rebookings", "change_voyage",
		fmt.Sprintf("booking=%d voyage=%d", id, req.VoyageID))
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "voyage_id": req.VoyageID})
}

// GET /api/bookings/:id/rebookings
func (a *API) GetRebookingHistory(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	records, err := a.Audit.ListByBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "rebookings": records})
}
