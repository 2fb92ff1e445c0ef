package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferryops/internal/domain/models"
	"ferryops/internal/http/middleware"
	"ferryops/internal/utils"
)

type createBookingRequest struct {
	VoyageID         int64 `json:"voyage_id" validate:"required"`
	BoardingPort     int64 `json:"boarding_port" validate:"required"`
	DisembarkingPort int64 `json:"disembarking_port" validate:"required"`
}

// POST /api/bookings
func (a *API) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !a.bindAndValidate(c, &req) {
		return
	}
	actor := middleware.GetActor(c)

	b, err := a.Bookings.CreateByOrder(actor.UserID, req.VoyageID, req.BoardingPort, req.DisembarkingPort)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "bookings", "create", "booking "+b.Number)
	c.JSON(http.StatusCreated, b)
}

// GET /api/bookings/:id
func (a *API) GetBooking(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	b, err := a.Bookings.Bookings.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /api/bookings/by-order/:batch
func (a *API) GetBookingByOrder(c *gin.Context) {
	batch := c.Param("batch")
	if batch == "" {
		RespondError(c, http.StatusBadRequest, "invalid batch", nil)
		return
	}
	b, err := a.Bookings.Bookings.GetByOrderBatch(batch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /api/bookings/:id/balance
func (a *API) GetBalance(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	balance, err := a.Balance.BalanceOf(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	currency, err := a.Currency.CurrencyOf(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "balance": balance, "currency": currency})
}

// GET /api/bookings/:id/currency
func (a *API) GetCurrency(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	currency, err := a.Currency.CurrencyOf(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "currency": currency})
}

// GET /api/bookings/:id/troubles
func (a *API) GetTroubles(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	troubles, err := a.Bookings.Troubles(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "troubles": troubles})
}

// GET /api/bookings/:id/cabin-binds
func (a *API) GetCabinBinds(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	binds, err := a.Bookings.CabinBinds(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "cabin_binds": binds})
}

// PUT /api/bookings/:id/activate
//
// Activation is the only status transition exposed here; the deposit gate
// decides, and an underfunded booking stays in its current status.
func (a *API) ActivateBooking(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	ok, err := a.Bookings.CanActivate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !ok {
		RespondError(c, http.StatusConflict, "insufficient payment to activate", nil)
		return
	}
	if err := a.Bookings.Bookings.UpdateStatus(id, models.BookingActive); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "bookings", "activate", "")
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "status": models.BookingActive})
}

type cancelRequest struct {
	VehicleReason string `json:"vehicle_reason" validate:"omitempty,oneof=company_cancelled customer_cancelled"`
}

// POST /api/bookings/:id/cancel
func (a *API) CancelBooking(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	var req cancelRequest
	if c.Request.ContentLength > 0 && !a.bindAndValidate(c, &req) {
		return
	}

	result, err := a.Cancel.CancelByCompany(id, req.VehicleReason)
	if err != nil {
		// Partial progress still goes back to the caller.
		c.JSON(http.StatusNotAcceptable, result)
		return
	}
	if result.Failed != nil {
		c.JSON(http.StatusConflict, result)
		return
	}
	if err := a.Bookings.Bookings.UpdateStatus(id, models.BookingCancelled); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "bookings", "cancel", "")
	c.JSON(http.StatusOK, result)
}

// DELETE /api/bookings/:id
func (a *API) DeleteBooking(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	if err := a.Bookings.HardDelete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "bookings", "hard_delete", "")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /api/bookings/:id/edit-check
func (a *API) EditCheck(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	reason, err := a.Guard.Check(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "allowed": reason == "", "reason": reason})
}

// GET /api/bookings/:id/documents-edit-check
//
// Same window as EditCheck but without the attempt limit; document data
// corrections do not spend attempts.
func (a *API) DocumentsEditCheck(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	reason, err := a.Guard.CheckDocuments(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": id, "allowed": reason == "", "reason": reason})
}
