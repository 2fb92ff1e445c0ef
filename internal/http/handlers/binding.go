package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferryops/internal/http/middleware"
	"ferryops/internal/services"
	"ferryops/internal/utils"
)

// POST /api/bookings/passengers
func (a *API) BindPassengers(c *gin.Context) {
	var req services.BindPassengersRequest
	if !a.bindAndValidate(c, &req) {
		return
	}

	bind, err := a.Binding.BindPassengers(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "binding", "bind_passengers", "cabin_bind "+bind)
	c.JSON(http.StatusCreated, gin.H{"booking_id": req.BookingID, "cabin_bind": bind})
}

// POST /api/bookings/vehicles
func (a *API) BindVehicle(c *gin.Context) {
	var req services.BindVehicleRequest
	if !a.bindAndValidate(c, &req) {
		return
	}

	id, err := a.Binding.BindPersonalVehicle(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "binding", "bind_vehicle", "")
	c.JSON(http.StatusCreated, gin.H{"booking_id": req.BookingID, "vehicle_id": id})
}

// POST /api/bookings/services
func (a *API) BindServices(c *gin.Context) {
	var req services.BindServicesRequest
	if !a.bindAndValidate(c, &req) {
		return
	}

	ids, err := a.Binding.BindAdditionalServices(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "binding", "bind_services", "")
	c.JSON(http.StatusCreated, gin.H{"booking_id": req.BookingID, "service_ids": ids})
}

// PUT /api/vehicles/:id
//
// Corrects a vehicle's non-critical data after the full validation list
// passes. A failed list is returned whole, like a form validation.
func (a *API) EditVehicle(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	var req services.VehicleEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	req.VehicleID = id
	if err := a.validate.Struct(req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	problems, err := a.VehicleEdit.Validate(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": problems})
		return
	}
	if err := a.VehicleEdit.Apply(req); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "vehicles", "edit_not_critical", "")
	c.JSON(http.StatusOK, gin.H{"vehicle_id": id})
}
