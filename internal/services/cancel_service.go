package services

import (
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

// CancelResult lists the items a cancellation run got through. When Failed is
// set the cascade stopped there; items cancelled before the stop stay
// cancelled.
type CancelResult struct {
	Cancelled []RebookedItem `json:"cancelled"`
	Failed    *RebookFailure `json:"failed,omitempty"`
}

// CancelService runs the company-side cancellation cascade over a booking's
// line items: additional services first, then vehicles, then passengers.
// The booking's own status transition is the caller's job, since callers
// differ on the target status.
type CancelService struct {
	Passengers PassengerStore
	Vehicles   VehicleStore
	Services   ServiceStore
	Locks      *BookingLocks
}

// CancelByCompany cancels every line item of the booking. Vehicles refuse
// when already in a terminal status, which stops the cascade without
// reverting the steps already done.
func (s CancelService) CancelByCompany(bookingID int64, vehicleReason string) (CancelResult, error) {
	if vehicleReason == "" {
		vehicleReason = models.VehicleCancelledByCompany
	}

	unlock := s.Locks.Lock(bookingID)
	defer unlock()

	result := CancelResult{Cancelled: []RebookedItem{}}

	services, err := s.Services.ActiveByBooking(bookingID)
	if err != nil {
		return result, err
	}
	for _, a := range services {
		if err := s.Services.SetStatus(a.ID, models.ItemCompanyCancelled); err != nil {
			result.Failed = &RebookFailure{Kind: models.KindAdditionalService, ID: a.ID, Err: err.Error()}
			return result, nil
		}
		result.Cancelled = append(result.Cancelled, RebookedItem{Kind: models.KindAdditionalService, ID: a.ID})
	}

	// Vehicles are fetched in every status: a vehicle cancelled by the
	// customer earlier must still stop a company cascade that assumed it
	// was live.
	vehicles, err := s.Vehicles.ByBooking(bookingID)
	if err != nil {
		return result, err
	}
	for _, v := range vehicles {
		if !v.IsCancellable() {
			err := domain.NotCancellableError{Kind: models.KindPersonalVehicle, ItemID: v.ID, Status: v.Status}
			result.Failed = &RebookFailure{Kind: models.KindPersonalVehicle, ID: v.ID, Err: err.Error()}
			return result, err
		}
		if err := s.Vehicles.SetStatus(v.ID, vehicleReason); err != nil {
			result.Failed = &RebookFailure{Kind: models.KindPersonalVehicle, ID: v.ID, Err: err.Error()}
			return result, nil
		}
		result.Cancelled = append(result.Cancelled, RebookedItem{Kind: models.KindPersonalVehicle, ID: v.ID})
	}

	passengers, err := s.Passengers.ActiveByBooking(bookingID)
	if err != nil {
		return result, err
	}
	for _, p := range passengers {
		if err := s.Passengers.SetStatus(p.ID, models.ItemCompanyCancelled); err != nil {
			result.Failed = &RebookFailure{Kind: models.KindPassenger, ID: p.ID, Err: err.Error()}
			return result, nil
		}
		result.Cancelled = append(result.Cancelled, RebookedItem{Kind: models.KindPassenger, ID: p.ID})
	}

	return result, nil
}
