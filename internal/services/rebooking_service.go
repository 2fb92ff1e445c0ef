package services

import (
	"fmt"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/utils"
)

// RebookRequest names the passengers to relocate and where they go. Vehicles
// driven by the selected passengers and services bound to their cabins move
// along with them.
type RebookRequest struct {
	SourceBookingID       int64   `json:"source_booking_id" validate:"required"`
	DestinationBookingID  int64   `json:"destination_booking_id" validate:"required"`
	PassengerIDs          []int64 `json:"passenger_ids" validate:"required,min=1"`
	DestinationCabin      int64   `json:"destination_cabin" validate:"required"`
	DestinationTariffType string  `json:"destination_tariff_type"`
	Comment               string  `json:"comment"`
}

// RebookedItem identifies one relocated line item.
type RebookedItem struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

// RebookFailure reports the item a rebooking run stopped on.
type RebookFailure struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
	Err  string `json:"error"`
}

// RebookResult lists what moved before the run finished or failed. Items
// committed before a failure stay moved; there is no rollback.
type RebookResult struct {
	Moved     []RebookedItem `json:"moved"`
	Failed    *RebookFailure `json:"failed,omitempty"`
	CabinBind string         `json:"cabin_bind"`
}

// RebookingService relocates passengers, their vehicles and their cabin
// services from one booking to another, leaving an audit row per item.
type RebookingService struct {
	Bookings   BookingStore
	Passengers PassengerStore
	Vehicles   VehicleStore
	Services   ServiceStore
	Audit      AuditStore
	Locks      *BookingLocks
}

// Rebook moves each item with its own commit. Every moved item writes one
// audit record; on the first failing item the run stops and reports it, with
// everything already moved left in place.
func (s RebookingService) Rebook(actor domain.Actor, req RebookRequest) (RebookResult, error) {
	if req.SourceBookingID == req.DestinationBookingID {
		return RebookResult{}, domain.ValidationError{
			Field: "destination_booking_id",
			Msg:   "source and destination must differ",
		}
	}

	unlock := s.Locks.LockPair(req.SourceBookingID, req.DestinationBookingID)
	defer unlock()

	src, err := s.Bookings.GetByID(req.SourceBookingID)
	if err != nil {
		return RebookResult{}, err
	}
	dest, err := s.Bookings.GetByID(req.DestinationBookingID)
	if err != nil {
		return RebookResult{}, err
	}

	passengers, err := s.Passengers.ByIDs(src.ID, req.PassengerIDs)
	if err != nil {
		return RebookResult{}, err
	}
	if len(passengers) != len(req.PassengerIDs) {
		return RebookResult{}, domain.NotFoundError{
			Resource: fmt.Sprintf("passenger set on booking %d", src.ID),
		}
	}

	// Source cabin binds collected before any mutation; they select the
	// additional services travelling with the passengers.
	sourceBinds := []string{}
	seenBind := make(map[string]bool)
	for _, p := range passengers {
		if p.CabinBind != "" && !seenBind[p.CabinBind] {
			seenBind[p.CabinBind] = true
			sourceBinds = append(sourceBinds, p.CabinBind)
		}
	}

	vehicles, err := s.Vehicles.ByDrivers(src.ID, req.PassengerIDs)
	if err != nil {
		return RebookResult{}, err
	}
	services, err := s.Services.ByCabinBinds(src.ID, sourceBinds)
	if err != nil {
		return RebookResult{}, err
	}

	result := RebookResult{Moved: []RebookedItem{}, CabinBind: utils.RandomCabinBind()}

	record := func(kind string, itemID int64) error {
		_, err := s.Audit.Insert(models.RebookingRecord{
			Model:          kind,
			VoyageSource:   src.VoyageID,
			BookingSource:  src.ID,
			OriginalSource: itemID,
			VoyageDest:     dest.VoyageID,
			BookingDest:    dest.ID,
			OriginalDest:   itemID,
			UserID:         actor.UserID,
			Comment:        req.Comment,
		})
		return err
	}
	fail := func(kind string, itemID int64, err error) {
		result.Failed = &RebookFailure{Kind: kind, ID: itemID, Err: err.Error()}
	}

	for _, p := range passengers {
		p.BookingID = dest.ID
		p.CabinBind = result.CabinBind
		p.CabinID = req.DestinationCabin
		if req.DestinationTariffType != "" {
			p.TariffType = req.DestinationTariffType
		}
		p.BaseTariffID = models.RebookingTariffID
		p.Discounts = 0
		p.Status = models.ItemActive
		if err := s.Passengers.Update(p); err != nil {
			fail(models.KindPassenger, p.ID, err)
			return result, nil
		}
		if err := record(models.KindPassenger, p.ID); err != nil {
			fail(models.KindPassenger, p.ID, err)
			return result, nil
		}
		result.Moved = append(result.Moved, RebookedItem{Kind: models.KindPassenger, ID: p.ID})
	}

	for _, v := range vehicles {
		v.BookingID = dest.ID
		v.CabinBind = result.CabinBind
		if err := s.Vehicles.Update(v); err != nil {
			fail(models.KindPersonalVehicle, v.ID, err)
			return result, nil
		}
		if err := record(models.KindPersonalVehicle, v.ID); err != nil {
			fail(models.KindPersonalVehicle, v.ID, err)
			return result, nil
		}
		result.Moved = append(result.Moved, RebookedItem{Kind: models.KindPersonalVehicle, ID: v.ID})
	}

	for _, a := range services {
		a.BookingID = dest.ID
		a.CabinBind = result.CabinBind
		if err := s.Services.Update(a); err != nil {
			fail(models.KindAdditionalService, a.ID, err)
			return result, nil
		}
		if err := record(models.KindAdditionalService, a.ID); err != nil {
			fail(models.KindAdditionalService, a.ID, err)
			return result, nil
		}
		result.Moved = append(result.Moved, RebookedItem{Kind: models.KindAdditionalService, ID: a.ID})
	}

	return result, nil
}
