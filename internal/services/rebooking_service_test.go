package services

import (
	"errors"
	"testing"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

func rebookFixture() (*memStore, RebookingService) {
	m := newMemStore()
	m.bookings[1] = models.Booking{ID: 1, Status: models.BookingActive, VoyageID: 10}
	m.bookings[2] = models.Booking{ID: 2, Status: models.BookingUninitialized, VoyageID: 11}

	m.passengers[101] = models.Passenger{
		ID: 101, BookingID: 1, Status: models.ItemActive, CabinBind: "oldbind",
		CabinID: 3, Tariff: 1000, Discounts: 100, BaseTariffID: 42, TariffType: "standard",
	}
	m.passengers[102] = models.Passenger{
		ID: 102, BookingID: 1, Status: models.ItemActive, CabinBind: "oldbind",
		CabinID: 3, Tariff: 800, Discounts: 0, BaseTariffID: 42, TariffType: "standard",
	}
	m.vehicles[201] = models.PersonalVehicle{
		ID: 201, BookingID: 1, Status: models.ItemActive, CabinBind: "oldbind", Driver: 101, Tariff: 2000,
	}
	m.services[301] = models.AdditionalService{
		ID: 301, BookingID: 1, Status: models.ItemActive, CabinBind: "oldbind", ServiceID: 9, Tariff: 300,
	}

	svc := RebookingService{
		Bookings:   m.bookingsOf(),
		Passengers: m.passengersOf(),
		Vehicles:   m.vehiclesOf(),
		Services:   m.servicesOf(),
		Audit:      m.auditsOf(),
	}
	return m, svc
}

func TestRebookMovesItemsWithAuditTrail(t *testing.T) {
	m, svc := rebookFixture()

	result, err := svc.Rebook(actorUser(7), RebookRequest{
		SourceBookingID:      1,
		DestinationBookingID: 2,
		PassengerIDs:         []int64{101, 102},
		DestinationCabin:     8,
		Comment:              "engine failure",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Failed != nil {
		t.Fatalf("expected clean run, failed on %+v", result.Failed)
	}
	if len(result.Moved) != 4 {
		t.Fatalf("expected 4 moved items, got %d", len(result.Moved))
	}
	if len(m.audits) != 4 {
		t.Fatalf("expected one audit record per item, got %d", len(m.audits))
	}

	p := m.passengers[101]
	if p.BookingID != 2 || p.CabinID != 8 || p.Status != models.ItemActive {
		t.Fatalf("passenger not relocated: %+v", p)
	}
	if p.BaseTariffID != models.RebookingTariffID {
		t.Fatalf("expected rebooking tariff basis, got %d", p.BaseTariffID)
	}
	if p.Discounts != 0 {
		t.Fatalf("discounts must reset, got %d", p.Discounts)
	}
	if p.Tariff != 1000 {
		t.Fatalf("tariff amount must survive, got %d", p.Tariff)
	}
	if p.CabinBind == "oldbind" || p.CabinBind == "" {
		t.Fatalf("expected fresh cabin bind, got %q", p.CabinBind)
	}
	if p.CabinBind != result.CabinBind {
		t.Fatalf("passenger bind %q differs from result bind %q", p.CabinBind, result.CabinBind)
	}

	v := m.vehicles[201]
	if v.BookingID != 2 || v.CabinBind != result.CabinBind {
		t.Fatalf("vehicle not relocated: %+v", v)
	}
	if v.Tariff != 2000 {
		t.Fatalf("vehicle tariff must survive, got %d", v.Tariff)
	}

	s := m.services[301]
	if s.BookingID != 2 || s.CabinBind != result.CabinBind {
		t.Fatalf("service not relocated: %+v", s)
	}

	for _, rec := range m.audits {
		if rec.BookingSource != 1 || rec.BookingDest != 2 || rec.VoyageSource != 10 || rec.VoyageDest != 11 {
			t.Fatalf("audit record misrouted: %+v", rec)
		}
		if rec.UserID != 7 || rec.Comment != "engine failure" {
			t.Fatalf("audit record missing actor or comment: %+v", rec)
		}
	}
}

func TestRebookPartialFailureKeepsCommittedItems(t *testing.T) {
	m, svc := rebookFixture()
	m.updateVehicleErr = errors.New("deadlock")

	result, err := svc.Rebook(actorUser(7), RebookRequest{
		SourceBookingID:      1,
		DestinationBookingID: 2,
		PassengerIDs:         []int64{101, 102},
		DestinationCabin:     8,
	})
	if err != nil {
		t.Fatalf("partial failure is reported in the result, got error %v", err)
	}
	if result.Failed == nil || result.Failed.Kind != models.KindPersonalVehicle || result.Failed.ID != 201 {
		t.Fatalf("expected failure on vehicle 201, got %+v", result.Failed)
	}
	if len(result.Moved) != 2 {
		t.Fatalf("expected both passengers moved before the failure, got %d", len(result.Moved))
	}

	// No rollback: passengers stay on the destination.
	if m.passengers[101].BookingID != 2 || m.passengers[102].BookingID != 2 {
		t.Fatalf("moved passengers must stay moved")
	}
	if m.vehicles[201].BookingID != 1 {
		t.Fatalf("failed vehicle must stay on the source")
	}
	if m.services[301].BookingID != 1 {
		t.Fatalf("service after the failing item must not move")
	}
	if len(m.audits) != 2 {
		t.Fatalf("expected audits only for moved items, got %d", len(m.audits))
	}
}

func TestRebookRejectsSameBooking(t *testing.T) {
	_, svc := rebookFixture()
	_, err := svc.Rebook(actorUser(7), RebookRequest{
		SourceBookingID:      1,
		DestinationBookingID: 1,
		PassengerIDs:         []int64{101},
		DestinationCabin:     8,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRebookUnknownPassenger(t *testing.T) {
	_, svc := rebookFixture()
	_, err := svc.Rebook(actorUser(7), RebookRequest{
		SourceBookingID:      1,
		DestinationBookingID: 2,
		PassengerIDs:         []int64{101, 999},
		DestinationCabin:     8,
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
