package services

import (
	"testing"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

func cancelFixture() (*memStore, CancelService) {
	m := newMemStore()
	m.bookings[1] = models.Booking{ID: 1, Status: models.BookingActive}
	m.services[301] = models.AdditionalService{ID: 301, BookingID: 1, Status: models.ItemActive}
	m.services[302] = models.AdditionalService{ID: 302, BookingID: 1, Status: models.ItemActive}
	m.vehicles[201] = models.PersonalVehicle{ID: 201, BookingID: 1, Status: models.ItemActive}
	m.passengers[101] = models.Passenger{ID: 101, BookingID: 1, Status: models.ItemActive}

	svc := CancelService{
		Passengers: m.passengersOf(),
		Vehicles:   m.vehiclesOf(),
		Services:   m.servicesOf(),
	}
	return m, svc
}

func TestCancelByCompanyFullCascade(t *testing.T) {
	m, svc := cancelFixture()

	result, err := svc.CancelByCompany(1, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Failed != nil {
		t.Fatalf("expected clean cascade, failed on %+v", result.Failed)
	}
	if len(result.Cancelled) != 4 {
		t.Fatalf("expected 4 cancelled items, got %d", len(result.Cancelled))
	}

	if m.services[301].Status != models.ItemCompanyCancelled || m.services[302].Status != models.ItemCompanyCancelled {
		t.Fatalf("services not cancelled")
	}
	if m.vehicles[201].Status != models.VehicleCancelledByCompany {
		t.Fatalf("vehicle not cancelled, status %q", m.vehicles[201].Status)
	}
	if m.passengers[101].Status != models.ItemCompanyCancelled {
		t.Fatalf("passenger not cancelled, status %q", m.passengers[101].Status)
	}
	// The cascade never touches the booking itself.
	if m.bookings[1].Status != models.BookingActive {
		t.Fatalf("booking status must be left to the caller, got %q", m.bookings[1].Status)
	}
}

func TestCancelStopsOnNotCancellableVehicle(t *testing.T) {
	m, svc := cancelFixture()
	m.vehicles[201] = models.PersonalVehicle{ID: 201, BookingID: 1, Status: models.VehicleCancelledByCustomer}

	result, err := svc.CancelByCompany(1, "")
	if !domain.IsNotCancellable(err) {
		t.Fatalf("expected not-cancellable error, got %v", err)
	}
	if result.Failed == nil || result.Failed.Kind != models.KindPersonalVehicle || result.Failed.ID != 201 {
		t.Fatalf("expected failure on vehicle 201, got %+v", result.Failed)
	}

	// Completed steps stay done, later steps never run.
	if len(result.Cancelled) != 2 {
		t.Fatalf("expected the two services cancelled before the stop, got %d", len(result.Cancelled))
	}
	if m.services[301].Status != models.ItemCompanyCancelled || m.services[302].Status != models.ItemCompanyCancelled {
		t.Fatalf("cancelled services must not revert")
	}
	if m.passengers[101].Status != models.ItemActive {
		t.Fatalf("passengers after the stop must stay active")
	}
}

func TestCancelCustomReason(t *testing.T) {
	m, svc := cancelFixture()

	if _, err := svc.CancelByCompany(1, models.VehicleCancelledByCustomer); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if m.vehicles[201].Status != models.VehicleCancelledByCustomer {
		t.Fatalf("expected customer reason on vehicle, got %q", m.vehicles[201].Status)
	}
}
