package services

import (
	"testing"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

func TestCurrencyOfEmptyBooking(t *testing.T) {
	m := newMemStore()
	m.bookings[1] = models.Booking{ID: 1}

	currency, err := m.currencyOf().CurrencyOf(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if currency != "" {
		t.Fatalf("expected empty currency, got %q", currency)
	}
}

func TestCurrencyOfUniformGroups(t *testing.T) {
	m := newMemStore()
	m.passengers[1] = models.Passenger{ID: 1, BookingID: 1, Status: models.ItemActive, Currency: "EUR"}
	m.passengers[2] = models.Passenger{ID: 2, BookingID: 1, Status: models.ItemActive, Currency: "EUR"}
	m.vehicles[3] = models.PersonalVehicle{ID: 3, BookingID: 1, Status: models.ItemActive, Currency: "EUR"}
	m.ledger = append(m.ledger, models.Payment{BookingID: 1, Currency: "EUR", Status: models.PaymentAccepted})

	currency, err := m.currencyOf().CurrencyOf(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if currency != "EUR" {
		t.Fatalf("expected EUR, got %q", currency)
	}
}

func TestCurrencyOfMixedGroupFails(t *testing.T) {
	m := newMemStore()
	m.passengers[1] = models.Passenger{ID: 1, BookingID: 1, Status: models.ItemActive, Currency: "EUR"}
	m.passengers[2] = models.Passenger{ID: 2, BookingID: 1, Status: models.ItemActive, Currency: "USD"}

	_, err := m.currencyOf().CurrencyOf(1)
	if !domain.IsCurrencyInconsistency(err) {
		t.Fatalf("expected currency inconsistency, got %v", err)
	}
}

func TestCurrencyOfCrossGroupDisagreementFails(t *testing.T) {
	m := newMemStore()
	m.passengers[1] = models.Passenger{ID: 1, BookingID: 1, Status: models.ItemActive, Currency: "EUR"}
	m.ledger = append(m.ledger, models.Payment{BookingID: 1, Currency: "USD", Status: models.PaymentAccepted})

	_, err := m.currencyOf().CurrencyOf(1)
	if !domain.IsCurrencyInconsistency(err) {
		t.Fatalf("expected currency inconsistency, got %v", err)
	}
}

func TestCurrencyOfIgnoresCancelledItemsAndPendingPayments(t *testing.T) {
	m := newMemStore()
	m.passengers[1] = models.Passenger{ID: 1, BookingID: 1, Status: models.ItemActive, Currency: "EUR"}
	m.passengers[2] = models.Passenger{ID: 2, BookingID: 1, Status: models.ItemCompanyCancelled, Currency: "USD"}
	m.ledger = append(m.ledger, models.Payment{BookingID: 1, Currency: "USD", Status: models.PaymentPending})

	currency, err := m.currencyOf().CurrencyOf(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if currency != "EUR" {
		t.Fatalf("expected EUR, got %q", currency)
	}
}

func TestCurrencyOfPaymentsOnly(t *testing.T) {
	m := newMemStore()
	m.ledger = append(m.ledger, models.Payment{BookingID: 1, Currency: "UAH", Status: models.PaymentAccepted})

	currency, err := m.currencyOf().CurrencyOf(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if currency != "UAH" {
		t.Fatalf("expected UAH, got %q", currency)
	}
}
