package services

import (
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

// CurrencyService enforces that a booking's monetary activity is denominated
// in exactly one currency.
type CurrencyService struct {
	Passengers PassengerStore
	Vehicles   VehicleStore
	Services   ServiceStore
	Ledger     LedgerStore
}

// CurrencyOf scans, group by group, the currencies of active passengers,
// active vehicles, active additional services and accepted payments. Each
// non-empty group must be uniform and all non-empty groups must agree,
// otherwise the booking is inconsistent and the error is fatal, never
// silently resolved. Returns "" when every group is empty. Payments come last, so
// their currency is the canonical one whenever payments exist.
func (s CurrencyService) CurrencyOf(bookingID int64) (string, error) {
	currency := ""

	merge := func(values []string) error {
		group, uniform := uniformCurrency(values)
		if !uniform {
			return domain.CurrencyInconsistencyError{BookingID: bookingID}
		}
		if group == "" {
			return nil
		}
		if currency != "" && currency != group {
			return domain.CurrencyInconsistencyError{BookingID: bookingID}
		}
		currency = group
		return nil
	}

	passengers, err := s.Passengers.ActiveByBooking(bookingID)
	if err != nil {
		return "", err
	}
	if err := merge(passengerCurrencies(passengers)); err != nil {
		return "", err
	}

	vehicles, err := s.Vehicles.ActiveByBooking(bookingID)
	if err != nil {
		return "", err
	}
	if err := merge(vehicleCurrencies(vehicles)); err != nil {
		return "", err
	}

	services, err := s.Services.ActiveByBooking(bookingID)
	if err != nil {
		return "", err
	}
	if err := merge(serviceCurrencies(services)); err != nil {
		return "", err
	}

	payments, err := s.Ledger.AcceptedCurrencies(bookingID)
	if err != nil {
		return "", err
	}
	if err := merge(payments); err != nil {
		return "", err
	}

	return currency, nil
}

// uniformCurrency returns the single currency of the group, or ok=false when
// the group mixes currencies. An empty group is uniform with currency "".
func uniformCurrency(values []string) (string, bool) {
	if len(values) == 0 {
		return "", true
	}
	first := values[0]
	for _, v := range values[1:] {
		if v != first {
			return "", false
		}
	}
	return first, true
}

func passengerCurrencies(items []models.Passenger) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Currency
	}
	return out
}

func vehicleCurrencies(items []models.PersonalVehicle) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Currency
	}
	return out
}

func serviceCurrencies(items []models.AdditionalService) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Currency
	}
	return out
}
