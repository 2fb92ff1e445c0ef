package services

import (
	"fmt"

	"github.com/google/uuid"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/utils"
)

// bookingNumberLength is the length of the human-facing booking number.
const bookingNumberLength = 5

// BookingService owns booking lifecycle and the activation gate.
type BookingService struct {
	Bookings   BookingStore
	Passengers PassengerStore
	Vehicles   VehicleStore
	Services   ServiceStore
	Ledger     LedgerStore
	Balance    BalanceReader

	// DepositRatioPercent is the share of the invoice that must be paid
	// before the booking may activate. 50 by default.
	DepositRatioPercent int
}

// InvoiceTotal sums the tariffs of the booking's active line items, in minor
// units of the booking currency. Discounts do not reduce the invoice; they
// are settlement-side and the deposit gate works off the full tariff.
func (s BookingService) InvoiceTotal(bookingID int64) (int64, error) {
	var total int64

	passengers, err := s.Passengers.ActiveByBooking(bookingID)
	if err != nil {
		return 0, err
	}
	for _, p := range passengers {
		total += p.Tariff
	}

	vehicles, err := s.Vehicles.ActiveByBooking(bookingID)
	if err != nil {
		return 0, err
	}
	for _, v := range vehicles {
		total += v.Tariff
	}

	services, err := s.Services.ActiveByBooking(bookingID)
	if err != nil {
		return 0, err
	}
	for _, a := range services {
		total += a.Tariff
	}

	return total, nil
}

// CanActivate reports whether the paid balance covers the required share of
// the invoice. The comparison is integer-only to keep the boundary exact:
// paid*100 >= invoice*ratio.
func (s BookingService) CanActivate(bookingID int64) (bool, error) {
	invoice, err := s.InvoiceTotal(bookingID)
	if err != nil {
		return false, err
	}
	paid, err := s.Balance.BalanceOf(bookingID)
	if err != nil {
		return false, err
	}
	ratio := s.DepositRatioPercent
	if ratio <= 0 {
		ratio = 50
	}
	return paid*100 >= invoice*int64(ratio), nil
}

// PaidByOrder resolves the balance of the single booking an order batch paid
// for. Payments of one batch landing on more than one booking is a data
// integrity fault, not a user error.
func (s BookingService) PaidByOrder(orderBatch string) (int64, error) {
	ids, err := s.Ledger.BookingIDsForOrderBatch(orderBatch)
	if err != nil {
		return 0, err
	}
	switch len(ids) {
	case 0:
		return 0, nil
	case 1:
		return s.Balance.BalanceOf(ids[0])
	default:
		return 0, domain.IntegrityError{
			Msg: fmt.Sprintf("order batch %s spans %d bookings", orderBatch, len(ids)),
		}
	}
}

// CreateByOrder opens a fresh passenger booking under a new order batch,
// retrying number generation until an unused one is found.
func (s BookingService) CreateByOrder(userID, voyageID, boardingPort, disembarkingPort int64) (models.Booking, error) {
	number, err := s.uniqueNumber()
	if err != nil {
		return models.Booking{}, err
	}
	b := models.Booking{
		Status:           models.BookingUninitialized,
		Type:             models.PassengerBookingType,
		Number:           number,
		UserID:           userID,
		OrderBatch:       uuid.NewString(),
		VoyageID:         voyageID,
		BoardingPort:     boardingPort,
		DisembarkingPort: disembarkingPort,
	}
	id, err := s.Bookings.Create(b)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id
	return b, nil
}

// CreateEmptyBasedOn opens an empty booking for the same user and route as
// the source, typically as a rebooking destination on another voyage.
func (s BookingService) CreateEmptyBasedOn(sourceBookingID, voyageID int64) (models.Booking, error) {
	src, err := s.Bookings.GetByID(sourceBookingID)
	if err != nil {
		return models.Booking{}, err
	}
	number, err := s.uniqueNumber()
	if err != nil {
		return models.Booking{}, err
	}
	b := models.Booking{
		Status:           models.BookingUninitialized,
		Type:             src.Type,
		Number:           number,
		UserID:           src.UserID,
		OrderBatch:       uuid.NewString(),
		VoyageID:         voyageID,
		BoardingPort:     src.BoardingPort,
		DisembarkingPort: src.DisembarkingPort,
	}
	id, err := s.Bookings.Create(b)
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id
	return b, nil
}

func (s BookingService) uniqueNumber() (string, error) {
	for {
		number := utils.RandomBookingNumber(bookingNumberLength)
		exists, err := s.Bookings.NumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
}

// Troubles lists everything blocking the booking from activating. An empty
// slice means the booking is healthy.
func (s BookingService) Troubles(bookingID int64) ([]string, error) {
	troubles := []string{}
	ok, err := s.CanActivate(bookingID)
	if err != nil {
		if domain.IsCurrencyInconsistency(err) {
			return append(troubles, "currency_inconsistency"), nil
		}
		return nil, err
	}
	if !ok {
		troubles = append(troubles, "bad_payment_balance")
	}
	return troubles, nil
}

// CabinBinds returns the distinct cabin binds of the booking's active
// passengers, in first-seen order.
func (s BookingService) CabinBinds(bookingID int64) ([]string, error) {
	passengers, err := s.Passengers.ActiveByBooking(bookingID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	binds := []string{}
	for _, p := range passengers {
		if p.CabinBind == "" || seen[p.CabinBind] {
			continue
		}
		seen[p.CabinBind] = true
		binds = append(binds, p.CabinBind)
	}
	return binds, nil
}

// HardDelete removes a booking and its line items. Only bookings that never
// left the uninitialized state and have no ledger rows may be deleted; any
// other booking is retained for the financial trail.
func (s BookingService) HardDelete(bookingID int64) error {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b.Status != models.BookingUninitialized {
		return domain.ConflictError{Msg: "only uninitialized bookings can be deleted"}
	}
	rows, err := s.Ledger.LedgerRows(bookingID)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return domain.ConflictError{Msg: "booking has payment history"}
	}
	return s.Bookings.DeleteCascade(bookingID)
}
