package services

import (
	"time"

	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
)

// Narrow store interfaces consumed by the services. The repositories package
// satisfies them; tests plug in fakes.

type BookingStore interface {
	GetByID(id int64) (models.Booking, error)
	GetByOrderBatch(batch string) (models.Booking, error)
	Create(b models.Booking) (int64, error)
	NumberExists(number string) (bool, error)
	UpdateStatus(id int64, status string) error
	UpdateVoyage(id, voyageID int64) error
	IncrementEditAttempts(id int64) error
	DeleteCascade(id int64) error
}

type PassengerStore interface {
	ActiveByBooking(bookingID int64) ([]models.Passenger, error)
	ByIDs(bookingID int64, ids []int64) ([]models.Passenger, error)
	GetByID(id int64) (models.Passenger, error)
	Insert(p models.Passenger) (int64, error)
	Update(p models.Passenger) error
	SetStatus(id int64, status string) error
}

type VehicleStore interface {
	ActiveByBooking(bookingID int64) ([]models.PersonalVehicle, error)
	ByBooking(bookingID int64) ([]models.PersonalVehicle, error)
	ByDrivers(bookingID int64, driverIDs []int64) ([]models.PersonalVehicle, error)
	GetByID(id int64) (models.PersonalVehicle, error)
	DriverHasVehicleOnVoyage(passengerID, voyageID int64) (bool, error)
	Insert(v models.PersonalVehicle) (int64, error)
	Update(v models.PersonalVehicle) error
	SetStatus(id int64, status string) error
	GetType(id int64) (repositories.VehicleType, error)
}

type ServiceStore interface {
	ActiveByBooking(bookingID int64) ([]models.AdditionalService, error)
	ByBooking(bookingID int64) ([]models.AdditionalService, error)
	ByCabinBinds(bookingID int64, binds []string) ([]models.AdditionalService, error)
	Insert(s models.AdditionalService) (int64, error)
	Update(s models.AdditionalService) error
	SetStatus(id int64, status string) error
}

// LedgerStore is the append-only payment ledger.
type LedgerStore interface {
	LedgerRows(bookingID int64) ([]models.Payment, error)
	AcceptedCurrencies(bookingID int64) ([]string, error)
	BookingIDsForOrderBatch(batch string) ([]int64, error)
	Append(p models.Payment) (int64, error)
}

// AuditStore records the rebooking trail.
type AuditStore interface {
	Insert(rec models.RebookingRecord) (int64, error)
	ListByBooking(bookingID int64) ([]models.RebookingRecord, error)
}

// VoyageDirectory resolves departure times and edit-window settings.
type VoyageDirectory interface {
	Departure(voyageID, portID int64) (time.Time, error)
	EditWindowMinutes(portID int64) (int, error)
	ShipID(voyageID int64) (int64, error)
}

type RatioStore interface {
	Ratio(currency, base string) (float64, error)
}

// CurrencyResolver yields the booking's single currency, "" when the booking
// has no monetary activity yet.
type CurrencyResolver interface {
	CurrencyOf(bookingID int64) (string, error)
}

type BalanceReader interface {
	BalanceOf(bookingID int64) (int64, error)
}
