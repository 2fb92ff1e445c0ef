package services

import (
	"fmt"
	"time"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/utils"
)

// Blocking reasons returned by the edit guard. An empty reason means the
// edit is allowed.
const (
	ReasonEditWindowExpired  = "time for corrections expired"
	reasonAttemptLimitFormat = "attempt limit exceeded (max %d)"
)

// EditGuardService decides whether personal data on a booking may still be
// corrected. Two rules apply: the edit window closes a configured number of
// minutes before departure from the boarding port, and each booking gets a
// limited number of correction attempts. The guard only checks; callers
// record the spent attempt themselves.
type EditGuardService struct {
	Bookings BookingStore
	Voyages  VoyageDirectory

	// MaxEditAttempts caps corrections per booking. 3 by default.
	MaxEditAttempts int

	// Now is stubbed in tests.
	Now func() time.Time
}

func (s EditGuardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s EditGuardService) maxAttempts() int {
	if s.MaxEditAttempts > 0 {
		return s.MaxEditAttempts
	}
	return 3
}

// Check returns the blocking reason for a personal-data edit, or "" when the
// edit may proceed.
func (s EditGuardService) Check(bookingID int64) (string, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return "", err
	}
	if b.EditAttempts >= s.maxAttempts() {
		return fmt.Sprintf(reasonAttemptLimitFormat, s.maxAttempts()), nil
	}
	return s.checkWindow(b)
}

// CheckDocuments is the time-only variant used for document regeneration,
// which does not consume a correction attempt.
func (s EditGuardService) CheckDocuments(bookingID int64) (string, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return "", err
	}
	return s.checkWindow(b)
}

// checkWindow blocks once now plus the port's edit interval is strictly past
// departure. At exactly departure minus the interval the edit still goes
// through.
func (s EditGuardService) checkWindow(b models.Booking) (string, error) {
	departure, err := s.Voyages.Departure(b.VoyageID, b.BoardingPort)
	if err != nil {
		return "", err
	}
	minutes, err := s.Voyages.EditWindowMinutes(b.BoardingPort)
	if err != nil {
		return "", err
	}
	if s.now().Add(time.Duration(minutes) * time.Minute).After(departure) {
		return ReasonEditWindowExpired, nil
	}
	return "", nil
}

// VehicleEditService validates corrections to a vehicle's non-critical data:
// descriptive fields plus length and weight, which must stay within the
// declared vehicle type's limits. Tariff-bearing fields are not editable.
type VehicleEditService struct {
	Bookings BookingStore
	Vehicles VehicleStore
	Guard    EditGuardService
}

// VehicleEditRequest carries the fields a customer may fix after booking.
type VehicleEditRequest struct {
	VehicleID          int64  `json:"vehicle_id" validate:"required"`
	Length             int    `json:"length" validate:"required,gt=0"`
	Weight             int    `json:"weight" validate:"required,gt=0"`
	Make               string `json:"make" validate:"required"`
	Model              string `json:"model" validate:"required"`
	DateIssue          string `json:"date_issue" validate:"required"`
	VIN                string `json:"vin" validate:"required"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Proprietor         string `json:"proprietor" validate:"required"`
}

// Validate collects every reason the edit cannot be applied. An empty slice
// means the edit is allowed.
func (s VehicleEditService) Validate(actor domain.Actor, req VehicleEditRequest) ([]string, error) {
	v, err := s.Vehicles.GetByID(req.VehicleID)
	if err != nil {
		return nil, err
	}

	problems := []string{}
	if v.Status != models.ItemActive {
		problems = append(problems, "vehicle is not active")
	}

	b, err := s.Bookings.GetByID(v.BookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && b.UserID != actor.UserID {
		problems = append(problems, "vehicle belongs to another user")
	}

	vt, err := s.Vehicles.GetType(v.VehicleTypeID)
	if err != nil {
		return nil, err
	}
	if req.Length > vt.Length {
		problems = append(problems, "length exceeds vehicle type limit")
	}
	if req.Weight > vt.Weight {
		problems = append(problems, "weight exceeds vehicle type limit")
	}

	reason, err := s.Guard.Check(v.BookingID)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		problems = append(problems, reason)
	}
	return problems, nil
}

// Apply writes the corrected fields and burns one correction attempt on the
// booking.
func (s VehicleEditService) Apply(req VehicleEditRequest) error {
	v, err := s.Vehicles.GetByID(req.VehicleID)
	if err != nil {
		return err
	}
	v.Length = req.Length
	v.Weight = req.Weight
	v.Make = req.Make
	v.Model = req.Model
	v.DateIssue = req.DateIssue
	v.VIN = req.VIN
	v.RegistrationNumber = req.RegistrationNumber
	v.Proprietor = req.Proprietor
	if err := s.Vehicles.Update(v); err != nil {
		return err
	}
	return s.Bookings.IncrementEditAttempts(v.BookingID)
}
