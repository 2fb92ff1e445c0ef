package services

import (
	"context"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/utils"
)

// PassengerInput is one passenger to bind into a cabin.
type PassengerInput struct {
	TariffType  string `json:"tariff_type" validate:"required"`
	SeatType    string `json:"seat_type"`
	TravelWay   string `json:"travel_way" validate:"required"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	BirthDate   string `json:"birth_date" validate:"required"`
	Citizenship string `json:"citizenship" validate:"required"`
	PassportID  string `json:"passport_id" validate:"required"`
	Pin         string `json:"pin"`
	Sex         string `json:"sex" validate:"required,oneof=male female"`
}

// BindPassengersRequest binds a cabin's worth of passengers to a booking
// under one shared cabin bind.
type BindPassengersRequest struct {
	BookingID     int64            `json:"booking_id" validate:"required"`
	CabinID       int64            `json:"cabin_id" validate:"required"`
	SalesMethod   string           `json:"sales_method" validate:"required"`
	Accommodation int              `json:"accommodation" validate:"required,gt=0"`
	Currency      string           `json:"currency" validate:"required,len=3"`
	Passengers    []PassengerInput `json:"passengers" validate:"required,min=1,dive"`
}

// BindVehicleRequest binds one personal vehicle, driven by an already-bound
// passenger.
type BindVehicleRequest struct {
	BookingID          int64  `json:"booking_id" validate:"required"`
	DriverPassengerID  int64  `json:"driver_passenger_id" validate:"required"`
	VehicleTypeID      int64  `json:"vehicle_type_id" validate:"required"`
	SalesMethod        string `json:"sales_method" validate:"required"`
	Length             int    `json:"length" validate:"required,gt=0"`
	Weight             int    `json:"weight" validate:"required,gt=0"`
	Make               string `json:"make" validate:"required"`
	Model              string `json:"model" validate:"required"`
	DateIssue          string `json:"date_issue"`
	VIN                string `json:"vin" validate:"required"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Proprietor         string `json:"proprietor" validate:"required"`
	Currency           string `json:"currency" validate:"required,len=3"`
}

// BindServicesRequest binds additional services to an existing cabin.
type BindServicesRequest struct {
	BookingID  int64   `json:"booking_id" validate:"required"`
	CabinBind  string  `json:"cabin_bind" validate:"required"`
	ServiceIDs []int64 `json:"service_ids" validate:"required,min=1"`
	Currency   string  `json:"currency" validate:"required,len=3"`
}

// BindingService attaches line items to a booking, quoting each through the
// pricing collaborator and freezing the base-currency ratio at bind time.
type BindingService struct {
	Bookings   BookingStore
	Passengers PassengerStore
	Vehicles   VehicleStore
	Services   ServiceStore
	Pricing    PricingService
	Ratios     RatioStore
	Voyages    VoyageDirectory
	Locks      *BookingLocks
}

// BindPassengers quotes and inserts every passenger in the request under a
// fresh shared cabin bind, returning the bind.
func (s BindingService) BindPassengers(ctx context.Context, req BindPassengersRequest) (string, error) {
	unlock := s.Locks.Lock(req.BookingID)
	defer unlock()

	b, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		return "", err
	}
	ship, err := s.Voyages.ShipID(b.VoyageID)
	if err != nil {
		return "", err
	}
	ratio, err := s.Ratios.Ratio(req.Currency, models.BaseCurrency)
	if err != nil {
		return "", err
	}

	bind := utils.RandomCabinBind()
	for _, in := range req.Passengers {
		if _, err := utils.ParseDate(in.BirthDate); err != nil {
			return "", domain.ValidationError{Field: "birth_date", Msg: "expected YYYY-MM-DD", Err: err}
		}
		quote, err := s.Pricing.Quote(ctx, PricingRequest{
			ItemKind:      models.KindPassenger,
			VoyageID:      b.VoyageID,
			ShipID:        ship,
			TariffType:    in.TariffType,
			Accommodation: req.Accommodation,
			SeatType:      in.SeatType,
			TravelWay:     in.TravelWay,
			Currency:      req.Currency,
		})
		if err != nil {
			return "", domain.PricingError{Err: err}
		}
		_, err = s.Passengers.Insert(models.Passenger{
			BookingID:     req.BookingID,
			Status:        models.ItemActive,
			CabinID:       req.CabinID,
			CabinBind:     bind,
			SalesMethod:   req.SalesMethod,
			TariffType:    in.TariffType,
			Accommodation: req.Accommodation,
			SeatType:      in.SeatType,
			TravelWay:     in.TravelWay,
			Tariff:        quote.Tariff,
			Discounts:     quote.Discounts,
			BaseTariffID:  quote.BaseTariffID,
			Currency:      req.Currency,
			BaseCurrency:  models.BaseCurrency,
			RatioToBase:   ratio,
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			BirthDate:     in.BirthDate,
			Citizenship:   in.Citizenship,
			PassportID:    in.PassportID,
			Pin:           in.Pin,
			Sex:           in.Sex,
		})
		if err != nil {
			return "", err
		}
	}
	return bind, nil
}

// BindPersonalVehicle quotes and inserts one vehicle. A driver may hold at
// most one vehicle per voyage.
func (s BindingService) BindPersonalVehicle(ctx context.Context, req BindVehicleRequest) (int64, error) {
	unlock := s.Locks.Lock(req.BookingID)
	defer unlock()

	b, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		return 0, err
	}
	driver, err := s.Passengers.GetByID(req.DriverPassengerID)
	if err != nil {
		return 0, err
	}
	if driver.BookingID != req.BookingID || driver.Status != models.ItemActive {
		return 0, domain.ValidationError{Field: "driver_passenger_id", Msg: "driver is not an active passenger of this booking"}
	}
	taken, err := s.Vehicles.DriverHasVehicleOnVoyage(req.DriverPassengerID, b.VoyageID)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, domain.ConflictError{Resource: "personal vehicle", Msg: "driver already has a vehicle on this voyage"}
	}

	ship, err := s.Voyages.ShipID(b.VoyageID)
	if err != nil {
		return 0, err
	}
	ratio, err := s.Ratios.Ratio(req.Currency, models.BaseCurrency)
	if err != nil {
		return 0, err
	}
	quote, err := s.Pricing.Quote(ctx, PricingRequest{
		ItemKind:      models.KindPersonalVehicle,
		VoyageID:      b.VoyageID,
		ShipID:        ship,
		VehicleTypeID: req.VehicleTypeID,
		Currency:      req.Currency,
	})
	if err != nil {
		return 0, domain.PricingError{Err: err}
	}

	return s.Vehicles.Insert(models.PersonalVehicle{
		BookingID:          req.BookingID,
		Status:             models.ItemActive,
		CabinBind:          driver.CabinBind,
		SalesMethod:        req.SalesMethod,
		VehicleTypeID:      req.VehicleTypeID,
		Length:             req.Length,
		Weight:             req.Weight,
		Make:               req.Make,
		Model:              req.Model,
		DateIssue:          req.DateIssue,
		VIN:                req.VIN,
		RegistrationNumber: req.RegistrationNumber,
		Driver:             req.DriverPassengerID,
		Proprietor:         req.Proprietor,
		Tariff:             quote.Tariff,
		Discounts:          quote.Discounts,
		BaseTariffID:       quote.BaseTariffID,
		Currency:           req.Currency,
		BaseCurrency:       models.BaseCurrency,
		RatioToBase:        ratio,
	})
}

// BindAdditionalServices quotes and inserts services onto an existing cabin
// bind of the booking.
func (s BindingService) BindAdditionalServices(ctx context.Context, req BindServicesRequest) ([]int64, error) {
	unlock := s.Locks.Lock(req.BookingID)
	defer unlock()

	b, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	ship, err := s.Voyages.ShipID(b.VoyageID)
	if err != nil {
		return nil, err
	}
	ratio, err := s.Ratios.Ratio(req.Currency, models.BaseCurrency)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		quote, err := s.Pricing.Quote(ctx, PricingRequest{
			ItemKind:  models.KindAdditionalService,
			VoyageID:  b.VoyageID,
			ShipID:    ship,
			ServiceID: serviceID,
			Currency:  req.Currency,
		})
		if err != nil {
			return ids, domain.PricingError{Err: err}
		}
		id, err := s.Services.Insert(models.AdditionalService{
			BookingID:    req.BookingID,
			Status:       models.ItemActive,
			CabinBind:    req.CabinBind,
			ServiceID:    serviceID,
			Tariff:       quote.Tariff,
			Discounts:    quote.Discounts,
			BaseTariffID: quote.BaseTariffID,
			Currency:     req.Currency,
			BaseCurrency: models.BaseCurrency,
			RatioToBase:  ratio,
		})
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
