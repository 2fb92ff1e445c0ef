package handlers

import (
	"database/sql"

	"github.com/go-playground/validator/v10"

	"ferryops/internal/config"
	"ferryops/internal/idempotency"
	"ferryops/internal/repositories"
	"ferryops/internal/services"
)

// API bundles the wired services behind the HTTP handlers.
type API struct {
	Env config.Env
	DB  *sql.DB

	Bookings    services.BookingService
	Currency    services.CurrencyService
	Balance     services.BalanceService
	Ledger      services.LedgerService
	Rebooking   services.RebookingService
	Cancel      services.CancelService
	Guard       services.EditGuardService
	VehicleEdit services.VehicleEditService
	Binding     services.BindingService
	Audit       services.AuditStore

	Idem     *idempotency.Store
	validate *validator.Validate
}

// NewAPI wires repositories and services over one DB handle. The pricing
// collaborator is injected because it lives outside this process.
func NewAPI(env config.Env, db *sql.DB, pricing services.PricingService, idem *idempotency.Store) *API {
	bookingRepo := repositories.BookingRepository{DB: db}
	passengerRepo := repositories.PassengerRepository{DB: db}
	vehicleRepo := repositories.VehicleRepository{DB: db}
	serviceRepo := repositories.ServiceRepository{DB: db}
	paymentRepo := repositories.PaymentRepository{DB: db}
	rebookingRepo := repositories.RebookingRepository{DB: db}
	voyageRepo := repositories.VoyageRepository{DB: db}
	ratioRepo := repositories.CurrencyRatioRepository{DB: db}

	locks := services.NewBookingLocks()

	currency := services.CurrencyService{
		Passengers: passengerRepo,
		Vehicles:   vehicleRepo,
		Services:   serviceRepo,
		Ledger:     paymentRepo,
	}
	balance := services.BalanceService{
		Ledger:   paymentRepo,
		Currency: currency,
		Locks:    locks,
	}
	bookings := services.BookingService{
		Bookings:            bookingRepo,
		Passengers:          passengerRepo,
		Vehicles:            vehicleRepo,
		Services:            serviceRepo,
		Ledger:              paymentRepo,
		Balance:             balance,
		DepositRatioPercent: env.DepositRatioPercent,
	}
	guard := services.EditGuardService{
		Bookings:        bookingRepo,
		Voyages:         voyageRepo,
		MaxEditAttempts: env.MaxEditAttempts,
	}

	return &API{
		Env:      env,
		DB:       db,
		Bookings: bookings,
		Currency: currency,
		Balance:  balance,
		Ledger: services.LedgerService{
			Ledger:   paymentRepo,
			Currency: currency,
			Locks:    locks,
		},
		Rebooking: services.RebookingService{
			Bookings:   bookingRepo,
			Passengers: passengerRepo,
			Vehicles:   vehicleRepo,
			Services:   serviceRepo,
			Audit:      rebookingRepo,
			Locks:      locks,
		},
		Cancel: services.CancelService{
			Passengers: passengerRepo,
			Vehicles:   vehicleRepo,
			Services:   serviceRepo,
			Locks:      locks,
		},
		Guard: guard,
		VehicleEdit: services.VehicleEditService{
			Bookings: bookingRepo,
			Vehicles: vehicleRepo,
			Guard:    guard,
		},
		Binding: services.BindingService{
			Bookings:   bookingRepo,
			Passengers: passengerRepo,
			Vehicles:   vehicleRepo,
			Services:   serviceRepo,
			Pricing:    pricing,
			Ratios:     ratioRepo,
			Voyages:    voyageRepo,
			Locks:      locks,
		},
		Audit:    rebookingRepo,
		Idem:     idem,
		validate: validator.New(),
	}
}

// docs builds a DocsService bound to the request id for log correlation.
func (a *API) docs(requestID string) services.DocsService {
	return services.DocsService{
		Bookings:   a.Bookings.Bookings,
		Passengers: a.Bookings.Passengers,
		Vehicles:   a.Bookings.Vehicles,
		Services:   a.Bookings.Services,
		Currency:   a.Currency,
		Balance:    a.Balance,
		Invoicing:  a.Bookings,
		RequestID:  requestID,
	}
}
