package models

// Line item statuses shared by passengers, vehicles and additional services.
const (
	ItemActive           = "active"
	ItemCompanyCancelled = "company_cancelled"

	// Vehicle-specific cancellation reasons a caller may supply.
	VehicleCancelledByCompany  = "company_cancelled"
	VehicleCancelledByCustomer = "customer_cancelled"
)

// Item kinds recorded on rebooking audit rows.
const (
	KindPassenger         = "passenger"
	KindPersonalVehicle   = "personal_vehicle"
	KindAdditionalService = "additional_service"
)

// BaseCurrency is the reference currency; the conversion ratio is frozen on
// each line item at creation time for historical accuracy.
const BaseCurrency = "USD"

// RebookingTariffID replaces the pricing basis on relocated passengers:
// rebooked items keep their tariff amount and are not re-priced.
const RebookingTariffID int64 = -1

// Passenger line item. Tariff and Discounts are minor currency units.
type Passenger struct {
	ID           int64
	BookingID    int64
	Status       string
	CabinID      int64
	CabinBind    string
	SalesMethod  string
	TariffType   string
	Accommodation int
	SeatType     string
	TravelWay    string
	Tariff       int64
	Discounts    int64
	BaseTariffID int64
	Currency     string
	BaseCurrency string
	RatioToBase  float64
	FirstName    string
	LastName     string
	BirthDate    string
	Citizenship  string
	PassportID   string
	Pin          string
	Sex          string
}

// PersonalVehicle line item; Driver references the owning passenger.
type PersonalVehicle struct {
	ID                 int64
	BookingID          int64
	Status             string
	CabinBind          string
	SalesMethod        string
	VehicleTypeID      int64
	Length             int
	Weight             int
	Make               string
	Model              string
	DateIssue          string
	VIN                string
	RegistrationNumber string
	Driver             int64
	Proprietor         string
	Tariff             int64
	Discounts          int64
	BaseTariffID       int64
	Currency           string
	BaseCurrency       string
	RatioToBase        float64
}

// IsCancellable reports whether the vehicle may still be cancelled. Any
// already-cancelled or otherwise terminal status refuses.
func (v PersonalVehicle) IsCancellable() bool {
	return v.Status == ItemActive
}

// AdditionalService line item.
type AdditionalService struct {
	ID           int64
	BookingID    int64
	Status       string
	CabinBind    string
	ServiceID    int64
	Tariff       int64
	Discounts    int64
	BaseTariffID int64
	Currency     string
	BaseCurrency string
	RatioToBase  float64
}
