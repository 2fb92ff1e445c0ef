package services

import (
	"sort"
	"time"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
	"ferryops/internal/repositories"
)

// memStore is an in-memory world backing the store interfaces in tests. The
// bookingsOf/passengersOf/... views adapt it to the per-entity interfaces.
// Error hooks let a test fail one specific step.
type memStore struct {
	bookings   map[int64]models.Booking
	passengers map[int64]models.Passenger
	vehicles   map[int64]models.PersonalVehicle
	services   map[int64]models.AdditionalService
	ledger     []models.Payment
	audits     []models.RebookingRecord
	types      map[int64]repositories.VehicleType

	departure  time.Time
	editWindow int
	takenNums  map[string]bool
	nextID     int64

	updateVehicleErr    error
	setServiceStatusErr map[int64]error
	insertAuditErr      error
	driverHasVehicle    bool
	batchBookings       map[string][]int64
}

func newMemStore() *memStore {
	return &memStore{
		bookings:            map[int64]models.Booking{},
		passengers:          map[int64]models.Passenger{},
		vehicles:            map[int64]models.PersonalVehicle{},
		services:            map[int64]models.AdditionalService{},
		types:               map[int64]repositories.VehicleType{},
		takenNums:           map[string]bool{},
		setServiceStatusErr: map[int64]error{},
		batchBookings:       map[string][]int64{},
		nextID:              1000,
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func sortedKeys[V any](in map[int64]V) []int64 {
	keys := make([]int64, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// bookingView implements BookingStore.
type bookingView struct{ m *memStore }

func (m *memStore) bookingsOf() bookingView { return bookingView{m} }

func (v bookingView) GetByID(id int64) (models.Booking, error) {
	b, ok := v.m.bookings[id]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (v bookingView) GetByOrderBatch(batch string) (models.Booking, error) {
	for _, k := range sortedKeys(v.m.bookings) {
		if v.m.bookings[k].OrderBatch == batch {
			return v.m.bookings[k], nil
		}
	}
	return models.Booking{}, domain.NotFoundError{Resource: "booking"}
}

func (v bookingView) Create(b models.Booking) (int64, error) {
	b.ID = v.m.id()
	v.m.bookings[b.ID] = b
	return b.ID, nil
}

func (v bookingView) NumberExists(number string) (bool, error) {
	return v.m.takenNums[number], nil
}

func (v bookingView) UpdateStatus(id int64, status string) error {
	b := v.m.bookings[id]
	b.Status = status
	v.m.bookings[id] = b
	return nil
}

func (v bookingView) UpdateVoyage(id, voyageID int64) error {
	b := v.m.bookings[id]
	b.VoyageID = voyageID
	v.m.bookings[id] = b
	return nil
}

func (v bookingView) IncrementEditAttempts(id int64) error {
	b := v.m.bookings[id]
	b.EditAttempts++
	v.m.bookings[id] = b
	return nil
}

func (v bookingView) DeleteCascade(id int64) error {
	delete(v.m.bookings, id)
	return nil
}

// passengerView implements PassengerStore.
type passengerView struct{ m *memStore }

func (m *memStore) passengersOf() passengerView { return passengerView{m} }

func (v passengerView) ActiveByBooking(bookingID int64) ([]models.Passenger, error) {
	var out []models.Passenger
	for _, k := range sortedKeys(v.m.passengers) {
		p := v.m.passengers[k]
		if p.BookingID == bookingID && p.Status == models.ItemActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (v passengerView) ByIDs(bookingID int64, ids []int64) ([]models.Passenger, error) {
	var out []models.Passenger
	for _, id := range ids {
		if p, ok := v.m.passengers[id]; ok && p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (v passengerView) GetByID(id int64) (models.Passenger, error) {
	p, ok := v.m.passengers[id]
	if !ok {
		return models.Passenger{}, domain.NotFoundError{Resource: "passenger"}
	}
	return p, nil
}

func (v passengerView) Insert(p models.Passenger) (int64, error) {
	p.ID = v.m.id()
	v.m.passengers[p.ID] = p
	return p.ID, nil
}

func (v passengerView) Update(p models.Passenger) error {
	v.m.passengers[p.ID] = p
	return nil
}

func (v passengerView) SetStatus(id int64, status string) error {
	p := v.m.passengers[id]
	p.Status = status
	v.m.passengers[id] = p
	return nil
}

// vehicleView implements VehicleStore.
type vehicleView struct{ m *memStore }

func (m *memStore) vehiclesOf() vehicleView { return vehicleView{m} }

func (v vehicleView) ActiveByBooking(bookingID int64) ([]models.PersonalVehicle, error) {
	var out []models.PersonalVehicle
	for _, k := range sortedKeys(v.m.vehicles) {
		pv := v.m.vehicles[k]
		if pv.BookingID == bookingID && pv.Status == models.ItemActive {
			out = append(out, pv)
		}
	}
	return out, nil
}

func (v vehicleView) ByBooking(bookingID int64) ([]models.PersonalVehicle, error) {
	var out []models.PersonalVehicle
	for _, k := range sortedKeys(v.m.vehicles) {
		if v.m.vehicles[k].BookingID == bookingID {
			out = append(out, v.m.vehicles[k])
		}
	}
	return out, nil
}

func (v vehicleView) ByDrivers(bookingID int64, driverIDs []int64) ([]models.PersonalVehicle, error) {
	set := map[int64]bool{}
	for _, id := range driverIDs {
		set[id] = true
	}
	var out []models.PersonalVehicle
	for _, k := range sortedKeys(v.m.vehicles) {
		pv := v.m.vehicles[k]
		if pv.BookingID == bookingID && set[pv.Driver] {
			out = append(out, pv)
		}
	}
	return out, nil
}

func (v vehicleView) GetByID(id int64) (models.PersonalVehicle, error) {
	pv, ok := v.m.vehicles[id]
	if !ok {
		return models.PersonalVehicle{}, domain.NotFoundError{Resource: "personal vehicle"}
	}
	return pv, nil
}

func (v vehicleView) DriverHasVehicleOnVoyage(passengerID, voyageID int64) (bool, error) {
	return v.m.driverHasVehicle, nil
}

func (v vehicleView) Insert(pv models.PersonalVehicle) (int64, error) {
	pv.ID = v.m.id()
	v.m.vehicles[pv.ID] = pv
	return pv.ID, nil
}

func (v vehicleView) Update(pv models.PersonalVehicle) error {
	if v.m.updateVehicleErr != nil {
		return v.m.updateVehicleErr
	}
	v.m.vehicles[pv.ID] = pv
	return nil
}

func (v vehicleView) SetStatus(id int64, status string) error {
	pv := v.m.vehicles[id]
	pv.Status = status
	v.m.vehicles[id] = pv
	return nil
}

func (v vehicleView) GetType(id int64) (repositories.VehicleType, error) {
	t, ok := v.m.types[id]
	if !ok {
		return repositories.VehicleType{}, domain.NotFoundError{Resource: "vehicle type"}
	}
	return t, nil
}

// serviceView implements ServiceStore.
type serviceView struct{ m *memStore }

func (m *memStore) servicesOf() serviceView { return serviceView{m} }

func (v serviceView) ActiveByBooking(bookingID int64) ([]models.AdditionalService, error) {
	var out []models.AdditionalService
	for _, k := range sortedKeys(v.m.services) {
		s := v.m.services[k]
		if s.BookingID == bookingID && s.Status == models.ItemActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (v serviceView) ByBooking(bookingID int64) ([]models.AdditionalService, error) {
	var out []models.AdditionalService
	for _, k := range sortedKeys(v.m.services) {
		if v.m.services[k].BookingID == bookingID {
			out = append(out, v.m.services[k])
		}
	}
	return out, nil
}

func (v serviceView) ByCabinBinds(bookingID int64, binds []string) ([]models.AdditionalService, error) {
	set := map[string]bool{}
	for _, b := range binds {
		set[b] = true
	}
	var out []models.AdditionalService
	for _, k := range sortedKeys(v.m.services) {
		s := v.m.services[k]
		if s.BookingID == bookingID && set[s.CabinBind] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (v serviceView) Insert(s models.AdditionalService) (int64, error) {
	s.ID = v.m.id()
	v.m.services[s.ID] = s
	return s.ID, nil
}

func (v serviceView) Update(s models.AdditionalService) error {
	v.m.services[s.ID] = s
	return nil
}

func (v serviceView) SetStatus(id int64, status string) error {
	if err := v.m.setServiceStatusErr[id]; err != nil {
		return err
	}
	s := v.m.services[id]
	s.Status = status
	v.m.services[id] = s
	return nil
}

// ledgerView implements LedgerStore.
type ledgerView struct{ m *memStore }

func (m *memStore) ledgerOf() ledgerView { return ledgerView{m} }

func (v ledgerView) LedgerRows(bookingID int64) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range v.m.ledger {
		if p.BookingID == bookingID || p.Source == bookingID || p.Transferred == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (v ledgerView) AcceptedCurrencies(bookingID int64) ([]string, error) {
	var out []string
	for _, p := range v.m.ledger {
		if p.BookingID == bookingID && p.Status == models.PaymentAccepted {
			out = append(out, p.Currency)
		}
	}
	return out, nil
}

func (v ledgerView) BookingIDsForOrderBatch(batch string) ([]int64, error) {
	return v.m.batchBookings[batch], nil
}

func (v ledgerView) Append(p models.Payment) (int64, error) {
	p.ID = v.m.id()
	p.CreatedAt = time.Now().UTC()
	v.m.ledger = append(v.m.ledger, p)
	return p.ID, nil
}

// auditView implements AuditStore.
type auditView struct{ m *memStore }

func (m *memStore) auditsOf() auditView { return auditView{m} }

func (v auditView) Insert(rec models.RebookingRecord) (int64, error) {
	if v.m.insertAuditErr != nil {
		return 0, v.m.insertAuditErr
	}
	rec.ID = v.m.id()
	v.m.audits = append(v.m.audits, rec)
	return rec.ID, nil
}

func (v auditView) ListByBooking(bookingID int64) ([]models.RebookingRecord, error) {
	var out []models.RebookingRecord
	for _, rec := range v.m.audits {
		if rec.BookingSource == bookingID || rec.BookingDest == bookingID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// voyageView implements VoyageDirectory.
type voyageView struct{ m *memStore }

func (m *memStore) voyagesOf() voyageView { return voyageView{m} }

func (v voyageView) Departure(voyageID, portID int64) (time.Time, error) {
	return v.m.departure, nil
}

func (v voyageView) EditWindowMinutes(portID int64) (int, error) {
	return v.m.editWindow, nil
}

func (v voyageView) ShipID(voyageID int64) (int64, error) {
	return 1, nil
}

// fixedCurrency implements CurrencyResolver with a constant answer.
type fixedCurrency string

func (c fixedCurrency) CurrencyOf(int64) (string, error) { return string(c), nil }

// fixedBalance implements BalanceReader with a constant answer.
type fixedBalance int64

func (b fixedBalance) BalanceOf(int64) (int64, error) { return int64(b), nil }

func vehicleTypeLimits(id int64, length, weight int) repositories.VehicleType {
	return repositories.VehicleType{ID: id, Length: length, Weight: weight}
}

func actorUser(id int64) domain.Actor { return domain.Actor{UserID: id} }

// currencyOf builds a full CurrencyService over the memStore.
func (m *memStore) currencyOf() CurrencyService {
	return CurrencyService{
		Passengers: m.passengersOf(),
		Vehicles:   m.vehiclesOf(),
		Services:   m.servicesOf(),
		Ledger:     m.ledgerOf(),
	}
}
