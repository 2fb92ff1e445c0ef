package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

const vehicleColumns = `id,
       COALESCE(booking_id,0),
       COALESCE(status,''),
       COALESCE(cabin_bind,''),
       COALESCE(sales_method,''),
       COALESCE(vehicle_id,0),
       COALESCE(length,0),
       COALESCE(weight,0),
       COALESCE(vehicle_make,''),
       COALESCE(vehicle_model,''),
       COALESCE(date_issue,''),
       COALESCE(vin,''),
       COALESCE(registration_number,''),
       COALESCE(driver,0),
       COALESCE(proprietor,''),
       COALESCE(tariff,0),
       COALESCE(discounts,0),
       COALESCE(base_tariff_id,0),
       COALESCE(currency,''),
       COALESCE(base_currency,''),
       COALESCE(ratio_to_base_currency,0)`

func scanVehicle(scan func(dest ...any) error) (models.PersonalVehicle, error) {
	var v models.PersonalVehicle
	err := scan(
		&v.ID, &v.BookingID, &v.Status, &v.CabinBind, &v.SalesMethod,
		&v.VehicleTypeID, &v.Length, &v.Weight, &v.Make, &v.Model,
		&v.DateIssue, &v.VIN, &v.RegistrationNumber, &v.Driver, &v.Proprietor,
		&v.Tariff, &v.Discounts, &v.BaseTariffID,
		&v.Currency, &v.BaseCurrency, &v.RatioToBase,
	)
	return v, err
}

func (r VehicleRepository) queryVehicles(query string, args ...any) ([]models.PersonalVehicle, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PersonalVehicle
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepository) ActiveByBooking(bookingID int64) ([]models.PersonalVehicle, error) {
	return r.queryVehicles(
		`SELECT `+vehicleColumns+` FROM personal_vehicles WHERE booking_id=? AND status=? ORDER BY id`,
		bookingID, models.ItemActive,
	)
}

// ByBooking returns every vehicle of the booking regardless of status; the
// cancellation cascade visits already-cancelled rows too and lets the
// per-item eligibility check decide.
func (r VehicleRepository) ByBooking(bookingID int64) ([]models.PersonalVehicle, error) {
	return r.queryVehicles(
		`SELECT `+vehicleColumns+` FROM personal_vehicles WHERE booking_id=? ORDER BY id`,
		bookingID,
	)
}

func (r VehicleRepository) ByDrivers(bookingID int64, driverIDs []int64) ([]models.PersonalVehicle, error) {
	if len(driverIDs) == 0 {
		return nil, nil
	}
	args := []any{bookingID}
	placeholders := make([]string, len(driverIDs))
	for i, id := range driverIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	return r.queryVehicles(
		`SELECT `+vehicleColumns+` FROM personal_vehicles WHERE booking_id=? AND driver IN (`+strings.Join(placeholders, ",")+`) ORDER BY id`,
		args...,
	)
}

func (r VehicleRepository) GetByID(id int64) (models.PersonalVehicle, error) {
	row := r.DB.QueryRow(`SELECT `+vehicleColumns+` FROM personal_vehicles WHERE id=? LIMIT 1`, id)
	v, err := scanVehicle(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PersonalVehicle{}, domain.NotFoundError{Resource: "personal vehicle", Err: err}
		}
		return models.PersonalVehicle{}, err
	}
	return v, nil
}

// DriverHasVehicleOnVoyage reports whether the passenger already drives a
// vehicle on the voyage; one vehicle per driver per voyage.
func (r VehicleRepository) DriverHasVehicleOnVoyage(passengerID, voyageID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*)
		FROM personal_vehicles pv
		JOIN bookings b ON b.id = pv.booking_id
		WHERE pv.driver=? AND b.voyage_id=? AND pv.status=?`,
		passengerID, voyageID, models.ItemActive,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r VehicleRepository) Insert(v models.PersonalVehicle) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO personal_vehicles
			(booking_id, status, cabin_bind, sales_method, vehicle_id, length, weight,
			 vehicle_make, vehicle_model, date_issue, vin, registration_number, driver, proprietor,
			 tariff, discounts, base_tariff_id, currency, base_currency, ratio_to_base_currency, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		v.BookingID, v.Status, v.CabinBind, v.SalesMethod, v.VehicleTypeID, v.Length, v.Weight,
		v.Make, v.Model, v.DateIssue, v.VIN, v.RegistrationNumber, v.Driver, v.Proprietor,
		v.Tariff, v.Discounts, v.BaseTariffID, v.Currency, v.BaseCurrency, v.RatioToBase,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(v models.PersonalVehicle) error {
	_, err := r.DB.Exec(`
		UPDATE personal_vehicles SET
			booking_id=?, status=?, cabin_bind=?, sales_method=?, vehicle_id=?, length=?, weight=?,
			vehicle_make=?, vehicle_model=?, date_issue=?, vin=?, registration_number=?, driver=?, proprietor=?,
			tariff=?, discounts=?, base_tariff_id=?, currency=?, base_currency=?, ratio_to_base_currency=?,
			updated_at=NOW()
		WHERE id=?`,
		v.BookingID, v.Status, v.CabinBind, v.SalesMethod, v.VehicleTypeID, v.Length, v.Weight,
		v.Make, v.Model, v.DateIssue, v.VIN, v.RegistrationNumber, v.Driver, v.Proprietor,
		v.Tariff, v.Discounts, v.BaseTariffID, v.Currency, v.BaseCurrency, v.RatioToBase,
		v.ID,
	)
	return err
}

func (r VehicleRepository) SetStatus(id int64, status string) error {
	_, err := r.DB.Exec(`UPDATE personal_vehicles SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	return err
}

// VehicleType carries the per-type bounds used by the not-critical-data edit
// check.
type VehicleType struct {
	ID     int64
	Name   string
	Length int
	Weight int
}

func (r VehicleRepository) GetType(id int64) (VehicleType, error) {
	var t VehicleType
	err := r.DB.QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(length,0), COALESCE(weight,0)
		FROM personal_vehicle_types WHERE id=? LIMIT 1`, id,
	).Scan(&t.ID, &t.Name, &t.Length, &t.Weight)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return VehicleType{}, domain.NotFoundError{Resource: "vehicle type", Err: err}
		}
		return VehicleType{}, err
	}
	return t, nil
}
