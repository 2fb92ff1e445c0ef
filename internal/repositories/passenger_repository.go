package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intdb "ferryops/internal/db"
	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type PassengerRepository struct {
	DB *sql.DB
}

const passengerColumns = `id,
       COALESCE(booking_id,0),
       COALESCE(status,''),
       COALESCE(cabin_id,0),
       COALESCE(cabin_bind,''),
       COALESCE(sales_method,''),
       COALESCE(tariff_type,''),
       COALESCE(accommodation,0),
       COALESCE(seat_type,''),
       COALESCE(travel_way,''),
       COALESCE(tariff,0),
       COALESCE(discounts,0),
       COALESCE(base_tariff_id,0),
       COALESCE(currency,''),
       COALESCE(base_currency,''),
       COALESCE(ratio_to_base_currency,0),
       COALESCE(first_name,''),
       COALESCE(last_name,''),
       COALESCE(birth_date,''),
       COALESCE(citizenship,''),
       COALESCE(passport_id,''),
       COALESCE(pin,''),
       COALESCE(sex,'')`

func scanPassenger(scan func(dest ...any) error) (models.Passenger, error) {
	var p models.Passenger
	err := scan(
		&p.ID, &p.BookingID, &p.Status, &p.CabinID, &p.CabinBind,
		&p.SalesMethod, &p.TariffType, &p.Accommodation, &p.SeatType, &p.TravelWay,
		&p.Tariff, &p.Discounts, &p.BaseTariffID,
		&p.Currency, &p.BaseCurrency, &p.RatioToBase,
		&p.FirstName, &p.LastName, &p.BirthDate, &p.Citizenship, &p.PassportID, &p.Pin, &p.Sex,
	)
	return p, err
}

func (r PassengerRepository) queryPassengers(query string, args ...any) ([]models.Passenger, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Passenger
	for rows.Next() {
		p, err := scanPassenger(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PassengerRepository) ActiveByBooking(bookingID int64) ([]models.Passenger, error) {
	return r.queryPassengers(
		`SELECT `+passengerColumns+` FROM passengers WHERE booking_id=? AND status=? ORDER BY id`,
		bookingID, models.ItemActive,
	)
}

func (r PassengerRepository) ByIDs(bookingID int64, ids []int64) ([]models.Passenger, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := []any{bookingID}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	return r.queryPassengers(
		`SELECT `+passengerColumns+` FROM passengers WHERE booking_id=? AND id IN (`+strings.Join(placeholders, ",")+`) ORDER BY id`,
		args...,
	)
}

func (r PassengerRepository) GetByID(id int64) (models.Passenger, error) {
	row := r.DB.QueryRow(`SELECT `+passengerColumns+` FROM passengers WHERE id=? LIMIT 1`, id)
	p, err := scanPassenger(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Passenger{}, domain.NotFoundError{Resource: "passenger", Err: err}
		}
		return models.Passenger{}, err
	}
	return p, nil
}

func (r PassengerRepository) Insert(p models.Passenger) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO passengers
			(booking_id, status, cabin_id, cabin_bind, sales_method, tariff_type, accommodation,
			 seat_type, travel_way, tariff, discounts, base_tariff_id,
			 currency, base_currency, ratio_to_base_currency,
			 first_name, last_name, birth_date, citizenship, passport_id, pin, sex, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		p.BookingID, p.Status, p.CabinID, p.CabinBind, p.SalesMethod, p.TariffType, p.Accommodation,
		p.SeatType, p.TravelWay, p.Tariff, p.Discounts, p.BaseTariffID,
		p.Currency, p.BaseCurrency, p.RatioToBase,
		p.FirstName, p.LastName, p.BirthDate, p.Citizenship, p.PassportID,
		intdb.NullIfEmpty(p.Pin), p.Sex,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the mutable passenger fields; used by the rebooking engine.
func (r PassengerRepository) Update(p models.Passenger) error {
	_, err := r.DB.Exec(`
		UPDATE passengers SET
			booking_id=?, status=?, cabin_id=?, cabin_bind=?, sales_method=?, tariff_type=?, accommodation=?,
			seat_type=?, travel_way=?, tariff=?, discounts=?, base_tariff_id=?,
			currency=?, base_currency=?, ratio_to_base_currency=?,
			first_name=?, last_name=?, birth_date=?, citizenship=?, passport_id=?, pin=?, sex=?,
			updated_at=NOW()
		WHERE id=?`,
		p.BookingID, p.Status, p.CabinID, p.CabinBind, p.SalesMethod, p.TariffType, p.Accommodation,
		p.SeatType, p.TravelWay, p.Tariff, p.Discounts, p.BaseTariffID,
		p.Currency, p.BaseCurrency, p.RatioToBase,
		p.FirstName, p.LastName, p.BirthDate, p.Citizenship, p.PassportID, p.Pin, p.Sex,
		p.ID,
	)
	return err
}

func (r PassengerRepository) SetStatus(id int64, status string) error {
	_, err := r.DB.Exec(`UPDATE passengers SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	return err
}
