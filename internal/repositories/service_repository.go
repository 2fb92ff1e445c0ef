package repositories

import (
	"database/sql"
	"strings"

	"ferryops/internal/domain/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

const serviceColumns = `id,
       COALESCE(booking_id,0),
       COALESCE(status,''),
       COALESCE(cabin_bind,''),
       COALESCE(service_id,0),
       COALESCE(tariff,0),
       COALESCE(discounts,0),
       COALESCE(base_tariff_id,0),
       COALESCE(currency,''),
       COALESCE(base_currency,''),
       COALESCE(ratio_to_base_currency,0)`

func scanService(scan func(dest ...any) error) (models.AdditionalService, error) {
	var s models.AdditionalService
	err := scan(
		&s.ID, &s.BookingID, &s.Status, &s.CabinBind, &s.ServiceID,
		&s.Tariff, &s.Discounts, &s.BaseTariffID,
		&s.Currency, &s.BaseCurrency, &s.RatioToBase,
	)
	return s, err
}

func (r ServiceRepository) queryServices(query string, args ...any) ([]models.AdditionalService, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AdditionalService
	for rows.Next() {
		s, err := scanService(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ServiceRepository) ActiveByBooking(bookingID int64) ([]models.AdditionalService, error) {
	return r.queryServices(
		`SELECT `+serviceColumns+` FROM additional_services WHERE booking_id=? AND status=? ORDER BY id`,
		bookingID, models.ItemActive,
	)
}

func (r ServiceRepository) ByBooking(bookingID int64) ([]models.AdditionalService, error) {
	return r.queryServices(
		`SELECT `+serviceColumns+` FROM additional_services WHERE booking_id=? ORDER BY id`,
		bookingID,
	)
}

// ByCabinBinds returns the services tied to the given cabin groups; the
// rebooking engine relocates them together with their passengers.
func (r ServiceRepository) ByCabinBinds(bookingID int64, binds []string) ([]models.AdditionalService, error) {
	if len(binds) == 0 {
		return nil, nil
	}
	args := []any{bookingID}
	placeholders := make([]string, len(binds))
	for i, b := range binds {
		placeholders[i] = "?"
		args = append(args, b)
	}
	return r.queryServices(
		`SELECT `+serviceColumns+` FROM additional_services WHERE booking_id=? AND cabin_bind IN (`+strings.Join(placeholders, ",")+`) ORDER BY id`,
		args...,
	)
}

func (r ServiceRepository) Insert(s models.AdditionalService) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO additional_services
			(booking_id, status, cabin_bind, service_id, tariff, discounts, base_tariff_id,
			 currency, base_currency, ratio_to_base_currency, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,NOW())`,
		s.BookingID, s.Status, s.CabinBind, s.ServiceID, s.Tariff, s.Discounts, s.BaseTariffID,
		s.Currency, s.BaseCurrency, s.RatioToBase,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ServiceRepository) Update(s models.AdditionalService) error {
	_, err := r.DB.Exec(`
		UPDATE additional_services SET
			booking_id=?, status=?, cabin_bind=?, service_id=?, tariff=?, discounts=?, base_tariff_id=?,
			currency=?, base_currency=?, ratio_to_base_currency=?, updated_at=NOW()
		WHERE id=?`,
		s.BookingID, s.Status, s.CabinBind, s.ServiceID, s.Tariff, s.Discounts, s.BaseTariffID,
		s.Currency, s.BaseCurrency, s.RatioToBase,
		s.ID,
	)
	return err
}

func (r ServiceRepository) SetStatus(id int64, status string) error {
	_, err := r.DB.Exec(`UPDATE additional_services SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	return err
}
