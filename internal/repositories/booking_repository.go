package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id,
       COALESCE(status,''),
       COALESCE(type,''),
       COALESCE(number,''),
       COALESCE(user_id,0),
       COALESCE(order_batch,''),
       COALESCE(voyage_id,0),
       COALESCE(boarding_port,0),
       COALESCE(disembarking_port,0),
       COALESCE(number_edit_attempts,0)`

func scanBooking(row *sql.Row) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.Status,
		&b.Type,
		&b.Number,
		&b.UserID,
		&b.OrderBatch,
		&b.VoyageID,
		&b.BoardingPort,
		&b.DisembarkingPort,
		&b.EditAttempts,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	return scanBooking(row)
}

func (r BookingRepository) GetByOrderBatch(batch string) (models.Booking, error) {
	if batch == "" {
		return models.Booking{}, domain.ValidationError{Field: "order_batch", Msg: "empty"}
	}
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE order_batch=? LIMIT 1`, batch)
	return scanBooking(row)
}

func (r BookingRepository) Create(b models.Booking) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO bookings
			(status, type, number, user_id, order_batch, voyage_id, boarding_port, disembarking_port, number_edit_attempts, created_at)
		VALUES (?,?,?,?,?,?,?,?,0,NOW())`,
		b.Status, b.Type, b.Number, b.UserID, b.OrderBatch, b.VoyageID, b.BoardingPort, b.DisembarkingPort,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) NumberExists(number string) (bool, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE number=?`, number).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r BookingRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	_, err := r.DB.Exec(`UPDATE bookings SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	return err
}

func (r BookingRepository) UpdateVoyage(id, voyageID int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	_, err := r.DB.Exec(`UPDATE bookings SET voyage_id=?, updated_at=NOW() WHERE id=?`, voyageID, id)
	return err
}

// IncrementEditAttempts bumps the counter after a successful edit. The edit
// guard itself never mutates state.
func (r BookingRepository) IncrementEditAttempts(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	_, err := r.DB.Exec(`UPDATE bookings SET number_edit_attempts=number_edit_attempts+1 WHERE id=?`, id)
	return err
}

// DeleteCascade hard-deletes a booking together with its line items. Children
// go first to satisfy referential constraints.
func (r BookingRepository) DeleteCascade(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	for _, table := range []string{"personal_vehicles", "passengers", "additional_services"} {
		if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE booking_id=?`, table), id); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM bookings WHERE id=?`, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
