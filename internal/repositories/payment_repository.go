package repositories

import (
	"database/sql"

	"ferryops/internal/domain/models"
)

// PaymentRepository reads and appends booking_payments rows. The ledger is
// append-only: accepted rows are never updated.
type PaymentRepository struct {
	DB *sql.DB
}

const paymentColumns = `id,
       COALESCE(booking_id,0),
       COALESCE(order_batch,''),
       COALESCE(amount,0),
       COALESCE(currency,''),
       COALESCE(payment_method,''),
       COALESCE(transaction_type,''),
       COALESCE(source,0),
       COALESCE(transferred,0),
       COALESCE(status,''),
       COALESCE(user_id,0),
       COALESCE(description,''),
       created_at`

func (r PaymentRepository) queryPayments(query string, args ...any) ([]models.Payment, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.BookingID, &p.OrderBatch, &p.Amount, &p.Currency,
			&p.PaymentMethod, &p.TransactionType, &p.Source, &p.Transferred,
			&p.Status, &p.UserID, &p.Description, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// LedgerRows loads every row touching the booking: its own rows, transfers it
// sent, and the two counterpart shapes of the transfer double-entry. Ordered
// oldest-first so the in-memory matcher pairs deterministically.
func (r PaymentRepository) LedgerRows(bookingID int64) ([]models.Payment, error) {
	return r.queryPayments(`
		SELECT `+paymentColumns+`
		FROM booking_payments
		WHERE booking_id=? OR source=? OR transferred=?
		ORDER BY created_at, id`,
		bookingID, bookingID, bookingID,
	)
}

// AcceptedCurrencies lists the currencies of accepted payment rows for the
// booking, for the currency consistency check.
func (r PaymentRepository) AcceptedCurrencies(bookingID int64) ([]string, error) {
	rows, err := r.DB.Query(`
		SELECT COALESCE(currency,'')
		FROM booking_payments
		WHERE booking_id=? AND status=?
		ORDER BY id`,
		bookingID, models.PaymentAccepted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// BookingIDsForOrderBatch returns the distinct bookings the batch's payments
// point at. More than one is a fatal integrity violation upstream.
func (r PaymentRepository) BookingIDsForOrderBatch(batch string) ([]int64, error) {
	rows, err := r.DB.Query(`
		SELECT booking_id
		FROM booking_payments
		WHERE order_batch=?
		GROUP BY booking_id`,
		batch,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r PaymentRepository) Append(p models.Payment) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO booking_payments
			(booking_id, order_batch, amount, currency, payment_method, transaction_type,
			 source, transferred, status, user_id, description, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		p.BookingID, p.OrderBatch, p.Amount, p.Currency, p.PaymentMethod, p.TransactionType,
		p.Source, p.Transferred, p.Status, p.UserID, p.Description,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
