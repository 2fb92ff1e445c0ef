package repositories

import (
	"database/sql"
	"fmt"

	intdb "ferryops/internal/db"
	"ferryops/internal/domain/models"
)

// RebookingRepository persists the rebooking audit trail.
type RebookingRepository struct {
	DB *sql.DB
}

func (r RebookingRepository) Insert(rec models.RebookingRecord) (int64, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	res, err := r.DB.Exec(`
		INSERT INTO rebookings
			(model, voyage_source, booking_source, original_source,
			 voyage_dest, booking_dest, original_dest, user_id, comment, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,NOW())`,
		rec.Model, rec.VoyageSource, rec.BookingSource, rec.OriginalSource,
		rec.VoyageDest, rec.BookingDest, rec.OriginalDest, rec.UserID, rec.Comment,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RebookingRepository) ListByBooking(bookingID int64) ([]models.RebookingRecord, error) {
	rows, err := r.DB.Query(`
		SELECT id, model, voyage_source, booking_source, original_source,
		       voyage_dest, booking_dest, original_dest, user_id, COALESCE(comment,''), created_at
		FROM rebookings
		WHERE booking_source=? OR booking_dest=?
		ORDER BY id`,
		bookingID, bookingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RebookingRecord
	for rows.Next() {
		var rec models.RebookingRecord
		if err := rows.Scan(
			&rec.ID, &rec.Model, &rec.VoyageSource, &rec.BookingSource, &rec.OriginalSource,
			&rec.VoyageDest, &rec.BookingDest, &rec.OriginalDest, &rec.UserID, &rec.Comment, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r RebookingRepository) ensureTable() error {
	if r.DB == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(r.DB, "rebookings") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS rebookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	model VARCHAR(50) NOT NULL,
	voyage_source BIGINT NOT NULL,
	booking_source BIGINT NOT NULL,
	original_source BIGINT NOT NULL,
	voyage_dest BIGINT NOT NULL,
	booking_dest BIGINT NOT NULL,
	original_dest BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	comment TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_booking_source (booking_source),
	KEY idx_booking_dest (booking_dest)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := r.DB.Exec(ddl)
	return err
}
