package repositories

import (
	"database/sql"
	"errors"
	"time"

	"ferryops/internal/domain"
)

// VoyageRepository is the voyage/port directory: departure times per
// (voyage, port) and the per-port edit-window setting.
type VoyageRepository struct {
	DB *sql.DB
}

// editIntervalGroup matches the settings group key holding the per-port
// edit-window minutes.
const editIntervalGroup = "expiring_edit_interval"

func (r VoyageRepository) Departure(voyageID, portID int64) (time.Time, error) {
	var departure time.Time
	err := r.DB.QueryRow(`
		SELECT departure
		FROM voyages_ports
		WHERE voyage_id=? AND port_id=?
		LIMIT 1`,
		voyageID, portID,
	).Scan(&departure)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, domain.NotFoundError{Resource: "voyage departure", Err: err}
		}
		return time.Time{}, err
	}
	return departure, nil
}

func (r VoyageRepository) EditWindowMinutes(portID int64) (int, error) {
	var minutes int
	err := r.DB.QueryRow(`
		SELECT value
		FROM booking_settings
		WHERE group_id=? AND model_id=?
		LIMIT 1`,
		editIntervalGroup, portID,
	).Scan(&minutes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "edit interval setting", Err: err}
		}
		return 0, err
	}
	return minutes, nil
}

func (r VoyageRepository) ShipID(voyageID int64) (int64, error) {
	var shipID int64
	err := r.DB.QueryRow(`SELECT ship_id FROM voyages WHERE id=? LIMIT 1`, voyageID).Scan(&shipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "voyage", Err: err}
		}
		return 0, err
	}
	return shipID, nil
}
