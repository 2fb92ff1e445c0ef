package repositories

import (
	"database/sql"
	"errors"

	"ferryops/internal/domain"
)

// CurrencyRatioRepository resolves the current conversion ratio to the base
// currency. Line items freeze the ratio at creation time.
type CurrencyRatioRepository struct {
	DB *sql.DB
}

func (r CurrencyRatioRepository) Ratio(currency, base string) (float64, error) {
	if currency == base {
		return 1, nil
	}
	var ratio float64
	err := r.DB.QueryRow(`
		SELECT ratio
		FROM currency_ratios
		WHERE currency=? AND base_currency=?
		ORDER BY created_at DESC
		LIMIT 1`,
		currency, base,
	).Scan(&ratio)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "currency ratio", Err: err}
		}
		return 0, err
	}
	return ratio, nil
}
