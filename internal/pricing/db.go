package pricing

import (
	"context"
	"database/sql"
	"errors"

	"ferryops/internal/domain"
	"ferryops/internal/services"
)

// DB quotes tariffs from the base_tariffs table. It stands in for the remote
// tariff engine in single-node deployments; the services only see the
// services.PricingService interface either way.
type DB struct {
	Conn *sql.DB
}

func (p DB) Quote(ctx context.Context, req services.PricingRequest) (services.PricingResult, error) {
	var out services.PricingResult

	// Ship-wide tariffs (ship_id set, voyage_id 0) back up per-voyage rows.
	row := p.Conn.QueryRowContext(ctx, `
		SELECT id, COALESCE(amount,0), COALESCE(discounts,0)
		FROM base_tariffs
		WHERE (voyage_id=? OR (voyage_id=0 AND ship_id=?)) AND kind=? AND currency=?
		  AND (tariff_type=? OR tariff_type='')
		  AND (vehicle_type_id=? OR vehicle_type_id=0)
		  AND (service_id=? OR service_id=0)
		ORDER BY voyage_id DESC, tariff_type DESC
		LIMIT 1`,
		req.VoyageID, req.ShipID, req.ItemKind, req.Currency,
		req.TariffType, req.VehicleTypeID, req.ServiceID,
	)
	if err := row.Scan(&out.BaseTariffID, &out.Tariff, &out.Discounts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, domain.NotFoundError{Resource: "base tariff", Err: err}
		}
		return out, err
	}
	out.Currency = req.Currency
	return out, nil
}
