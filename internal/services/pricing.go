package services

import "context"

// PricingRequest describes one line item to quote. ItemKind is one of the
// models.Kind* constants; the remaining fields are the tariff inputs for that
// kind.
type PricingRequest struct {
	ItemKind      string
	VoyageID      int64
	ShipID        int64
	TariffType    string
	Accommodation int
	SeatType      string
	TravelWay     string
	VehicleTypeID int64
	ServiceID     int64
	Currency      string
}

// PricingResult is a quoted tariff in minor units with its pricing basis.
type PricingResult struct {
	Tariff       int64
	Discounts    int64
	BaseTariffID int64
	Currency     string
}

// PricingService is the external tariff collaborator. Failures are wrapped in
// domain.PricingError by callers and never retried here; retry policy belongs
// to whoever owns the call.
type PricingService interface {
	Quote(ctx context.Context, req PricingRequest) (PricingResult, error)
}
