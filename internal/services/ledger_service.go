package services

import (
	"time"

	"ferryops/internal/domain"
	"ferryops/internal/domain/models"
)

// PaymentRequest records one direct payment on a booking.
type PaymentRequest struct {
	BookingID     int64  `json:"booking_id" validate:"required"`
	OrderBatch    string `json:"order_batch"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required,len=3"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card agent_credit"`
	Description   string `json:"description"`
}

// RefundRequest records a refund issued on a booking.
type RefundRequest struct {
	BookingID   int64  `json:"booking_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,len=3"`
	Description string `json:"description"`
}

// TransferRequest moves funds from one booking to another.
type TransferRequest struct {
	SourceBookingID      int64  `json:"source_booking_id" validate:"required"`
	DestinationBookingID int64  `json:"destination_booking_id" validate:"required"`
	Amount               int64  `json:"amount" validate:"required,gt=0"`
	Currency             string `json:"currency" validate:"required,len=3"`
	Description          string `json:"description"`
}

// LedgerService appends to the payment ledger. Rows are never mutated; a
// mistake is corrected by appending a compensating row.
type LedgerService struct {
	Ledger   LedgerStore
	Currency CurrencyResolver
	Locks    *BookingLocks
}

// checkCurrency refuses an append that would introduce a second currency on
// the booking.
func (s LedgerService) checkCurrency(bookingID int64, currency string) error {
	current, err := s.Currency.CurrencyOf(bookingID)
	if err != nil {
		return err
	}
	if current != "" && current != currency {
		return domain.ValidationError{Field: "currency", Msg: "does not match the booking currency"}
	}
	return nil
}

// RecordPayment appends an accepted direct payment.
func (s LedgerService) RecordPayment(actor domain.Actor, req PaymentRequest) (int64, error) {
	unlock := s.Locks.Lock(req.BookingID)
	defer unlock()

	if err := s.checkCurrency(req.BookingID, req.Currency); err != nil {
		return 0, err
	}
	return s.Ledger.Append(models.Payment{
		BookingID:       req.BookingID,
		OrderBatch:      req.OrderBatch,
		Amount:          req.Amount,
		Currency:        req.Currency,
		PaymentMethod:   req.PaymentMethod,
		TransactionType: models.TxnPayment,
		Status:          models.PaymentAccepted,
		UserID:          actor.UserID,
		Description:     req.Description,
	})
}

// RecordRefund appends an accepted refund row.
func (s LedgerService) RecordRefund(actor domain.Actor, req RefundRequest) (int64, error) {
	unlock := s.Locks.Lock(req.BookingID)
	defer unlock()

	if err := s.checkCurrency(req.BookingID, req.Currency); err != nil {
		return 0, err
	}
	return s.Ledger.Append(models.Payment{
		BookingID:       req.BookingID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		TransactionType: models.TxnRefund,
		Status:          models.PaymentAccepted,
		UserID:          actor.UserID,
		Description:     req.Description,
	})
}

// RecordTransfer appends the double entry for a transfer between bookings:
// the outgoing row on the source and the incoming counterpart on the
// destination. The two appends are separate commits; balance matching
// tolerates a half-written pair by counting neither side.
func (s LedgerService) RecordTransfer(actor domain.Actor, req TransferRequest) error {
	if req.SourceBookingID == req.DestinationBookingID {
		return domain.ValidationError{Field: "destination_booking_id", Msg: "source and destination must differ"}
	}

	unlock := s.Locks.LockPair(req.SourceBookingID, req.DestinationBookingID)
	defer unlock()

	if err := s.checkCurrency(req.SourceBookingID, req.Currency); err != nil {
		return err
	}
	if err := s.checkCurrency(req.DestinationBookingID, req.Currency); err != nil {
		return err
	}

	_, err := s.Ledger.Append(models.Payment{
		BookingID:       req.SourceBookingID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		TransactionType: models.TxnTransfer,
		Source:          req.SourceBookingID,
		Transferred:     req.DestinationBookingID,
		Status:          models.PaymentAccepted,
		UserID:          actor.UserID,
		Description:     req.Description,
	})
	if err != nil {
		return err
	}
	_, err = s.Ledger.Append(models.Payment{
		BookingID:       req.DestinationBookingID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		PaymentMethod:   models.MethodTransfer,
		TransactionType: models.TxnPayment,
		Transferred:     req.SourceBookingID,
		Status:          models.PaymentAccepted,
		UserID:          actor.UserID,
		Description:     req.Description,
	})
	return err
}

// History lists the booking's visible payment rows, oldest first. Incoming
// transfer rows only show once their outgoing counterpart exists, matching
// the balance rule, so the history never displays money the balance does not
// count.
func (s LedgerService) History(bookingID int64) ([]models.Payment, error) {
	currency, err := s.Currency.CurrencyOf(bookingID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Ledger.LedgerRows(bookingID)
	if err != nil {
		return nil, err
	}

	type inKey struct {
		counterparty int64
		amount       int64
	}
	outgoingToUs := make(map[inKey]bool)
	for _, p := range rows {
		if p.Status == models.PaymentAccepted && p.TransactionType == models.TxnTransfer && p.Transferred == bookingID {
			outgoingToUs[inKey{p.Source, p.Amount}] = true
		}
	}

	visible := []models.Payment{}
	for _, p := range rows {
		if p.BookingID != bookingID || p.Status != models.PaymentAccepted {
			continue
		}
		if currency != "" && p.Currency != currency {
			continue
		}
		if p.TransactionType == models.TxnPayment && p.PaymentMethod == models.MethodTransfer {
			if !outgoingToUs[inKey{p.Transferred, p.Amount}] {
				continue
			}
		}
		visible = append(visible, p)
	}
	return visible, nil
}

// PaymentDates returns the first and last visible payment timestamps. Both
// zero when the booking has no visible payments.
func (s LedgerService) PaymentDates(bookingID int64) (first, last time.Time, err error) {
	visible, err := s.History(bookingID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(visible) == 0 {
		return time.Time{}, time.Time{}, nil
	}
	return visible[0].CreatedAt, visible[len(visible)-1].CreatedAt, nil
}
