package services

import (
	"ferryops/internal/domain/models"
)

// TransferTotals are the matched transfer sums for one booking. A transfer
// row only counts once at least one counterpart row exists on the other side
// of the double entry; a half-recorded transfer contributes nothing.
type TransferTotals struct {
	Incoming int64
	Outgoing int64
}

// BalanceService computes the settled balance of a booking from its ledger
// rows. All amounts are minor units of the booking's single currency.
type BalanceService struct {
	Ledger   LedgerStore
	Currency CurrencyResolver
	Locks    *BookingLocks
}

// BalanceOf returns matched incoming transfers minus matched outgoing
// transfers, plus direct payments, minus refunds. A booking with no monetary
// activity balances to zero.
func (s BalanceService) BalanceOf(bookingID int64) (int64, error) {
	unlock := s.Locks.Lock(bookingID)
	defer unlock()

	currency, err := s.Currency.CurrencyOf(bookingID)
	if err != nil {
		return 0, err
	}
	if currency == "" {
		return 0, nil
	}

	rows, err := s.Ledger.LedgerRows(bookingID)
	if err != nil {
		return 0, err
	}

	transfers := MatchTransfers(bookingID, currency, rows)
	balance := transfers.Incoming - transfers.Outgoing
	balance += DirectPaymentTotal(bookingID, currency, rows)
	balance -= RefundTotal(bookingID, currency, rows)
	return balance, nil
}

// MatchTransfers sums the transfer rows of bookingID that have a recorded
// counterpart. A transfer from A to B is written as two rows: on A an
// outgoing row (transaction_type=transfer, source=A, transferred=B) and on B
// an incoming row (transaction_type=payment, payment_method=transfer,
// booking_id=B, transferred=A), with equal amount and currency. An incoming
// row counts when some outgoing row toward this booking carries the same
// amount; an outgoing row counts when the destination booking recorded a
// matching incoming row.
func MatchTransfers(bookingID int64, currency string, rows []models.Payment) TransferTotals {
	type inKey struct {
		counterparty int64
		amount       int64
	}

	// Counterpart rows seen in the fetched window.
	outgoingToUs := make(map[inKey]bool)
	incomingFromUs := make(map[inKey]bool)
	for _, p := range rows {
		if p.Currency != currency || p.Status != models.PaymentAccepted {
			continue
		}
		if p.TransactionType == models.TxnTransfer && p.Transferred == bookingID {
			outgoingToUs[inKey{p.Source, p.Amount}] = true
		}
		if p.TransactionType == models.TxnPayment && p.PaymentMethod == models.MethodTransfer &&
			p.BookingID != bookingID && p.Transferred == bookingID {
			incomingFromUs[inKey{p.BookingID, p.Amount}] = true
		}
	}

	var totals TransferTotals
	for _, p := range rows {
		if p.Currency != currency || p.Status != models.PaymentAccepted {
			continue
		}
		if p.BookingID == bookingID && p.TransactionType == models.TxnPayment &&
			p.PaymentMethod == models.MethodTransfer {
			if outgoingToUs[inKey{p.Transferred, p.Amount}] {
				totals.Incoming += p.Amount
			}
		}
		if p.Source == bookingID && p.TransactionType == models.TxnTransfer {
			if incomingFromUs[inKey{p.Transferred, p.Amount}] {
				totals.Outgoing += p.Amount
			}
		}
	}
	return totals
}

// DirectPaymentTotal sums accepted card and agent-credit payments on the
// booking.
func DirectPaymentTotal(bookingID int64, currency string, rows []models.Payment) int64 {
	var total int64
	for _, p := range rows {
		if p.BookingID != bookingID || p.Currency != currency || p.Status != models.PaymentAccepted {
			continue
		}
		if p.TransactionType != models.TxnPayment {
			continue
		}
		if p.PaymentMethod == models.MethodCard || p.PaymentMethod == models.MethodAgentCredit {
			total += p.Amount
		}
	}
	return total
}

// RefundTotal sums accepted refunds issued on the booking.
func RefundTotal(bookingID int64, currency string, rows []models.Payment) int64 {
	var total int64
	for _, p := range rows {
		if p.BookingID != bookingID || p.Currency != currency || p.Status != models.PaymentAccepted {
			continue
		}
		if p.TransactionType == models.TxnRefund {
			total += p.Amount
		}
	}
	return total
}
