package services

import (
	"testing"

	"ferryops/internal/domain/models"
)

func transferPair(source, dest, amount int64, currency string) []models.Payment {
	return []models.Payment{
		{
			BookingID:       source,
			Amount:          amount,
			Currency:        currency,
			TransactionType: models.TxnTransfer,
			Source:          source,
			Transferred:     dest,
			Status:          models.PaymentAccepted,
		},
		{
			BookingID:       dest,
			Amount:          amount,
			Currency:        currency,
			PaymentMethod:   models.MethodTransfer,
			TransactionType: models.TxnPayment,
			Transferred:     source,
			Status:          models.PaymentAccepted,
		},
	}
}

func TestBalanceMatchedIncomingTransfer(t *testing.T) {
	m := newMemStore()
	m.ledger = append(m.ledger, transferPair(1, 2, 10000, "EUR")...)

	svc := BalanceService{Ledger: m.ledgerOf(), Currency: fixedCurrency("EUR")}
	balance, err := svc.BalanceOf(2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balance != 10000 {
		t.Fatalf("expected balance 10000, got %d", balance)
	}
}

func TestBalanceUnmatchedIncomingCountsZero(t *testing.T) {
	m := newMemStore()
	// Incoming row without its outgoing counterpart.
	m.ledger = append(m.ledger, models.Payment{
		BookingID:       2,
		Amount:          10000,
		Currency:        "EUR",
		PaymentMethod:   models.MethodTransfer,
		TransactionType: models.TxnPayment,
		Transferred:     1,
		Status:          models.PaymentAccepted,
	})

	svc := BalanceService{Ledger: m.ledgerOf(), Currency: fixedCurrency("EUR")}
	balance, err := svc.BalanceOf(2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance 0 for unmatched transfer, got %d", balance)
	}
}

func TestBalanceMatchedOutgoingTransferSubtracts(t *testing.T) {
	m := newMemStore()
	m.ledger = append(m.ledger, models.Payment{
		BookingID:       1,
		Amount:          5000,
		Currency:        "EUR",
		PaymentMethod:   models.MethodCard,
		TransactionType: models.TxnPayment,
		Status:          models.PaymentAccepted,
	})
	m.ledger = append(m.ledger, transferPair(1, 2, 3000, "EUR")...)

	svc := BalanceService{Ledger: m.ledgerOf(), Currency: fixedCurrency("EUR")}
	balance, err := svc.BalanceOf(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balance != 2000 {
		t.Fatalf("expected balance 2000, got %d", balance)
	}
}

func TestBalanceDirectPaymentsMinusRefunds(t *testing.T) {
	m := newMemStore()
	m.ledger = append(m.ledger,
		models.Payment{BookingID: 1, Amount: 8000, Currency: "EUR", PaymentMethod: models.MethodCard, TransactionType: models.TxnPayment, Status: models.PaymentAccepted},
		models.Payment{BookingID: 1, Amount: 2000, Currency: "EUR", PaymentMethod: models.MethodAgentCredit, TransactionType: models.TxnPayment, Status: models.PaymentAccepted},
		models.Payment{BookingID: 1, Amount: 1500, Currency: "EUR", TransactionType: models.TxnRefund, Status: models.PaymentAccepted},
		// Pending rows never count.
		models.Payment{BookingID: 1, Amount: 9999, Currency: "EUR", PaymentMethod: models.MethodCard, TransactionType: models.TxnPayment, Status: models.PaymentPending},
	)

	svc := BalanceService{Ledger: m.ledgerOf(), Currency: fixedCurrency("EUR")}
	balance, err := svc.BalanceOf(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balance != 8500 {
		t.Fatalf("expected balance 8500, got %d", balance)
	}
}

func TestBalanceNoCurrencyIsZero(t *testing.T) {
	m := newMemStore()
	svc := BalanceService{Ledger: m.ledgerOf(), Currency: fixedCurrency("")}
	balance, err := svc.BalanceOf(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}
}

func TestMatchTransfersAmountAndCounterpartyKeyed(t *testing.T) {
	// Two transfers from different sources with the same amount: only the
	// recorded pair matches.
	rows := transferPair(1, 2, 4000, "EUR")
	rows = append(rows, models.Payment{
		BookingID:       2,
		Amount:          4000,
		Currency:        "EUR",
		PaymentMethod:   models.MethodTransfer,
		TransactionType: models.TxnPayment,
		Transferred:     9, // no outgoing row from booking 9
		Status:          models.PaymentAccepted,
	})

	totals := MatchTransfers(2, "EUR", rows)
	if totals.Incoming != 4000 {
		t.Fatalf("expected incoming 4000, got %d", totals.Incoming)
	}
	if totals.Outgoing != 0 {
		t.Fatalf("expected outgoing 0, got %d", totals.Outgoing)
	}
}
