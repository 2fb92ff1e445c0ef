package models

import "time"

// Transaction types on the payment ledger.
const (
	TxnPayment  = "payment"
	TxnTransfer = "transfer"
	TxnRefund   = "refund"
)

// Payment methods.
const (
	MethodCard        = "card"
	MethodAgentCredit = "agent_credit"
	MethodTransfer    = "transfer"
)

// Payment statuses.
const (
	PaymentAccepted = "accepted"
	PaymentPending  = "pending"
	PaymentRejected = "rejected"
)

// Payment is an append-only ledger row, never mutated after acceptance.
//
// A transfer between bookings is two rows: the outgoing row
// (TransactionType=transfer, Source=A, Transferred=B) and the incoming
// counterpart (TransactionType=payment, PaymentMethod=transfer, BookingID=B,
// Transferred=A) with equal amount and currency.
type Payment struct {
	ID              int64
	BookingID       int64
	OrderBatch      string
	Amount          int64
	Currency        string
	PaymentMethod   string
	TransactionType string
	Source          int64
	Transferred     int64
	Status          string
	UserID          int64
	Description     string
	CreatedAt       time.Time
}
