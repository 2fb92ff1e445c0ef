package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"ferryops/internal/domain/models"
)

func TestLedgerRowsScansAllShapes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "booking_id", "order_batch", "amount", "currency", "payment_method",
		"transaction_type", "source", "transferred", "status", "user_id", "description", "created_at",
	}).
		AddRow(1, 7, "batch-1", 5000, "EUR", "card", "payment", 0, 0, "accepted", 3, "", created).
		AddRow(2, 7, "", 3000, "EUR", "", "transfer", 7, 9, "accepted", 3, "moved", created.Add(time.Minute))

	mock.ExpectQuery("FROM booking_payments").
		WithArgs(int64(7), int64(7), int64(7)).
		WillReturnRows(rows)

	got, err := PaymentRepository{DB: db}.LedgerRows(7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].PaymentMethod != models.MethodCard || got[0].Amount != 5000 {
		t.Fatalf("bad first row: %+v", got[0])
	}
	if got[1].TransactionType != models.TxnTransfer || got[1].Source != 7 || got[1].Transferred != 9 {
		t.Fatalf("bad transfer row: %+v", got[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAppendInsertsLedgerRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO booking_payments").
		WithArgs(int64(7), "batch-1", int64(5000), "EUR", "card", "payment",
			int64(0), int64(0), "accepted", int64(3), "deposit").
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := PaymentRepository{DB: db}.Append(models.Payment{
		BookingID:       7,
		OrderBatch:      "batch-1",
		Amount:          5000,
		Currency:        "EUR",
		PaymentMethod:   models.MethodCard,
		TransactionType: models.TxnPayment,
		Status:          models.PaymentAccepted,
		UserID:          3,
		Description:     "deposit",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingIDsForOrderBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("GROUP BY booking_id").
		WithArgs("batch-1").
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow(7).AddRow(8))

	ids, err := PaymentRepository{DB: db}.BookingIDsForOrderBatch("batch-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 8 {
		t.Fatalf("expected [7 8], got %v", ids)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
