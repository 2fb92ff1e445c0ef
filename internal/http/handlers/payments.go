package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferryops/internal/http/middleware"
	"ferryops/internal/services"
	"ferryops/internal/utils"
)

// idempotencyKeyHeader guards payment submission against client retries.
const idempotencyKeyHeader = "Idempotency-Key"

// replayGuard reads the Idempotency-Key header. Returns the key and false
// (having responded) when it was already consumed. The key is only consumed
// by markUsed after the ledger append succeeds; a failed submission leaves it
// free for the client's retry.
func (a *API) replayGuard(c *gin.Context) (string, bool) {
	key := c.GetHeader(idempotencyKeyHeader)
	seen, err := a.Idem.Seen(key)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "idempotency check failed", err)
		return key, false
	}
	if seen {
		RespondError(c, http.StatusConflict, "duplicate request: idempotency key already used", nil)
		return key, false
	}
	return key, true
}

func (a *API) markUsed(c *gin.Context, key string) {
	if err := a.Idem.MarkUsed(key); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "payments", "idempotency_mark_failed", err.Error())
	}
}

// POST /api/payments
func (a *API) RecordPayment(c *gin.Context) {
	var req services.PaymentRequest
	if !a.bindAndValidate(c, &req) {
		return
	}
	key, ok := a.replayGuard(c)
	if !ok {
		return
	}

	id, err := a.Ledger.RecordPayment(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	a.markUsed(c, key)
	utils.LogEvent(middleware.GetRequestID(c), "payments", "record_payment",
		utils.FormatAmount(req.Amount, req.Currency))
	c.JSON(http.StatusCreated, gin.H{"payment_id": id})
}

// POST /api/payments/refund
func (a *API) RecordRefund(c *gin.Context) {
	var req services.RefundRequest
	if !a.bindAndValidate(c, &req) {
		return
	}
	key, ok := a.replayGuard(c)
	if !ok {
		return
	}

	id, err := a.Ledger.RecordRefund(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	a.markUsed(c, key)
	utils.LogEvent(middleware.GetRequestID(c), "payments", "record_refund",
		utils.FormatAmount(req.Amount, req.Currency))
	c.JSON(http.StatusCreated, gin.H{"payment_id": id})
}

// POST /api/payments/transfer
func (a *API) RecordTransfer(c *gin.Context) {
	var req services.TransferRequest
	if !a.bindAndValidate(c, &req) {
		return
	}
	key, ok := a.replayGuard(c)
	if !ok {
		return
	}

	if err := a.Ledger.RecordTransfer(middleware.GetActor(c), req); err != nil {
		RespondDomainError(c, err)
		return
	}
	a.markUsed(c, key)
	utils.LogEvent(middleware.GetRequestID(c), "payments", "record_transfer",
		utils.FormatAmount(req.Amount, req.Currency))
	c.JSON(http.StatusCreated, gin.H{"status": "transferred"})
}

// GET /api/bookings/:id/payments
func (a *API) GetPaymentHistory(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		return
	}
	history, err := a.Ledger.History(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	first, last, err := a.Ledger.PaymentDates(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking_id":    id,
		"payments":      history,
		"first_payment": first,
		"last_payment":  last,
	})
}

// GET /api/orders/:batch/paid
func (a *API) GetPaidByOrder(c *gin.Context) {
	batch := c.Param("batch")
	if batch == "" {
		RespondError(c, http.StatusBadRequest, "invalid batch", nil)
		return
	}
	paid, err := a.Bookings.PaidByOrder(batch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_batch": batch, "paid": paid})
}
