package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ferryops/internal/http/handlers"
	"ferryops/internal/http/middleware"
)

// NewRouter mounts the API on a fresh gin engine. Everything except health,
// auth and the db check requires a bearer token.
func NewRouter(a *handlers.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	root := r.Group("/api")
	root.GET("/health", a.Health)
	root.GET("/db-check", a.DBCheck)

	auth := root.Group("/auth")
	auth.POST("/login", a.Login)
	auth.POST("/register", a.Register)

	secured := root.Group("")
	secured.Use(middleware.Actor([]byte(a.Env.JWTSecret)))
	{
		bookings := secured.Group("/bookings")
		bookings.POST("", a.CreateBooking)
		bookings.GET("/:id", a.GetBooking)
		bookings.GET("/by-order/:batch", a.GetBookingByOrder)
		bookings.GET("/:id/balance", a.GetBalance)
		bookings.GET("/:id/currency", a.GetCurrency)
		bookings.GET("/:id/troubles", a.GetTroubles)
		bookings.GET("/:id/cabin-binds", a.GetCabinBinds)
		bookings.GET("/:id/payments", a.GetPaymentHistory)
		bookings.GET("/:id/edit-check", a.EditCheck)
		bookings.GET("/:id/documents-edit-check", a.DocumentsEditCheck)
		bookings.GET("/:id/confirmation", a.GetConfirmationPDF)
		bookings.PUT("/:id/activate", a.ActivateBooking)
		bookings.POST("/passengers", a.BindPassengers)
		bookings.POST("/vehicles", a.BindVehicle)
		bookings.POST("/services", a.BindServices)

		secured.PUT("/vehicles/:id", a.EditVehicle)
		secured.GET("/orders/:batch/paid", a.GetPaidByOrder)

		payments := secured.Group("/payments")
		payments.POST("", a.RecordPayment)
		payments.POST("/refund", a.RecordRefund)
		payments.POST("/transfer", a.RecordTransfer)

		// Moving money and inventory between bookings is back office only.
		admin := secured.Group("", middleware.RequireAdmin())
		admin.POST("/rebookings", a.Rebook)
		admin.POST("/rebookings/destination", a.CreateRebookingDestination)
		admin.PUT("/bookings/:id/voyage", a.ChangeVoyage)
		admin.POST("/bookings/:id/cancel", a.CancelBooking)
		admin.DELETE("/bookings/:id", a.DeleteBooking)
		admin.GET("/bookings/:id/rebookings", a.GetRebookingHistory)
	}

	return r
}
