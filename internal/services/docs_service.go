package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"ferryops/internal/utils"
)

// DocsService renders the customer booking confirmation PDF.
type DocsService struct {
	Bookings   BookingStore
	Passengers PassengerStore
	Vehicles   VehicleStore
	Services   ServiceStore
	Currency   CurrencyResolver
	Balance    BalanceReader
	Invoicing  BookingService
	RequestID  string
}

type confirmationData struct {
	Number     string
	VoyageID   int64
	Passengers []string
	Vehicles   []string
	Services   []string
	Invoice    string
	Paid       string
}

// GenerateConfirmation builds the confirmation for a booking and returns the
// PDF bytes with a suggested filename.
func (s DocsService) GenerateConfirmation(bookingID int64) ([]byte, string, error) {
	data, err := s.loadConfirmationData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(data)
}

func (s DocsService) loadConfirmationData(bookingID int64) (confirmationData, error) {
	var out confirmationData

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return out, err
	}
	out.Number = b.Number
	out.VoyageID = b.VoyageID

	currency, err := s.Currency.CurrencyOf(bookingID)
	if err != nil {
		return out, err
	}

	passengers, err := s.Passengers.ActiveByBooking(bookingID)
	if err != nil {
		return out, err
	}
	for _, p := range passengers {
		out.Passengers = append(out.Passengers, fmt.Sprintf("%s %s, %s, cabin %d, %s",
			p.LastName, p.FirstName, p.TariffType, p.CabinID,
			utils.FormatAmount(p.Tariff-p.Discounts, p.Currency)))
	}

	vehicles, err := s.Vehicles.ActiveByBooking(bookingID)
	if err != nil {
		return out, err
	}
	for _, v := range vehicles {
		out.Vehicles = append(out.Vehicles, fmt.Sprintf("%s %s, reg %s, %s",
			v.Make, v.Model, v.RegistrationNumber,
			utils.FormatAmount(v.Tariff-v.Discounts, v.Currency)))
	}

	services, err := s.Services.ActiveByBooking(bookingID)
	if err != nil {
		return out, err
	}
	for _, a := range services {
		out.Services = append(out.Services, fmt.Sprintf("service %d, %s",
			a.ServiceID, utils.FormatAmount(a.Tariff-a.Discounts, a.Currency)))
	}

	invoice, err := s.Invoicing.InvoiceTotal(bookingID)
	if err != nil {
		return out, err
	}
	paid, err := s.Balance.BalanceOf(bookingID)
	if err != nil {
		return out, err
	}
	if currency == "" {
		out.Invoice = "0.00"
		out.Paid = "0.00"
	} else {
		out.Invoice = utils.FormatAmount(invoice, currency)
		out.Paid = utils.FormatAmount(paid, currency)
	}
	return out, nil
}

func buildConfirmationPDF(d confirmationData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Booking number : %s", d.Number))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Voyage         : %d", d.VoyageID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Issued         : %s", utils.FormatDateTime(utils.NowUTC())))
	pdf.Ln(10)

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for i, line := range lines {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d) %s", i+1, line), "", "", false)
		}
		pdf.Ln(3)
	}
	section("Passengers:", d.Passengers)
	section("Vehicles:", d.Vehicles)
	section("Additional services:", d.Services)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Invoice total: "+d.Invoice)
	pdf.Ln(8)
	pdf.Cell(0, 8, "Paid: "+d.Paid)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this confirmation together with a passport at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("CONFIRMATION_%s.pdf", d.Number)
	return buf.Bytes(), filename, nil
}
