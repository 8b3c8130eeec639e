package bookings

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// RenderTicket prints a booking as a one-page A4 ticket.
func RenderTicket(b BookingResponse, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ticket "+b.BookingRef, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		"Booking ref  : " + b.BookingRef,
		"Status       : " + string(b.Status),
		"Passenger    : " + safe(strings.TrimSpace(b.CustFirstName+" "+b.CustLastName), "-"),
		"Phone        : " + safe(b.Phone, "-"),
		"Email        : " + safe(b.Email, "-"),
		"Pick up      : " + safe(b.PickUpAddress, "-"),
	}
	if b.Trip != nil {
		lines = append(lines,
			"Route        : "+b.Trip.SourceName+" - "+b.Trip.DestinationName,
			"Departure    : "+b.Trip.DepartureDateTime.Format("2006-01-02 15:04"),
			"Coach        : "+safe(b.Trip.CoachName, "-")+" ("+safe(b.Trip.LicensePlate, "-")+")",
			"Driver       : "+safe(b.Trip.DriverName, "-"),
		)
	} else {
		lines = append(lines, "Travel date  : "+b.TravelDate)
	}
	lines = append(lines, "Seats        : "+seatList(b.SeatNumber))

	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+formatMoney(b.TotalPayment, currency))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Payment: %s / %s", b.PaymentMethod, b.PaymentStatus))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please be at the pick up point 15 minutes before departure and show this ticket to the driver.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func safe(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func seatList(seats []int) string {
	if len(seats) == 0 {
		return "-"
	}
	return joinInts(seats)
}

// formatMoney -> "360.000 VND"
func formatMoney(v int64, currency string) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out) + " " + currency
	}
	return string(out) + " " + currency
}
