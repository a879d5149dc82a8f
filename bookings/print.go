package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"tablebook/db"
	"tablebook/models"
	"tablebook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func qrSecret() []byte {
	if s := os.Getenv("QR_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("your-very-secret-key")
}

// QRPayload returns a signed payload string for the booking:
// restaurantID|bookingID|signature. The front desk can verify the
// signature offline against the shared secret.
func QRPayload(restaurantID, bookingID string) string {
	data := fmt.Sprintf("%s|%s", restaurantID, bookingID)

	h := hmac.New(sha256.New, qrSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyQRPayload reports whether sig matches the payload data.
func VerifyQRPayload(restaurantID, bookingID, sig string) bool {
	data := fmt.Sprintf("%s|%s", restaurantID, bookingID)
	h := hmac.New(sha256.New, qrSecret())
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}

// PrintBooking handles GET /api/bookings/print/:id: a PDF confirmation
// with a signed QR code, scoped to the owner's restaurant.
func (h *Handler) PrintBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	restaurantID := utils.GetRestaurantIDFromRequest(r)
	if restaurantID == "" {
		http.Error(w, "Invalid owner", http.StatusUnauthorized)
		return
	}
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{
		"bookingId":    bookingID,
		"restaurantId": restaurantID,
	}).Decode(&booking)
	if err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(QRPayload(restaurantID, bookingID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", booking.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", booking.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Time: %s", booking.Time))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("People: %d", booking.People))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking ID: %s", booking.BookingID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 10, 100, 60, 60, false, imageOpts, 0, "")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=booking-%s.pdf", booking.BookingID))
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Failed to render PDF", http.StatusInternalServerError)
	}
}
