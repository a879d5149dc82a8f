package bookings

import (
	"fmt"
	"net/smtp"
	"os"

	"tablebook/models"
)

// Mailer sends booking confirmations over plain SMTP. Delivery is best
// effort: callers fire it after the booking is persisted and only log
// failures.
type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		Host:     host,
		Port:     port,
		From:     os.Getenv("EMAIL_USER"),
		Password: os.Getenv("EMAIL_PASSWORD"),
	}
}

func (m *Mailer) SendBookingEmail(to string, b models.Booking) error {
	if m.From == "" {
		return fmt.Errorf("mailer not configured")
	}
	msg := []byte(confirmationMessage(to, b))
	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, msg)
}

func confirmationMessage(to string, b models.Booking) string {
	message := b.Message
	if message == "" {
		message = "N/A"
	}
	return fmt.Sprintf(
		"To: %s\r\nSubject: Booking Confirmation\r\n\r\n"+
			"Hi %s,\r\n\r\n"+
			"Your booking has been confirmed:\r\n"+
			"  Date: %s\r\n"+
			"  Time: %s\r\n"+
			"  People: %d\r\n"+
			"  Message: %s\r\n\r\n"+
			"Thank you for choosing us!\r\n",
		to, b.Name, b.Date, b.Time, b.People, message)
}
