package utils

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"os"
	"strings"

	"camstore-backend/models"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

// quotationSubject is the subject line of the shop notification.
func quotationSubject(q models.QuotationRequest) string {
	kind := "Quotation request"
	if q.Kind == models.QuotationKindBooking {
		kind = "Site visit booking"
	}
	return fmt.Sprintf("%s from %s (%s)", kind, q.Name, q.Phone)
}

func quotationBody(q models.QuotationRequest) string {
	var b strings.Builder
	b.WriteString("<h2>" + html.EscapeString(quotationSubject(q)) + "</h2><table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, html.EscapeString(value))
	}
	row("Name", q.Name)
	row("Phone", q.Phone)
	row("Email", q.Email)
	row("City", q.City)
	row("Address", q.Address)
	row("Property", q.PropertyType)
	if q.CameraCount > 0 {
		row("Cameras", fmt.Sprintf("%d", q.CameraCount))
	}
	if q.Budget.Valid {
		row("Budget", "₹"+q.Budget.Decimal.StringFixed(2))
	}
	row("Preferred date", q.PreferredDate)
	row("Message", q.Message)
	b.WriteString("</table>")
	return b.String()
}

// SendQuotationNotification tells the shop about a new enquiry. Runs in the
// background; failures are only logged.
func SendQuotationNotification(shopEmail string, q models.QuotationRequest) {
	if shopEmail == "" {
		return
	}
	go func() {
		if err := SendEmail(shopEmail, quotationSubject(q), quotationBody(q)); err != nil {
			log.Printf("Failed to send quotation notification for %s: %v", q.ID, err)
		}
	}()
}

// SendQuotationAcknowledgement confirms receipt to the customer when they left an email.
func SendQuotationAcknowledgement(q models.QuotationRequest) {
	if q.Email == "" {
		return
	}
	go func() {
		subject := "We received your request"
		body := fmt.Sprintf(`<h2>Thank you, %s!</h2>
<p>Our team will call you on %s shortly to discuss your CCTV requirements.</p>`,
			html.EscapeString(strings.Split(q.Name, " ")[0]), html.EscapeString(q.Phone))
		if err := SendEmail(q.Email, subject, body); err != nil {
			log.Printf("Failed to send acknowledgement to %s: %v", q.Email, err)
		}
	}()
}
