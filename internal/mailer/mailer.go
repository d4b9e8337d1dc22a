package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"shf-backend/internal/config"
	"shf-backend/internal/models"
)

// Send delivers a single message over SMTP. It is a package variable so tests
// can intercept delivery attempts; every caller treats a failure as
// log-and-continue, never as a request failure.
var Send = sendSMTP

func sendSMTP(cfg *config.Config, to []string, subject, htmlBody string) error {
	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	var msg strings.Builder
	msg.WriteString("From: " + cfg.EmailFrom + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return smtp.SendMail(addr, auth, cfg.EmailFrom, to, []byte(msg.String()))
}

func SendContactAutoResponse(cfg *config.Config, to, name string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for reaching out to Southern Hemisphere Foundation.</p>
<p>Your message has been received successfully, and our team will get back to you within 24-48 hours.</p>
<p>Warm regards,<br><strong>Southern Hemisphere Foundation</strong></p>`, name)

	return Send(cfg, []string{to}, "Thank You for Contacting Southern Hemisphere Foundation", body)
}

func SendContactNotification(cfg *config.Config, m *models.ContactMessage) error {
	body := fmt.Sprintf(`<p>New contact message received.</p>
<p><strong>Name:</strong> %s<br>
<strong>Email:</strong> %s<br>
<strong>Phone:</strong> %s<br>
<strong>Subject:</strong> %s</p>
<p>%s</p>`, m.Name, m.Email, m.Phone, m.Subject, m.Message)

	return Send(cfg, []string{cfg.AdminEmail}, "New Contact Message: "+m.Subject, body)
}

func SendDonationConfirmation(cfg *config.Config, d *models.Donation) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Thank you for your generous donation of %.0f %s to Southern Hemisphere Foundation.</p>
<p>Your transaction reference is <strong>%s</strong>.</p>
<p>Warm regards,<br><strong>Southern Hemisphere Foundation</strong></p>`,
		d.DonorName, d.Amount, d.Currency, d.TransactionID)

	return Send(cfg, []string{d.DonorEmail}, "Thank You for Your Donation", body)
}

func SendDonationNotification(cfg *config.Config, d *models.Donation) error {
	body := fmt.Sprintf(`<p>A donation has been completed.</p>
<p><strong>Donor:</strong> %s (%s)<br>
<strong>Amount:</strong> %.0f %s<br>
<strong>Payment method:</strong> %s<br>
<strong>Transaction:</strong> %s</p>
<p>%s</p>`,
		d.DonorName, d.DonorEmail, d.Amount, d.Currency, d.PaymentMethod, d.TransactionID, d.Notes)

	return Send(cfg, []string{cfg.AdminEmail}, "Donation Completed: "+d.TransactionID, body)
}
