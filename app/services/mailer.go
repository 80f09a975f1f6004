package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/utils/format"
)

// EmailSender is what services need from a mailer; tests swap in a fake.
type EmailSender interface {
	SendHTMLEmail(to, subject, htmlBody string) error
}

type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{config: cfg}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg strings.Builder
	for k, v := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n" + htmlBody)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		zap.L().Error("failed to send email", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func BuildVerificationEmailBody(verifyURL string) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <body style="font-family: Arial, sans-serif; color: #333;">
            <div style="max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
                <h2>Verify your email address</h2>
                <p>Thanks for creating an account. Click the link below to verify your email address:</p>
                <p><a href="%s">%s</a></p>
                <p style="font-size: 0.8em; color: #777;">If you did not create this account, you can ignore this email.</p>
            </div>
        </body>
        </html>`, verifyURL, verifyURL)
}

func BuildOrderConfirmationBody(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.OrderItems {
		fmt.Fprintf(&rows,
			`<tr><td>%s</td><td align="center">%d</td><td align="right">%s</td><td align="right">%s</td></tr>`,
			item.ProductName, item.Qty, format.Money(item.BasePrice), format.Money(item.Subtotal))
	}

	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <body style="font-family: Arial, sans-serif; color: #333;">
            <div style="max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
                <h2>Order %s confirmed</h2>
                <p>We received your order and will start processing it as soon as the payment settles.</p>
                <table width="100%%" cellpadding="6" style="border-collapse: collapse;">
                    <tr><th align="left">Product</th><th>Qty</th><th align="right">Price</th><th align="right">Subtotal</th></tr>
                    %s
                    <tr><td colspan="3" align="right"><strong>Total</strong></td><td align="right"><strong>%s</strong></td></tr>
                </table>
            </div>
        </body>
        </html>`, order.Number, rows.String(), format.Money(order.TotalAmount))
}
