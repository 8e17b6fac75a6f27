package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// Sender is the outbound email contract services depend on
type Sender interface {
	SendPasswordResetEmail(toEmail, token string) error
	SendStaffInvitation(inv StaffInvitation) error
	SendLowStockAlert(toEmail string, products []LowStockProduct) error
	SendOrderReceipt(toEmail string, receipt OrderReceipt) error
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// StaffInvitation carries the data for a staff welcome email
type StaffInvitation struct {
	Email             string
	FirstName         string
	LastName          string
	Role              string
	TemporaryPassword string
}

// LowStockProduct is one line of a low-stock alert
type LowStockProduct struct {
	Name      string
	Current   float64
	Threshold float64
	Unit      string
}

// OrderReceipt carries the data for a purchase receipt email
type OrderReceipt struct {
	OrderNumber  string
	CustomerName string
	Items        []ReceiptItem
	SubTotal     float64
	Tax          float64
	Total        float64
}

// ReceiptItem is one line of a receipt
type ReceiptItem struct {
	Name     string
	Quantity float64
	Unit     string
	Price    float64
	Total    float64
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.render("password_reset", passwordResetTemplate, struct {
		Email    string
		ResetURL string
		AppName  string
	}{
		Email:    toEmail,
		ResetURL: resetURL,
		AppName:  appName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - " + appName
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// SendStaffInvitation sends the welcome email with temporary credentials.
// Callers treat a failure here as fatal to the invitation and roll back the
// account they just created.
func (s *EmailService) SendStaffInvitation(inv StaffInvitation) error {
	htmlContent, err := s.render("staff_invitation", staffInvitationTemplate, struct {
		StaffInvitation
		AppName      string
		DashboardURL string
	}{
		StaffInvitation: inv,
		AppName:         appName,
		DashboardURL:    s.config.FrontendURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Welcome to %s - Your Staff Account", appName)
	message := s.buildHTMLEmail(inv.Email, subject, htmlContent)

	return s.sendEmail(inv.Email, message)
}

// SendLowStockAlert emails the configured recipient the list of products at
// or below their low-stock threshold.
func (s *EmailService) SendLowStockAlert(toEmail string, products []LowStockProduct) error {
	htmlContent, err := s.render("low_stock_alert", lowStockAlertTemplate, struct {
		Products []LowStockProduct
		AppName  string
	}{
		Products: products,
		AppName:  appName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Low Stock Alert - %d product(s) need restocking", len(products))
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// SendOrderReceipt sends a purchase receipt to the customer
func (s *EmailService) SendOrderReceipt(toEmail string, receipt OrderReceipt) error {
	htmlContent, err := s.render("order_receipt", orderReceiptTemplate, struct {
		OrderReceipt
		AppName string
	}{
		OrderReceipt: receipt,
		AppName:      appName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your %s Receipt - Order %s", appName, receipt.OrderNumber)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	// Gmail requires TLS authentication
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// render parses and executes one of the HTML templates
func (s *EmailService) render(name, tmplText string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplText)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const appName = "ZYMOUNE"
