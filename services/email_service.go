package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/tidyhome/homeservices-api/config"
	"github.com/tidyhome/homeservices-api/utils"
)

// ErrEmailNotConfigured is returned when no provider key is set
var ErrEmailNotConfigured = errors.New("email provider is not configured")

// BookingEmail carries the fields of a booking confirmation
type BookingEmail struct {
	To           string  `json:"to" binding:"required,email"`
	CustomerName string  `json:"customer_name" binding:"required"`
	BookingID    uint    `json:"booking_id"`
	ServiceType  string  `json:"service_type" binding:"required"`
	Date         string  `json:"date" binding:"required"`
	TimeSlot     string  `json:"time_slot" binding:"required"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	TotalPrice   float64 `json:"total_price"`
	Address      string  `json:"address"`
}

// EmailSender sends transactional email
type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, email BookingEmail) (string, error)
}

// EmailService sends mail through the Resend API
type EmailService struct {
	client      *resend.Client
	from        string
	companyName string
}

var emailSenderInstance EmailSender

// NewEmailService builds an EmailService from configuration
func NewEmailService(cfg *config.Config, httpClient *http.Client) *EmailService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &EmailService{
		client:      resend.NewCustomClient(httpClient, cfg.ResendAPIKey),
		from:        cfg.EmailFrom,
		companyName: cfg.CompanyName,
	}
}

// WithBaseURL points the client at another endpoint (tests). An unparsable URL is logged and ignored.
func (s *EmailService) WithBaseURL(baseURL string) *EmailService {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		utils.Logger.WithField("base_url", baseURL).WithError(err).Warn("Ignoring invalid email base URL")
		return s
	}
	s.client.BaseURL = u
	return s
}

// GetEmailSender returns the active sender
func GetEmailSender() EmailSender {
	return emailSenderInstance
}

// SetEmailSender replaces the active sender
func SetEmailSender(s EmailSender) {
	emailSenderInstance = s
}

var bookingTemplate = template.Must(template.New("booking").Parse(`<p>Hi {{.CustomerName}},</p>
<p>Thanks for booking with {{.Company}}. Here are your details:</p>
<ul>
<li>Service: {{.Service}}</li>
<li>Date: {{.Date}}, {{.TimeSlot}}</li>
<li>Rooms: {{.Bedrooms}} bedroom(s), {{.Bathrooms}} bathroom(s)</li>
{{if .Address}}<li>Address: {{.Address}}</li>{{end}}
<li>Total: £{{printf "%.2f" .TotalPrice}}</li>
</ul>
<p>We'll be in touch to confirm your cleaner.</p>`))

// RenderBookingConfirmation renders the HTML body for a booking confirmation
func (s *EmailService) RenderBookingConfirmation(email BookingEmail) (string, error) {
	var buf bytes.Buffer
	err := bookingTemplate.Execute(&buf, struct {
		BookingEmail
		Company string
		Service string
	}{email, s.companyName, strings.ReplaceAll(email.ServiceType, "_", " ")})
	if err != nil {
		return "", fmt.Errorf("render booking email: %w", err)
	}
	return buf.String(), nil
}

// SendBookingConfirmation sends the confirmation and returns the provider message id
func (s *EmailService) SendBookingConfirmation(ctx context.Context, email BookingEmail) (string, error) {
	if strings.TrimSpace(s.client.ApiKey) == "" {
		return "", ErrEmailNotConfigured
	}

	html, err := s.RenderBookingConfirmation(email)
	if err != nil {
		return "", err
	}

	subject := fmt.Sprintf("Your %s booking", s.companyName)
	if email.BookingID != 0 {
		subject = fmt.Sprintf("%s #%d", subject, email.BookingID)
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email.To},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	return sent.Id, nil
}
