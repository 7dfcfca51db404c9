package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/config"
)

const resendSendURL = "https://api.resend.com/emails"

// Mailer sends a formatted notification to a list of recipients.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// ResendMailer talks to the Resend transactional email API.
type ResendMailer struct {
	apiKey    string
	fromEmail string
	sendURL   string
	client    *http.Client
}

func NewResendMailer(apiKey, fromEmail string) *ResendMailer {
	return &ResendMailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		sendURL:   resendSendURL,
		client: &http.Client{
			Timeout: config.MailTimeout,
		},
	}
}

type resendSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	body, err := json.Marshal(resendSendRequest{
		From:    m.fromEmail,
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.sendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		return fmt.Errorf("send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send failed with status %d", resp.StatusCode)
	}

	log.Info().
		Int("recipients", len(to)).
		Dur("elapsed", elapsed).
		Msg("notification email sent")

	return nil
}

// LeadNotificationSubject formats the subject line for a new submission.
func LeadNotificationSubject(fullName string) string {
	return "Yeni Form Başvurusu: " + fullName
}

// LeadNotificationBody renders the HTML body for a new submission.
func LeadNotificationBody(fullName, email, phone string) string {
	fullName = html.EscapeString(fullName)
	email = html.EscapeString(email)
	phone = html.EscapeString(phone)

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #0d9488; border-bottom: 2px solid #0d9488; padding-bottom: 10px;">Yeni Form Başvurusu</h2>
  <p style="font-size: 16px; color: #333;">Flow Temel Koçluk Okulu için yeni bir başvuru alındı:</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr>
      <td style="padding: 10px; border: 1px solid #ddd; background: #f9f9f9; font-weight: bold; width: 120px;">Ad Soyad</td>
      <td style="padding: 10px; border: 1px solid #ddd;">%s</td>
    </tr>
    <tr>
      <td style="padding: 10px; border: 1px solid #ddd; background: #f9f9f9; font-weight: bold;">E-posta</td>
      <td style="padding: 10px; border: 1px solid #ddd;"><a href="mailto:%s" style="color: #0d9488;">%s</a></td>
    </tr>
    <tr>
      <td style="padding: 10px; border: 1px solid #ddd; background: #f9f9f9; font-weight: bold;">Telefon</td>
      <td style="padding: 10px; border: 1px solid #ddd;"><a href="tel:%s" style="color: #0d9488;">%s</a></td>
    </tr>
  </table>
  <p style="font-size: 14px; color: #666; margin-top: 20px;">Bu e-posta Flow Coaching &amp; Leadership Institute web sitesinden otomatik olarak gönderilmiştir.</p>
</div>`, fullName, email, email, phone, phone)
}
