package notify

import (
	"context"
	"fmt"

	"github.com/thegrowthaccelerators/consulting-crm/internal/observability/metrics"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Service sends operator notifications for consultation submissions.
type Service struct {
	email       EmailSender
	provider    string
	notifyEmail string
	metrics     *metrics.IntakeMetrics
	logger      *logging.Logger
}

// NewService creates a notification service. provider names the active sender
// for metrics labels ("sendgrid", "ses", "stub").
func NewService(email EmailSender, provider, notifyEmail string, m *metrics.IntakeMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:       email,
		provider:    provider,
		notifyEmail: notifyEmail,
		metrics:     m,
		logger:      logger,
	}
}

// ConsultationReceived emails the operator about a new consultation
// submission.
func (s *Service) ConsultationReceived(ctx context.Context, sub *submissions.ContactSubmission) error {
	if s.email == nil || s.notifyEmail == "" {
		s.logger.Debug("notify: email sender not configured, skipping notification")
		return nil
	}

	pkg := sub.Package
	if pkg == "" {
		pkg = "No specific package mentioned"
	}
	submitted := sub.CreatedAt.Format("Monday, 2 January 2006, 15:04")

	body := fmt.Sprintf(`New Consultation Request

Client Information:
Name: %s
Email: %s
Package Interest: %s
Submitted: %s

Message:
%s

Next Steps: Review this submission in your admin dashboard and follow up with the client within 24 hours.
`, sub.Name, sub.Email, pkg, submitted, sub.Message)

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #2563eb; border-bottom: 2px solid #e5e7eb; padding-bottom: 10px;">New Consultation Request</h2>
<div style="background-color: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <h3 style="margin-top: 0; color: #374151;">Client Information</h3>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
  <p><strong>Package Interest:</strong> %s</p>
  <p><strong>Submitted:</strong> %s</p>
</div>
<div style="background-color: #ffffff; padding: 20px; border: 1px solid #e5e7eb; border-radius: 8px;">
  <h3 style="margin-top: 0; color: #374151;">Message</h3>
  <p style="line-height: 1.6; white-space: pre-wrap;">%s</p>
</div>
<div style="margin-top: 30px; padding: 15px; background-color: #f0f9ff; border-radius: 8px; border-left: 4px solid #2563eb;">
  <p style="margin: 0; font-size: 14px; color: #1e40af;">
    <strong>Next Steps:</strong> Review this submission in your admin dashboard and follow up with the client within 24 hours.
  </p>
</div>
<div style="margin-top: 20px; text-align: center; font-size: 12px; color: #6b7280;">
  <p>This notification was sent automatically from your Growth Accelerators consultation form.</p>
</div>
</div>`, sub.Name, sub.Email, sub.Email, pkg, submitted, sub.Message)

	msg := EmailMessage{
		To:      s.notifyEmail,
		Subject: fmt.Sprintf("New Consultation Request from %s", sub.Name),
		Body:    body,
		HTML:    html,
	}

	if err := s.email.Send(ctx, msg); err != nil {
		s.metrics.ObserveEmail(s.provider, "failed")
		s.logger.Error("notify: consultation email failed", "error", err, "submissionId", sub.ID)
		return fmt.Errorf("notify: consultation email: %w", err)
	}

	s.metrics.ObserveEmail(s.provider, "sent")
	s.logger.Info("notify: consultation email sent", "to", s.notifyEmail, "submissionId", sub.ID)
	return nil
}

// Verify reports whether the active sender is configured to deliver mail.
func (s *Service) Verify() error {
	if s.email == nil {
		return fmt.Errorf("notify: no email sender configured")
	}
	if s.notifyEmail == "" {
		return fmt.Errorf("notify: no notification recipient configured")
	}
	return nil
}

// Provider names the active sender.
func (s *Service) Provider() string {
	return s.provider
}
