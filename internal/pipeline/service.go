// Package pipeline moves leads through the funnel: consultation submissions
// become prospects, and submissions or prospects become paying clients.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/clients"
	"github.com/thegrowthaccelerators/consulting-crm/internal/prospects"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

var (
	// ErrAlreadyProspect signals a submission whose email already has a
	// prospect record.
	ErrAlreadyProspect = errors.New("submission email already tracked as prospect")
	// ErrAlreadyClient signals a submission whose email already has a
	// client record.
	ErrAlreadyClient = errors.New("submission email already tracked as client")
)

// noteExcerptLen caps how much of the original message is carried into
// conversion notes.
const noteExcerptLen = 200

// DefaultPriceForPackage maps a consultation package to its standard monthly
// price, as displayed on the marketing site.
func DefaultPriceForPackage(pkg string) string {
	switch pkg {
	case "startup":
		return "£750"
	case "growth":
		return "£2,000"
	case "ongoing":
		return "£1,500"
	}
	return "£750"
}

// Service coordinates conversions across the submission, prospect and
// client stores.
type Service struct {
	submissions submissions.Repository
	prospects   prospects.Repository
	clients     clients.Repository
	logger      *logging.Logger
}

// NewService creates a pipeline service.
func NewService(subs submissions.Repository, pros prospects.Repository, cls clients.Repository, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		submissions: subs,
		prospects:   pros,
		clients:     cls,
		logger:      logger,
	}
}

// ConvertToProspect turns a consultation submission into a prospect. A
// submission whose email already matches a prospect is rejected with
// ErrAlreadyProspect; matching is by email, so the same submission cannot be
// converted twice down this path.
func (s *Service) ConvertToProspect(ctx context.Context, submissionID string) (*prospects.Prospect, error) {
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	existing, err := s.prospects.FindByEmail(ctx, sub.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyProspect
	}

	p, err := s.prospects.Create(ctx, &prospects.CreateProspectRequest{
		SubmissionID: sub.ID,
		Name:         sub.Name,
		Email:        sub.Email,
		Source:       prospects.DefaultSource,
		Notes:        "Original inquiry: " + excerpt(sub.Message),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("submission converted to prospect",
		"submissionId", sub.ID, "prospectId", p.ID, "email", p.Email)
	return p, nil
}

// ConvertToClient turns a consultation submission directly into a client,
// pricing the engagement from the submission's package. A submission whose
// email already matches a client is rejected with ErrAlreadyClient.
func (s *Service) ConvertToClient(ctx context.Context, submissionID string) (*clients.Client, error) {
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	existing, err := s.clients.FindByEmail(ctx, sub.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyClient
	}

	pkg := sub.Package
	if pkg == "" {
		pkg = "startup"
	}
	notes := fmt.Sprintf("Converted from consultation submission on %s. Original message: %s",
		time.Now().Format("02/01/2006"), excerpt(sub.Message))

	c, err := s.clients.Create(ctx, &clients.CreateClientRequest{
		SubmissionID: sub.ID,
		Name:         sub.Name,
		Email:        sub.Email,
		Package:      pkg,
		MonthlyValue: DefaultPriceForPackage(sub.Package),
		Notes:        notes,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("submission converted to client",
		"submissionId", sub.ID, "clientId", c.ID, "monthlyValue", c.MonthlyValue)
	return c, nil
}

// UnconvertedSubmissions lists submissions whose email matches neither a
// prospect nor a client, newest first.
func (s *Service) UnconvertedSubmissions(ctx context.Context) ([]*submissions.ContactSubmission, error) {
	subs, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*submissions.ContactSubmission, 0, len(subs))
	for _, sub := range subs {
		p, err := s.prospects.FindByEmail(ctx, sub.Email)
		if err != nil {
			return nil, err
		}
		if p != nil {
			continue
		}
		c, err := s.clients.FindByEmail(ctx, sub.Email)
		if err != nil {
			return nil, err
		}
		if c != nil {
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

// excerpt caps the message at noteExcerptLen and always marks the cut, as
// the conversion notes have since the first version of the admin UI.
func excerpt(message string) string {
	if len(message) > noteExcerptLen {
		message = strings.ToValidUTF8(message[:noteExcerptLen], "")
	}
	return message + "..."
}
