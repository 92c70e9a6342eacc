// Package seed loads fixed sample data at startup so the admin dashboard is
// populated on a fresh process. The store is in-memory; everything here is
// recreated on every boot.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/clients"
	"github.com/thegrowthaccelerators/consulting-crm/internal/interactions"
	"github.com/thegrowthaccelerators/consulting-crm/internal/prospects"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
	"github.com/thegrowthaccelerators/consulting-crm/internal/users"
	"github.com/thegrowthaccelerators/consulting-crm/pkg/logging"
)

// Stores groups the repositories the seeder writes to.
type Stores struct {
	Submissions  submissions.Repository
	Prospects    prospects.Repository
	Clients      clients.Repository
	Interactions interactions.Repository
	Users        users.Repository
}

// Apply loads the demo dataset. It is not idempotent and is meant to run
// once against empty stores.
func Apply(ctx context.Context, s Stores, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}
	now := time.Now().UTC()

	if _, err := s.Users.Create(ctx, "admin", "admin"); err != nil {
		return fmt.Errorf("seed: admin user: %w", err)
	}

	demoSubs := []*submissions.CreateSubmissionRequest{
		{
			Name:    "Priya Nair",
			Email:   "priya@nairlogistics.co.uk",
			Message: "We're a logistics startup looking for help structuring our first sales team.",
			Package: "startup",
		},
		{
			Name:    "Tom Whitfield",
			Email:   "tom@whitfieldbrands.com",
			Message: "Revenue has plateaued around £40k/month and we need a growth plan.",
			Package: "growth",
		},
		{
			Name:    "Sarah Okafor",
			Email:   "sarah@okaforpartners.co.uk",
			Message: "Interested in ongoing advisory support for our leadership team.",
			Package: "ongoing",
		},
	}
	for _, req := range demoSubs {
		if _, err := s.Submissions.Create(ctx, req); err != nil {
			return fmt.Errorf("seed: submission: %w", err)
		}
	}

	overdue := now.Add(-3 * 24 * time.Hour)
	dueSoon := now.Add(2 * 24 * time.Hour)
	demoProspects := []*prospects.CreateProspectRequest{
		{
			Name:             "Tom Whitfield",
			Email:            "tom@whitfieldbrands.com",
			Company:          "Whitfield Brands",
			Status:           prospects.StatusQualified,
			Priority:         prospects.PriorityHigh,
			NextFollowUpDate: &overdue,
			Notes:            "Original inquiry: Revenue has plateaued around £40k/month and we need a growth plan.",
		},
		{
			Name:             "James Liu",
			Email:            "james@liuconsulting.com",
			Company:          "Liu Consulting",
			Status:           prospects.StatusContacted,
			NextFollowUpDate: &dueSoon,
			Source:           "referral",
			Notes:            "Referred by an existing client.",
		},
	}
	seededProspects := make([]*prospects.Prospect, 0, len(demoProspects))
	for _, req := range demoProspects {
		p, err := s.Prospects.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("seed: prospect: %w", err)
		}
		seededProspects = append(seededProspects, p)
	}

	demoClients := []*clients.CreateClientRequest{
		{
			Name:         "Amelia Bright",
			Email:        "amelia@brightretail.co.uk",
			Company:      "Bright Retail",
			Package:      "ongoing",
			MonthlyValue: "£1,500",
		},
		{
			Name:         "Daniel Kovacs",
			Email:        "daniel@kovacsmedia.com",
			Company:      "Kovacs Media",
			Package:      "growth",
			MonthlyValue: "£2,000",
		},
		{
			Name:    "Holly Tran",
			Email:   "holly@transtudio.co.uk",
			Company: "Tran Studio",
			Package: "startup",
			Status:  clients.StatusPaused,
		},
	}
	for _, req := range demoClients {
		if _, err := s.Clients.Create(ctx, req); err != nil {
			return fmt.Errorf("seed: client: %w", err)
		}
	}

	actionDate := now.Add(-24 * time.Hour)
	demoInteractions := []*interactions.CreateInteractionRequest{
		{
			ProspectID:     seededProspects[0].ID,
			Type:           interactions.TypeCall,
			Subject:        "Discovery call",
			Content:        "Walked through current sales funnel; strong fit for the growth package.",
			Outcome:        interactions.OutcomeFollowUpNeeded,
			NextAction:     "Send proposal with pricing options",
			NextActionDate: &actionDate,
		},
		{
			ProspectID: seededProspects[1].ID,
			Type:       interactions.TypeEmail,
			Content:    "Sent intro email with case studies.",
			Outcome:    interactions.OutcomeNeutral,
		},
	}
	for _, req := range demoInteractions {
		if _, err := s.Interactions.Create(ctx, req); err != nil {
			return fmt.Errorf("seed: interaction: %w", err)
		}
	}

	logger.Info("demo data seeded",
		"submissions", len(demoSubs),
		"prospects", len(demoProspects),
		"clients", len(demoClients),
		"interactions", len(demoInteractions))
	return nil
}
