// Package dashboard computes the admin overview and follow-up views. Every
// view is derived per request from current store state; nothing here mutates
// a record.
package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/thegrowthaccelerators/consulting-crm/internal/clients"
	"github.com/thegrowthaccelerators/consulting-crm/internal/interactions"
	"github.com/thegrowthaccelerators/consulting-crm/internal/prospects"
	"github.com/thegrowthaccelerators/consulting-crm/internal/submissions"
)

// Overview is the headline block of the admin dashboard.
type Overview struct {
	NewSubmissions  int                  `json:"newSubmissions"`
	ActiveProspects int                  `json:"activeProspects"`
	HighPriority    int                  `json:"highPriority"`
	Qualified       int                  `json:"qualified"`
	ActiveClients   int                  `json:"activeClients"`
	MonthlyRevenue  float64              `json:"monthlyRevenue"`
	Notifications   NotificationSnapshot `json:"notifications"`
}

// NotificationSnapshot summarises consultation email delivery since startup,
// read back from the metrics registry.
type NotificationSnapshot struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// OverdueProspect pairs a prospect with how many days its follow-up has
// slipped.
type OverdueProspect struct {
	*prospects.Prospect
	DaysOverdue int `json:"daysOverdue"`
}

// FollowUps is the time-windowed follow-up view.
type FollowUps struct {
	Overdue        []OverdueProspect           `json:"overdue"`
	DueToday       []*prospects.Prospect       `json:"dueToday"`
	Upcoming       []*prospects.Prospect       `json:"upcoming"`
	PendingActions []*interactions.Interaction `json:"pendingActions"`
}

// TotalMonthlyRevenue sums the parsed monthly value of every active client.
func TotalMonthlyRevenue(list []*clients.Client) float64 {
	var total float64
	for _, c := range list {
		if c.Status != clients.StatusActive {
			continue
		}
		total += clients.ParseMonthlyValue(c.MonthlyValue)
	}
	return total
}

// ComputeOverview builds the headline counts from current store state. A
// submission counts as new while its email matches neither a prospect nor a
// client.
func ComputeOverview(subs []*submissions.ContactSubmission, pros []*prospects.Prospect, cls []*clients.Client) Overview {
	var o Overview

	prospectEmails := make(map[string]struct{}, len(pros))
	for _, p := range pros {
		prospectEmails[normalizeEmail(p.Email)] = struct{}{}
	}
	clientEmails := make(map[string]struct{}, len(cls))
	for _, c := range cls {
		clientEmails[normalizeEmail(c.Email)] = struct{}{}
	}

	for _, sub := range subs {
		key := normalizeEmail(sub.Email)
		if _, ok := prospectEmails[key]; ok {
			continue
		}
		if _, ok := clientEmails[key]; ok {
			continue
		}
		o.NewSubmissions++
	}

	for _, p := range pros {
		if !p.Status.Terminal() {
			o.ActiveProspects++
			if p.Priority == prospects.PriorityHigh {
				o.HighPriority++
			}
		}
		if p.Status == prospects.StatusQualified {
			o.Qualified++
		}
	}

	for _, c := range cls {
		if c.Status == clients.StatusActive {
			o.ActiveClients++
		}
	}
	o.MonthlyRevenue = TotalMonthlyRevenue(cls)

	return o
}

// ComputeFollowUps buckets prospects by follow-up window relative to now.
// A follow-up earlier on the current day shows in both overdue and dueToday;
// the windows are defined independently.
func ComputeFollowUps(now time.Time, pros []*prospects.Prospect, ins []*interactions.Interaction) FollowUps {
	f := FollowUps{
		Overdue:        []OverdueProspect{},
		DueToday:       []*prospects.Prospect{},
		Upcoming:       []*prospects.Prospect{},
		PendingActions: []*interactions.Interaction{},
	}

	weekEnd := now.Add(7 * 24 * time.Hour)
	for _, p := range pros {
		d := p.NextFollowUpDate
		if d == nil {
			continue
		}
		if d.Before(now) {
			f.Overdue = append(f.Overdue, OverdueProspect{
				Prospect:    p,
				DaysOverdue: daysOverdue(now, *d),
			})
		}
		if sameCalendarDay(now, *d) {
			f.DueToday = append(f.DueToday, p)
		}
		if d.After(now) && !d.After(weekEnd) {
			f.Upcoming = append(f.Upcoming, p)
		}
	}

	for _, in := range ins {
		if in.NextAction == "" {
			continue
		}
		if in.NextActionDate == nil || in.NextActionDate.Before(now) {
			f.PendingActions = append(f.PendingActions, in)
		}
	}

	return f
}

// daysOverdue counts whole days late, rounding any partial day up. Yesterday
// is 1 day overdue.
func daysOverdue(now, due time.Time) int {
	elapsed := now.Sub(due)
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func normalizeEmail(email string) string {
	return strings.ToLower(email)
}

// SnapshotNotifications reads the consultation email counters back from the
// metrics registry so the dashboard can report delivery health without a
// second bookkeeping path.
func SnapshotNotifications(g prometheus.Gatherer) NotificationSnapshot {
	var snap NotificationSnapshot
	if g == nil {
		return snap
	}

	families, err := g.Gather()
	if err != nil {
		return snap
	}
	for _, fam := range families {
		if fam.GetName() != "crm_notify_emails_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			status := labelValue(m, "status")
			count := int(m.GetCounter().GetValue())
			switch status {
			case "sent":
				snap.Sent += count
			case "failed":
				snap.Failed += count
			}
		}
	}
	return snap
}

func labelValue(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

// Repositories groups the read-side stores the handler derives views from.
type Repositories struct {
	Submissions  submissions.Repository
	Prospects    prospects.Repository
	Clients      clients.Repository
	Interactions interactions.Repository
}

// Load reads every store once for a consistent-enough view. Stores are
// mutex-guarded individually; cross-store consistency is not required for a
// dashboard read.
func (r Repositories) Load(ctx context.Context) ([]*submissions.ContactSubmission, []*prospects.Prospect, []*clients.Client, []*interactions.Interaction, error) {
	subs, err := r.Submissions.List(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	pros, err := r.Prospects.List(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cls, err := r.Clients.List(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ins, err := r.Interactions.List(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return subs, pros, cls, ins, nil
}
