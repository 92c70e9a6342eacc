package prospects

import (
	"strings"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
)

// Status is a prospect's position in the sales pipeline. The declaration
// order below is the conventional happy path; no transition graph is
// enforced and any status may be set from any other.
type Status string

const (
	StatusNew              Status = "new"
	StatusContacted        Status = "contacted"
	StatusQualified        Status = "qualified"
	StatusMeetingScheduled Status = "meeting_scheduled"
	StatusProposalSent     Status = "proposal_sent"
	StatusConverted        Status = "converted"
	StatusRejected         Status = "rejected"
)

// Statuses lists every valid status in happy-path order.
var Statuses = []Status{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusMeetingScheduled,
	StatusProposalSent,
	StatusConverted,
	StatusRejected,
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusMeetingScheduled,
		StatusProposalSent, StatusConverted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status excludes the prospect from active
// pipeline counts. Terminal records remain editable.
func (s Status) Terminal() bool {
	return s == StatusConverted || s == StatusRejected
}

// BadgeVariant maps a status to its admin-UI badge variant.
func (s Status) BadgeVariant() string {
	switch s {
	case StatusNew:
		return "secondary"
	case StatusContacted:
		return "outline"
	case StatusQualified, StatusMeetingScheduled, StatusProposalSent, StatusConverted:
		return "default"
	case StatusRejected:
		return "destructive"
	}
	return "secondary"
}

// Priority is the operator-assigned follow-up priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Color maps a priority to its admin-UI text color class.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "text-red-600"
	case PriorityMedium:
		return "text-yellow-600"
	case PriorityLow:
		return "text-green-600"
	}
	return "text-gray-600"
}

// DefaultSource marks prospects created from the consultation form.
const DefaultSource = "consultation_form"

// Prospect is a lead actively being pursued.
type Prospect struct {
	ID               string     `json:"id"`
	SubmissionID     string     `json:"submissionId,omitempty"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Company          string     `json:"company,omitempty"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	Source           string     `json:"source"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CreateProspectRequest is the body for creating a prospect. Status,
// priority and source default when omitted.
type CreateProspectRequest struct {
	SubmissionID     string     `json:"submissionId,omitempty"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Company          string     `json:"company,omitempty"`
	Status           Status     `json:"status,omitempty"`
	Priority         Priority   `json:"priority,omitempty"`
	Source           string     `json:"source,omitempty"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

func (r *CreateProspectRequest) Validate() error {
	fe := validate.FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		fe.Add("name", "name is required")
	}
	if !validate.EmailOK(r.Email) {
		fe.Add("email", "email must be a valid address")
	}
	if r.Status != "" && !r.Status.Valid() {
		fe.Add("status", "status must be one of the pipeline statuses")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		fe.Add("priority", "priority must be low, medium or high")
	}
	return fe.OrNil()
}

// UpdateProspectRequest carries a partial update; nil fields are unchanged.
type UpdateProspectRequest struct {
	Name             *string    `json:"name,omitempty"`
	Email            *string    `json:"email,omitempty"`
	Company          *string    `json:"company,omitempty"`
	Status           *Status    `json:"status,omitempty"`
	Priority         *Priority  `json:"priority,omitempty"`
	Source           *string    `json:"source,omitempty"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty"`
	AssignedTo       *string    `json:"assignedTo,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
}

func (r *UpdateProspectRequest) Validate() error {
	fe := validate.FieldErrors{}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fe.Add("name", "name cannot be empty")
	}
	if r.Email != nil && !validate.EmailOK(*r.Email) {
		fe.Add("email", "email must be a valid address")
	}
	if r.Status != nil && !r.Status.Valid() {
		fe.Add("status", "status must be one of the pipeline statuses")
	}
	if r.Priority != nil && !r.Priority.Valid() {
		fe.Add("priority", "priority must be low, medium or high")
	}
	return fe.OrNil()
}
