package clients

import (
	"strconv"
	"strings"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
)

// Status is a client engagement's lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// Client is a converted, paying engagement. SubmissionID links back to the
// consultation submission the engagement was converted from, when there was
// one.
type Client struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submissionId,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Company      string    `json:"company,omitempty"`
	Package      string    `json:"currentPackage,omitempty"`
	MonthlyValue string    `json:"monthlyValue,omitempty"`
	Status       Status    `json:"status"`
	StartDate    time.Time `json:"packageStartDate"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateClientRequest is the body for creating a client. Status defaults to
// active and StartDate to the current time when omitted.
type CreateClientRequest struct {
	SubmissionID string     `json:"submissionId,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Company      string     `json:"company,omitempty"`
	Package      string     `json:"currentPackage,omitempty"`
	MonthlyValue string     `json:"monthlyValue,omitempty"`
	Status       Status     `json:"status,omitempty"`
	StartDate    *time.Time `json:"packageStartDate,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

func (r *CreateClientRequest) Validate() error {
	fe := validate.FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		fe.Add("name", "name is required")
	}
	if !validate.EmailOK(r.Email) {
		fe.Add("email", "email must be a valid address")
	}
	if r.Status != "" && !r.Status.Valid() {
		fe.Add("status", "status must be active, paused or completed")
	}
	return fe.OrNil()
}

// UpdateClientRequest carries a partial update; nil fields are unchanged.
type UpdateClientRequest struct {
	Name         *string    `json:"name,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Package      *string    `json:"currentPackage,omitempty"`
	MonthlyValue *string    `json:"monthlyValue,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	StartDate    *time.Time `json:"packageStartDate,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	fe := validate.FieldErrors{}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fe.Add("name", "name cannot be empty")
	}
	if r.Email != nil && !validate.EmailOK(*r.Email) {
		fe.Add("email", "email must be a valid address")
	}
	if r.Status != nil && !r.Status.Valid() {
		fe.Add("status", "status must be active, paused or completed")
	}
	return fe.OrNil()
}

// ParseMonthlyValue reads a display amount like "£1,500" as a number for
// revenue arithmetic. Anything that does not parse contributes zero.
func ParseMonthlyValue(v string) float64 {
	var b strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}
