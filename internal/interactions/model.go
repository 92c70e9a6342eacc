package interactions

import (
	"strings"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
)

// Type classifies how the team touched a prospect.
type Type string

const (
	TypeCall    Type = "call"
	TypeEmail   Type = "email"
	TypeMeeting Type = "meeting"
	TypeNote    Type = "note"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCall, TypeEmail, TypeMeeting, TypeNote:
		return true
	}
	return false
}

// Outcome records how the interaction went.
type Outcome string

const (
	OutcomePositive       Outcome = "positive"
	OutcomeNegative       Outcome = "negative"
	OutcomeNeutral        Outcome = "neutral"
	OutcomeFollowUpNeeded Outcome = "follow_up_needed"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomePositive, OutcomeNegative, OutcomeNeutral, OutcomeFollowUpNeeded:
		return true
	}
	return false
}

// DefaultCreatedBy is recorded when no operator name is supplied.
const DefaultCreatedBy = "admin"

// Interaction is an append-only touchpoint log entry for a prospect.
// Logging one never mutates the prospect it references.
type Interaction struct {
	ID             string     `json:"id"`
	ProspectID     string     `json:"prospectId"`
	Type           Type       `json:"type"`
	Subject        string     `json:"subject,omitempty"`
	Content        string     `json:"content"`
	Outcome        Outcome    `json:"outcome,omitempty"`
	NextAction     string     `json:"nextAction,omitempty"`
	NextActionDate *time.Time `json:"nextActionDate,omitempty"`
	CreatedBy      string     `json:"createdBy"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// CreateInteractionRequest is the body for logging an interaction.
type CreateInteractionRequest struct {
	ProspectID     string     `json:"prospectId"`
	Type           Type       `json:"type"`
	Subject        string     `json:"subject,omitempty"`
	Content        string     `json:"content"`
	Outcome        Outcome    `json:"outcome,omitempty"`
	NextAction     string     `json:"nextAction,omitempty"`
	NextActionDate *time.Time `json:"nextActionDate,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
}

func (r *CreateInteractionRequest) Validate() error {
	fe := validate.FieldErrors{}
	if strings.TrimSpace(r.ProspectID) == "" {
		fe.Add("prospectId", "prospectId is required")
	}
	if !r.Type.Valid() {
		fe.Add("type", "type must be call, email, meeting or note")
	}
	if strings.TrimSpace(r.Content) == "" {
		fe.Add("content", "content is required")
	}
	if r.Outcome != "" && !r.Outcome.Valid() {
		fe.Add("outcome", "outcome must be positive, negative, neutral or follow_up_needed")
	}
	return fe.OrNil()
}
