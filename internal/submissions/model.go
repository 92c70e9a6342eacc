package submissions

import (
	"strings"
	"time"

	"github.com/thegrowthaccelerators/consulting-crm/internal/validate"
)

// MinMessageLen is the minimum accepted length for a consultation message.
const MinMessageLen = 10

// ContactSubmission is an inbound consultation request. Submissions are
// immutable once stored and are never deleted.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Package   string    `json:"package,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateSubmissionRequest is the body of POST /api/contact.
type CreateSubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Package string `json:"package,omitempty"`
}

// Validate checks required fields and returns the violations per field.
func (r *CreateSubmissionRequest) Validate() error {
	fe := validate.FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		fe.Add("name", "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		fe.Add("email", "email is required")
	} else if !validate.EmailOK(r.Email) {
		fe.Add("email", "email must be a valid address")
	}
	if len(strings.TrimSpace(r.Message)) < MinMessageLen {
		fe.Add("message", "message must be at least 10 characters")
	}
	return fe.OrNil()
}
