package validate

import (
	"net/mail"
	"sort"
	"strings"
)

// FieldErrors collects per-field validation failures for a request body. It
// satisfies error so repositories and services can return it unchanged, and
// handlers render it as a 400 with the violated fields enumerated.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Add records a failure for a field. The first message per field wins.
func (fe FieldErrors) Add(field, message string) {
	if _, exists := fe[field]; !exists {
		fe[field] = message
	}
}

// OrNil returns the collection as an error, or nil when nothing failed.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// EmailOK reports whether addr parses as a bare RFC 5322 address.
func EmailOK(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
