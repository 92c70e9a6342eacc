package prospects

import "errors"

// ErrProspectNotFound is returned when a prospect id is unknown.
var ErrProspectNotFound = errors.New("prospect not found")
