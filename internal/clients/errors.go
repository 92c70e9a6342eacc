package clients

import "errors"

// ErrClientNotFound is returned when a client id is unknown.
var ErrClientNotFound = errors.New("client not found")
