package client

import "errors"

// ErrUnavailable signals that the server could not be reached at all,
// as opposed to an error response it returned.
var ErrUnavailable = errors.New("server unavailable")
