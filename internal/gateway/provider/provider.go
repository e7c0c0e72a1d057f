// Package provider holds the pieces shared by all upstream data provider
// clients: the uniform failure value and the HTTP plumbing defaults.
//
// Every adapter maps its upstream into one normalized record shape and
// collapses every failure mode (unreachable host, non-2xx status, malformed
// body, missing expected field) into ErrNoInformation. Callers never see
// upstream error detail; it is logged at the call site and discarded.
package provider

import (
	"errors"
	"net/http"
	"time"
)

// ErrNoInformation is the uniform failure for any upstream call that could
// not produce a complete normalized record.
var ErrNoInformation = errors.New("provider: no information")

// DefaultTimeout bounds a single upstream call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// NewHTTPClient returns the http.Client used by the provider adapters, with
// a bounded timeout so a stuck upstream cannot hold a request forever.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
