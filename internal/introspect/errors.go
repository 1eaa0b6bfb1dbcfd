package introspect

import "fmt"

// TransportError means the introspection endpoint could not be reached at
// all: DNS failure, connection refused, TLS failure or client timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unable to reach identity provider: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError means the endpoint answered with a non-2xx status, typically bad
// client credentials (401) or throttling (429).
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("introspection request failed: %s", e.Status)
}

// ProtocolError covers everything else: a 2xx response whose body is not the
// JSON document the provider is supposed to return.
type ProtocolError struct {
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected introspection response: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
