package fivem

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is matched by every construction-time configuration error.
	ErrInvalidConfig = errors.New("fivem: invalid config")
	// ErrTransport is matched by every failed endpoint request.
	ErrTransport = errors.New("fivem: transport failure")
	// ErrMalformedJSON reports an endpoint body that is not valid JSON.
	ErrMalformedJSON = errors.New("malformed json body")
	// ErrUnexpectedBody reports a valid JSON body of the wrong shape (players.json not an array).
	ErrUnexpectedBody = errors.New("unexpected body shape")
)

// ConfigError describes why a Config was rejected. Field is "host" for an
// empty or blank host, or "port" for a port outside 1..65535 (negative ports
// included).
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig.Error(), e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// TransportError wraps any failure of a GET against the server: network errors,
// timeouts, non-2xx statuses and bodies that cannot be parsed.
type TransportError struct {
	Endpoint   Endpoint
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("fivem: GET ")
	b.WriteString(e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func responseSnippet(body []byte) string {
	const maxLen = 256
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
