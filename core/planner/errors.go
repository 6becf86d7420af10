package planner

import (
	"errors"
	"fmt"
)

// Remote failure kinds. A *RemoteError matches exactly one of them with
// errors.Is.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrTransportFailure  = errors.New("transport failure")
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrUnparsableContent = errors.New("unparsable content")
)

// RemoteError is returned by RemotePlanner implementations.
type RemoteError struct {
	Kind    error
	Status  int    // HTTP status, 0 when no response was received
	Body    string // response body of a non-success status
	RawText string // model text that failed to parse
	Cause   error
}

func (e *RemoteError) Error() string {
	msg := e.Kind.Error()
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Is reports whether target is the error's kind.
func (e *RemoteError) Is(target error) bool { return target == e.Kind }

func (e *RemoteError) Unwrap() error { return e.Cause }

// MissingCredential reports that no API key is configured.
func MissingCredential() *RemoteError {
	return &RemoteError{Kind: ErrMissingCredential}
}

// TransportFailure wraps a failed round trip or a non-success status.
func TransportFailure(status int, body string, cause error) *RemoteError {
	return &RemoteError{Kind: ErrTransportFailure, Status: status, Body: body, Cause: cause}
}

// MalformedEnvelope reports a response without usable output text.
func MalformedEnvelope(cause error) *RemoteError {
	return &RemoteError{Kind: ErrMalformedEnvelope, Cause: cause}
}

// UnparsableContent reports model text that is not the expected block JSON.
func UnparsableContent(raw string, cause error) *RemoteError {
	return &RemoteError{Kind: ErrUnparsableContent, RawText: raw, Cause: cause}
}

// FailureKind returns a stable label for err, suitable for metrics.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrTransportFailure):
		return "transport_failure"
	case errors.Is(err, ErrMalformedEnvelope):
		return "malformed_envelope"
	case errors.Is(err, ErrUnparsableContent):
		return "unparsable_content"
	default:
		return "unknown"
	}
}
