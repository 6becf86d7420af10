package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteError_Kinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
		name string
	}{
		{MissingCredential(), ErrMissingCredential, "missing_credential"},
		{TransportFailure(503, "busy", nil), ErrTransportFailure, "transport_failure"},
		{MalformedEnvelope(errors.New("no output")), ErrMalformedEnvelope, "malformed_envelope"},
		{UnparsableContent("nope", errors.New("bad json")), ErrUnparsableContent, "unparsable_content"},
	}
	all := []error{ErrMissingCredential, ErrTransportFailure, ErrMalformedEnvelope, ErrUnparsableContent}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wrapped := fmt.Errorf("request plan: %w", c.err)
			for _, k := range all {
				assert.Equal(t, k == c.kind, errors.Is(wrapped, k), "kind %v", k)
			}
			assert.Equal(t, c.name, FailureKind(wrapped))
		})
	}
}

func TestRemoteError_Details(t *testing.T) {
	err := error(TransportFailure(0, "", context.DeadlineExceeded))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "transport failure: context deadline exceeded", err.Error())

	err = TransportFailure(500, `{"error":"x"}`, nil)
	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 500, re.Status)
	assert.Equal(t, `{"error":"x"}`, re.Body)
	assert.Equal(t, "transport failure: status 500", err.Error())

	err = UnparsableContent("not json", errors.New("invalid character"))
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "not json", re.RawText)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestFailureKind_Other(t *testing.T) {
	assert.Equal(t, "", FailureKind(nil))
	assert.Equal(t, "unknown", FailureKind(errors.New("boom")))
}
