package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Response codes with a meaning on the client side. Every other code is
// defined by the network.
const (
	CodeSuccess   = 200
	CodeTimeout   = 408 // synthesized on a local deadline
	CodeMalformed = 901 // synthesized for a missing or invalid envelope
	CodeFatal     = 999 // the network asks not to resend
)

const (
	msgTimeout         = "Request timed out"
	msgMalformed       = "Invalid response parameter"
	msgConditionNotMet = "Condition not met"
)

var (
	ErrTimeout           = errors.New("request timed out")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUpstream          = errors.New("upstream error")
	ErrConditionNotMet   = errors.New("condition not met")
	ErrConsensus         = errors.New("no usable data from any endpoint")
	ErrNoEndpoints       = errors.New("no endpoints configured")
)

// Error is a failed call to one endpoint. Err is one of the sentinel errors
// above or the underlying transport error.
type Error struct {
	Endpoint string
	Code     int
	Msg      string
	Data     json.RawMessage
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("rpc")
	if e.Endpoint != "" {
		b.WriteString(" " + e.Endpoint)
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, ": %d", e.Code)
	}
	if e.Msg != "" {
		b.WriteString(" " + e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConsensusError is returned by aggregate calls when no endpoint produced
// usable data. Results holds what every endpoint answered.
type ConsensusError struct {
	Op      string
	Results []*Result
}

func (e *ConsensusError) Error() string {
	return fmt.Sprintf("%s: %v (%d results)", e.Op, ErrConsensus, len(e.Results))
}

func (e *ConsensusError) Unwrap() error {
	return ErrConsensus
}
