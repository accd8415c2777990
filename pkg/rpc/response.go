package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/zigap/xphere-sdk-go/pkg/util"
)

// Response is the envelope every node answers with.
type Response struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Decode unmarshals the response data into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrMalformedResponse)
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Result is the outcome of one call to one endpoint.
type Result struct {
	Endpoint string `json:"endpoint"`
	Response
	// Err is set for transport failures that produced no response and for
	// envelopes rejected by a condition.
	Err error `json:"-"`

	envelope bool
}

// OK reports whether the endpoint answered with a success envelope.
func (r *Result) OK() bool {
	return r != nil && r.Err == nil && r.envelope && r.Code == CodeSuccess
}

// Failure returns nil for a successful result and an *Error describing the
// failure otherwise.
func (r *Result) Failure() error {
	if r.OK() {
		return nil
	}
	cause := r.Err
	if cause == nil {
		switch {
		case r.envelope:
			cause = ErrUpstream
		case r.Code == CodeTimeout:
			cause = ErrTimeout
		case r.Code == CodeMalformed:
			cause = ErrMalformedResponse
		default:
			cause = ErrUpstream
		}
	}
	return &Error{Endpoint: r.Endpoint, Code: r.Code, Msg: r.Msg, Data: r.Data, Err: cause}
}

type rawEnvelope struct {
	Code json.RawMessage `json:"code"`
	Msg  json.RawMessage `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// parseEnvelope reads {code, msg, data}. A body without a non-zero code is
// not an envelope.
func parseEnvelope(body []byte) (Response, bool) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil || len(raw.Code) == 0 {
		return Response{}, false
	}
	code, ok := util.ParseInt(raw.Code)
	if !ok || code == 0 {
		return Response{}, false
	}
	resp := Response{Code: int(code), Data: raw.Data}
	if len(raw.Msg) > 0 {
		var msg string
		if err := json.Unmarshal(raw.Msg, &msg); err == nil {
			resp.Msg = msg
		} else if string(raw.Msg) != "null" {
			resp.Msg = string(raw.Msg)
		}
	}
	if string(resp.Data) == "null" {
		resp.Data = nil
	}
	return resp, true
}

// classify turns an HTTP answer into a Result:
//
//	2xx with envelope      -> envelope
//	2xx without envelope   -> 901 Invalid response parameter
//	other with envelope    -> envelope, passed through
//	other without envelope -> status code, status text and body
func classify(endpoint string, status int, statusText string, body []byte) *Result {
	if resp, ok := parseEnvelope(body); ok {
		return &Result{Endpoint: endpoint, Response: resp, envelope: true}
	}
	if status >= 200 && status < 300 {
		return &Result{Endpoint: endpoint, Response: Response{Code: CodeMalformed, Msg: msgMalformed}}
	}
	data := json.RawMessage(nil)
	if len(body) > 0 {
		if json.Valid(body) {
			data = append(json.RawMessage(nil), body...)
		} else {
			data, _ = json.Marshal(string(body))
		}
	}
	return &Result{Endpoint: endpoint, Response: Response{Code: status, Msg: statusText, Data: data}}
}

func timeoutResult(endpoint string) *Result {
	return &Result{Endpoint: endpoint, Response: Response{Code: CodeTimeout, Msg: msgTimeout}}
}

func errorResult(endpoint string, err error) *Result {
	return &Result{Endpoint: endpoint, Err: err}
}
