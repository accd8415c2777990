package rpc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/util"
)

const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// newRequest builds the HTTP request for one endpoint. GET payloads become
// the query string and POST payloads a multipart form; every value is written
// as its canonical string, in payload order.
func newRequest(ctx context.Context, endpoint, method, path string, payload enc.Object, headers map[string]string) (*http.Request, error) {
	target := util.WrapEndpoint(endpoint) + "/" + strings.TrimLeft(path, "/")

	var (
		body        io.Reader
		contentType string
	)
	switch method {
	case MethodGet:
		if len(payload) > 0 {
			params := make([]string, 0, len(payload))
			for _, m := range payload {
				params = append(params, url.QueryEscape(m.Key)+"="+url.QueryEscape(enc.String(m.Value)))
			}
			target += "?" + strings.Join(params, "&")
		}
	case MethodPost:
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, m := range payload {
			if err := w.WriteField(m.Key, enc.String(m.Value)); err != nil {
				return nil, err
			}
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		body = &buf
		contentType = w.FormDataContentType()
	default:
		return nil, errors.New("unsupported method " + method)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
