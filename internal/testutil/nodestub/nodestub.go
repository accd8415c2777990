// Package nodestub runs scripted Xphere RPC nodes on httptest servers.
package nodestub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
)

// Reply is a scripted answer. A zero Status means 200.
type Reply struct {
	Delay  time.Duration
	Status int
	Body   string
}

// Envelope builds a reply with body {"code": code, "data": data}.
func Envelope(code int, data any) Reply {
	raw, err := json.Marshal(map[string]any{"code": code, "data": data})
	if err != nil {
		panic(err)
	}
	return Reply{Body: string(raw)}
}

// Failure builds a reply with body {"code": code, "msg": msg} and HTTP status.
func Failure(status, code int, msg string) Reply {
	raw, err := json.Marshal(map[string]any{"code": code, "msg": msg})
	if err != nil {
		panic(err)
	}
	return Reply{Status: status, Body: string(raw)}
}

// Request is what a node received.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Query  url.Values
	Form   url.Values
	Raw    string
}

// Node is a scripted RPC node.
type Node struct {
	*httptest.Server

	mu        sync.Mutex
	replies   map[string][]Reply
	requests  map[string][]Request
	completed map[string]int
}

// New starts a node and closes it when the test ends. The test is skipped when
// the sandbox does not allow listening sockets.
func New(t testing.TB) *Node {
	t.Helper()
	n := &Node{
		replies:   make(map[string][]Reply),
		requests:  make(map[string][]Request),
		completed: make(map[string]int),
	}
	n.Server = start(t, http.HandlerFunc(n.serve))
	t.Cleanup(n.Close)
	return n
}

func start(t testing.TB, handler http.Handler) (srv *httptest.Server) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			if strings.Contains(msg, "operation not permitted") {
				t.Skip("network operations not permitted in sandbox")
			}
			panic(r)
		}
	}()
	return httptest.NewServer(handler)
}

// On scripts the replies for path. Replies are used in order; the last one
// repeats.
func (n *Node) On(path string, replies ...Reply) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replies[strings.Trim(path, "/")] = replies
	return n
}

// Requests returns what the node received on path.
func (n *Node) Requests(path string) []Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Request(nil), n.requests[strings.Trim(path, "/")]...)
}

// Hits returns how many requests arrived on path.
func (n *Node) Hits(path string) int {
	return len(n.Requests(path))
}

// Completed returns how many replies on path were fully written.
func (n *Node) Completed(path string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.completed[strings.Trim(path, "/")]
}

func (n *Node) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	req := Request{Method: r.Method, Path: path, Header: r.Header.Clone(), Query: r.URL.Query()}
	if r.Method == http.MethodPost {
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			req.Form = r.MultipartForm.Value
		} else {
			raw, _ := io.ReadAll(r.Body)
			req.Raw = string(raw)
		}
	}

	n.mu.Lock()
	n.requests[path] = append(n.requests[path], req)
	replies := n.replies[path]
	var reply Reply
	switch {
	case len(replies) == 0:
		reply = Reply{Status: http.StatusNotFound, Body: "not found"}
	case len(replies) == 1:
		reply = replies[0]
	default:
		reply = replies[0]
		n.replies[path] = replies[1:]
	}
	n.mu.Unlock()

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-r.Context().Done():
			return
		}
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply.Body)

	n.mu.Lock()
	n.completed[path]++
	n.mu.Unlock()
}
