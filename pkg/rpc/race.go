package rpc

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
)

// Condition decides whether the data of a success envelope is acceptable.
type Condition func(data json.RawMessage) bool

// Always accepts any data.
func Always(json.RawMessage) bool { return true }

// Race sends the request to every configured endpoint at once and returns the
// first success envelope whose data satisfies cond. The remaining requests are
// cancelled; cancellation is best effort and a node may still process a
// request it already received.
//
// When no endpoint satisfies cond, Race waits for all of them and returns the
// first failure in arrival order, so the reported failure may differ between
// runs. If every endpoint answered but none satisfied cond, the error wraps
// ErrConditionNotMet.
func (c *Client) Race(ctx context.Context, method, path string, payload enc.Object, cond Condition) (*Result, error) {
	r, err := c.race(ctx, c.cfg.Endpoints, method, path, payload, cond)
	observeDispatch("race", err)
	return r, err
}

func (c *Client) race(ctx context.Context, endpoints []string, method, path string, payload enc.Object, cond Condition) (*Result, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	if cond == nil {
		cond = Always
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so losers never block after the winner returns.
	results := make(chan *Result, len(endpoints))
	for _, endpoint := range endpoints {
		go func(endpoint string) {
			results <- c.do(ctx, endpoint, method, path, payload)
		}(endpoint)
	}

	var failure *Result
	for range endpoints {
		r := <-results
		switch {
		case r.OK() && cond(r.Data):
			c.log.Debug("race won", zap.String("endpoint", r.Endpoint), zap.String("path", path))
			return r, nil
		case r.OK():
			// success envelope rejected by cond
		case failure == nil:
			failure = r
		}
	}

	if failure != nil {
		return failure, failure.Failure()
	}
	return nil, &Error{Msg: msgConditionNotMet, Err: ErrConditionNotMet}
}
