package rpc

import (
	"context"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
)

// All sends the request to every configured endpoint and waits for each to
// settle. It returns exactly one result per endpoint, in endpoint order:
//
//	success envelope, cond satisfied -> {Code, Data}
//	success envelope, cond rejected  -> {Msg: "Condition not met"}, Err = ErrConditionNotMet
//	anything else                    -> the failure as classified by Fetch
//
// All has no early exit. It is bounded by the request timeout of the slowest
// endpoint.
func (c *Client) All(ctx context.Context, method, path string, payload enc.Object, cond Condition) ([]*Result, error) {
	results, err := c.all(ctx, c.cfg.Endpoints, method, path, payload, cond)
	observeDispatch("all", err)
	return results, err
}

func (c *Client) all(ctx context.Context, endpoints []string, method, path string, payload enc.Object, cond Condition) ([]*Result, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	if cond == nil {
		cond = Always
	}

	type indexed struct {
		i int
		r *Result
	}
	ch := make(chan indexed, len(endpoints))
	for i, endpoint := range endpoints {
		go func(i int, endpoint string) {
			ch <- indexed{i, c.do(ctx, endpoint, method, path, payload)}
		}(i, endpoint)
	}

	results := make([]*Result, len(endpoints))
	for range endpoints {
		x := <-ch
		r := x.r
		if r.OK() && !cond(r.Data) {
			r = &Result{
				Endpoint: r.Endpoint,
				Response: Response{Msg: msgConditionNotMet},
				Err:      ErrConditionNotMet,
				envelope: true,
			}
		}
		results[x.i] = r
	}
	return results, nil
}
