package sdk

import (
	"context"

	"go.uber.org/zap"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/rpc"
)

// Health is the ping outcome of one endpoint.
type Health struct {
	Endpoint string `json:"endpoint"`
	OK       bool   `json:"ok"`
	Code     int    `json:"code"`
	Err      error  `json:"-"`
}

// Healthcheck pings every configured endpoint and reports each one, in
// endpoint order.
func (c *Core) Healthcheck(ctx context.Context) ([]Health, error) {
	results, err := c.client.All(ctx, rpc.MethodGet, "ping", enc.Object{}, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Health, 0, len(results))
	for _, r := range results {
		h := Health{Endpoint: r.Endpoint, OK: r.OK(), Code: r.Code, Err: r.Failure()}
		if !h.OK {
			zap.L().Debug("endpoint unhealthy", zap.String("endpoint", r.Endpoint), zap.Error(h.Err))
		}
		out = append(out, h)
	}
	return out, nil
}
