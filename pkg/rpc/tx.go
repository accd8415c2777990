package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/util"
)

const (
	pathPing            = "ping"
	pathRequest         = "request"
	pathSendTransaction = "sendtransaction"
	pathWeight          = "weight"
)

const (
	// feeSurcharge is added to the payload length when a node reports a
	// weight equal to it.
	feeSurcharge = 336
	feeUnit      = 1_000_000_000
)

func (c *Client) Ping(ctx context.Context) (*Result, error) {
	return c.Get(ctx, pathPing, enc.Object{})
}

// Request sends a signed or simple request (see sign.SignedRequest) to one endpoint.
func (c *Client) Request(ctx context.Context, req enc.Object) (*Result, error) {
	return c.Get(ctx, pathRequest, req)
}

// RaceRequest races a request across every endpoint.
func (c *Client) RaceRequest(ctx context.Context, req enc.Object, cond Condition) (*Result, error) {
	return c.Race(ctx, MethodGet, pathRequest, req, cond)
}

// SendTransaction posts a signed transaction to one endpoint.
func (c *Client) SendTransaction(ctx context.Context, tx enc.Object) (*Result, error) {
	return c.Post(ctx, pathSendTransaction, tx)
}

// SendTransactionToAll posts a signed transaction to every configured endpoint.
func (c *Client) SendTransactionToAll(ctx context.Context, tx enc.Object) ([]*Result, error) {
	return c.All(ctx, MethodPost, pathSendTransaction, tx, nil)
}

// BroadcastTransaction posts a signed transaction to the configured endpoints
// and to randomly chosen peers discovered through PeerFromAll, up to the
// broadcast limit in total. It returns the first result with code 200.
// Without one it returns the result with the highest code, or the first
// result if none carries a code, together with that result's failure.
func (c *Client) BroadcastTransaction(ctx context.Context, tx enc.Object) (*Result, error) {
	r, err := c.broadcastTransaction(ctx, tx)
	observeDispatch("broadcast", err)
	return r, err
}

func (c *Client) broadcastTransaction(ctx context.Context, tx enc.Object) (*Result, error) {
	peers, err := c.PeerFromAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("broadcast: peer discovery: %w", err)
	}
	hosts := make([]string, 0, len(peers))
	for _, p := range peers {
		if p.Host != "" {
			hosts = append(hosts, p.Host)
		}
	}

	limit := c.cfg.BroadcastLimit - len(c.cfg.Endpoints)
	targets := dedupEndpoints(util.Merge(c.cfg.Endpoints, util.RandomSlice(hosts, limit)))
	c.log.Debug("broadcasting transaction", zap.Int("targets", len(targets)), zap.Int("peers", len(hosts)))

	results, err := c.all(ctx, targets, MethodPost, pathSendTransaction, tx, nil)
	if err != nil {
		return nil, err
	}
	chosen := selectBroadcastResult(results)
	return chosen, chosen.Failure()
}

// selectBroadcastResult picks the first success, else the highest code,
// else the first result. Results without a code never win on code.
func selectBroadcastResult(results []*Result) *Result {
	var best *Result
	for _, r := range results {
		if r.OK() {
			return r
		}
		if r.Code != 0 && (best == nil || r.Code > best.Code) {
			best = r
		}
	}
	if best != nil {
		return best
	}
	return results[0]
}

// dedupEndpoints drops endpoints that resolve to the same base URL.
func dedupEndpoints(endpoints []string) []string {
	seen := make(map[string]struct{}, len(endpoints))
	out := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		key := util.WrapEndpoint(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// EstimatedFee asks the endpoints for the weight of a signed transaction and
// converts it to a fee. When the weight equals the transaction's JSON length
// L the fee is (L+336)·10⁹, otherwise weight·10⁹.
func (c *Client) EstimatedFee(ctx context.Context, tx enc.Object) (*big.Int, error) {
	length := int64(enc.JSONLength(tx))

	r, err := c.Race(ctx, MethodPost, pathWeight, tx, func(data json.RawMessage) bool {
		return util.IsInt(data)
	})
	if err != nil {
		return nil, err
	}
	weight, ok := util.ParseInt(r.Data)
	if !ok {
		weight = 0
	}
	return Fee(weight, length), nil
}

// Fee applies the network fee formula to a weight and a payload length.
func Fee(weight, length int64) *big.Int {
	if weight == length {
		weight = length + feeSurcharge
	}
	return new(big.Int).Mul(big.NewInt(weight), big.NewInt(feeUnit))
}
