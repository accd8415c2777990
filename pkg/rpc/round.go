package rpc

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/model"
)

const pathRound = "round"

func roundPayload() enc.Object {
	return enc.Object{{Key: "chain_type", Value: "all"}}
}

// Round returns one endpoint's view of the chain heads.
func (c *Client) Round(ctx context.Context) (*model.Round, error) {
	r, err := c.Get(ctx, pathRound, roundPayload())
	if err != nil {
		return nil, err
	}
	if err := r.Failure(); err != nil {
		return nil, err
	}
	round := &model.Round{}
	if err := r.Decode(round); err != nil {
		return nil, err
	}
	return round, nil
}

// BestRound queries every endpoint and keeps the highest main block and the
// highest resource block independently, so the two may come from different
// endpoints. Endpoints without usable round data are skipped; if none is
// left the call fails with a *ConsensusError.
func (c *Client) BestRound(ctx context.Context) (*model.BestRound, error) {
	results, err := c.All(ctx, MethodGet, pathRound, roundPayload(), nil)
	if err != nil {
		return nil, err
	}

	var (
		best  model.BestRound
		found bool
	)
	for _, r := range results {
		if !r.OK() || len(r.Data) == 0 {
			continue
		}
		var round model.Round
		if err := json.Unmarshal(r.Data, &round); err != nil {
			c.log.Debug("unusable round data", zap.String("endpoint", r.Endpoint), zap.Error(err))
			continue
		}
		if !found || round.Main.Block.Height > best.Main.Height {
			best.Main = round.Main.Block
		}
		if !found || round.Resource.Block.Height > best.Resource.Height {
			best.Resource = round.Resource.Block
		}
		found = true
	}
	if !found {
		return nil, &ConsensusError{Op: "round", Results: results}
	}
	return &best, nil
}
