package rpc

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/model"
	"github.com/zigap/xphere-sdk-go/pkg/util"
)

const pathPeer = "peer"

// Tracker asks one endpoint for its peer list.
func (c *Client) Tracker(ctx context.Context) (*model.PeerList, error) {
	r, err := c.Get(ctx, pathPeer, enc.Object{})
	if err != nil {
		return nil, err
	}
	if err := r.Failure(); err != nil {
		return nil, err
	}
	pl := &model.PeerList{}
	if err := r.Decode(pl); err != nil {
		return nil, err
	}
	return pl, nil
}

// Peer returns the peers known to one endpoint.
func (c *Client) Peer(ctx context.Context) ([]model.Peer, error) {
	pl, err := c.Tracker(ctx)
	if err != nil {
		return nil, err
	}
	return sortedPeers(pl.Peers), nil
}

// TrackerFromAll merges the peer lists of every endpoint. Peers and known
// hosts are deduplicated by value. Responses lacking either field are
// ignored; when no peer is left the call fails with a *ConsensusError.
func (c *Client) TrackerFromAll(ctx context.Context) (*model.PeerSet, error) {
	results, err := c.All(ctx, MethodGet, pathPeer, enc.Object{}, nil)
	if err != nil {
		return nil, err
	}

	var peers [][]model.Peer
	var hosts [][]string
	for _, r := range results {
		pl, ok := decodePeerList(r)
		if !ok || pl.Peers == nil || pl.KnownHosts == nil {
			continue
		}
		peers = append(peers, sortedPeers(pl.Peers))
		hosts = append(hosts, pl.KnownHosts)
	}

	set := &model.PeerSet{
		Peers:      util.FlatMerge(peers),
		KnownHosts: util.FlatMerge(hosts),
	}
	if len(set.Peers) == 0 {
		return nil, &ConsensusError{Op: "tracker", Results: results}
	}
	return set, nil
}

// PeerFromAll merges the peers reported by every endpoint.
func (c *Client) PeerFromAll(ctx context.Context) ([]model.Peer, error) {
	results, err := c.All(ctx, MethodGet, pathPeer, enc.Object{}, nil)
	if err != nil {
		return nil, err
	}

	var peers [][]model.Peer
	for _, r := range results {
		if pl, ok := decodePeerList(r); ok {
			peers = append(peers, sortedPeers(pl.Peers))
		}
	}
	merged := util.FlatMerge(peers)
	if len(merged) == 0 {
		return nil, &ConsensusError{Op: "peer", Results: results}
	}
	return merged, nil
}

func decodePeerList(r *Result) (*model.PeerList, bool) {
	if !r.OK() || len(r.Data) == 0 {
		return nil, false
	}
	pl := &model.PeerList{}
	if err := json.Unmarshal(r.Data, pl); err != nil {
		return nil, false
	}
	return pl, true
}

// sortedPeers returns the map values ordered by key.
func sortedPeers(m map[string]model.Peer) []model.Peer {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.Peer, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
