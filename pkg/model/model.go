package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zigap/xphere-sdk-go/pkg/util"
)

// Peer is a node advertised by the peer-listing call. Nodes report a peer
// either as a bare host string or as {host, address}.
type Peer struct {
	Host    string `json:"host"`
	Address string `json:"address,omitempty"`
}

func (p *Peer) UnmarshalJSON(data []byte) error {
	var host string
	if err := json.Unmarshal(data, &host); err == nil {
		*p = Peer{Host: host}
		return nil
	}
	type plain Peer
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("peer: %w", err)
	}
	*p = Peer(v)
	return nil
}

// PeerList is the data of a single node's peer-listing response.
type PeerList struct {
	Peers      map[string]Peer `json:"peers"`
	KnownHosts []string        `json:"known_hosts"`
}

// PeerSet is the deduplicated union of peer lists reported by several nodes.
type PeerSet struct {
	Peers      []Peer   `json:"peers"`
	KnownHosts []string `json:"known_hosts"`
}

// Hosts returns the hosts of all peers in order.
func (s PeerSet) Hosts() []string {
	out := make([]string, 0, len(s.Peers))
	for _, p := range s.Peers {
		if p.Host != "" {
			out = append(out, p.Host)
		}
	}
	return out
}

// Block is the head block summary of one chain. Heights and timestamps are
// accepted as JSON numbers or numeric strings.
type Block struct {
	Height     int64           `json:"height"`
	STimestamp int64           `json:"s_timestamp"`
	Raw        json.RawMessage `json:"-"`
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("block: %w", err)
	}
	h, ok := fields["height"]
	if !ok {
		return errors.New("block: missing height")
	}
	height, ok := util.ParseInt(h)
	if !ok {
		return fmt.Errorf("block: invalid height %s", h)
	}
	*b = Block{Height: height, Raw: append(json.RawMessage(nil), data...)}
	if ts, ok := fields["s_timestamp"]; ok {
		b.STimestamp, _ = util.ParseInt(ts)
	}
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	type plain struct {
		Height     int64 `json:"height"`
		STimestamp int64 `json:"s_timestamp"`
	}
	return json.Marshal(plain{b.Height, b.STimestamp})
}

// Chain wraps the head block of the main or resource chain.
type Chain struct {
	Block Block `json:"block"`
}

func (c *Chain) UnmarshalJSON(data []byte) error {
	raw, err := requiredField(data, "block")
	if err != nil {
		return fmt.Errorf("chain: %w", err)
	}
	var b Block
	if err := json.Unmarshal(raw, &b); err != nil {
		return err
	}
	c.Block = b
	return nil
}

// Round is a node's view of both chain heads. The two chains advance
// independently. Both heads must be present.
type Round struct {
	Main     Chain `json:"main"`
	Resource Chain `json:"resource"`
}

func (r *Round) UnmarshalJSON(data []byte) error {
	var out Round
	for _, f := range []struct {
		name string
		dst  *Chain
	}{{"main", &out.Main}, {"resource", &out.Resource}} {
		raw, err := requiredField(data, f.name)
		if err != nil {
			return fmt.Errorf("round: %w", err)
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return fmt.Errorf("round %s: %w", f.name, err)
		}
	}
	*r = out
	return nil
}

// requiredField returns the raw value of key in the JSON object data. A
// missing or null value is an error.
func requiredField(data []byte, key string) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil, fmt.Errorf("missing %s", key)
	}
	return raw, nil
}

// BestRound holds the highest main and resource blocks observed across nodes.
// The two blocks may come from different nodes.
type BestRound struct {
	Main     Block `json:"main"`
	Resource Block `json:"resource"`
}
