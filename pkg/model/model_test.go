package model

import (
	"encoding/json"
	"testing"
)

func TestPeer_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Peer
	}{
		{"bare host", `"10.0.0.1:3000"`, Peer{Host: "10.0.0.1:3000"}},
		{"object", `{"host":"node.example","address":"abcd"}`, Peer{Host: "node.example", Address: "abcd"}},
		{"object without address", `{"host":"node.example"}`, Peer{Host: "node.example"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Peer
			if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if p != tt.want {
				t.Fatalf("got %+v, want %+v", p, tt.want)
			}
		})
	}

	var p Peer
	if err := json.Unmarshal([]byte(`42`), &p); err == nil {
		t.Fatal("expected error for a number")
	}
}

func TestPeerList_Mixed(t *testing.T) {
	var pl PeerList
	in := `{"peers":{"a":"h1","b":{"host":"h2","address":"x"}},"known_hosts":["h1","h3"]}`
	if err := json.Unmarshal([]byte(in), &pl); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if pl.Peers["a"].Host != "h1" || pl.Peers["b"].Address != "x" || len(pl.KnownHosts) != 2 {
		t.Fatalf("unexpected peer list: %+v", pl)
	}
}

func TestPeerSet_Hosts(t *testing.T) {
	s := PeerSet{Peers: []Peer{{Host: "a"}, {Address: "no host"}, {Host: "b"}}}
	got := s.Hosts()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Hosts() = %v", got)
	}
}

func TestRound_Unmarshal(t *testing.T) {
	in := `{"main":{"block":{"height":15,"s_timestamp":"1700000000000000","hash":"ab"}},"resource":{"block":{"height":"9"}}}`
	var r Round
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Main.Block.Height != 15 || r.Main.Block.STimestamp != 1700000000000000 || r.Resource.Block.Height != 9 {
		t.Fatalf("unexpected round: %+v", r)
	}

	out, err := json.Marshal(r.Main.Block)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"height":15,"s_timestamp":"1700000000000000","hash":"ab"}` {
		t.Fatalf("raw block not preserved: %s", out)
	}
}

func TestRound_MissingHead(t *testing.T) {
	for _, in := range []string{
		`{}`,
		`{"status":"syncing"}`,
		`{"main":{"block":{"height":1}}}`,
		`{"main":{"block":{"height":1}},"resource":{}}`,
		`{"main":null,"resource":{"block":{"height":1}}}`,
		`{"main":{"block":{"height":1}},"resource":{"block":{}}}`,
		`"garbage"`,
	} {
		var r Round
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Fatalf("Unmarshal(%s) succeeded: %+v", in, r)
		}
	}
}

func TestBlock_Invalid(t *testing.T) {
	for _, in := range []string{`{}`, `{"height":null}`, `{"height":"abc"}`, `[]`} {
		var b Block
		if err := json.Unmarshal([]byte(in), &b); err == nil {
			t.Fatalf("Unmarshal(%s) succeeded", in)
		}
	}
}

func TestBlock_MarshalWithoutRaw(t *testing.T) {
	out, err := json.Marshal(Block{Height: 3, STimestamp: 4})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"height":3,"s_timestamp":4}` {
		t.Fatalf("Marshal = %s", out)
	}
}
