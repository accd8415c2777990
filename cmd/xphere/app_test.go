package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/zigap/xphere-sdk-go/internal/testutil/nodestub"
	"github.com/zigap/xphere-sdk-go/pkg/sign"
)

const seed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	ctl := newApp()
	ctl.Writer = &out
	ctl.ErrWriter = &out
	ctl.ExitErrHandler = func(*cli.Context, error) {}
	err := ctl.Run(append([]string{"xphere"}, args...))
	return out.String(), err
}

func TestKeygen(t *testing.T) {
	out, err := run(t, "keygen")
	require.NoError(t, err)

	var kp sign.KeyPair
	require.NoError(t, json.Unmarshal([]byte(out), &kp))
	require.True(t, sign.KeyValidity(kp.PrivateKey))
	require.Equal(t, sign.Address(kp.PublicKey), kp.Address)
}

func TestAddress(t *testing.T) {
	out, err := run(t, "address", seed)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a", got["public_key"])
	require.Equal(t, sign.Address(got["public_key"]), got["address"])

	_, err = run(t, "address", "zz")
	require.Error(t, err)
}

func TestHash(t *testing.T) {
	out, err := run(t, "hash", "abc")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", got["hash"])
	require.Equal(t, "261dbda81f380af4b7a3c0c27ab8d8a02fd8e95c5676", got["id_hash"])

	out, err = run(t, "hash", "--json", `{"b":1,"a":"x/y"}`)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, `{"b":1,"a":"x\/y"}`, got["string"])

	_, err = run(t, "hash", "--json", `{`)
	require.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	value := `{"type":"Send","amount":"1"}`
	out, err := run(t, "sign", "--key", seed, value)
	require.NoError(t, err)
	sig := string(bytes.TrimSpace([]byte(out)))
	require.Len(t, sig, sign.SignatureSize)

	pub, err := sign.PublicKey(seed)
	require.NoError(t, err)

	out, err = run(t, "verify", "--pub", pub, "--sig", sig, value)
	require.NoError(t, err)
	require.Contains(t, out, "OK")

	_, err = run(t, "verify", "--pub", pub, "--sig", sig, `{"type":"Send","amount":"2"}`)
	require.Error(t, err)
}

func TestRound(t *testing.T) {
	node := nodestub.New(t).On("round", nodestub.Envelope(200, map[string]any{
		"main":     map[string]any{"block": map[string]any{"height": 12, "s_timestamp": 5}},
		"resource": map[string]any{"block": map[string]any{"height": 4}},
	}))

	out, err := run(t, "round", "-r", node.URL)
	require.NoError(t, err)
	require.Contains(t, out, `"height": 12`)
	require.Equal(t, "all", node.Requests("round")[0].Query.Get("chain_type"))
}

func TestPing(t *testing.T) {
	up := nodestub.New(t).On("ping", nodestub.Envelope(200, "pong"))
	down := nodestub.New(t).On("ping", nodestub.Failure(500, 500, "down"))

	out, err := run(t, "ping", "-r", up.URL, "-r", down.URL)
	require.NoError(t, err)
	require.Contains(t, out, up.URL+"\tok")

	_, err = run(t, "ping", "-r", down.URL)
	require.Error(t, err)
}

func TestFee(t *testing.T) {
	node := nodestub.New(t).On("weight", nodestub.Envelope(200, 1500000000))

	out, err := run(t, "fee", "--key", seed, "-r", node.URL, `{"type":"Send","to":"x"}`)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "1500000000000000000", got["fee"])
	require.Equal(t, "1.5", got["display"])
	require.Len(t, node.Requests("weight"), 1)

	_, err = run(t, "fee", "--key", seed, "-r", node.URL, `[1]`)
	require.Error(t, err)
}
