package sign

import (
	ojson "github.com/nspcc-dev/go-ordered-json"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/util"
)

// Kind is the key an envelope stores its payload under.
type Kind string

const (
	KindRequest     Kind = "request"
	KindTransaction Kind = "transaction"
)

// transactionDelay pushes transaction timestamps ahead of the current round.
const transactionDelay = 2_000_000

// Envelope is a signed request or transaction.
type Envelope struct {
	Kind      Kind
	Payload   enc.Object
	PublicKey string
	Signature string
}

// SignedRequest signs a read request.
func SignedRequest(item enc.Object, priv string) (*Envelope, error) {
	return signed(item, priv, KindRequest)
}

// SignedTransaction signs a state changing transaction.
func SignedTransaction(item enc.Object, priv string) (*Envelope, error) {
	return signed(item, priv, KindTransaction)
}

// SimpleRequest wraps an unsigned request.
func SimpleRequest(item enc.Object) enc.Object {
	return enc.Object{{Key: string(KindRequest), Value: item}}
}

// signed copies item, stamps it with the signer's address and a timestamp,
// and signs its transaction hash. An empty priv signs with a throwaway key.
func signed(item enc.Object, priv string, kind Kind) (*Envelope, error) {
	if priv == "" {
		var err error
		if priv, err = PrivateKey(); err != nil {
			return nil, err
		}
	}
	pub, err := PublicKey(priv)
	if err != nil {
		return nil, err
	}

	payload := enc.Set(enc.Clone(item), "from", Address(pub))
	if _, ok := timestamp(payload); !ok {
		ts := util.UTime()
		if kind == KindTransaction {
			ts += transactionDelay
		}
		payload = enc.Set(payload, "timestamp", ts)
	}

	sig, err := Signature(enc.TxHash(payload), priv)
	if err != nil {
		return nil, err
	}
	return &Envelope{Kind: kind, Payload: payload, PublicKey: pub, Signature: sig}, nil
}

// Object returns the wire form {kind: payload, public_key, signature}.
func (e *Envelope) Object() enc.Object {
	return enc.Object{
		{Key: string(e.Kind), Value: e.Payload},
		{Key: "public_key", Value: e.PublicKey},
		{Key: "signature", Value: e.Signature},
	}
}

func (e *Envelope) MarshalJSON() ([]byte, error) {
	return ojson.Marshal(e.Object())
}

// Timestamp returns the payload's microsecond timestamp.
func (e *Envelope) Timestamp() int64 {
	ts, _ := timestamp(e.Payload)
	return ts
}

// Hash returns the transaction hash the signature covers.
func (e *Envelope) Hash() string {
	return enc.TxHash(e.Payload)
}

func (e *Envelope) From() string {
	v, _ := enc.Get(e.Payload, "from")
	s, _ := v.(string)
	return s
}

// Verify checks the signature against the envelope's public key.
func (e *Envelope) Verify() bool {
	return SignatureValidity(e.Hash(), e.PublicKey, e.Signature) && e.From() == Address(e.PublicKey)
}

func timestamp(o enc.Object) (int64, bool) {
	v, ok := enc.Get(o, "timestamp")
	if !ok {
		return 0, false
	}
	return enc.Int64(v)
}
