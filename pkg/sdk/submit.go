package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/rpc"
	"github.com/zigap/xphere-sdk-go/pkg/sign"
	"github.com/zigap/xphere-sdk-go/pkg/util"
)

var _ XphereSDK = (*Core)(nil)

var (
	// ErrFatalResponse is returned when the network answers a broadcast with
	// the do-not-retry code.
	ErrFatalResponse = errors.New("network refused the transaction")
	// ErrResendLimit is returned when a transaction is still unconfirmed after
	// Submit.MaxResends resends.
	ErrResendLimit = errors.New("resend limit reached")
)

// State is a step of the submission workflow.
type State string

const (
	StateBuilt     State = "built"
	StateSigned    State = "signed"
	StateBroadcast State = "broadcast"
	StatePolling   State = "polling"
	StateResent    State = "resent"
	StateConfirmed State = "confirmed"
)

// Receipt records the progress of one submission.
type Receipt struct {
	TxHash   string
	Envelope *sign.Envelope
	States   []State
	// Broadcasts counts how often the envelope was sent.
	Broadcasts int
	// Result is the outcome of the last broadcast.
	Result *rpc.Result
	// Data is the lookup answer that confirmed the transaction.
	Data json.RawMessage
}

// State returns the latest state.
func (r *Receipt) State() State {
	if len(r.States) == 0 {
		return ""
	}
	return r.States[len(r.States)-1]
}

func (r *Receipt) enter(s State) {
	r.States = append(r.States, s)
	zap.L().Debug("submission", zap.String("tx", r.TxHash), zap.String("state", string(s)))
}

// Submit signs item as a transaction once and drives it to confirmation:
//
//	built -> signed -> broadcast -> polling -> confirmed
//	                      ^            |
//	                      +-- resent <-+
//
// A broadcast answered with code 999 stops with ErrFatalResponse. Any other
// outcome moves on to polling. Every Timeouts.Poll the current round is
// fetched; once the main chain timestamp passes the transaction timestamp,
// lookup is sent as a request signed with a throwaway key. When every field of
// the answer is non-null the transaction is confirmed, otherwise the same
// envelope is broadcast again. A nil lookup confirms as soon as the round
// passes the transaction.
//
// An empty privateKey falls back to Config.PrivateKey. Submit.MaxResends
// bounds the resends (zero means no bound) and ctx cancels the workflow.
func (c *Core) Submit(ctx context.Context, item enc.Object, privateKey string, lookup enc.Object) (*Receipt, error) {
	rec := &Receipt{}
	rec.enter(StateBuilt)

	if privateKey == "" {
		privateKey = c.cfg.PrivateKey
	}
	if privateKey == "" {
		return rec, fmt.Errorf("%w: no private key", sign.ErrInvalidKey)
	}
	env, err := sign.SignedTransaction(item, privateKey)
	if err != nil {
		return rec, err
	}
	rec.Envelope = env
	rec.TxHash = env.Hash()
	rec.enter(StateSigned)
	c.submissions.Inc()

	resends := 0
	for {
		rec.enter(StateBroadcast)
		rec.Broadcasts++
		r, err := c.client.BroadcastTransaction(ctx, env.Object())
		rec.Result = r
		if r != nil && r.Code == rpc.CodeFatal {
			return rec, fmt.Errorf("%w: %v", ErrFatalResponse, err)
		}
		if ctx.Err() != nil {
			return rec, ctx.Err()
		}
		if err != nil {
			zap.L().Warn("broadcast failed, polling anyway", zap.String("tx", rec.TxHash), zap.Error(err))
		} else {
			zap.L().Info("transaction broadcast", zap.String("tx", rec.TxHash), zap.String("endpoint", r.Endpoint))
		}

		rec.enter(StatePolling)
		data, confirmed, err := c.poll(ctx, env, lookup)
		if err != nil {
			return rec, err
		}
		if confirmed {
			rec.Data = data
			rec.enter(StateConfirmed)
			zap.L().Info("transaction confirmed", zap.String("tx", rec.TxHash))
			return rec, nil
		}

		if limit := c.cfg.Submit.MaxResends; limit > 0 && resends >= limit {
			return rec, fmt.Errorf("%w: %d resends", ErrResendLimit, resends)
		}
		resends++
		rec.enter(StateResent)
		zap.L().Info("transaction not found, resending", zap.String("tx", rec.TxHash), zap.Int("resends", resends))
	}
}

// poll waits until the round passes the transaction and checks lookup. It
// reports the lookup data and whether it confirms the transaction.
func (c *Core) poll(ctx context.Context, env *sign.Envelope, lookup enc.Object) (json.RawMessage, bool, error) {
	ticker := time.NewTicker(c.cfg.Timeouts.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case <-ticker.C:
		}

		round, err := c.client.Round(ctx)
		if err != nil {
			zap.L().Warn("round fetch failed", zap.Error(err))
			continue
		}
		if round.Main.Block.STimestamp <= env.Timestamp() {
			continue
		}
		if lookup == nil {
			return nil, true, nil
		}

		req, err := sign.SignedRequest(lookup, "")
		if err != nil {
			return nil, false, err
		}
		r, err := c.client.Request(ctx, req.Object())
		if err != nil {
			zap.L().Warn("lookup failed", zap.Error(err))
			continue
		}
		return r.Data, r.OK() && complete(r.Data), nil
	}
}

// complete reports whether data is present and none of its fields is null.
func complete(data json.RawMessage) bool {
	if len(data) == 0 {
		return false
	}
	v, err := enc.Decode(data)
	if err != nil || v == nil {
		return false
	}
	switch x := v.(type) {
	case enc.Object:
		if len(x) == 0 {
			return false
		}
		for _, m := range x {
			if m.Value == nil {
				return false
			}
		}
	case []any:
		if len(x) == 0 {
			return false
		}
		for _, e := range x {
			if e == nil {
				return false
			}
		}
	}
	return true
}

// RegisterParams describes a contract code registration.
type RegisterParams struct {
	// Type is the transaction type. Default: "Register".
	Type string
	// Code is the compiled contract code.
	Code enc.Object
	// CType and Target identify the code for the GetCode lookup.
	CType  string
	Target string
}

// registerDelay schedules registrations one second ahead.
const registerDelay = 1_000_000

// Register submits params.Code and waits until GetCode returns it.
func (c *Core) Register(ctx context.Context, privateKey string, params RegisterParams) (*Receipt, error) {
	if params.Type == "" {
		params.Type = "Register"
	}
	if len(params.Code) == 0 {
		return nil, errors.New("register: empty code")
	}
	item := enc.Object{
		{Key: "type", Value: params.Type},
		{Key: "code", Value: params.Code},
		{Key: "timestamp", Value: util.UTime() + registerDelay},
	}
	lookup := enc.Object{
		{Key: "type", Value: "GetCode"},
		{Key: "ctype", Value: params.CType},
		{Key: "target", Value: params.Target},
	}
	return c.Submit(ctx, item, privateKey, lookup)
}
