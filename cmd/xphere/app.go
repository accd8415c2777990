package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/zigap/xphere-sdk-go/pkg/config"
	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/rpc"
	"github.com/zigap/xphere-sdk-go/pkg/sdk"
	"github.com/zigap/xphere-sdk-go/pkg/sign"
	"github.com/zigap/xphere-sdk-go/pkg/util"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML config file",
	}
	endpointFlag = &cli.StringSliceFlag{
		Name:    "rpc-endpoint",
		Aliases: []string{"r"},
		Usage:   "RPC endpoint, may be repeated (default: public Xphere nodes)",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Aliases: []string{"t"},
		Usage:   "Per request timeout",
	}
	keyFlag = &cli.StringFlag{
		Name:     "key",
		Aliases:  []string{"k"},
		Usage:    "Hex private key (Ed25519 seed)",
		Required: true,
	}
)

var rpcFlags = []cli.Flag{configFlag, endpointFlag, timeoutFlag}

func newApp() *cli.App {
	ctl := cli.NewApp()
	ctl.Name = "xphere"
	ctl.Usage = "Xphere RPC client"
	ctl.ErrWriter = os.Stderr
	ctl.Commands = []*cli.Command{
		{
			Name:   "keygen",
			Usage:  "Generate a new key pair",
			Action: keygen,
		},
		{
			Name:      "address",
			Usage:     "Derive the public key and address of a private key",
			UsageText: "address <private_key>",
			Action:    address,
		},
		{
			Name:      "hash",
			Usage:     "Print the identifiers of a value",
			UsageText: "hash [--json] <value>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "json", Usage: "Decode the value as JSON first"},
			},
			Action: hash,
		},
		{
			Name:      "sign",
			Usage:     "Sign a JSON value",
			UsageText: "sign --key <private_key> <json>",
			Flags:     []cli.Flag{keyFlag},
			Action:    signValue,
		},
		{
			Name:      "verify",
			Usage:     "Verify a signature of a JSON value",
			UsageText: "verify --pub <public_key> --sig <signature> <json>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "pub", Required: true, Usage: "Hex public key"},
				&cli.StringFlag{Name: "sig", Required: true, Usage: "Hex signature"},
			},
			Action: verify,
		},
		{
			Name:   "round",
			Usage:  "Print the best round observed across the endpoints",
			Flags:  rpcFlags,
			Action: bestRound,
		},
		{
			Name:   "peers",
			Usage:  "Print the merged peer list of the endpoints",
			Flags:  rpcFlags,
			Action: peers,
		},
		{
			Name:   "ping",
			Usage:  "Ping every endpoint",
			Flags:  rpcFlags,
			Action: ping,
		},
		{
			Name:      "fee",
			Usage:     "Estimate the fee of a transaction",
			UsageText: "fee --key <private_key> [--decimals 18] <json>",
			Flags: append([]cli.Flag{
				keyFlag,
				&cli.IntFlag{Name: "decimals", Value: 18, Usage: "Decimal places of the displayed fee"},
			}, rpcFlags...),
			Action: fee,
		},
	}
	return ctl
}

// loadConfig builds the client config from --config, --rpc-endpoint and --timeout.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if eps := ctx.StringSlice(endpointFlag.Name); len(eps) > 0 {
		cfg.Endpoints = eps
	}
	if d := ctx.Duration(timeoutFlag.Name); d > 0 {
		cfg.Timeouts.Request = d
	}
	return cfg, nil
}

func newCore(ctx *cli.Context) (*sdk.Core, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, cli.Exit(err, 1)
	}
	return sdk.NewSDK(cfg)
}

func printJSON(ctx *cli.Context, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(out))
	return err
}

func argValue(ctx *cli.Context, asJSON bool) (any, error) {
	if ctx.NArg() != 1 {
		return nil, cli.Exit("exactly one argument expected", 1)
	}
	if !asJSON {
		return ctx.Args().First(), nil
	}
	v, err := enc.Decode([]byte(ctx.Args().First()))
	if err != nil {
		return nil, cli.Exit(fmt.Errorf("invalid JSON: %w", err), 1)
	}
	return v, nil
}

func keygen(ctx *cli.Context) error {
	kp, err := sign.NewKeyPair()
	if err != nil {
		return err
	}
	return printJSON(ctx, kp)
}

func address(ctx *cli.Context) error {
	priv, err := argValue(ctx, false)
	if err != nil {
		return err
	}
	kp, err := sign.KeyPairFromPrivateKey(priv.(string))
	if err != nil {
		return cli.Exit(err, 1)
	}
	return printJSON(ctx, map[string]string{"public_key": kp.PublicKey, "address": kp.Address})
}

func hash(ctx *cli.Context) error {
	v, err := argValue(ctx, ctx.Bool("json"))
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]string{
		"string":     enc.String(v),
		"hash":       enc.Hash(v),
		"short_hash": enc.ShortHash(v),
		"id_hash":    enc.IDHash(v),
	})
}

func signValue(ctx *cli.Context) error {
	v, err := argValue(ctx, true)
	if err != nil {
		return err
	}
	sig, err := sign.Signature(v, ctx.String(keyFlag.Name))
	if err != nil {
		return cli.Exit(err, 1)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, sig)
	return err
}

func verify(ctx *cli.Context) error {
	v, err := argValue(ctx, true)
	if err != nil {
		return err
	}
	if !sign.SignatureValidity(v, ctx.String("pub"), ctx.String("sig")) {
		return cli.Exit("invalid signature", 1)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, "OK")
	return err
}

func bestRound(ctx *cli.Context) error {
	core, err := newCore(ctx)
	if err != nil {
		return err
	}
	defer core.Close()
	round, err := core.Client().BestRound(ctx.Context)
	if err != nil {
		return cli.Exit(err, 1)
	}
	return printJSON(ctx, round)
}

func peers(ctx *cli.Context) error {
	core, err := newCore(ctx)
	if err != nil {
		return err
	}
	defer core.Close()
	set, err := core.Client().TrackerFromAll(ctx.Context)
	if err != nil {
		return cli.Exit(err, 1)
	}
	return printJSON(ctx, set)
}

func ping(ctx *cli.Context) error {
	core, err := newCore(ctx)
	if err != nil {
		return err
	}
	defer core.Close()
	health, err := core.Healthcheck(ctx.Context)
	if err != nil {
		return cli.Exit(err, 1)
	}
	down := 0
	for _, h := range health {
		status := "ok"
		if !h.OK {
			status = fmt.Sprintf("code %d", h.Code)
			if h.Err != nil {
				status = h.Err.Error()
			}
			down++
		}
		fmt.Fprintf(ctx.App.Writer, "%s\t%s\n", h.Endpoint, status)
	}
	if down == len(health) {
		return cli.Exit("all endpoints are down", 1)
	}
	return nil
}

func fee(ctx *cli.Context) error {
	v, err := argValue(ctx, true)
	if err != nil {
		return err
	}
	item, ok := v.(enc.Object)
	if !ok {
		return cli.Exit("transaction must be a JSON object", 1)
	}
	env, err := sign.SignedTransaction(item, ctx.String(keyFlag.Name))
	if err != nil {
		return cli.Exit(err, 1)
	}

	core, err := newCore(ctx)
	if err != nil {
		return err
	}
	defer core.Close()

	start := time.Now()
	amount, err := core.Client().EstimatedFee(ctx.Context, env.Object())
	if err != nil {
		var rerr *rpc.Error
		if errors.As(err, &rerr) {
			return cli.Exit(fmt.Errorf("%s answered %d: %w", rerr.Endpoint, rerr.Code, err), 1)
		}
		return cli.Exit(err, 1)
	}
	display, err := util.ApplyDecimal(amount, int32(ctx.Int("decimals")))
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]string{
		"fee":     amount.String(),
		"display": display,
		"tx_hash": env.Hash(),
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	})
}
