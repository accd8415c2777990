// Package sdk is the high-level entry point of the Xphere client.
//
// It wraps the RPC dispatcher (package rpc) and adds the transaction
// submission workflow: sign once, broadcast, poll for finality and resend until
// the network confirms the transaction.
//
// # Quick Start
//
//	import (
//		"github.com/zigap/xphere-sdk-go/pkg/config"
//		"github.com/zigap/xphere-sdk-go/pkg/enc"
//		"github.com/zigap/xphere-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		core, err := sdk.NewSDK(&config.Config{PrivateKey: "YOUR_PRIVATE_KEY"})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer core.Close()
//
//		round, err := core.Client().BestRound(context.Background())
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println("main height:", round.Main.Height)
//	}
//
// # Submitting Transactions
//
// Submit takes the transaction payload and a lookup request whose answer
// proves the transaction landed:
//
//	receipt, err := core.Submit(ctx, enc.Object{
//		{Key: "type", Value: "Register"},
//		{Key: "code", Value: code},
//	}, "", enc.Object{
//		{Key: "type", Value: "GetCode"},
//		{Key: "ctype", Value: "contract"},
//		{Key: "target", Value: cid},
//	})
//
// The workflow moves through these states:
//
//	built -> signed -> broadcast -> polling -> confirmed
//	                      ^            |
//	                      +-- resent <-+
//
// The same signed envelope is resent every time, so the transaction hash
// never changes. A broadcast answered with code 999 ends the workflow with
// ErrFatalResponse. By default resending is unbounded; set
// Config.Submit.MaxResends to bound it and pass a context with a deadline to
// bound the total time.
//
// Register is a shortcut for contract code registration that builds the
// transaction and the GetCode lookup.
//
// # Health Checks
//
// Healthcheck pings every configured endpoint in parallel and reports each
// endpoint's status.
//
// # Logging
//
// The package installs a console zap logger as the global logger on import.
// Config.Debug raises it to debug level. Replace it with zap.ReplaceGlobals
// if the application has its own logger.
package sdk
