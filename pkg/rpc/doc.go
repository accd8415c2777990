// Package rpc dispatches requests to the Xphere RPC endpoint pool.
//
// Nodes are operated independently and fail independently, so most calls fan
// out to several endpoints:
//
//   - Fetch (Get, Post) talks to one random endpoint.
//   - Race talks to all endpoints and returns the first success whose data
//     satisfies a Condition, cancelling the rest.
//   - All talks to all endpoints and returns one Result per endpoint once
//     every endpoint has settled.
//
// Peer discovery (TrackerFromAll, PeerFromAll), BestRound, BroadcastTransaction
// and EstimatedFee are built on top of these.
//
// # Requests
//
// GET payloads are sent as a query string and POST payloads as a multipart
// form. Every value is sent as its canonical string (enc.String), in payload
// order. Configured headers go with every request and each roundtrip is bounded
// by the configured request timeout.
//
// # Responses
//
// Nodes answer with an envelope {code, msg, data}; code 200 is success. The
// client synthesizes two codes of its own:
//
//	408  the request timed out locally           (ErrTimeout)
//	901  the body is not a valid envelope         (ErrMalformedResponse)
//
// Non-2xx answers that carry an envelope are passed through, other non-2xx
// answers become {status, status text, body}. Result.Failure turns any
// unsuccessful Result into an *Error carrying the endpoint it came from.
//
// # Example
//
//	client, err := rpc.New(&config.Config{})
//	if err != nil {
//		return err
//	}
//	round, err := client.BestRound(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Println(round.Main.Height, round.Resource.Height)
//
// # Metrics
//
// Request counts, latencies and dispatch outcomes are exported to the default
// Prometheus registry under the "xphere" namespace.
package rpc
