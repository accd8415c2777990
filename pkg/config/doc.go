// Package config holds the client configuration: the RPC endpoint pool,
// request headers, broadcast fan-out, timeouts and submission limits.
//
// # Basic Configuration
//
// The zero value is usable. Validate fills the defaults:
//
//	cfg := &config.Config{}
//	if err := cfg.Validate(); err != nil {
//		log.Fatalf("invalid config: %v", err)
//	}
//
// Defaults:
//
//	Endpoints:        DefaultEndpoints (xphere-main, mello, joy and jenny on zigap.io)
//	BroadcastLimit:   32
//	Timeouts.Request: 30s
//	Timeouts.Poll:    2s
//	Submit.MaxResends 0 (resend until confirmed)
//
// # Endpoints
//
// Endpoints are base URLs. A bare IPv4 host is reached over http, any other
// bare host over https:
//
//	cfg.Endpoints = []string{"https://node.example.org", "10.0.0.5:8080"}
//
// # Overrides
//
// Config is a value type. The With* helpers return modified copies and leave
// the receiver untouched:
//
//	fast := cfg.WithTimeout(5 * time.Second).WithEndpoints("https://mello.zigap.io")
//
// # Loading From a File
//
// Load reads YAML (JSON is accepted as well) and validates the result:
//
//	endpoints:
//	  - https://mello.zigap.io
//	headers:
//	  X-Api-Key: secret
//	broadcast_limit: 16
//	timeouts:
//	  request: 10s
//	  poll: 2s
//	submit:
//	  max_resends: 5
//
// # Thread Safety
//
// A client copies its Config on construction. Editing the caller's value later
// does not affect dispatches already configured, so configure before first use.
package config
