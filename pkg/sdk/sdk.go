// Package sdk exposes the high-level Xphere client: dispatch through the
// endpoint pool, signed transaction submission with confirmation polling, and
// endpoint health checks.
package sdk

import (
	"context"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/zigap/xphere-sdk-go/pkg/config"
	"github.com/zigap/xphere-sdk-go/pkg/enc"
	"github.com/zigap/xphere-sdk-go/pkg/rpc"
)

// XphereSDK is the public interface of the client.
type XphereSDK interface {
	// Client returns the dispatcher for direct RPC calls.
	Client() *rpc.Client

	// Submit signs item as a transaction, broadcasts it and polls until lookup
	// confirms it on chain. See Core.Submit.
	Submit(ctx context.Context, item enc.Object, privateKey string, lookup enc.Object) (*Receipt, error)

	// Register submits a contract code and waits until GetCode returns it.
	Register(ctx context.Context, privateKey string, params RegisterParams) (*Receipt, error)

	// Healthcheck pings every configured endpoint.
	Healthcheck(ctx context.Context) ([]Health, error)

	// Close releases resources associated with the SDK instance.
	Close()
}

// logLevel is raised to debug by Config.Debug.
var logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            logLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation.
type Core struct {
	client *rpc.Client
	cfg    config.Config

	submissions *atomic.Uint64
}

// NewSDK validates a copy of cfg and builds the RPC client. Options are passed
// to rpc.New.
func NewSDK(cfg *config.Config, opts ...rpc.Option) (*Core, error) {
	client, err := rpc.New(cfg, opts...)
	if err != nil {
		zap.L().Error("invalid config", zap.Error(err))
		return nil, err
	}
	own := client.Config()
	if own.Debug {
		logLevel.SetLevel(zap.DebugLevel)
		zap.L().Debug("xphere endpoints", zap.Strings("endpoints", own.Endpoints))
	}
	return &Core{
		client:      client,
		cfg:         own,
		submissions: atomic.NewUint64(0),
	}, nil
}

func (c *Core) Client() *rpc.Client {
	return c.client
}

// Submissions returns how many transactions were submitted through c.
func (c *Core) Submissions() uint64 {
	return c.submissions.Load()
}

// Close flushes the global logger. Requests hold no connections between
// calls, so nothing else needs releasing.
func (c *Core) Close() {
	_ = zap.L().Sync()
}
