// Package main contains the entrypoint that redeems an owned output into a
// proof-of-work locked output and prints the signed transaction.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/powredeem/internal/bitcoin"
	"github.com/goodnatureofminers/powredeem/internal/failure"
	"github.com/goodnatureofminers/powredeem/internal/metrics"
	"github.com/goodnatureofminers/powredeem/internal/model"
	"github.com/goodnatureofminers/powredeem/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/powredeem/internal/redeem"
	"github.com/goodnatureofminers/powredeem/internal/work"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	Network     model.Network `long:"network" env:"POW_REDEEM_NETWORK" description:"network whose keys and addresses are accepted" default:"mainnet"`
	LogLevel    string        `long:"log-level" env:"POW_REDEEM_LOG_LEVEL" description:"level of the log written to stderr" default:"warn"`
	ExitCode    bool          `long:"exit-code" env:"POW_REDEEM_EXIT_CODE" description:"exit with status 1 when the redemption fails"`
	MetricsFile string        `long:"metrics-file" env:"POW_REDEEM_METRICS_FILE" description:"write metrics to this node exporter textfile"`
	RPCURL      string        `long:"rpc-url" env:"POW_REDEEM_RPC_URL" description:"Bitcoin RPC URL used to fetch a previous transaction given by id"`
	RPCUser     string        `long:"rpc-user" env:"POW_REDEEM_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string        `long:"rpc-password" env:"POW_REDEEM_RPC_PASSWORD" description:"Bitcoin RPC password"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"POW_REDEEM_HTTP_TIMEOUT" description:"timeout for RPC requests" default:"30s"`
	RPCAttempts int           `long:"rpc-attempts" env:"POW_REDEEM_RPC_ATTEMPTS" description:"attempts made to fetch a previous transaction" default:"3"`
	RPCBackoff  time.Duration `long:"rpc-backoff" env:"POW_REDEEM_RPC_BACKOFF" description:"pause after the first failed fetch, doubled after each further one" default:"500ms"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := flags.NewParser(&cfg, flags.Default)
	parser.Usage = "[OPTIONS] [--] PREVIOUS_TX OUTPUT_INDEX WIF MESSAGE EXPONENT VALUE"
	fields, err := parser.ParseArgs(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}

	code := execute(ctx, cfg, fields, os.Stdout, logger)
	_ = logger.Sync()
	stop()
	os.Exit(code)
}

// execute prints the redemption or its failure message to out and returns
// the process exit status.
func execute(ctx context.Context, cfg config, fields []string, out io.Writer, logger *zap.Logger) int {
	result, err := run(ctx, cfg, fields, logger)
	if err != nil {
		logger.Warn("redemption failed", zap.Error(err), zap.String("kind", string(failure.KindOf(err))))
		result = failure.Message(err)
	}
	if _, werr := fmt.Fprint(out, result); werr != nil {
		logger.Error("write result", zap.Error(werr))
	}

	if cfg.MetricsFile != "" {
		if merr := metrics.WriteTextfile(cfg.MetricsFile); merr != nil {
			logger.Error("write metrics textfile", zap.String("path", cfg.MetricsFile), zap.Error(merr))
		}
	}

	if err != nil && cfg.ExitCode {
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config, fields []string, logger *zap.Logger) (string, error) {
	params, err := bitcoin.ChainParams(cfg.Network)
	if err != nil {
		return "", err
	}

	var transactions redeem.TransactionCodec = bitcoin.NewTransactionCodec()
	if cfg.RPCURL != "" {
		dialer, err := rpcclient.NewDialer(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
		if err != nil {
			return "", fmt.Errorf("init rpc client: %w", err)
		}
		observed := rpcclient.NewObservedClient(dialer, metrics.NewRPCClient(cfg.Network))
		retry := bitcoin.RetryPolicy{Attempts: cfg.RPCAttempts, Backoff: cfg.RPCBackoff}
		transactions = bitcoin.NewNodeTransactionCodec(observed, cfg.HTTPTimeout, retry, logger)
	}

	pipeline, err := redeem.NewPipeline(
		transactions,
		bitcoin.NewKeyCodec(params),
		bitcoin.NewAddressService(params),
		work.NewPowLocker(),
		bitcoin.NewSigner(),
		metrics.NewRedemption(cfg.Network),
		logger,
	)
	if err != nil {
		return "", err
	}

	tx, err := pipeline.Run(ctx, fields)
	if err != nil {
		return "", err
	}
	return bitcoin.EncodeTransaction(tx)
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}
