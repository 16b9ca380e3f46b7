package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
)

type (
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Dialer holds a validated HTTP POST mode connection config.
type Dialer struct {
	cfg rpcclient.ConnConfig
}

// NewDialer validates the node address and credentials. Cookie authentication
// is not supported, so an empty password is rejected here instead of failing
// every request later.
func NewDialer(rawURL, user, password string) (*Dialer, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}
	if password == "" {
		return nil, errors.New("rpc password required")
	}

	return &Dialer{cfg: rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}}, nil
}

// Dial opens a new client. The caller shuts it down.
func (d *Dialer) Dial() (*rpcclient.Client, error) {
	cfg := d.cfg
	return rpcclient.New(&cfg, nil)
}

// ObservedClient runs every call on its own client: btcd queues HTTP POST
// requests serially, so an abandoned request would otherwise hold up the next.
type ObservedClient struct {
	dialer     *Dialer
	rpcMetrics RPCMetrics
}

func NewObservedClient(dialer *Dialer, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		dialer:     dialer,
		rpcMetrics: rpcMetrics,
	}
}

// GetRawTransaction fetches a transaction by id. When ctx is done the call
// returns at once and its client is shut down without waiting on the node.
func (r *ObservedClient) GetRawTransaction(ctx context.Context, txHash *chainhash.Hash) (tx *btcutil.Tx, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction", err, started)
	}()

	client, err := r.dialer.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial node: %w", err)
	}
	defer client.Shutdown()

	type result struct {
		tx  *btcutil.Tx
		err error
	}
	future := client.GetRawTransactionAsync(txHash)
	done := make(chan result, 1)
	go func() {
		tx, err := future.Receive()
		done <- result{tx: tx, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.tx, res.err
	}
}
