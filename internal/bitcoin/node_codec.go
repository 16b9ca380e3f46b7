package bitcoin

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/powredeem/internal/redeem"
	"go.uber.org/zap"
)

// NodeTransactionCodec resolves transaction ids through a node and falls back
// to hex decoding for anything else.
type NodeTransactionCodec struct {
	client   RawTransactionClient
	fallback TransactionCodec
	timeout  time.Duration
	retry    RetryPolicy
	logger   *zap.Logger
}

// NewNodeTransactionCodec builds a codec that asks client for transaction ids.
// timeout bounds each attempt; a non-positive timeout leaves attempts bounded
// only by the caller's context.
func NewNodeTransactionCodec(client RawTransactionClient, timeout time.Duration, retry RetryPolicy, logger *zap.Logger) *NodeTransactionCodec {
	return &NodeTransactionCodec{
		client:   client,
		fallback: NewTransactionCodec(),
		timeout:  timeout,
		retry:    retry,
		logger:   logger.Named("nodeTransactionCodec"),
	}
}

// Decode fetches text from the node when it is a 64 character transaction id,
// otherwise it decodes text as a serialized transaction.
func (c *NodeTransactionCodec) Decode(ctx context.Context, text string) (redeem.Transaction, error) {
	if len(text) != chainhash.MaxHashStringSize {
		return c.fallback.Decode(ctx, text)
	}
	txid, err := chainhash.NewHashFromStr(text)
	if err != nil {
		return c.fallback.Decode(ctx, text)
	}

	var tx *btcutil.Tx
	fetch := func() error {
		var ferr error
		tx, ferr = c.fetch(ctx, txid)
		return ferr
	}
	notify := func(ferr error, next time.Duration) {
		c.logger.Debug("fetch previous transaction failed, retrying", zap.Stringer("txid", txid), zap.Duration("retry_in", next), zap.Error(ferr))
	}
	err = backoff.RetryNotify(fetch, c.retry.backOff(ctx), notify)
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	if got := tx.MsgTx().TxHash(); got != *txid {
		return nil, fmt.Errorf("node returned transaction %s for %s", got, txid)
	}
	c.logger.Debug("previous transaction fetched", zap.Stringer("txid", txid), zap.Int("outputs", len(tx.MsgTx().TxOut)))
	return NewTransaction(tx.MsgTx()), nil
}

func (c *NodeTransactionCodec) fetch(ctx context.Context, txid *chainhash.Hash) (*btcutil.Tx, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.client.GetRawTransaction(ctx, txid)
}
