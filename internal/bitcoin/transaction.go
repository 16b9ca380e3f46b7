package bitcoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/powredeem/internal/redeem"
)

// Transaction adapts a wire transaction to the redemption pipeline.
type Transaction struct {
	msg *wire.MsgTx
}

// NewTransaction wraps msg.
func NewTransaction(msg *wire.MsgTx) *Transaction {
	return &Transaction{msg: msg}
}

// Valid runs the context free consensus sanity checks.
func (t *Transaction) Valid() bool {
	if t.msg == nil {
		return false
	}
	return blockchain.CheckTransactionSanity(btcutil.NewTx(t.msg)) == nil
}

func (t *Transaction) ID() chainhash.Hash {
	return t.msg.TxHash()
}

func (t *Transaction) Outputs() []*wire.TxOut {
	return t.msg.TxOut
}

func (t *Transaction) MsgTx() *wire.MsgTx {
	return t.msg
}

// TransactionCodec decodes hex serialized transactions.
type TransactionCodec struct{}

// NewTransactionCodec returns a TransactionCodec.
func NewTransactionCodec() TransactionCodec {
	return TransactionCodec{}
}

// Decode parses text as a hex serialized transaction, witness data included.
// Bytes left over after the transaction are rejected.
func (TransactionCodec) Decode(_ context.Context, text string) (redeem.Transaction, error) {
	msg, err := DecodeTransaction(text)
	if err != nil {
		return nil, err
	}
	return NewTransaction(msg), nil
}

// DecodeTransaction parses a hex serialized transaction.
func DecodeTransaction(text string) (*wire.MsgTx, error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode transaction hex: %w", err)
	}

	reader := bytes.NewReader(raw)
	msg := &wire.MsgTx{}
	if err := msg.Deserialize(reader); err != nil {
		return nil, fmt.Errorf("deserialize transaction: %w", err)
	}
	if reader.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes after transaction", reader.Len())
	}
	return msg, nil
}

// EncodeTransaction serializes tx as lowercase hex.
func EncodeTransaction(tx *wire.MsgTx) (string, error) {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return "", fmt.Errorf("serialize transaction: %w", err)
	}
	return hex.EncodeToString(buf.Bytes()), nil
}
