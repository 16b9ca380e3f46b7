package bitcoin

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RawTransactionClient fetches transactions from a node by id.
	RawTransactionClient interface {
		GetRawTransaction(ctx context.Context, txHash *chainhash.Hash) (*btcutil.Tx, error)
	}
)
