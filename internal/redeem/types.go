package redeem

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/powredeem/internal/work"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Transaction is a decoded previous transaction.
	Transaction interface {
		Valid() bool
		ID() chainhash.Hash
		Outputs() []*wire.TxOut
	}
	// Secret is a decoded private key able to sign 32-byte digests.
	Secret interface {
		Valid() bool
		PubKey() []byte
		Sign(hash []byte) ([]byte, error)
	}

	TransactionCodec interface {
		Decode(ctx context.Context, text string) (Transaction, error)
	}
	KeyCodec interface {
		Decode(text string) (Secret, error)
	}
	AddressService interface {
		FromScript(script []byte) (btcutil.Address, error)
		FromKey(key Secret, like btcutil.Address) (btcutil.Address, error)
	}
	Locker interface {
		Lock(candidate work.Candidate) ([]byte, error)
	}
	Signer interface {
		Redeem(ctx context.Context, spend Spend) (*wire.MsgTx, error)
	}

	Metrics interface {
		ObserveRun(err error, started time.Time)
		ObserveRedeemed(value int64)
	}
)
