package redeem

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/powredeem/internal/work"
)

// Assembler builds the redeeming transaction: one input spending the
// outpoint and one output re-locking its full value behind the candidate.
type Assembler struct {
	locker Locker
	signer Signer
}

// NewAssembler constructs an Assembler.
func NewAssembler(locker Locker, signer Signer) *Assembler {
	return &Assembler{locker: locker, signer: signer}
}

// Assemble returns the signed transaction. Locker and signer errors are
// returned as is.
func (a *Assembler) Assemble(
	ctx context.Context,
	key Secret,
	redeemed *wire.TxOut,
	outpoint Outpoint,
	candidate work.Candidate,
) (*wire.MsgTx, error) {
	lock, err := a.locker.Lock(candidate)
	if err != nil {
		return nil, err
	}

	tx, err := a.signer.Redeem(ctx, Spend{
		Key:      key,
		Outpoint: outpoint,
		Redeemed: redeemed,
		Outputs:  []*wire.TxOut{wire.NewTxOut(redeemed.Value, lock)},
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}
