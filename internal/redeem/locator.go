package redeem

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/powredeem/internal/failure"
)

const opLocateOutput = "locate_output"

// LocateOutput returns the output of tx the outpoint points at.
func LocateOutput(tx Transaction, outpoint Outpoint) (*wire.TxOut, error) {
	if outpoint.Reference() != tx.ID() {
		return nil, failure.New(failure.KindReferenceMismatch, opLocateOutput, "invalid reference to previous tx")
	}
	if !tx.Valid() {
		return nil, failure.New(failure.KindInvalidTransaction, opLocateOutput, "transaction is not valid")
	}

	outputs := tx.Outputs()
	if uint64(outpoint.Index()) >= uint64(len(outputs)) {
		return nil, failure.New(failure.KindNoSuchOutput, opLocateOutput, "no such output in previous tx")
	}
	return outputs[outpoint.Index()], nil
}
