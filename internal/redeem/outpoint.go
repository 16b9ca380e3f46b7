package redeem

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Outpoint addresses one output of a decoded transaction. Its reference is
// always taken from the transaction itself.
type Outpoint struct {
	reference chainhash.Hash
	index     uint32
}

// OutpointOf points at output index of tx.
func OutpointOf(tx Transaction, index uint32) Outpoint {
	return Outpoint{reference: tx.ID(), index: index}
}

func (o Outpoint) Reference() chainhash.Hash {
	return o.reference
}

func (o Outpoint) Index() uint32 {
	return o.index
}

// Wire converts the outpoint for use in a transaction input.
func (o Outpoint) Wire() wire.OutPoint {
	return wire.OutPoint{Hash: o.reference, Index: o.index}
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.reference, o.index)
}

// Spend describes a single-input redemption handed to a Signer.
type Spend struct {
	Key      Secret
	Outpoint Outpoint
	// Redeemed is the output being spent; its script and value feed the signature hash.
	Redeemed *wire.TxOut
	Outputs  []*wire.TxOut
}
