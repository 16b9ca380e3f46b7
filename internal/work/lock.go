package work

import (
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// PowLocker builds proof-of-work lock scripts for candidates.
type PowLocker struct{}

// NewPowLocker returns a PowLocker.
func NewPowLocker() PowLocker {
	return PowLocker{}
}

// Lock returns the lock script for c.
func (PowLocker) Lock(c Candidate) ([]byte, error) {
	return LockScript(c)
}

// LockScript returns a script that expects a single value on the stack and
// succeeds when HASH256(value || message), read as an unsigned little-endian
// number, is below the expanded target.
func LockScript(c Candidate) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddData(c.Message[:]).
		AddOp(txscript.OP_CAT).
		AddOp(txscript.OP_HASH256).
		// literal one-byte push of 0x00 keeps the digest non-negative as a number;
		// AddData would collapse it into an empty push.
		AddOp(txscript.OP_DATA_1).
		AddOp(txscript.OP_0).
		AddOp(txscript.OP_CAT).
		AddData(scriptNum(c.Target.Expand())).
		AddOp(txscript.OP_LESSTHAN).
		Script()
}

// Satisfies reports whether value solves the candidate, evaluating the same
// predicate as the lock script.
func Satisfies(c Candidate, value []byte) bool {
	preimage := make([]byte, 0, len(value)+MessageSize)
	preimage = append(preimage, value...)
	preimage = append(preimage, c.Message[:]...)
	hash := chainhash.DoubleHashH(preimage)
	return blockchain.HashToBig(&hash).Cmp(c.Target.Expand()) < 0
}

// scriptNum encodes n as a minimal little-endian sign-magnitude script number.
func scriptNum(n *big.Int) []byte {
	if n.Sign() == 0 {
		return nil
	}
	magnitude := new(big.Int).Abs(n).Bytes()
	out := make([]byte, len(magnitude), len(magnitude)+1)
	for i, b := range magnitude {
		out[len(magnitude)-1-i] = b
	}

	negative := n.Sign() < 0
	switch {
	case out[len(out)-1]&0x80 != 0 && negative:
		out = append(out, 0x80)
	case out[len(out)-1]&0x80 != 0:
		out = append(out, 0x00)
	case negative:
		out[len(out)-1] |= 0x80
	}
	return out
}
