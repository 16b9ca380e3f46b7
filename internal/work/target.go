// Package work holds the public parameters of a proof-of-work puzzle: the
// fixed message, the compact difficulty target and the lock script built from them.
package work

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/goodnatureofminers/powredeem/internal/failure"
)

const opDecodeTarget = "decode_target"

// MaxMantissa is the largest value a compact target mantissa can hold.
const MaxMantissa = 1<<24 - 1

// Target is a difficulty threshold in compact form.
type Target struct {
	Exponent byte
	Mantissa uint32
}

// NewTarget builds a target, rejecting mantissas wider than 24 bits.
func NewTarget(exponent byte, mantissa uint32) (Target, error) {
	if mantissa > MaxMantissa {
		return Target{}, failure.New(failure.KindDecode, opDecodeTarget, "invalid target value")
	}
	return Target{Exponent: exponent, Mantissa: mantissa}, nil
}

// TargetFromBits splits a packed compact value into exponent and mantissa.
func TargetFromBits(bits uint32) Target {
	return Target{Exponent: byte(bits >> 24), Mantissa: bits & MaxMantissa}
}

// DecodeTarget parses the textual exponent and mantissa. Both accept decimal
// digits or hexadecimal with a 0x prefix.
func DecodeTarget(exponentText, mantissaText string) (Target, error) {
	exponent, err := parseUint(exponentText, 8)
	if err != nil {
		return Target{}, failure.Wrap(err, failure.KindDecode, opDecodeTarget, "invalid target exponent")
	}
	mantissa, err := parseUint(mantissaText, 24)
	if err != nil {
		return Target{}, failure.Wrap(err, failure.KindDecode, opDecodeTarget, "invalid target value")
	}
	return NewTarget(byte(exponent), uint32(mantissa))
}

// Bits packs the target into its 32-bit compact representation.
func (t Target) Bits() uint32 {
	return uint32(t.Exponent)<<24 | t.Mantissa
}

// Expand returns the full threshold the compact form encodes.
func (t Target) Expand() *big.Int {
	return blockchain.CompactToBig(t.Bits())
}

// Satisfiable reports whether any hash can fall below the expanded target.
// Mantissas are accepted whatever the exponent's scale, so a zero result or a
// set sign bit (0x800000) yields a threshold no hash can meet.
func (t Target) Satisfiable() bool {
	return t.Expand().Sign() > 0
}

func (t Target) String() string {
	return fmt.Sprintf("%08x", t.Bits())
}

func parseUint(text string, bitSize int) (uint64, error) {
	if rest, ok := strings.CutPrefix(text, "0x"); ok {
		return strconv.ParseUint(rest, 16, bitSize)
	}
	if rest, ok := strings.CutPrefix(text, "0X"); ok {
		return strconv.ParseUint(rest, 16, bitSize)
	}
	return strconv.ParseUint(text, 10, bitSize)
}
