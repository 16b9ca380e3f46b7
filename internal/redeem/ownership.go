package redeem

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/powredeem/internal/failure"
)

const opVerifyOwnership = "verify_ownership"

// OwnershipVerifier checks that a key controls the address an output pays to.
type OwnershipVerifier struct {
	addresses AddressService
}

// NewOwnershipVerifier constructs an OwnershipVerifier.
func NewOwnershipVerifier(addresses AddressService) *OwnershipVerifier {
	return &OwnershipVerifier{addresses: addresses}
}

// Verify returns the address output pays to when key derives the same address.
func (v *OwnershipVerifier) Verify(output *wire.TxOut, key Secret) (btcutil.Address, error) {
	owner, err := v.addresses.FromScript(output.PkScript)
	if err != nil {
		return nil, failure.Wrap(err, failure.KindUnrecognizedScript, opVerifyOwnership, "invalid output script")
	}

	derived, err := v.addresses.FromKey(key, owner)
	if err != nil {
		return nil, failure.Wrap(err, failure.KindInvalidKey, opVerifyOwnership, "invalid private key")
	}

	if derived.EncodeAddress() != owner.EncodeAddress() {
		return nil, failure.New(failure.KindKeyMismatch, opVerifyOwnership, "cannot redeem address with key")
	}
	return owner, nil
}
