package bitcoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/powredeem/internal/redeem"
)

// AddressService derives owner addresses from locking scripts and keys.
type AddressService struct {
	params *chaincfg.Params
}

// NewAddressService initializes an AddressService for the provided chain parameters.
func NewAddressService(params *chaincfg.Params) *AddressService {
	return &AddressService{params: params}
}

// FromScript returns the single owner of a pay-to-pubkey-hash, pay-to-pubkey
// or pay-to-witness-pubkey-hash script.
func (s *AddressService) FromScript(script []byte) (btcutil.Address, error) {
	class, addrs, required, err := txscript.ExtractPkScriptAddrs(script, s.params)
	if err != nil {
		return nil, err
	}
	switch class {
	case txscript.PubKeyHashTy, txscript.PubKeyTy, txscript.WitnessV0PubKeyHashTy:
	default:
		return nil, fmt.Errorf("unsupported script class %s", class)
	}
	if len(addrs) != 1 || required != 1 {
		return nil, fmt.Errorf("script has %d addresses, %d required", len(addrs), required)
	}
	return addrs[0], nil
}

// FromKey derives the address key would own in the same family as like.
func (s *AddressService) FromKey(key redeem.Secret, like btcutil.Address) (btcutil.Address, error) {
	pub := key.PubKey()
	if len(pub) == 0 {
		return nil, errors.New("empty public key")
	}

	switch like := like.(type) {
	case *btcutil.AddressPubKeyHash:
		return btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub), s.params)
	case *btcutil.AddressWitnessPubKeyHash:
		return btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub), s.params)
	case *btcutil.AddressPubKey:
		addr, err := btcutil.NewAddressPubKey(pub, s.params)
		if err != nil {
			return nil, err
		}
		// a pay-to-pubkey output checks the point, not its serialization
		addr.SetFormat(like.Format())
		return addr, nil
	default:
		return nil, fmt.Errorf("unsupported address type %T", like)
	}
}
