package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/powredeem/internal/redeem"
)

// Key is a WIF encoded private key bound to the network it is used on.
type Key struct {
	wif    *btcutil.WIF
	params *chaincfg.Params
}

// NewKey wraps wif for use on params.
func NewKey(wif *btcutil.WIF, params *chaincfg.Params) *Key {
	return &Key{wif: wif, params: params}
}

// Valid reports whether the key is non-zero and encoded for the configured network.
func (k *Key) Valid() bool {
	if k.wif == nil || k.wif.PrivKey == nil || k.wif.PrivKey.Key.IsZero() {
		return false
	}
	return k.wif.IsForNet(k.params)
}

// PubKey returns the public key serialized the way the WIF requests.
func (k *Key) PubKey() []byte {
	return k.wif.SerializePubKey()
}

// Sign returns a DER encoded RFC6979 signature of hash.
func (k *Key) Sign(hash []byte) ([]byte, error) {
	if len(hash) != chainhash.HashSize {
		return nil, fmt.Errorf("signature hash must be %d bytes, got %d", chainhash.HashSize, len(hash))
	}
	return ecdsa.Sign(k.wif.PrivKey, hash).Serialize(), nil
}

func (k *Key) String() string {
	return k.wif.String()
}

// KeyCodec decodes WIF private keys for one network.
type KeyCodec struct {
	params *chaincfg.Params
}

// NewKeyCodec initializes a KeyCodec for the provided chain parameters.
func NewKeyCodec(params *chaincfg.Params) *KeyCodec {
	return &KeyCodec{params: params}
}

// Decode parses text as WIF. A well formed key for another network decodes
// but is not Valid.
func (c *KeyCodec) Decode(text string) (redeem.Secret, error) {
	wif, err := btcutil.DecodeWIF(text)
	if err != nil {
		return nil, fmt.Errorf("decode wif: %w", err)
	}
	return NewKey(wif, c.params), nil
}
