package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/powredeem/internal/redeem"
)

const redeemTxVersion = 1

// Signer builds and signs single-input redemptions.
type Signer struct {
	flags txscript.ScriptFlags
}

// NewSigner returns a Signer that checks its own signatures with the
// standard verification flags.
func NewSigner() *Signer {
	return &Signer{flags: txscript.StandardVerifyFlags}
}

// Redeem spends spend.Outpoint into spend.Outputs and signs the input with
// SIGHASH_ALL. The signed input is executed against the redeemed script
// before the transaction is returned.
func (s *Signer) Redeem(ctx context.Context, spend redeem.Spend) (*wire.MsgTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spend.Key == nil || spend.Redeemed == nil {
		return nil, errors.New("spend needs a key and a redeemed output")
	}

	tx := wire.NewMsgTx(redeemTxVersion)
	prev := spend.Outpoint.Wire()
	tx.AddTxIn(wire.NewTxIn(&prev, nil, nil))
	for _, out := range spend.Outputs {
		tx.AddTxOut(out)
	}

	pkScript := spend.Redeemed.PkScript
	amount := spend.Redeemed.Value
	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, amount)
	hashes := txscript.NewTxSigHashes(tx, fetcher)

	switch class := txscript.GetScriptClass(pkScript); class {
	case txscript.PubKeyHashTy, txscript.PubKeyTy:
		hash, err := txscript.CalcSignatureHash(pkScript, txscript.SigHashAll, tx, 0)
		if err != nil {
			return nil, fmt.Errorf("calc signature hash: %w", err)
		}
		sig, err := sign(spend.Key, hash)
		if err != nil {
			return nil, err
		}
		builder := txscript.NewScriptBuilder().AddData(sig)
		if class == txscript.PubKeyHashTy {
			builder.AddData(spend.Key.PubKey())
		}
		if tx.TxIn[0].SignatureScript, err = builder.Script(); err != nil {
			return nil, fmt.Errorf("build signature script: %w", err)
		}
	case txscript.WitnessV0PubKeyHashTy:
		hash, err := txscript.CalcWitnessSigHash(pkScript, hashes, txscript.SigHashAll, tx, 0, amount)
		if err != nil {
			return nil, fmt.Errorf("calc witness signature hash: %w", err)
		}
		sig, err := sign(spend.Key, hash)
		if err != nil {
			return nil, err
		}
		tx.TxIn[0].Witness = wire.TxWitness{sig, spend.Key.PubKey()}
	default:
		return nil, fmt.Errorf("cannot sign %s output", class)
	}

	vm, err := txscript.NewEngine(pkScript, tx, 0, s.flags, nil, hashes, amount, fetcher)
	if err != nil {
		return nil, fmt.Errorf("create script engine: %w", err)
	}
	if err := vm.Execute(); err != nil {
		return nil, fmt.Errorf("verify signed input: %w", err)
	}
	return tx, nil
}

func sign(key redeem.Secret, hash []byte) ([]byte, error) {
	sig, err := key.Sign(hash)
	if err != nil {
		return nil, fmt.Errorf("sign input: %w", err)
	}
	return append(sig, byte(txscript.SigHashAll)), nil
}
