package redeem

import (
	"context"
	"strconv"

	"github.com/goodnatureofminers/powredeem/internal/failure"
	"github.com/goodnatureofminers/powredeem/internal/work"
	"github.com/goodnatureofminers/powredeem/pkg/safe"
)

const opDecodeInput = "decode_input"

// FieldCount is the number of raw inputs a redemption needs.
const FieldCount = 6

// Decoder turns the raw text fields into a Program.
type Decoder struct {
	transactions TransactionCodec
	keys         KeyCodec
}

// NewDecoder constructs a Decoder.
func NewDecoder(transactions TransactionCodec, keys KeyCodec) *Decoder {
	return &Decoder{transactions: transactions, keys: keys}
}

// Decode parses, in order: previous transaction, output index, private key,
// message, target exponent and target value. The first failing field decides
// the error.
func (d *Decoder) Decode(ctx context.Context, fields []string) (*Program, error) {
	if len(fields) != FieldCount {
		return nil, failure.New(failure.KindArity, opDecodeInput, "six inputs required")
	}

	previous, err := d.transactions.Decode(ctx, fields[0])
	if err != nil {
		return nil, failure.Wrap(err, failure.KindInvalidTransaction, opDecodeInput, "transaction is not valid")
	}
	if !previous.Valid() {
		return nil, failure.New(failure.KindInvalidTransaction, opDecodeInput, "transaction is not valid")
	}

	index, err := parseIndex(fields[1])
	if err != nil {
		return nil, failure.Wrap(err, failure.KindInvalidIndex, opDecodeInput, "invalid output index")
	}

	key, err := d.keys.Decode(fields[2])
	if err != nil {
		return nil, failure.Wrap(err, failure.KindInvalidKey, opDecodeInput, "invalid private key")
	}
	if !key.Valid() {
		return nil, failure.New(failure.KindInvalidKey, opDecodeInput, "invalid private key")
	}

	candidate, err := work.ReadCandidate(fields[3], fields[4], fields[5])
	if err != nil {
		return nil, err
	}

	return NewProgram(previous, OutpointOf(previous, index), key, candidate), nil
}

func parseIndex(text string) (uint32, error) {
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, err
	}
	return safe.Uint32(value)
}
