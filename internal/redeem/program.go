// Package redeem turns six raw text fields into a signed transaction that
// spends an owned output into a proof-of-work lock.
package redeem

import (
	"context"
	"errors"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/powredeem/internal/failure"
	"github.com/goodnatureofminers/powredeem/internal/work"
	"go.uber.org/zap"
)

const opValidateProgram = "validate_program"

// ErrExecuted is returned when a program is executed a second time.
var ErrExecuted = errors.New("program already executed")

// State tracks a Program through validation and execution.
type State int

const (
	Unvalidated State = iota
	Validated
	Executed
)

func (s State) String() string {
	switch s {
	case Unvalidated:
		return "unvalidated"
	case Validated:
		return "validated"
	case Executed:
		return "executed"
	default:
		return "unknown"
	}
}

// Program holds the decoded inputs of one redemption.
type Program struct {
	Previous  Transaction
	Reference Outpoint
	Key       Secret
	Candidate work.Candidate

	state State
}

// NewProgram returns an unvalidated program.
func NewProgram(previous Transaction, reference Outpoint, key Secret, candidate work.Candidate) *Program {
	return &Program{
		Previous:  previous,
		Reference: reference,
		Key:       key,
		Candidate: candidate,
	}
}

// Valid reports whether both the previous transaction and the key are usable.
func (p *Program) Valid() bool {
	return p.Previous.Valid() && p.Key.Valid()
}

func (p *Program) State() State {
	return p.state
}

func (p *Program) validate() error {
	if p.state == Executed {
		return ErrExecuted
	}
	if !p.Previous.Valid() {
		return failure.New(failure.KindInvalidTransaction, opValidateProgram, "transaction is not valid")
	}
	if !p.Key.Valid() {
		return failure.New(failure.KindInvalidKey, opValidateProgram, "invalid private key")
	}
	p.state = Validated
	return nil
}

// Pipeline decodes, verifies and assembles redemptions.
type Pipeline struct {
	logger    *zap.Logger
	metrics   Metrics
	decoder   *Decoder
	verifier  *OwnershipVerifier
	assembler *Assembler
}

// NewPipeline wires the pipeline stages over the given collaborators.
func NewPipeline(
	transactions TransactionCodec,
	keys KeyCodec,
	addresses AddressService,
	locker Locker,
	signer Signer,
	metrics Metrics,
	logger *zap.Logger,
) (*Pipeline, error) {
	if metrics == nil {
		return nil, errors.New("redeem metrics is required")
	}
	return &Pipeline{
		logger:    logger.Named("redeem"),
		metrics:   metrics,
		decoder:   NewDecoder(transactions, keys),
		verifier:  NewOwnershipVerifier(addresses),
		assembler: NewAssembler(locker, signer),
	}, nil
}

// Run decodes fields and executes the resulting program.
func (p *Pipeline) Run(ctx context.Context, fields []string) (tx *wire.MsgTx, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveRun(err, started)
	}()

	program, err := p.decoder.Decode(ctx, fields)
	if err != nil {
		p.logger.Debug("decode inputs failed", zap.Error(err), zap.String("kind", string(failure.KindOf(err))))
		return nil, err
	}
	p.logger.Debug("inputs decoded",
		zap.Stringer("outpoint", program.Reference),
		zap.Stringer("target", program.Candidate.Target),
	)

	return p.Execute(ctx, program)
}

// Execute validates program and builds its redeeming transaction. A program
// that fails validation stays unvalidated; any validated run leaves it executed.
func (p *Pipeline) Execute(ctx context.Context, program *Program) (*wire.MsgTx, error) {
	if err := program.validate(); err != nil {
		return nil, err
	}
	defer func() {
		program.state = Executed
	}()

	redeemed, err := LocateOutput(program.Previous, program.Reference)
	if err != nil {
		return nil, err
	}

	owner, err := p.verifier.Verify(redeemed, program.Key)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("ownership verified", zap.String("address", owner.EncodeAddress()), zap.Int64("value", redeemed.Value))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := p.assembler.Assemble(ctx, program.Key, redeemed, program.Reference, program.Candidate)
	if err != nil {
		return nil, err
	}
	p.metrics.ObserveRedeemed(redeemed.Value)
	if !program.Candidate.Target.Satisfiable() {
		p.logger.Warn("lock can never be satisfied", zap.Stringer("target", program.Candidate.Target))
	}
	p.logger.Info("redemption assembled",
		zap.Stringer("outpoint", program.Reference),
		zap.Stringer("txid", tx.TxHash()),
		zap.Int64("value", redeemed.Value),
	)
	return tx, nil
}
