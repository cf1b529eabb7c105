package bench

import (
	"fmt"

	"github.com/MixinNetwork/sigbench/crypto"
)

const fixtureLabel = "sigbench fixture key"

// Fixture holds the single message, key pair and signature every cell
// measures, plus the prebuilt batches. All of it is read-only once built and
// shared by the pool workers without locking.
type Fixture struct {
	Provider  crypto.SignatureProvider
	Pair      *crypto.KeyPair
	Message   []byte
	Signature crypto.Signature

	batches      map[int][]crypto.BatchEntry
	accumulators map[int]*crypto.BatchAccumulator
}

func NewFixture(provider crypto.SignatureProvider, messageSize int) (*Fixture, error) {
	f := &Fixture{
		Provider:     provider,
		Pair:         crypto.NewKeyPairFromLabel(fixtureLabel),
		Message:      make([]byte, messageSize),
		batches:      make(map[int][]crypto.BatchEntry),
		accumulators: make(map[int]*crypto.BatchAccumulator),
	}
	sig, err := provider.Sign(f.Message, f.Pair)
	if err != nil {
		return nil, err
	}
	f.Signature = sig
	err = provider.Verify(&f.Signature, f.Message, &f.Pair.Public)
	if err != nil {
		return nil, fmt.Errorf("fixture signature: %w", err)
	}
	return f, nil
}

func (f *Fixture) Batch(size int) []crypto.BatchEntry {
	if b, ok := f.batches[size]; ok {
		return b
	}
	entries := make([]crypto.BatchEntry, size)
	for i := range entries {
		entries[i] = crypto.BatchEntry{
			PublicKey: f.Pair.Public,
			Signature: f.Signature,
			Message:   f.Message,
		}
	}
	f.batches[size] = entries
	return entries
}

func (f *Fixture) Accumulator(size int) (*crypto.BatchAccumulator, error) {
	if acc, ok := f.accumulators[size]; ok {
		return acc, nil
	}
	acc := crypto.NewBatchAccumulator(f.Provider, size)
	entries := f.Batch(size)
	for i := range entries {
		err := acc.Add(&entries[i])
		if err != nil {
			return nil, err
		}
	}
	f.accumulators[size] = acc
	return acc, nil
}

// Unit returns one dispatch unit of the cell, the closure runs the operation
// BatchSize times, or once over a batch of BatchSize entries.
func (f *Fixture) Unit(cell Cell) (func() error, error) {
	p, pair, msg, sig, n := f.Provider, f.Pair, f.Message, f.Signature, cell.BatchSize

	switch cell.Operation {
	case OperationSign:
		return func() error {
			for i := 0; i < n; i++ {
				if _, err := p.Sign(msg, pair); err != nil {
					return err
				}
			}
			return nil
		}, nil
	case OperationVerify:
		return func() error {
			for i := 0; i < n; i++ {
				if err := p.Verify(&sig, msg, &pair.Public); err != nil {
					return err
				}
			}
			return nil
		}, nil
	case OperationVerifyBatch:
		entries := f.Batch(n)
		return func() error {
			return p.VerifyBatch(entries)
		}, nil
	case OperationAccumulator:
		acc, err := f.Accumulator(n)
		if err != nil {
			return nil, err
		}
		return func() error {
			res, err := acc.Verify()
			if err != nil {
				return err
			}
			for i, v := range res {
				if !v {
					return fmt.Errorf("%w: entry %d invalid", crypto.ErrBatchVerificationFailed, i)
				}
			}
			return nil
		}, nil
	}
	return nil, fmt.Errorf("%w: operation %s", ErrInvalidConfig, cell.Operation)
}
