package crypto

import (
	"errors"
	"fmt"
	"sync"

	"github.com/willf/bitset"
)

const MaxBatchEntries = 1 << 24

type BatchEntry struct {
	PublicKey PublicKey
	Signature Signature
	Message   []byte
}

// BatchAccumulator keeps entries in parallel columns so the provider gets
// contiguous keys, messages and signatures in a single bulk call.
//
// Verify may be called concurrently on the same accumulator, Add and Reset
// may not overlap with anything else.
type BatchAccumulator struct {
	provider   SignatureProvider
	keys       []PublicKey
	messages   [][]byte
	signatures []Signature

	mutex    sync.RWMutex
	results  *bitset.BitSet
	verified bool
}

func NewBatchAccumulator(provider SignatureProvider, capacity int) *BatchAccumulator {
	if capacity < 0 || capacity > MaxBatchEntries {
		capacity = 0
	}
	return &BatchAccumulator{
		provider:   provider,
		keys:       make([]PublicKey, 0, capacity),
		messages:   make([][]byte, 0, capacity),
		signatures: make([]Signature, 0, capacity),
		results:    bitset.New(uint(capacity)),
	}
}

func (b *BatchAccumulator) Add(e *BatchEntry) error {
	if len(b.keys) >= MaxBatchEntries {
		return fmt.Errorf("%w: batch full at %d entries", ErrAllocationFailed, len(b.keys))
	}
	b.keys = append(b.keys, e.PublicKey)
	b.messages = append(b.messages, e.Message)
	b.signatures = append(b.signatures, e.Signature)
	b.mutex.Lock()
	b.verified = false
	b.mutex.Unlock()
	return nil
}

func (b *BatchAccumulator) Len() int {
	return len(b.keys)
}

func (b *BatchAccumulator) Entry(i int) BatchEntry {
	return BatchEntry{
		PublicKey: b.keys[i],
		Signature: b.signatures[i],
		Message:   b.messages[i],
	}
}

// Verify checks every entry with exactly one bulk provider call and returns
// the outcomes in insertion order. An invalid signature only shows up as
// false, the error is reserved for structural failures.
func (b *BatchAccumulator) Verify() ([]bool, error) {
	valid := make([]bool, len(b.keys))
	if len(valid) == 0 {
		return valid, nil
	}
	err := b.provider.VerifyBulk(b.keys, b.messages, b.signatures, valid)
	if errors.Is(err, ErrBatchVerificationFailed) {
		return nil, err
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBatchVerificationFailed, err)
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for i, v := range valid {
		b.results.SetTo(uint(i), v)
	}
	b.verified = true
	return valid, nil
}

// Result returns the outcome of entry i from the latest Verify, verified is
// false when no Verify ran since the last Add or Reset.
func (b *BatchAccumulator) Result(i int) (valid, verified bool) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	if !b.verified || i < 0 || i >= len(b.keys) {
		return false, false
	}
	return b.results.Test(uint(i)), true
}

func (b *BatchAccumulator) Reset() {
	for i := range b.messages {
		b.messages[i] = nil
	}
	b.keys = b.keys[:0]
	b.messages = b.messages[:0]
	b.signatures = b.signatures[:0]
	b.mutex.Lock()
	b.results.ClearAll()
	b.verified = false
	b.mutex.Unlock()
}
