package crypto

import (
	"fmt"
	"sort"
)

// SignatureProvider is the boundary to the signature scheme. The engine and
// the harness only use this interface, so an in-process implementation and
// one linked from an external library are interchangeable.
type SignatureProvider interface {
	Name() string

	Sign(message []byte, pair *KeyPair) (Signature, error)

	// Verify fails with ErrVerificationFailed when sig does not authenticate
	// message under pub.
	Verify(sig *Signature, message []byte, pub *PublicKey) error

	// VerifyBatch checks all entries as one unit. Any invalid entry fails the
	// whole call with ErrBatchVerificationFailed and no hint of which one.
	VerifyBatch(entries []BatchEntry) error

	// VerifyBulk writes the outcome of entry i to valid[i]. An invalid
	// signature is not an error, only malformed input is. Implementations
	// keep all scratch state local to the call.
	VerifyBulk(keys []PublicKey, messages [][]byte, sigs []Signature, valid []bool) error
}

var providers = map[string]func() SignatureProvider{
	VoiProviderName:       func() SignatureProvider { return voiProvider{} },
	ConsensusProviderName: func() SignatureProvider { return consensusProvider{} },
	CirclProviderName:     func() SignatureProvider { return circlProvider{} },
}

func NewProvider(name string) (SignatureProvider, error) {
	f, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return f(), nil
}

func ProviderNames() []string {
	names := make([]string, 0, len(providers))
	for n := range providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func checkBulk(keys []PublicKey, messages [][]byte, sigs []Signature, valid []bool) error {
	n := len(keys)
	if len(messages) != n || len(sigs) != n || len(valid) != n {
		return fmt.Errorf("%w: column length mismatch %d %d %d %d",
			ErrBatchVerificationFailed, len(keys), len(messages), len(sigs), len(valid))
	}
	return nil
}

func checkPair(pair *KeyPair) error {
	if pair == nil {
		return fmt.Errorf("%w: nil key pair", ErrSigningFailed)
	}
	return nil
}
