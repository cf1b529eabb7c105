package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/hdevalence/ed25519consensus"
)

// ConsensusProviderName selects ZIP-215 validation rules, where single and
// batch verification always agree.
const ConsensusProviderName = "consensus"

type consensusProvider struct{}

func (consensusProvider) Name() string {
	return ConsensusProviderName
}

func (consensusProvider) Sign(message []byte, pair *KeyPair) (Signature, error) {
	var sig Signature
	if err := checkPair(pair); err != nil {
		return sig, err
	}
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(pair.Private[:]), message))
	return sig, nil
}

func (consensusProvider) Verify(sig *Signature, message []byte, pub *PublicKey) error {
	if !ed25519consensus.Verify(ed25519.PublicKey(pub[:]), message, sig[:]) {
		return ErrVerificationFailed
	}
	return nil
}

func (p consensusProvider) VerifyBatch(entries []BatchEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: empty batch", ErrBatchVerificationFailed)
	}
	if len(entries) == 1 {
		e := &entries[0]
		if p.Verify(&e.Signature, e.Message, &e.PublicKey) != nil {
			return ErrBatchVerificationFailed
		}
		return nil
	}
	verifier := ed25519consensus.NewBatchVerifier()
	for i := range entries {
		e := &entries[i]
		verifier.Add(ed25519.PublicKey(e.PublicKey[:]), e.Message, e.Signature[:])
	}
	if !verifier.Verify() {
		return ErrBatchVerificationFailed
	}
	return nil
}

// VerifyBulk tries the whole set in one batch equation first and only
// checks entries one by one when the batch fails.
func (consensusProvider) VerifyBulk(keys []PublicKey, messages [][]byte, sigs []Signature, valid []bool) error {
	if err := checkBulk(keys, messages, sigs, valid); err != nil {
		return err
	}
	if len(keys) > 1 {
		verifier := ed25519consensus.NewBatchVerifier()
		for i := range keys {
			verifier.Add(ed25519.PublicKey(keys[i][:]), messages[i], sigs[i][:])
		}
		if verifier.Verify() {
			for i := range valid {
				valid[i] = true
			}
			return nil
		}
	}
	for i := range keys {
		valid[i] = ed25519consensus.Verify(ed25519.PublicKey(keys[i][:]), messages[i], sigs[i][:])
	}
	return nil
}
