package crypto

import (
	"fmt"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

const VoiProviderName = "voi"

type voiProvider struct{}

func (voiProvider) Name() string {
	return VoiProviderName
}

func (voiProvider) Sign(message []byte, pair *KeyPair) (Signature, error) {
	var sig Signature
	if err := checkPair(pair); err != nil {
		return sig, err
	}
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(pair.Private[:]), message))
	return sig, nil
}

func (voiProvider) Verify(sig *Signature, message []byte, pub *PublicKey) error {
	if !ed25519.Verify(ed25519.PublicKey(pub[:]), message, sig[:]) {
		return ErrVerificationFailed
	}
	return nil
}

func (voiProvider) VerifyBatch(entries []BatchEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: empty batch", ErrBatchVerificationFailed)
	}
	verifier := ed25519.NewBatchVerifierWithCapacity(len(entries))
	for i := range entries {
		e := &entries[i]
		verifier.Add(ed25519.PublicKey(e.PublicKey[:]), e.Message, e.Signature[:])
	}
	if !verifier.VerifyBatchOnly(nil) {
		return ErrBatchVerificationFailed
	}
	return nil
}

func (voiProvider) VerifyBulk(keys []PublicKey, messages [][]byte, sigs []Signature, valid []bool) error {
	if err := checkBulk(keys, messages, sigs, valid); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	verifier := ed25519.NewBatchVerifierWithCapacity(len(keys))
	for i := range keys {
		verifier.Add(ed25519.PublicKey(keys[i][:]), messages[i], sigs[i][:])
	}
	_, results := verifier.Verify(nil)
	if len(results) != len(valid) {
		return fmt.Errorf("%w: %d results for %d entries", ErrBatchVerificationFailed, len(results), len(valid))
	}
	copy(valid, results)
	return nil
}
