package crypto

import (
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"
)

// CirclProviderName has no batch equation, batches are plain iterations over
// the single signature primitive and serve as the baseline.
const CirclProviderName = "circl"

type circlProvider struct{}

func (circlProvider) Name() string {
	return CirclProviderName
}

func (circlProvider) Sign(message []byte, pair *KeyPair) (Signature, error) {
	var sig Signature
	if err := checkPair(pair); err != nil {
		return sig, err
	}
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(pair.Private[:]), message))
	return sig, nil
}

func (circlProvider) Verify(sig *Signature, message []byte, pub *PublicKey) error {
	if !ed25519.Verify(ed25519.PublicKey(pub[:]), message, sig[:]) {
		return ErrVerificationFailed
	}
	return nil
}

func (circlProvider) VerifyBatch(entries []BatchEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: empty batch", ErrBatchVerificationFailed)
	}
	for i := range entries {
		e := &entries[i]
		if !ed25519.Verify(ed25519.PublicKey(e.PublicKey[:]), e.Message, e.Signature[:]) {
			return ErrBatchVerificationFailed
		}
	}
	return nil
}

func (circlProvider) VerifyBulk(keys []PublicKey, messages [][]byte, sigs []Signature, valid []bool) error {
	if err := checkBulk(keys, messages, sigs, valid); err != nil {
		return err
	}
	for i := range keys {
		valid[i] = ed25519.Verify(ed25519.PublicKey(keys[i][:]), messages[i], sigs[i][:])
	}
	return nil
}
