package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strconv"

	"filippo.io/edwards25519"
)

const (
	SeedSize       = ed25519.SeedSize
	PublicKeySize  = ed25519.PublicKeySize
	PrivateKeySize = ed25519.PrivateKeySize
)

type (
	PublicKey  [PublicKeySize]byte
	PrivateKey [PrivateKeySize]byte
)

// KeyPair is immutable after creation and may be shared by any number of
// goroutines without locking.
type KeyPair struct {
	Private PrivateKey
	Public  PublicKey
}

func NewKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("invalid seed length %d", len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var pair KeyPair
	copy(pair.Private[:], priv)
	copy(pair.Public[:], priv[SeedSize:])
	return &pair, nil
}

// NewKeyPairFromLabel derives a deterministic key pair, used for benchmark
// fixtures and tests. Never use it for real keys.
func NewKeyPairFromLabel(label string) *KeyPair {
	seed := NewHash([]byte(label))
	pair, err := NewKeyPairFromSeed(seed[:])
	if err != nil {
		panic(err)
	}
	return pair
}

func GenerateKeyPair() (*KeyPair, error) {
	seed := make([]byte, SeedSize)
	err := ReadRand(seed)
	if err != nil {
		return nil, err
	}
	return NewKeyPairFromSeed(seed)
}

func (k PrivateKey) Seed() []byte {
	return k[:SeedSize]
}

func (k PrivateKey) String() string {
	return hex.EncodeToString(k[:])
}

// CheckKey reports whether the key decodes to a point on the curve.
func (k PublicKey) CheckKey() bool {
	_, err := new(edwards25519.Point).SetBytes(k[:])
	return err == nil
}

func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

func (k *PublicKey) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	key, err := PublicKeyFromString(unquoted)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

func PublicKeyFromString(s string) (PublicKey, error) {
	var key PublicKey
	data, err := hex.DecodeString(s)
	if err != nil {
		return key, err
	}
	if len(data) != len(key) {
		return key, fmt.Errorf("invalid key length %d", len(data))
	}
	copy(key[:], data)
	if !key.CheckKey() {
		return key, fmt.Errorf("%w: %s", ErrInvalidKey, s)
	}
	return key, nil
}
