package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

type Hash [32]byte

func NewHash(data []byte) Hash {
	return Hash(sha3.Sum256(data))
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
