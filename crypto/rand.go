package crypto

import (
	"crypto/rand"
	"fmt"
)

// ReadRand fills buf from the system source and rejects obviously broken
// entropy, a single byte value covering a third of a large buffer.
func ReadRand(buf []byte) error {
	if len(buf) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrSigningFailed)
	}
	n, err := rand.Read(buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: short read %d/%d", ErrSigningFailed, n, len(buf))
	}
	if len(buf) < 16 {
		return nil
	}
	set := make(map[byte]int)
	for _, b := range buf {
		set[b] += 1
	}
	for k, v := range set {
		if v < len(buf)/3 {
			continue
		}
		return fmt.Errorf("%w: entropy not enough %d %d", ErrSigningFailed, k, v)
	}
	return nil
}
