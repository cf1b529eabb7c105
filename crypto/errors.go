package crypto

import "errors"

var (
	ErrSigningFailed           = errors.New("crypto: signing failed")
	ErrVerificationFailed      = errors.New("crypto: verification failed")
	ErrBatchVerificationFailed = errors.New("crypto: batch verification failed")
	ErrAllocationFailed        = errors.New("crypto: allocation failed")
	ErrUnknownProvider         = errors.New("crypto: unknown provider")
	ErrInvalidKey              = errors.New("crypto: invalid key")
)
