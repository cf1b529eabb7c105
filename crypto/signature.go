package crypto

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

const SignatureSize = 64

type Signature [SignatureSize]byte

func SignatureFromString(src string) (Signature, error) {
	var sig Signature
	data, err := hex.DecodeString(src)
	if err != nil {
		return sig, err
	}
	if len(data) != len(sig) {
		return sig, fmt.Errorf("invalid signature length %d", len(data))
	}
	copy(sig[:], data)
	return sig, nil
}

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

func (s *Signature) UnmarshalJSON(b []byte) error {
	unquoted, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	sig, err := SignatureFromString(unquoted)
	if err != nil {
		return err
	}
	*s = sig
	return nil
}
