package common

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v4"
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder

	CompressionVersionZero   = []byte{0, 0, 0, 0}
	CompressionVersionLatest = CompressionVersionZero
)

func init() {
	zstdEncoder, zstdDecoder = NewZstdEncoder(), NewZstdDecoder()
}

func CompressMsgpackMarshal(val interface{}) ([]byte, error) {
	payload, err := MsgpackMarshal(val)
	if err != nil {
		return nil, err
	}
	payload = zstdEncoder.EncodeAll(payload, nil)
	return append(append([]byte{}, CompressionVersionLatest...), payload...), nil
}

func DecompressMsgpackUnmarshal(data []byte, val interface{}) error {
	header := len(CompressionVersionLatest)
	if len(data) < header*2 {
		return errors.New("DecompressMsgpackUnmarshal: data too short")
	}
	if !bytes.Equal(data[:header], CompressionVersionZero) {
		return fmt.Errorf("DecompressMsgpackUnmarshal: unknown version %x", data[:header])
	}
	payload, err := zstdDecoder.DecodeAll(data[header:], nil)
	if err != nil {
		return err
	}
	return MsgpackUnmarshal(payload, val)
}

func MsgpackMarshal(val interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).UseCompactEncoding(true).SortMapKeys(true)
	err := enc.Encode(val)
	if err != nil {
		return nil, fmt.Errorf("MsgpackMarshal: %#v %s", val, err.Error())
	}
	return buf.Bytes(), nil
}

func MsgpackUnmarshal(data []byte, val interface{}) error {
	err := msgpack.Unmarshal(data, val)
	if err != nil {
		return fmt.Errorf("MsgpackUnmarshal: %d bytes %s", len(data), err.Error())
	}
	return nil
}
