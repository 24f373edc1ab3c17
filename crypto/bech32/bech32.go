// Package bech32 renders owner, wallet and token addresses as checksummed
// bech32 text and reads them back.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/vault/errors"
)

// Encode returns the bech32 text of payload under the human readable
// part hrp.
func Encode(hrp string, payload []byte) (string, error) {
	groups, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	text, err := bech32.Encode(hrp, groups)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "encode: %s", err)
	}
	return text, nil
}

// Decode returns the human readable part and the payload of a bech32
// text. The checksum is verified.
func Decode(text string) (string, []byte, error) {
	hrp, groups, err := bech32.Decode(text)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "decode: %s", err)
	}
	payload, err := bech32.ConvertBits(groups, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	return hrp, payload, nil
}

// DecodeAddress decodes text and requires it to carry hrp and a payload
// of exactly size bytes.
func DecodeAddress(text, hrp string, size int) ([]byte, error) {
	got, payload, err := Decode(text)
	if err != nil {
		return nil, err
	}
	if got != hrp {
		return nil, errors.Wrapf(errors.ErrInput, "prefix %q, want %q", got, hrp)
	}
	if len(payload) != size {
		return nil, errors.Wrapf(errors.ErrInput, "%d bytes, want %d", len(payload), size)
	}
	return payload, nil
}
