// Package digest computes the content digests used to decide whether a file
// changed. Content is always compared as decoded bytes, never as base64 text,
// so the local and remote encoders cannot cause false mismatches.
package digest

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidBase64 is returned when a payload cannot be decoded.
var ErrInvalidBase64 = errors.New("invalid base64 content")

// FromBase64 decodes a base64 payload and returns the hex MD5 of the raw bytes.
// Whitespace is ignored (the contents API wraps at 60 columns) and padding is
// optional. Anything else that does not decode is rejected.
func FromBase64(content string) (string, error) {
	raw, err := Decode(content)
	if err != nil {
		return "", err
	}
	return FromBytes(raw), nil
}

// FromBytes returns the hex MD5 of data.
func FromBytes(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Decode strips whitespace and decodes standard base64, padded or not.
func Decode(content string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, content)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err == nil {
		return raw, nil
	}
	raw, rawErr := base64.RawStdEncoding.DecodeString(compact)
	if rawErr == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
}
