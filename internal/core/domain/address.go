package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the byte length of an account identity.
const AddressLength = 20

// Address is an opaque fixed-width account identity. The zero value is the
// null sentinel and is never a valid participant.
type Address [AddressLength]byte

// ZeroAddress is the null identity sentinel.
var ZeroAddress Address

// IsZero reports whether the address is the null sentinel.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Hex returns the 0x-prefixed lowercase hex encoding of the address.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// MarshalText implements encoding.TextMarshaler so addresses render as hex in
// JSON payloads.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := AddressFromHex(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AddressFromHex parses a 0x-prefixed (or bare) 40-char hex string.
func AddressFromHex(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) != AddressLength*2 {
		return a, fmt.Errorf("address must be %d hex chars, got %d", AddressLength*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("decoding address: %w", err)
	}
	copy(a[:], b)
	return a, nil
}

// NewRandomAddress generates a fresh random account identity.
func NewRandomAddress() (Address, error) {
	var a Address
	if _, err := rand.Read(a[:]); err != nil {
		return a, fmt.Errorf("generating address: %w", err)
	}
	if a.IsZero() {
		// Astronomically unlikely, but the null sentinel must never be issued.
		return NewRandomAddress()
	}
	return a, nil
}
