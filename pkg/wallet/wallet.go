// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package wallet validates and normalises EVM wallet addresses.

Guides are identified by the address of the wallet that registered their
listing. Addresses are compared case-insensitively but stored and displayed
in EIP-55 mixed-case checksum form.

Key Functions:
  - IsAddress: Reports whether a string has the 0x + 40 hex digit shape.
  - Checksum: Returns the EIP-55 form of an address.
  - Normalize: Checksums an address, rejecting mixed-case input with a bad checksum.
*/
package wallet

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

var (
	// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses.
	ErrInvalidAddress = errors.New("wallet: invalid address")

	// ErrBadChecksum is returned for mixed-case addresses whose casing does not match EIP-55.
	ErrBadChecksum = errors.New("wallet: address checksum mismatch")
)

const addressHexLength = 40

// IsAddress reports whether s is "0x" followed by 40 hex digits (any case).
func IsAddress(s string) bool {
	if len(s) != addressHexLength+2 || !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// Checksum returns the EIP-55 mixed-case form of address.
func Checksum(address string) (string, error) {
	if !IsAddress(address) {
		return "", ErrInvalidAddress
	}

	lower := strings.ToLower(address[2:])

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(lower))
	digest := hasher.Sum(nil)

	result := make([]byte, addressHexLength)
	for i := 0; i < addressHexLength; i++ {
		char := lower[i]

		// The i-th nibble of the digest decides the case of the i-th hex digit.
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		nibble &= 0x0f

		if char >= 'a' && char <= 'f' && nibble >= 8 {
			char -= 'a' - 'A'
		}
		result[i] = char
	}

	return "0x" + string(result), nil
}

// Normalize returns the checksummed form of address.
//
// All-lowercase and all-uppercase input carry no checksum and are accepted;
// mixed-case input must already be correctly checksummed.
func Normalize(address string) (string, error) {
	checksummed, err := Checksum(address)
	if err != nil {
		return "", err
	}

	digits := address[2:]
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return checksummed, nil
	}

	if address[2:] != checksummed[2:] {
		return "", ErrBadChecksum
	}
	return checksummed, nil
}
