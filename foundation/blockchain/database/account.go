package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroAccount is the sentinel address used as the source of mining rewards
// and the sink of listing transactions. Nothing can spend from it.
const ZeroAccount AccountID = "0x0000000000000000000000000000000000000000"

// AccountID represents a wallet address on the ledger.
type AccountID string

// ToAccountID converts a hex-encoded string to an account and validates the
// hex-encoded string is formatted correctly.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(hex)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// NewAccountID generates a fresh wallet address from a new ECDSA key. The
// key is discarded, only the address matters to the ledger.
func NewAccountID() (AccountID, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", err
	}

	return PublicKeyToAccountID(privateKey.PublicKey), nil
}

// PublicKeyToAccountID converts the public key to an account value.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(crypto.PubkeyToAddress(pk).String())
}

// IsAccountID verifies whether the underlying data represents a valid
// hex-encoded account.
func (a AccountID) IsAccountID() bool {
	const addressLength = 20

	if a.has0xPrefix() {
		a = a[2:]
	}

	return len(a) == 2*addressLength && a.isHex()
}

// =============================================================================

// has0xPrefix validates the account starts with a 0x.
func (a AccountID) has0xPrefix() bool {
	return len(a) >= 2 && a[0] == '0' && (a[1] == 'x' || a[1] == 'X')
}

// isHex validates whether each byte is valid hexadecimal string.
func (a AccountID) isHex() bool {
	if len(a)%2 != 0 {
		return false
	}

	for _, c := range []byte(a) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// =============================================================================

// SameAccount compares two account ids ignoring the checksum casing that
// go-ethereum applies when rendering addresses.
func SameAccount(a AccountID, b AccountID) bool {
	return common.HexToAddress(string(a)) == common.HexToAddress(string(b))
}
