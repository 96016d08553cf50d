// Package keyx validates the shape of NEAR-style ed25519 key strings before
// they are handed to the external signer, so a malformed credential fails
// fast instead of surfacing as an opaque CLI error mid-session.
package keyx

import (
	"fmt"
	"strings"

	"github.com/fastnear/near-outlayer/internal/common"
	"github.com/mr-tron/base58"
)

const keyPrefix = "ed25519:"

// NEAR private keys carry the 32-byte seed plus the 32-byte public key;
// public keys are the 32 bytes alone.
const (
	privateKeyLen = 64
	publicKeyLen  = 32
)

func decode(s string, wantLen int) error {
	rest, ok := strings.CutPrefix(s, keyPrefix)
	if !ok {
		return fmt.Errorf("missing %q prefix: %w", keyPrefix, common.ErrInvalidKey)
	}
	raw, err := base58.Decode(rest)
	if err != nil {
		return fmt.Errorf("invalid base58: %w", common.ErrInvalidKey)
	}
	if len(raw) != wantLen {
		return fmt.Errorf("expected %d key bytes, got %d: %w", wantLen, len(raw), common.ErrInvalidKey)
	}
	return nil
}

// ValidatePrivateKey checks an "ed25519:<base58>" signing key string.
func ValidatePrivateKey(s string) error {
	return decode(s, privateKeyLen)
}

// ValidatePublicKey checks an "ed25519:<base58>" verifying key string.
func ValidatePublicKey(s string) error {
	return decode(s, publicKeyLen)
}
