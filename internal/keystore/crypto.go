// Package keystore implements the client side of the repo-secrets keystore:
// fetching a repo-scoped public key and encrypting secrets for it.
//
// The cipher is a placeholder pending a proper authenticated hybrid scheme
// (X25519 + ChaCha20-Poly1305). It provides no authentication and must stay
// byte-for-byte compatible with the deployed keystore, so do not extend it.
package keystore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fastnear/near-outlayer/internal/common"
)

// keyDerivationLabel is fixed by the deployed keystore; changing it breaks
// decryption of every stored secret.
const keyDerivationLabel = "keystore-encryption-v1"

// DeriveKey derives the 32-byte symmetric key from the keystore's public key
// material: SHA-256(pubkey || label).
func DeriveKey(pubkey []byte) []byte {
	h := sha256.New()
	h.Write(pubkey)
	h.Write([]byte(keyDerivationLabel))
	return h.Sum(nil)
}

// XORKeystream XORs data with the repeating key stream. Encryption and
// decryption are the same operation.
func XORKeystream(key, data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

// Encrypt encrypts plaintext for the keystore identified by its hex-encoded
// public key.
func Encrypt(pubkeyHex string, plaintext []byte) ([]byte, error) {
	pubkey, err := hex.DecodeString(pubkeyHex)
	if err != nil {
		return nil, fmt.Errorf("decoding public key hex: %w", common.ErrInvalidKey)
	}
	return XORKeystream(DeriveKey(pubkey), plaintext), nil
}

// Decrypt is the inverse of Encrypt. With an XOR keystream it is the
// identical transform; it exists so call sites state their intent.
func Decrypt(pubkeyHex string, ciphertext []byte) ([]byte, error) {
	return Encrypt(pubkeyHex, ciphertext)
}
