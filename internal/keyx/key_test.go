package keyx

import (
	"errors"
	"strings"
	"testing"

	"github.com/fastnear/near-outlayer/internal/common"
	"github.com/mr-tron/base58"
)

func encodedKey(n int) string {
	return "ed25519:" + base58.Encode(make([]byte, n))
}

func TestValidatePrivateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "valid", key: encodedKey(64), wantErr: false},
		{name: "missing prefix", key: base58.Encode(make([]byte, 64)), wantErr: true},
		{name: "wrong length", key: encodedKey(32), wantErr: true},
		{name: "bad base58", key: "ed25519:0OIl", wantErr: true},
		{name: "empty", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrivateKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidKey) {
					t.Fatalf("expected ErrInvalidKey, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePublicKey(t *testing.T) {
	if err := ValidatePublicKey(encodedKey(32)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePublicKey(encodedKey(64)); err == nil {
		t.Fatal("expected error for 64-byte public key")
	}
	if err := ValidatePublicKey("secp256k1:" + strings.Repeat("1", 32)); err == nil {
		t.Fatal("expected error for non-ed25519 key")
	}
}
