package cli

import (
	"bytes"
	"errors"
	"testing"
)

func TestGetPrivateKey_TrimsWhitespace(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("  ed25519:abc \n"), nil
	}

	var out bytes.Buffer
	key, err := GetPrivateKey(&out)
	if err != nil {
		t.Fatal(err)
	}
	if string(key) != "ed25519:abc" {
		t.Fatalf("got %q", key)
	}
	if out.Len() == 0 {
		t.Fatal("expected a prompt to be written")
	}
}

func TestGetPrivateKey_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	var out bytes.Buffer
	if _, err := GetPrivateKey(&out); err == nil {
		t.Fatal("expected error")
	}
}
