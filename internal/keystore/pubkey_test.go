package keystore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRepo(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice/project", "github.com/alice/project"},
		{"github.com/alice/project", "github.com/alice/project"},
		{"https://github.com/alice/project", "github.com/alice/project"},
		{"git@github.com:alice/project.git", "github.com/alice/project"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRepo(tt.in), "input %q", tt.in)
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, "github.com/alice/project:alice.near", Seed("alice/project", "alice.near", ""))
	assert.Equal(t, "github.com/alice/project:alice.near:main", Seed("alice/project", "alice.near", "main"))
}

func TestFetchPubkey_Keystore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pubkey", r.URL.Path)
		require.Equal(t, "github.com/alice/project:alice.near:main", r.URL.Query().Get("seed"))
		w.Write([]byte(`{"public_key_hex": "ab12"}`))
	}))
	defer srv.Close()

	c := &PubkeyClient{KeystoreURL: srv.URL}
	pk, err := c.FetchPubkey(context.Background(), "alice/project", "alice.near", "main")
	require.NoError(t, err)
	assert.Equal(t, "ab12", pk)
}

func TestFetchPubkey_Coordinator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/secrets/pubkey", r.URL.Path)
		require.Equal(t, "alice/project", r.URL.Query().Get("repo"))
		require.Equal(t, "alice.near", r.URL.Query().Get("owner"))
		require.Empty(t, r.URL.Query().Get("branch"))
		w.Write([]byte(`{"pubkey": "cd34", "seed": "whatever"}`))
	}))
	defer srv.Close()

	c := &PubkeyClient{CoordinatorURL: srv.URL}
	pk, err := c.FetchPubkey(context.Background(), "alice/project", "alice.near", "")
	require.NoError(t, err)
	assert.Equal(t, "cd34", pk)
}

func TestFetchPubkey_KeystoreTakesPrecedence(t *testing.T) {
	keystoreSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"public_key_hex": "direct"}`))
	}))
	defer keystoreSrv.Close()

	c := &PubkeyClient{CoordinatorURL: "http://coordinator.invalid", KeystoreURL: keystoreSrv.URL}
	pk, err := c.FetchPubkey(context.Background(), "a/b", "o.near", "")
	require.NoError(t, err)
	assert.Equal(t, "direct", pk)
}

func TestFetchPubkey_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such repo", http.StatusNotFound)
	}))
	defer srv.Close()

	c := &PubkeyClient{CoordinatorURL: srv.URL}
	_, err := c.FetchPubkey(context.Background(), "a/b", "o.near", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such repo")
}

func TestFetchPubkey_EmptyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := &PubkeyClient{KeystoreURL: srv.URL}
	_, err := c.FetchPubkey(context.Background(), "a/b", "o.near", "")
	require.Error(t, err)
}
