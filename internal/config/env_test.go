package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeEnvFile(t, `
# worker credentials
FASTFS_RECEIVER=sink.testnet
FASTFS_SENDER_ACCOUNT_ID=alice.testnet
FASTFS_SENDER_PRIVATE_KEY=ed25519:abc
FASTFS_NETWORK=
`)
	os.Args = []string{"testbin", "-e", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "sink.testnet", cfg.Receiver)
	assert.Equal(t, "alice.testnet", cfg.Sender)
	assert.Equal(t, "ed25519:abc", cfg.SenderKey)

	// Empty values do not clobber defaults or earlier layers.
	assert.Equal(t, "", cfg.Network)
	assert.Equal(t, "fastfs.io", cfg.StorageDomain)
}

func TestParseEnv_NoFileFlagIsNoop(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg) })
	assert.Empty(t, cfg.Receiver)
}

func TestParseEnv_MissingFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-e", "/nonexistent/dev.env"}

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}
