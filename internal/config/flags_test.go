package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		check       func(t *testing.T, c *Config)
	}{
		{
			name: "core upload flags",
			args: []string{"cmd", "-f", "a.wasm", "-r", "sink.near", "-s", "alice.near", "-m", "65536"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "a.wasm", c.File)
				assert.Equal(t, "sink.near", c.Receiver)
				assert.Equal(t, "alice.near", c.Sender)
				assert.Equal(t, 65536, c.MaxChunkSize)
			},
		},
		{
			name: "boolean flags",
			args: []string{"cmd", "-single", "-history"},
			check: func(t *testing.T, c *Config) {
				assert.True(t, c.SingleShot)
				assert.True(t, c.History)
			},
		},
		{
			name: "flags override env-loaded values",
			args: []string{"cmd", "-n", "testnet", "-d", "example.io"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "testnet", c.Network)
				assert.Equal(t, "example.io", c.StorageDomain)
			},
		},
		{
			name:        "invalid chunk size",
			args:        []string{"cmd", "-m", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}
			config.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			tt.check(t, config)
		})
	}
}
