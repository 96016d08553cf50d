// Package config handles configuration for the upload CLI, including
// defaults, env-file overlay, and command-line flags.
package config

import (
	"github.com/fastnear/near-outlayer/internal/broadcast"
	"github.com/fastnear/near-outlayer/internal/fastfs"
)

// Config holds runtime settings for one upload invocation.
//
// Fields:
//   - File: path of the artifact to upload.
//   - Receiver: the data-sink account observed by the indexer.
//   - Sender / SenderKey: signing identity; the key may be left empty and
//     entered interactively.
//   - Network: target network; inferred from the receiver suffix when empty.
//   - StorageDomain: public gateway domain used in the reported URL.
//   - MaxChunkSize: upper bound per transaction payload, bytes.
//   - SingleShot: use the legacy single-frame encoding for content that
//     fits in one chunk.
//   - BroadcasterBin / Gas / Deposit: external CLI invocation parameters.
//   - JournalDSN: sqlite path of the local upload journal.
//   - History / HistoryLimit: list recent journal sessions instead of
//     uploading.
type Config struct {
	File           string
	Receiver       string
	Sender         string
	SenderKey      string
	Network        string
	StorageDomain  string
	MaxChunkSize   int
	SingleShot     bool
	BroadcasterBin string
	Gas            string
	Deposit        string
	JournalDSN     string
	History        bool
	HistoryLimit   int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDomain = fastfs.DefaultStorageDomain
	c.MaxChunkSize = fastfs.DefaultMaxChunkSize
	c.BroadcasterBin = "near"
	c.Gas = broadcast.DefaultGas
	c.Deposit = broadcast.DefaultDeposit
	c.JournalDSN = "fastfs.db"
	c.HistoryLimit = 20
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from an env file (if present) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
