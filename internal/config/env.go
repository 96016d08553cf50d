package config

import (
	"github.com/fastnear/near-outlayer/internal/flagx"
	"github.com/joho/godotenv"
)

// Env variable names, matching the worker env files used by the rest of the
// deployment.
const (
	envReceiver      = "FASTFS_RECEIVER"
	envSender        = "FASTFS_SENDER_ACCOUNT_ID"
	envSenderKey     = "FASTFS_SENDER_PRIVATE_KEY"
	envNetwork       = "FASTFS_NETWORK"
	envStorageDomain = "FASTFS_STORAGE_DOMAIN"
)

// parseEnv overlays Config with values loaded from an env file.
//
// Lookup order for the file path:
//  1. Command-line flags (-e or -env) via flagx.EnvFileFlags().
//  2. If empty, no env file is loaded and the function returns.
//
// Behavior:
//   - Reads the file with godotenv; the process environment is not touched.
//   - Copies known FASTFS_* keys into the provided Config.
//   - Panics on read errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseEnv -> parseFlags, where later stages
// override earlier ones.
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		return
	}

	values, err := godotenv.Read(envFile)
	if err != nil {
		panic(err)
	}

	apply(values, envReceiver, &cfg.Receiver)
	apply(values, envSender, &cfg.Sender)
	apply(values, envSenderKey, &cfg.SenderKey)
	apply(values, envNetwork, &cfg.Network)
	apply(values, envStorageDomain, &cfg.StorageDomain)
}

func apply(values map[string]string, key string, dst *string) {
	if v, ok := values[key]; ok && v != "" {
		*dst = v
	}
}
