// Package secrets implements the collaborator CLI that encrypts a secrets
// JSON object under a repository's keystore public key and prints the
// contract invocation that stores it.
package secrets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fastnear/near-outlayer/internal/keystore"
	"github.com/fastnear/near-outlayer/internal/logging"
)

// reservedKeys are environment names the execution worker sets itself; user
// secrets must not shadow them.
var reservedKeys = []string{
	"NEAR_SENDER_ID",
	"NEAR_CONTRACT_ID",
	"NEAR_USER_ACCOUNT_ID",
	"NEAR_PAYMENT_YOCTO",
	"NEAR_TRANSACTION_HASH",
	"NEAR_BLOCK_HEIGHT",
	"NEAR_BLOCK_TIMESTAMP",
	"NEAR_MAX_INSTRUCTIONS",
	"NEAR_MAX_MEMORY_MB",
	"NEAR_MAX_EXECUTION_SECONDS",
	"NEAR_REQUEST_ID",
}

// ValidateSecrets checks that raw is a JSON object and that none of its
// keys shadow a reserved worker variable.
func ValidateSecrets(raw string) error {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fmt.Errorf("secrets must be a JSON object, e.g. {\"KEY\":\"value\"}: %w", err)
	}

	var clashes []string
	for _, r := range reservedKeys {
		if _, ok := parsed[r]; ok {
			clashes = append(clashes, r)
		}
	}
	if len(clashes) > 0 {
		sort.Strings(clashes)
		return fmt.Errorf("reserved worker variables cannot be used as secret keys: %s",
			strings.Join(clashes, ", "))
	}
	return nil
}

// App runs one encryption invocation. The base64 ciphertext and the
// store_secrets hint are the only output written to out; progress goes to
// the logger.
type App struct {
	cfg    *Config
	client *keystore.PubkeyClient
	logger logging.Logger
	out    io.Writer
}

func NewApp(cfg *Config) *App {
	return &App{
		cfg: cfg,
		client: &keystore.PubkeyClient{
			CoordinatorURL: cfg.Coordinator,
			KeystoreURL:    cfg.Keystore,
		},
		logger: logging.NewDefault(),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) error {
	if err := ValidateSecrets(a.cfg.SecretsJSON); err != nil {
		return err
	}

	a.logger.Info(ctx, "fetching public key",
		"seed", keystore.Seed(a.cfg.Repo, a.cfg.Owner, a.cfg.Branch))

	pubkey, err := a.client.FetchPubkey(ctx, a.cfg.Repo, a.cfg.Owner, a.cfg.Branch)
	if err != nil {
		return fmt.Errorf("fetching public key: %w", err)
	}
	a.logger.Info(ctx, "got public key", "pubkey", abbreviate(pubkey))

	ciphertext, err := keystore.Encrypt(pubkey, []byte(a.cfg.SecretsJSON))
	if err != nil {
		return fmt.Errorf("encrypting secrets: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(ciphertext)
	a.logger.Info(ctx, "encrypted secrets", "bytes", len(ciphertext))

	fmt.Fprintln(a.out, encoded)
	fmt.Fprintln(a.out)
	a.printHint(encoded)
	return nil
}

// printHint renders the near-cli commands that store and verify the
// encrypted blob.
func (a *App) printHint(encoded string) {
	repo := displayRepo(a.cfg.Repo)

	storeArgs := map[string]any{
		"repo":                     repo,
		"profile":                  a.cfg.Profile,
		"encrypted_secrets_base64": encoded,
		"access":                   map[string]any{"AllowAll": map[string]any{}},
	}
	viewArgs := map[string]any{
		"repo":    repo,
		"profile": a.cfg.Profile,
		"owner":   a.cfg.Owner,
	}
	if a.cfg.Branch != "" {
		storeArgs["branch"] = a.cfg.Branch
		viewArgs["branch"] = a.cfg.Branch
	}

	store, _ := json.Marshal(storeArgs)
	view, _ := json.Marshal(viewArgs)

	fmt.Fprintln(a.out, "Store in contract with near-cli:")
	fmt.Fprintf(a.out, "  near call %s store_secrets '%s' --accountId %s --deposit 0.01\n",
		a.cfg.Contract, store, a.cfg.Owner)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Verify storage:")
	fmt.Fprintf(a.out, "  near view %s get_secrets '%s'\n", a.cfg.Contract, view)
}

// displayRepo strips URL prefixes so the hint shows the bare "owner/name"
// form the contract stores.
func displayRepo(repo string) string {
	return strings.TrimPrefix(keystore.NormalizeRepo(repo), "github.com/")
}

func abbreviate(s string) string {
	if len(s) <= 16 {
		return s
	}
	return s[:16] + "..."
}
