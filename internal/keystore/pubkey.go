package keystore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fastnear/near-outlayer/internal/netx"
)

// PubkeyClient fetches the repo-scoped encryption public key, either through
// the coordinator (which proxies to the keystore) or from the keystore
// directly when KeystoreURL is set.
type PubkeyClient struct {
	CoordinatorURL string
	KeystoreURL    string

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

func (c *PubkeyClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 5 * time.Second}
}

// NormalizeRepo canonicalizes the GitHub repository reference to the
// "github.com/<owner>/<name>" form the keystore expects, accepting bare
// "owner/name", https URLs and ssh remotes.
func NormalizeRepo(repo string) string {
	switch {
	case strings.HasPrefix(repo, "https://github.com/"):
		return "github.com/" + strings.TrimPrefix(repo, "https://github.com/")
	case strings.HasPrefix(repo, "git@github.com:"):
		return "github.com/" + strings.TrimSuffix(strings.TrimPrefix(repo, "git@github.com:"), ".git")
	case strings.HasPrefix(repo, "github.com/"):
		return repo
	default:
		return "github.com/" + repo
	}
}

// Seed builds the keystore key-derivation seed: "<repo>:<owner>[:<branch>]".
func Seed(repo, owner, branch string) string {
	seed := NormalizeRepo(repo) + ":" + owner
	if branch != "" {
		seed += ":" + branch
	}
	return seed
}

// FetchPubkey returns the hex-encoded public key for the given repo, owner
// and optional branch. The direct keystore endpoint takes precedence when
// configured.
func (c *PubkeyClient) FetchPubkey(ctx context.Context, repo, owner, branch string) (string, error) {
	if c.KeystoreURL != "" {
		return c.fromKeystore(ctx, repo, owner, branch)
	}
	return c.fromCoordinator(ctx, repo, owner, branch)
}

func (c *PubkeyClient) fromKeystore(ctx context.Context, repo, owner, branch string) (string, error) {
	q := url.Values{"seed": {Seed(repo, owner, branch)}}

	var payload struct {
		PublicKeyHex string `json:"public_key_hex"`
	}
	if err := c.getJSON(ctx, c.KeystoreURL+"/pubkey?"+q.Encode(), &payload); err != nil {
		return "", fmt.Errorf("fetching pubkey from keystore: %w", err)
	}
	if payload.PublicKeyHex == "" {
		return "", fmt.Errorf("keystore returned no public key")
	}
	return payload.PublicKeyHex, nil
}

func (c *PubkeyClient) fromCoordinator(ctx context.Context, repo, owner, branch string) (string, error) {
	q := url.Values{"repo": {repo}, "owner": {owner}}
	if branch != "" {
		q.Set("branch", branch)
	}

	var payload struct {
		Pubkey string `json:"pubkey"`
	}
	if err := c.getJSON(ctx, c.CoordinatorURL+"/secrets/pubkey?"+q.Encode(), &payload); err != nil {
		return "", fmt.Errorf("fetching pubkey from coordinator: %w", err)
	}
	if payload.Pubkey == "" {
		return "", fmt.Errorf("coordinator returned no public key")
	}
	return payload.Pubkey, nil
}

func (c *PubkeyClient) getJSON(ctx context.Context, rawURL string, v any) error {
	return netx.GetJSON(ctx, c.httpClient(), rawURL, v)
}
