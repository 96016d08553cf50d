package secrets

import (
	"errors"
	"flag"
	"fmt"
)

// DefaultCoordinatorURL is where a locally running coordinator listens.
const DefaultCoordinatorURL = "http://localhost:8080"

// Config holds one encryption invocation.
//
// Fields:
//   - Repo: GitHub repository, any of "alice/project",
//     "https://github.com/alice/project" or "git@github.com:alice/project.git".
//   - Owner: NEAR account that will own the secrets.
//   - Branch: optional; empty means all branches.
//   - Profile: profile name the secrets are stored under.
//   - Coordinator: coordinator base URL.
//   - Keystore: keystore base URL; set it to bypass the coordinator.
//   - Contract: contract account used in the printed store_secrets hint.
//   - SecretsJSON: the raw positional JSON object argument.
type Config struct {
	Repo        string
	Owner       string
	Branch      string
	Profile     string
	Coordinator string
	Keystore    string
	Contract    string
	SecretsJSON string
}

// ParseArgs parses command-line arguments (without the program name) into a
// Config, enforcing required flags and the single positional secrets
// argument.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("secrets", flag.ContinueOnError)
	fs.StringVar(&cfg.Repo, "repo", "", "GitHub repository (e.g. alice/project)")
	fs.StringVar(&cfg.Owner, "owner", "", "NEAR account ID that will own these secrets")
	fs.StringVar(&cfg.Branch, "branch", "", "Optional branch name (omit for all branches)")
	fs.StringVar(&cfg.Profile, "profile", "", "Profile name (e.g. default, prod, staging)")
	fs.StringVar(&cfg.Coordinator, "coordinator", DefaultCoordinatorURL, "Coordinator URL")
	fs.StringVar(&cfg.Keystore, "keystore", "", "Keystore URL (bypasses coordinator if set)")
	fs.StringVar(&cfg.Contract, "contract", "outlayer.testnet", "Secrets contract account")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Repo == "" {
		return nil, errors.New("no repository given (-repo)")
	}
	if cfg.Owner == "" {
		return nil, errors.New("no owner account given (-owner)")
	}
	if cfg.Profile == "" {
		return nil, errors.New("no profile given (-profile)")
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return nil, fmt.Errorf("expected exactly one positional secrets JSON argument, got %d", len(rest))
	}
	cfg.SecretsJSON = rest[0]

	return cfg, nil
}
