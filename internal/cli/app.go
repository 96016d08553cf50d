// Package cli wires configuration, the upload journal and the submission
// driver into the `upload` command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fastnear/near-outlayer/internal/broadcast"
	"github.com/fastnear/near-outlayer/internal/common"
	"github.com/fastnear/near-outlayer/internal/config"
	"github.com/fastnear/near-outlayer/internal/fastfs"
	"github.com/fastnear/near-outlayer/internal/filex"
	"github.com/fastnear/near-outlayer/internal/journal"
	"github.com/fastnear/near-outlayer/internal/keyx"
	"github.com/fastnear/near-outlayer/internal/logging"
	"github.com/fastnear/near-outlayer/internal/upload"
)

// newBroadcaster is a test seam; tests swap it to avoid spawning the real
// CLI binary.
var newBroadcaster = func(cfg *config.Config, network, senderKey string) broadcast.Broadcaster {
	return &broadcast.CLIBroadcaster{
		Bin:       cfg.BroadcasterBin,
		Receiver:  cfg.Receiver,
		Network:   network,
		Sender:    cfg.Sender,
		SenderKey: senderKey,
		Gas:       cfg.Gas,
		Deposit:   cfg.Deposit,
	}
}

// App runs one upload invocation. Progress goes to the logger (stderr); the
// final URL and content descriptor are the only lines written to out.
type App struct {
	cfg    *config.Config
	logger logging.Logger
	out    io.Writer
	errOut io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		logger: logging.NewDefault(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

func (a *App) Run(ctx context.Context) error {
	dsn, err := filex.EnsureParentDir(a.cfg.JournalDSN)
	if err != nil {
		return fmt.Errorf("preparing journal location: %w", err)
	}

	db, err := journal.InitDatabase(ctx, dsn)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer db.Close()
	repo := journal.NewRepository(db)

	if a.cfg.History {
		return a.printHistory(ctx, repo)
	}
	return a.upload(ctx, repo)
}

func (a *App) validate() error {
	if a.cfg.File == "" {
		return errors.New("no input file given (-f)")
	}
	if a.cfg.Receiver == "" {
		return errors.New("no receiver account given (-r)")
	}
	if a.cfg.Sender == "" {
		return errors.New("no sender account given (-s)")
	}
	return nil
}

// network returns the explicitly configured network, or infers it from the
// receiver's account suffix.
func (a *App) network() (string, error) {
	if a.cfg.Network != "" {
		return a.cfg.Network, nil
	}
	if n := fastfs.NetworkForReceiver(a.cfg.Receiver); n != "" {
		return n, nil
	}
	return "", fmt.Errorf("%w: cannot infer network from receiver %q, pass -n",
		common.ErrUnknownNetwork, a.cfg.Receiver)
}

// senderKey returns the configured private key, prompting interactively
// when none was supplied. The caller must wipe the returned slice.
func (a *App) senderKey() ([]byte, error) {
	if a.cfg.SenderKey != "" {
		return []byte(a.cfg.SenderKey), nil
	}
	return GetPrivateKey(a.errOut)
}

func (a *App) upload(ctx context.Context, repo *journal.Repository) error {
	if err := a.validate(); err != nil {
		return err
	}

	network, err := a.network()
	if err != nil {
		return err
	}

	key, err := a.senderKey()
	if err != nil {
		return fmt.Errorf("reading private key: %w", err)
	}
	defer common.WipeByteArray(key)

	if err := keyx.ValidatePrivateKey(string(key)); err != nil {
		return err
	}

	content, err := os.ReadFile(a.cfg.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", a.cfg.File, err)
	}

	// Uploads are idempotent at the storage-key level; a repeat is legal
	// but usually a waste of gas, so it is worth a heads-up.
	if prev, ferr := repo.FindCompleteByHash(ctx, fastfs.ContentHash(content)); ferr == nil {
		a.logger.Info(ctx, "content already uploaded", "session", prev.ID, "url", prev.URL)
	}

	session := &upload.Session{
		Broadcaster:   newBroadcaster(a.cfg, network, string(key)),
		Logger:        a.logger,
		Sender:        a.cfg.Sender,
		Receiver:      a.cfg.Receiver,
		StorageDomain: a.cfg.StorageDomain,
		MaxChunkSize:  a.cfg.MaxChunkSize,
		SingleShot:    a.cfg.SingleShot,
		Recorder:      &journalRecorder{repo: repo, file: a.cfg.File},
	}

	report, err := session.Upload(ctx, content, a.cfg.File)
	if err != nil {
		var transportErr *common.TransportError
		if errors.As(err, &transportErr) {
			// Surface the broadcaster's own diagnostics verbatim.
			fmt.Fprint(a.errOut, transportErr.Stderr)
			fmt.Fprint(a.errOut, transportErr.Stdout)
		}
		return err
	}

	fmt.Fprintln(a.out, report.URL)
	fmt.Fprintln(a.out, report.Descriptor)
	return nil
}

func (a *App) printHistory(ctx context.Context, repo *journal.Repository) error {
	sessions, err := repo.ListRecent(ctx, a.cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("listing journal: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tSTATUS\tFILE\tSIZE\tCHUNKS\tURL")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			s.CreatedAt.Format("2006-01-02 15:04:05"), s.Status, s.File, s.Size, s.Chunks, s.URL)
	}
	return w.Flush()
}
