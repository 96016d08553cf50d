package config

import (
	"flag"
	"os"

	"github.com/fastnear/near-outlayer/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   file to upload
//	-r string   receiver (data-sink) account
//	-s string   sender account
//	-k string   sender private key (prompted interactively when omitted)
//	-n string   network name (inferred from receiver when omitted)
//	-d string   storage gateway domain
//	-m int      max chunk size in bytes
//	-b string   broadcaster binary
//	-j string   journal sqlite path
//	-single     use single-shot framing for content that fits in one chunk
//	-history    list recent upload sessions and exit
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with the env-file
// flags handled in env.go.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-f", "-r", "-s", "-k", "-n", "-d", "-m", "-b", "-j", "-single", "-history",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.File, "f", cfg.File, "file to upload")
	fs.StringVar(&cfg.Receiver, "r", cfg.Receiver, "receiver (data-sink) account")
	fs.StringVar(&cfg.Sender, "s", cfg.Sender, "sender account")
	fs.StringVar(&cfg.SenderKey, "k", cfg.SenderKey, "sender private key")
	fs.StringVar(&cfg.Network, "n", cfg.Network, "network name")
	fs.StringVar(&cfg.StorageDomain, "d", cfg.StorageDomain, "storage gateway domain")
	fs.IntVar(&cfg.MaxChunkSize, "m", cfg.MaxChunkSize, "max chunk size in bytes")
	fs.StringVar(&cfg.BroadcasterBin, "b", cfg.BroadcasterBin, "broadcaster binary")
	fs.StringVar(&cfg.JournalDSN, "j", cfg.JournalDSN, "journal sqlite path")
	fs.BoolVar(&cfg.SingleShot, "single", cfg.SingleShot, "use single-shot framing when content fits in one chunk")
	fs.BoolVar(&cfg.History, "history", cfg.History, "list recent upload sessions and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
