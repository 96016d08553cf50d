// Package broadcast wraps the external transaction broadcaster. The `near`
// CLI is invoked synchronously per payload; its exit status and captured
// output streams are returned as a structured Result so that outcome
// classification lives in one seam (see classify.go) rather than being
// scattered over the submission control flow.
package broadcast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// MethodName is the fixed privileged method understood only by the indexer.
// No deployed contract implements it; the receiving account is a pure data
// sink.
const MethodName = "__ingest_chunk"

// Default gas and deposit parameters for a chunk transaction.
const (
	DefaultGas     = "300 Tgas"
	DefaultDeposit = "0 NEAR"
)

// Result is the structured outcome of one broadcaster invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CombinedOutput returns both captured streams joined, stderr first, for
// marker scanning.
func (r *Result) CombinedOutput() string {
	return r.Stderr + r.Stdout
}

// Broadcaster submits one payload file to the network and reports the
// structured result. Implementations must be synchronous: the call returns
// only after the transaction was accepted or rejected by the layer below.
type Broadcaster interface {
	Broadcast(ctx context.Context, payloadFile string) (*Result, error)
}

// CLIBroadcaster shells out to the `near` CLI, signing with a plaintext
// private key. Credentials are passed through verbatim; this package never
// inspects or validates them.
type CLIBroadcaster struct {
	Bin       string // broadcaster binary, "near" if empty
	Receiver  string
	Network   string
	Sender    string
	SenderKey string
	Gas       string
	Deposit   string
}

func (b *CLIBroadcaster) args(payloadFile string) []string {
	gas, deposit := b.Gas, b.Deposit
	if gas == "" {
		gas = DefaultGas
	}
	if deposit == "" {
		deposit = DefaultDeposit
	}
	return []string{
		"contract", "call-function", "as-transaction",
		b.Receiver, MethodName,
		"file-args", payloadFile,
		"prepaid-gas", gas,
		"attached-deposit", deposit,
		"sign-as", b.Sender,
		"network-config", b.Network,
		"sign-with-plaintext-private-key", b.SenderKey,
		"send",
	}
}

// Broadcast runs the CLI once and captures both streams. A non-zero exit is
// not an error at this layer: it is returned inside Result for the
// classifier to interpret. An error is returned only when the process could
// not be run at all.
func (b *CLIBroadcaster) Broadcast(ctx context.Context, payloadFile string) (*Result, error) {
	bin := b.Bin
	if bin == "" {
		bin = "near"
	}

	cmd := exec.CommandContext(ctx, bin, b.args(payloadFile)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running %s: %w", bin, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}
