package broadcast

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShellTools(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX shell tools")
	}
}

func TestCLIBroadcaster_ZeroExit(t *testing.T) {
	skipWithoutShellTools(t)

	b := &CLIBroadcaster{Bin: "true", Receiver: "sink.near"}
	res, err := b.Broadcast(context.Background(), "payload.bin")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
}

func TestCLIBroadcaster_NonZeroExitIsNotAnError(t *testing.T) {
	skipWithoutShellTools(t)

	b := &CLIBroadcaster{Bin: "false", Receiver: "sink.near"}
	res, err := b.Broadcast(context.Background(), "payload.bin")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
}

func TestCLIBroadcaster_MissingBinary(t *testing.T) {
	b := &CLIBroadcaster{Bin: "/nonexistent/near-cli-binary"}
	_, err := b.Broadcast(context.Background(), "payload.bin")
	require.Error(t, err)
}
