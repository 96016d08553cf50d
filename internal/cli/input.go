package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetPrivateKey prompts for the sender's private key on the user's terminal
// without echo. A newline is printed after the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPrivateKey(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter sender private key: "); err != nil {
		return nil, err
	}
	key, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(string(key))), nil
}
