package broadcast

import "strings"

// noCodeMarker appears in the CLI output when the receiving account has no
// deployed executable code. For a data-sink account this is the expected
// steady state: the transaction was accepted and only the indexer extracts
// the payload, so the non-zero exit is not a transport failure.
const noCodeMarker = "CodeDoesNotExist"

// Transaction-identifier markers, checked in order; the first match wins.
const (
	txIDMarker   = "Transaction ID:"
	txSentMarker = "Transaction sent:"
)

// Verdict classifies one broadcaster result.
type Verdict int

const (
	VerdictSuccess Verdict = iota
	VerdictRetryable
	VerdictFatal
)

// Classifier decides what a broadcaster result means for the upload session.
// Alternate ingestion backends can supply their own rules without touching
// the submission control flow.
type Classifier interface {
	Classify(r *Result) Verdict
}

// NoCodeClassifier implements the FastFS ingestion model: exit 0 succeeds,
// and a non-zero exit with the no-code marker in either stream also counts
// as success. Nothing is retryable at this layer; everything else is fatal.
type NoCodeClassifier struct{}

func (NoCodeClassifier) Classify(r *Result) Verdict {
	if r.ExitCode == 0 {
		return VerdictSuccess
	}
	if strings.Contains(r.CombinedOutput(), noCodeMarker) {
		return VerdictSuccess
	}
	return VerdictFatal
}

// ExtractTxID scans both output streams line by line for a transaction
// identifier. The identifier is diagnostic only: its absence never fails a
// chunk.
func ExtractTxID(r *Result) (string, bool) {
	lines := strings.Split(r.Stdout, "\n")
	lines = append(lines, strings.Split(r.Stderr, "\n")...)

	for _, line := range lines {
		if _, rest, ok := strings.Cut(line, txIDMarker); ok {
			if id := firstField(rest); id != "" {
				return id, true
			}
		}
		if _, rest, ok := strings.Cut(line, txSentMarker); ok {
			if id := firstField(rest); id != "" {
				return id, true
			}
		}
	}
	return "", false
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
