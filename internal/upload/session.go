// Package upload drives one FastFS upload session: it plans chunks, encodes
// frames, hands each payload to the external broadcaster strictly in offset
// order, classifies the outcome, and assembles the final report.
package upload

import (
	"context"
	"fmt"
	"os"

	"github.com/fastnear/near-outlayer/internal/broadcast"
	"github.com/fastnear/near-outlayer/internal/common"
	"github.com/fastnear/near-outlayer/internal/fastfs"
	"github.com/fastnear/near-outlayer/internal/logging"
	"github.com/google/uuid"
)

// Outcome records the result of one chunk submission. Outcomes are appended
// in submission order and never mutated afterwards.
type Outcome struct {
	ChunkIndex int
	Offset     uint32
	TxID       string
	Success    bool
	RawOutput  string
}

// Report is the caller-facing summary emitted only after every chunk
// succeeded.
type Report struct {
	SessionID    string
	ContentHash  string
	RelativePath string
	MimeType     string
	URL          string
	Descriptor   string
	Size         int
	Chunks       int
	Nonce        uint32
	Outcomes     []Outcome
}

// Recorder receives session lifecycle notifications, typically backed by
// the local upload journal. Recorder failures never fail the upload; they
// are logged and the session continues.
type Recorder interface {
	SessionStarted(ctx context.Context, r *Report) error
	SessionCompleted(ctx context.Context, r *Report) error
	SessionFailed(ctx context.Context, sessionID string) error
}

// Session submits one content blob. Chunks are sent one at a time,
// synchronously; the indexer reconstructs content by replaying transactions
// in arrival order, so out-of-order delivery is not supported.
type Session struct {
	Broadcaster   broadcast.Broadcaster
	Classifier    broadcast.Classifier
	Logger        logging.Logger
	Sender        string
	Receiver      string
	StorageDomain string
	MaxChunkSize  int
	SingleShot    bool     // use the single-shot frame when content fits in one chunk
	TempDir       string   // payload staging dir, os.TempDir if empty
	Recorder      Recorder // optional lifecycle sink
}

func (s *Session) classifier() broadcast.Classifier {
	if s.Classifier == nil {
		return broadcast.NoCodeClassifier{}
	}
	return s.Classifier
}

func (s *Session) maxChunkSize() int {
	if s.MaxChunkSize <= 0 {
		return fastfs.DefaultMaxChunkSize
	}
	return s.MaxChunkSize
}

func (s *Session) storageDomain() string {
	if s.StorageDomain == "" {
		return fastfs.DefaultStorageDomain
	}
	return s.StorageDomain
}

// Upload pushes content (originally held in filename, which determines the
// extension and mime type) to the data-sink account. It returns the report
// on success. On a transport failure the session aborts immediately; the
// returned error is a *common.TransportError carrying both captured
// streams, and no further chunks are attempted.
func (s *Session) Upload(ctx context.Context, content []byte, filename string) (*Report, error) {
	hash := fastfs.ContentHash(content)
	relPath := fastfs.RelativePath(content, filename)
	mimeType := fastfs.MimeTypeFor(filename)

	plan, err := fastfs.PlanChunks(content, s.maxChunkSize(), fastfs.NewNonce())
	if err != nil {
		return nil, err
	}

	report := &Report{
		SessionID:    uuid.NewString(),
		ContentHash:  hash,
		RelativePath: relPath,
		MimeType:     mimeType,
		URL:          fastfs.AccessURL(s.Sender, s.storageDomain(), s.Receiver, relPath),
		Descriptor:   fastfs.Descriptor(hash),
		Size:         len(content),
		Chunks:       len(plan.Chunks),
		Nonce:        plan.Nonce,
	}

	log := s.Logger.With("session", report.SessionID, "path", relPath)
	log.Info(ctx, "starting upload", "size", len(content), "chunks", len(plan.Chunks))

	frames, err := s.encodeFrames(plan, relPath, mimeType, content)
	if err != nil {
		return nil, err
	}

	if s.Recorder != nil {
		if err := s.Recorder.SessionStarted(ctx, report); err != nil {
			log.Warn(ctx, "could not record session start", "error", err)
		}
	}

	for i, frame := range frames {
		outcome, err := s.submit(ctx, log, i, plan.Chunks[i].Offset, frame)
		if outcome != nil {
			report.Outcomes = append(report.Outcomes, *outcome)
		}
		if err != nil {
			if s.Recorder != nil {
				if rerr := s.Recorder.SessionFailed(ctx, report.SessionID); rerr != nil {
					log.Warn(ctx, "could not record session failure", "error", rerr)
				}
			}
			return nil, err
		}
		log.Info(ctx, "chunk accepted", "index", i, "tx", report.Outcomes[i].TxID)
	}

	if s.Recorder != nil {
		if err := s.Recorder.SessionCompleted(ctx, report); err != nil {
			log.Warn(ctx, "could not record session completion", "error", err)
		}
	}

	log.Info(ctx, "upload complete", "url", report.URL)
	return report, nil
}

// encodeFrames serializes every chunk of the plan. Single-shot framing is
// used only when the caller opted in and the whole content fits in one
// chunk; chunked framing is always correctness-preserving otherwise.
func (s *Session) encodeFrames(plan *fastfs.Plan, relPath, mimeType string, content []byte) ([][]byte, error) {
	if s.SingleShot && len(plan.Chunks) == 1 {
		frame, err := fastfs.EncodeSimple(&fastfs.SimpleFile{
			RelativePath: relPath,
			MimeType:     mimeType,
			Content:      content,
		})
		if err != nil {
			return nil, err
		}
		return [][]byte{frame}, nil
	}

	frames := make([][]byte, 0, len(plan.Chunks))
	for _, c := range plan.Chunks {
		frame, err := fastfs.EncodePartial(&fastfs.PartialFile{
			RelativePath: relPath,
			Offset:       c.Offset,
			FullSize:     plan.FullSize,
			MimeType:     mimeType,
			Content:      c.Bytes,
			Nonce:        plan.Nonce,
		})
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// submit writes one frame to a transient payload file, broadcasts it and
// classifies the result. The payload file is removed on every exit path
// before the next chunk's file is created; no two chunk files coexist.
func (s *Session) submit(ctx context.Context, log logging.Logger, index int, offset uint32, frame []byte) (*Outcome, error) {
	payloadFile, err := s.writePayload(frame)
	if err != nil {
		return nil, fmt.Errorf("staging payload for chunk %d: %w", index, err)
	}
	defer func() {
		if err := os.Remove(payloadFile); err != nil {
			log.Warn(ctx, "could not remove payload file", "file", payloadFile, "error", err)
		}
	}()

	log.Debug(ctx, "submitting chunk", "index", index, "offset", offset, "bytes", len(frame))

	res, err := s.Broadcaster.Broadcast(ctx, payloadFile)
	if err != nil {
		return nil, fmt.Errorf("broadcasting chunk %d: %w", index, err)
	}

	outcome := &Outcome{ChunkIndex: index, Offset: offset, RawOutput: res.CombinedOutput()}
	if id, ok := broadcast.ExtractTxID(res); ok {
		outcome.TxID = id
	} else {
		// Diagnostic only; never fails the chunk.
		log.Warn(ctx, "no transaction id in broadcaster output", "index", index)
	}

	switch s.classifier().Classify(res) {
	case broadcast.VerdictSuccess:
		outcome.Success = true
		return outcome, nil
	default:
		return outcome, &common.TransportError{
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
}

func (s *Session) writePayload(frame []byte) (string, error) {
	f, err := os.CreateTemp(s.TempDir, "fastfs-*.bin")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(frame); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
