package cli

import (
	"context"

	"github.com/fastnear/near-outlayer/internal/journal"
	"github.com/fastnear/near-outlayer/internal/upload"
)

// journalRecorder persists upload session lifecycle events in the local
// journal database.
type journalRecorder struct {
	repo *journal.Repository
	file string
}

func (j *journalRecorder) SessionStarted(ctx context.Context, r *upload.Report) error {
	return j.repo.CreateSession(ctx, &journal.Session{
		ID:          r.SessionID,
		File:        j.file,
		ContentHash: r.ContentHash,
		Size:        int64(r.Size),
		Chunks:      r.Chunks,
		Nonce:       r.Nonce,
		URL:         r.URL,
		Status:      journal.StatusPending,
	})
}

func (j *journalRecorder) SessionCompleted(ctx context.Context, r *upload.Report) error {
	txs := make([]journal.Transaction, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		txs = append(txs, journal.Transaction{
			SessionID:  r.SessionID,
			ChunkIndex: o.ChunkIndex,
			Offset:     o.Offset,
			TxID:       o.TxID,
		})
	}
	return j.repo.Complete(ctx, r.SessionID, r.URL, txs)
}

func (j *journalRecorder) SessionFailed(ctx context.Context, sessionID string) error {
	return j.repo.MarkFailed(ctx, sessionID)
}
