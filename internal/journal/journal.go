// Package journal keeps a local record of upload sessions and their
// transactions in a sqlite database. Re-uploading identical content is
// idempotent at the storage-key level, so the journal's main job is
// answering "has this hash gone up before" and keeping transaction ids for
// diagnostics.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fastnear/near-outlayer/internal/common"
	"github.com/fastnear/near-outlayer/internal/dbx"
	"github.com/fastnear/near-outlayer/internal/journal/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Session statuses.
const (
	StatusPending  = "pending"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

type Session struct {
	ID          string
	File        string
	ContentHash string
	Size        int64
	Chunks      int
	Nonce       uint32
	URL         string
	Status      string
	CreatedAt   time.Time
}

type Transaction struct {
	SessionID  string
	ChunkIndex int
	Offset     uint32
	TxID       string
}

// InitDatabase opens (creating if needed) the journal database and applies
// pending migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal db: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Repository persists sessions and their transactions.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateSession(ctx context.Context, s *Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, file, content_hash, size, chunks, nonce, url, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.File, s.ContentHash, s.Size, s.Chunks, int64(s.Nonce), s.URL, s.Status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", s.ID, err)
	}
	return nil
}

// Complete marks the session successful, records its access URL and stores
// the per-chunk transactions in one atomic step.
func (r *Repository) Complete(ctx context.Context, sessionID, url string, txs []Transaction) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE sessions SET status = ?, url = ? WHERE id = ?`,
			StatusComplete, url, sessionID); err != nil {
			return fmt.Errorf("failed to complete session %s: %w", sessionID, err)
		}
		for _, t := range txs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO transactions (session_id, chunk_index, chunk_offset, tx_id)
				VALUES (?, ?, ?, ?)
			`, sessionID, t.ChunkIndex, int64(t.Offset), t.TxID); err != nil {
				return fmt.Errorf("failed to insert transaction for chunk %d: %w", t.ChunkIndex, err)
			}
		}
		return nil
	})
}

func (r *Repository) MarkFailed(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET status = ? WHERE id = ?`, StatusFailed, sessionID)
	if err != nil {
		return fmt.Errorf("failed to mark session %s failed: %w", sessionID, err)
	}
	return nil
}

// FindCompleteByHash returns the most recent successful session for the
// given content hash, or common.ErrorNotFound.
func (r *Repository) FindCompleteByHash(ctx context.Context, hash string) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, file, content_hash, size, chunks, nonce, url, status, created_at
		FROM sessions
		WHERE content_hash = ? AND status = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, hash, StatusComplete)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session by hash: %w", err)
	}
	return s, nil
}

// ListRecent returns up to limit sessions, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, file, content_hash, size, chunks, nonce, url, status, created_at
		FROM sessions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return out, nil
}

// Transactions returns the recorded transactions of one session in chunk
// order.
func (r *Repository) Transactions(ctx context.Context, sessionID string) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, chunk_index, chunk_offset, tx_id
		FROM transactions
		WHERE session_id = ?
		ORDER BY chunk_index
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		var offset int64
		if err := rows.Scan(&t.SessionID, &t.ChunkIndex, &offset, &t.TxID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		t.Offset = uint32(offset)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return out, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSession(row scannable) (*Session, error) {
	var s Session
	var nonce int64
	if err := row.Scan(&s.ID, &s.File, &s.ContentHash, &s.Size, &s.Chunks, &nonce, &s.URL, &s.Status, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Nonce = uint32(nonce)
	return &s, nil
}
