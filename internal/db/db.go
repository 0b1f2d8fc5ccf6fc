// Package db provides optional PostgreSQL persistence for draft and send
// history. The store is disabled when no database URL is configured; a nil
// *DB is valid and every method becomes a no-op so callers never branch.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db == nil || db.pool == nil {
		return
	}
	db.pool.Close()
}

// Enabled reports whether history recording is active.
func (db *DB) Enabled() bool {
	return db != nil && db.pool != nil
}

// DraftRecord is one generated or revised draft in the history log.
type DraftRecord struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Company   string     `json:"company,omitempty"`
	JobTitle  string     `json:"job_title,omitempty"`
	Recipient string     `json:"recipient,omitempty"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// Draft kinds recorded in history.
const (
	KindGenerated = "generated"
	KindRevised   = "revised"
)

// RecordDraft stores a draft and returns its history ID.
func (db *DB) RecordDraft(ctx context.Context, rec DraftRecord) (uuid.UUID, error) {
	if !db.Enabled() {
		return uuid.Nil, nil
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO email_drafts (kind, company, job_title, recipient, subject, body)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		rec.Kind, rec.Company, rec.JobTitle, rec.Recipient, rec.Subject, rec.Body,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record draft: %w", err)
	}
	return id, nil
}

// RecordSend stores a completed delivery keyed by Gmail message ID.
func (db *DB) RecordSend(ctx context.Context, to, subject, gmailID string) error {
	if !db.Enabled() {
		return nil
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO email_sends (recipient, subject, gmail_message_id)
		 VALUES ($1, $2, $3)`,
		to, subject, gmailID,
	)
	if err != nil {
		return fmt.Errorf("failed to record send: %w", err)
	}
	return nil
}

// GetDraft retrieves one draft by ID, or nil when it does not exist.
func (db *DB) GetDraft(ctx context.Context, id uuid.UUID) (*DraftRecord, error) {
	if !db.Enabled() {
		return nil, nil
	}

	var rec DraftRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, COALESCE(company, ''), COALESCE(job_title, ''), COALESCE(recipient, ''), subject, body, created_at
		 FROM email_drafts WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Kind, &rec.Company, &rec.JobTitle, &rec.Recipient, &rec.Subject, &rec.Body, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &rec, nil
}

// ListDrafts retrieves recent drafts, newest first.
func (db *DB) ListDrafts(ctx context.Context, limit int) ([]DraftRecord, error) {
	if !db.Enabled() {
		return nil, nil
	}
	if limit == 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, COALESCE(company, ''), COALESCE(job_title, ''), COALESCE(recipient, ''), subject, body, created_at
		 FROM email_drafts ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var recs []DraftRecord
	for rows.Next() {
		var rec DraftRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Company, &rec.JobTitle, &rec.Recipient, &rec.Subject, &rec.Body, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
