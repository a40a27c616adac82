package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	id "docledger/pkg/domain"
	"docledger/pkg/platform/sentinel"
	txcontext "docledger/pkg/platform/tx"
)

// PostgresStore persists documents in PostgreSQL. The table is append-only:
// no UPDATE or DELETE statement exists in this file, and the primary key
// rejects replayed derivations. seq preserves per-owner insertion order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is applied by the operator (or testcontainers setup); kept here so
// the store and its DDL evolve together.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    id            BYTEA PRIMARY KEY,
    owner_address BYTEA NOT NULL,
    content_hash  BYTEA NOT NULL,
    registered_at TIMESTAMPTZ NOT NULL,
    document_type TEXT NOT NULL,
    metadata      TEXT NOT NULL DEFAULT '',
    seq           BIGSERIAL
);
CREATE INDEX IF NOT EXISTS documents_owner_idx ON documents (owner_address, seq);
CREATE INDEX IF NOT EXISTS documents_hash_idx ON documents (content_hash);
`

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) conn(ctx context.Context) dbtx {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, doc Document) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO documents (id, owner_address, content_hash, registered_at, document_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID[:], doc.Owner[:], doc.ContentHash[:], doc.RegisteredAt, doc.DocumentType, doc.Metadata,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, docID id.DocumentID) (Document, error) {
	var (
		doc      Document
		rawID    []byte
		rawOwner []byte
		rawHash  []byte
	)
	err := s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, owner_address, content_hash, registered_at, document_type, metadata
		FROM documents WHERE id = $1`,
		docID[:],
	).Scan(&rawID, &rawOwner, &rawHash, &doc.RegisteredAt, &doc.DocumentType, &doc.Metadata)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, sentinel.ErrNotFound
		}
		return Document{}, fmt.Errorf("find document: %w", err)
	}
	copy(doc.ID[:], rawID)
	copy(doc.Owner[:], rawOwner)
	copy(doc.ContentHash[:], rawHash)
	return doc, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, owner id.Address) ([]id.DocumentID, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT id FROM documents WHERE owner_address = $1 ORDER BY seq`,
		owner[:],
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	ids := []id.DocumentID{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		var docID id.DocumentID
		copy(docID[:], raw)
		ids = append(ids, docID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) HashRegistered(ctx context.Context, contentHash id.Hash) (bool, error) {
	var exists bool
	err := s.conn(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM documents WHERE content_hash = $1)`,
		contentHash[:],
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check hash membership: %w", err)
	}
	return exists, nil
}
