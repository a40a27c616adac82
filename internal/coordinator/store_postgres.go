package coordinator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	id "docledger/pkg/domain"
	"docledger/pkg/platform/sentinel"
	txcontext "docledger/pkg/platform/tx"
)

// PostgresStore persists document requests in PostgreSQL. BIGSERIAL provides
// the monotonic local id; the unique index on oracle_request_id is the
// correlation table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const Schema = `
CREATE TABLE IF NOT EXISTS document_requests (
    id                BIGSERIAL PRIMARY KEY,
    requester         BYTEA NOT NULL,
    document_type     TEXT NOT NULL,
    requirements      TEXT NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL,
    oracle_request_id UUID NOT NULL UNIQUE,
    document_id       BYTEA,
    fulfilled         BOOLEAN NOT NULL DEFAULT FALSE
);
`

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) conn(ctx context.Context) dbtx {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, req DocumentRequest) (id.RequestID, error) {
	var allocated int64
	err := s.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO document_requests (requester, document_type, requirements, created_at, oracle_request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		req.Requester[:], req.DocumentType, req.Requirements, req.CreatedAt, uuid.UUID(req.OracleRequestID),
	).Scan(&allocated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, sentinel.ErrConflict
		}
		return 0, fmt.Errorf("insert request: %w", err)
	}
	return id.RequestID(allocated), nil
}

func (s *PostgresStore) Find(ctx context.Context, reqID id.RequestID) (DocumentRequest, error) {
	return s.scanRequest(s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, requester, document_type, requirements, created_at, oracle_request_id, document_id, fulfilled
		FROM document_requests WHERE id = $1`,
		int64(reqID),
	))
}

func (s *PostgresStore) FindByOracleID(ctx context.Context, oracleID id.OracleRequestID) (DocumentRequest, error) {
	return s.scanRequest(s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, requester, document_type, requirements, created_at, oracle_request_id, document_id, fulfilled
		FROM document_requests WHERE oracle_request_id = $1`,
		uuid.UUID(oracleID),
	))
}

func (s *PostgresStore) MarkFulfilled(ctx context.Context, reqID id.RequestID, docID id.DocumentID) error {
	res, err := s.conn(ctx).ExecContext(ctx, `
		UPDATE document_requests
		SET fulfilled = TRUE, document_id = $2
		WHERE id = $1 AND fulfilled = FALSE`,
		int64(reqID), docID[:],
	)
	if err != nil {
		return fmt.Errorf("mark fulfilled: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark fulfilled: %w", err)
	}
	if affected == 0 {
		// Either the request does not exist or it is already terminal.
		if _, findErr := s.Find(ctx, reqID); findErr != nil {
			return findErr
		}
		return sentinel.ErrInvalidState
	}
	return nil
}

func (s *PostgresStore) scanRequest(row *sql.Row) (DocumentRequest, error) {
	var (
		req          DocumentRequest
		requestID    int64
		rawRequester []byte
		oracleID     uuid.UUID
		rawDocID     []byte
	)
	err := row.Scan(&requestID, &rawRequester, &req.DocumentType, &req.Requirements, &req.CreatedAt, &oracleID, &rawDocID, &req.Fulfilled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DocumentRequest{}, sentinel.ErrNotFound
		}
		return DocumentRequest{}, fmt.Errorf("find request: %w", err)
	}
	req.ID = id.RequestID(requestID)
	copy(req.Requester[:], rawRequester)
	req.OracleRequestID = id.OracleRequestID(oracleID)
	copy(req.DocumentID[:], rawDocID)
	return req, nil
}
