package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"audiens/internal/core/id"
)

const auditTable = "target_group_audit"

// CompressionAlgo specifies the compression algorithm used for a snapshot.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// AuditEntry is one recorded target group change with a payload snapshot.
type AuditEntry struct {
	ID              id.ID           `db:"id"`
	GroupID         id.ID           `db:"group_id"`
	Action          string          `db:"action"`
	Payload         json.RawMessage `db:"payload"`
	PayloadZstd     []byte          `db:"payload_zstd"`
	CompressionAlgo CompressionAlgo `db:"compression_algo"`
	CreatedAt       time.Time       `db:"created_at"`
}

// AuditService records target group changes. Large payload snapshots are
// stored zstd-compressed.
type AuditService struct {
	pool              *Pool
	encoder           *zstd.Encoder
	compressThreshold int // bytes
}

// NewAuditService creates an audit service.
func NewAuditService(pool *Pool) (*AuditService, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &AuditService{
		pool:              pool,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Record stores one audit entry. Implements targetgroup.AuditLog.
func (s *AuditService) Record(ctx context.Context, action string, groupID id.ID, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	entry := AuditEntry{
		ID:              id.New(),
		GroupID:         groupID,
		Action:          action,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}
	if len(raw) >= s.compressThreshold {
		entry.PayloadZstd = s.encoder.EncodeAll(raw, nil)
		entry.CompressionAlgo = CompressionZstd
	} else {
		entry.Payload = raw
	}

	sql, args, err := sq.Insert(auditTable).
		Columns("id", "group_id", "action", "payload", "payload_zstd", "compression_algo", "created_at").
		Values(entry.ID, entry.GroupID, entry.Action, entry.Payload, entry.PayloadZstd, entry.CompressionAlgo, entry.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
