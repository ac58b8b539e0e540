package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain/backfill"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// DefaultCompressThreshold is the payload size above which details are compressed.
const DefaultCompressThreshold = 10 * 1024

// migrationLogRow is the stored shape of a MigrationSummary.
type migrationLogRow struct {
	ID                  id.ID           `db:"id"`
	RunAt               time.Time       `db:"run_at"`
	RunBy               string          `db:"run_by"`
	DurationMs          int64           `db:"duration_ms"`
	TotalProcessed      int             `db:"total_processed"`
	PricesCalculated    int             `db:"prices_calculated"`
	TransactionsCreated int             `db:"transactions_created"`
	ErrorCount          int             `db:"error_count"`
	Payload             []byte          `db:"payload"`
	PayloadCompressed   []byte          `db:"payload_compressed"`
	CompressionAlgo     CompressionAlgo `db:"compression_algo"`
}

// migrationPayload holds the per-service lists of a run.
type migrationPayload struct {
	Errors  []backfill.ServiceError `json:"errors"`
	Details []backfill.Detail       `json:"details"`
}

// MigrationLog is the append-only sys_migration_log table.
// Large payloads are stored zstd-compressed.
type MigrationLog struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ backfill.AuditLog = (*MigrationLog)(nil)

// NewMigrationLog creates a new migration log.
func NewMigrationLog(txManager *TxManager) (*MigrationLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &MigrationLog{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: DefaultCompressThreshold,
	}, nil
}

// encodeSummary converts a summary into its row form, compressing the
// payload when it exceeds the threshold.
func (l *MigrationLog) encodeSummary(s *backfill.MigrationSummary) (*migrationLogRow, error) {
	payload, err := json.Marshal(migrationPayload{Errors: s.Errors, Details: s.Details})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	row := &migrationLogRow{
		ID:                  s.ID,
		RunAt:               s.RunAt,
		RunBy:               s.RunBy,
		DurationMs:          s.Duration.Milliseconds(),
		TotalProcessed:      s.TotalProcessed,
		PricesCalculated:    s.PricesCalculated,
		TransactionsCreated: s.TransactionsCreated,
		ErrorCount:          len(s.Errors),
		Payload:             payload,
		CompressionAlgo:     CompressionNone,
	}
	if len(payload) > l.compressThreshold {
		row.PayloadCompressed = l.encoder.EncodeAll(payload, nil)
		row.Payload = nil
		row.CompressionAlgo = CompressionZstd
	}
	return row, nil
}

func (l *MigrationLog) decodeRow(row *migrationLogRow) (*backfill.MigrationSummary, error) {
	payload := row.Payload
	if row.CompressionAlgo == CompressionZstd && len(row.PayloadCompressed) > 0 {
		decompressed, err := l.decoder.DecodeAll(row.PayloadCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress payload: %w", err)
		}
		payload = decompressed
	}

	var p migrationPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("unmarshal payload: %w", err)
		}
	}

	return &backfill.MigrationSummary{
		ID:       row.ID,
		RunAt:    row.RunAt,
		RunBy:    row.RunBy,
		Duration: time.Duration(row.DurationMs) * time.Millisecond,
		Result: backfill.Result{
			TotalProcessed:      row.TotalProcessed,
			PricesCalculated:    row.PricesCalculated,
			TransactionsCreated: row.TransactionsCreated,
			Errors:              p.Errors,
			Details:             p.Details,
		},
	}, nil
}

// Append implements backfill.AuditLog.
func (l *MigrationLog) Append(ctx context.Context, s *backfill.MigrationSummary) error {
	if id.IsNil(s.ID) {
		s.ID = id.New()
	}
	if s.RunAt.IsZero() {
		s.RunAt = time.Now().UTC()
	}

	row, err := l.encodeSummary(s)
	if err != nil {
		return err
	}

	_, err = l.txManager.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_migration_log (
			id, run_at, run_by, duration_ms,
			total_processed, prices_calculated, transactions_created, error_count,
			payload, payload_compressed, compression_algo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		row.ID, row.RunAt, row.RunBy, row.DurationMs,
		row.TotalProcessed, row.PricesCalculated, row.TransactionsCreated, row.ErrorCount,
		row.Payload, row.PayloadCompressed, row.CompressionAlgo,
	)
	if err != nil {
		return fmt.Errorf("insert migration log: %w", err)
	}
	return nil
}

// List implements backfill.AuditLog. Newest first.
func (l *MigrationLog) List(ctx context.Context, limit int) ([]*backfill.MigrationSummary, error) {
	var rows []*migrationLogRow
	err := pgxscan.Select(ctx, l.txManager.GetQuerier(ctx), &rows, `
		SELECT id, run_at, run_by, duration_ms,
			   total_processed, prices_calculated, transactions_created, error_count,
			   payload, payload_compressed, compression_algo
		FROM sys_migration_log
		ORDER BY run_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query migration log: %w", err)
	}

	out := make([]*backfill.MigrationSummary, 0, len(rows))
	for _, row := range rows {
		s, err := l.decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", row.ID, err)
		}
		out = append(out, s)
	}
	return out, nil
}
