package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sensor-dashboard/internal/relay"
)

// ErrNotConfigured indicates the storage handle was not initialised.
var ErrNotConfigured = errors.New("storage: database not configured")

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS sensor_data (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        timestamp TEXT NOT NULL,
        temperature REAL NOT NULL,
        humidity REAL NOT NULL,
        relay_status INTEGER NOT NULL CHECK (relay_status IN (0, 1))
    );`

	appendRecordSQL = `INSERT INTO sensor_data (
        timestamp,
        temperature,
        humidity,
        relay_status
    ) VALUES (?, ?, ?, ?);`

	fetchRecentSQL = `SELECT
        id,
        timestamp,
        temperature,
        humidity,
        relay_status
    FROM sensor_data
    ORDER BY id DESC
    LIMIT ?;`

	fetchBetweenSQL = `SELECT
        id,
        timestamp,
        temperature,
        humidity,
        relay_status
    FROM sensor_data
    WHERE timestamp >= ?
      AND timestamp < ?
    ORDER BY id;`

	countRecordsSQL = `SELECT COUNT(*) FROM sensor_data;`
)

// timestampLayout is fixed-width (zero-padded nanoseconds, always UTC) so
// the text comparison in fetchBetweenSQL sorts lexically in chronological
// order. RFC3339Nano would trim trailing fractional zeros and break that.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// RecordStore defines operations for sensor record persistence.
type RecordStore interface {
	AppendRecord(ctx context.Context, record SensorRecord) error
	FetchRecent(ctx context.Context, limit int) ([]SensorRecord, error)
	FetchBetween(ctx context.Context, from, to time.Time) ([]SensorRecord, error)
	CountRecords(ctx context.Context) (int64, error)
}

// Store persists sensor records in a single SQLite table.
type Store struct {
	db *sql.DB
}

// NewStore wires a database handle into a Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying handle.
func (s *Store) Close() {
	if s == nil || s.db == nil {
		return
	}
	s.db.Close()
}

// EnsureSchema creates the sensor_data table if absent. Idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	if _, execErr := db.ExecContext(ctx, createTableSQL); execErr != nil {
		return fmt.Errorf("ensure schema: %w", execErr)
	}
	return nil
}

func (s *Store) handle() (*sql.DB, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	return s.db, nil
}

// AppendRecord inserts one row. Timestamps are stored as fixed-width UTC
// text so lexical order matches chronological order.
func (s *Store) AppendRecord(ctx context.Context, record SensorRecord) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	_, execErr := db.ExecContext(ctx, appendRecordSQL,
		formatTimestamp(record.Timestamp),
		record.Temperature,
		record.Humidity,
		record.RelayStatus.StorageValue(),
	)
	if execErr != nil {
		return fmt.Errorf("append record: %w", execErr)
	}
	return nil
}

// FetchRecent returns up to limit rows, most-recent-first by row id.
func (s *Store) FetchRecent(ctx context.Context, limit int) ([]SensorRecord, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	// SQLite treats a negative LIMIT as "no limit".
	if limit < 0 {
		limit = 0
	}

	rows, queryErr := db.QueryContext(ctx, fetchRecentSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("fetch recent records: %w", queryErr)
	}
	defer rows.Close()

	return collectRecords(rows, limit)
}

// FetchBetween returns rows within [from, to), oldest-first.
func (s *Store) FetchBetween(ctx context.Context, from, to time.Time) ([]SensorRecord, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, queryErr := db.QueryContext(ctx, fetchBetweenSQL,
		formatTimestamp(from),
		formatTimestamp(to),
	)
	if queryErr != nil {
		return nil, fmt.Errorf("fetch records between: %w", queryErr)
	}
	defer rows.Close()

	return collectRecords(rows, 0)
}

// CountRecords counts stored rows.
func (s *Store) CountRecords(ctx context.Context) (int64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}
	var count int64
	if scanErr := db.QueryRowContext(ctx, countRecordsSQL).Scan(&count); scanErr != nil {
		return 0, fmt.Errorf("count records: %w", scanErr)
	}
	return count, nil
}

func collectRecords(rows *sql.Rows, sizeHint int) ([]SensorRecord, error) {
	if sizeHint < 0 {
		sizeHint = 0
	}
	records := make([]SensorRecord, 0, sizeHint)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, record)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (SensorRecord, error) {
	var (
		id          int64
		timestamp   string
		temperature float64
		humidity    float64
		relayStatus int
	)

	if err := rows.Scan(&id, &timestamp, &temperature, &humidity, &relayStatus); err != nil {
		return SensorRecord{}, err
	}

	ts, err := time.Parse(timestampLayout, timestamp)
	if err != nil {
		return SensorRecord{}, fmt.Errorf("parse record timestamp: %w", err)
	}

	return SensorRecord{
		ID:          id,
		Timestamp:   ts,
		Temperature: temperature,
		Humidity:    humidity,
		RelayStatus: relay.StateFromStorage(relayStatus),
	}, nil
}

var _ RecordStore = (*Store)(nil)
