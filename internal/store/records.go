package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/mediatree/internal/media"
)

// Scan is one recorded scan batch.
type Scan struct {
	Seq         int64
	ID          string
	Root        string
	RecordCount int
	ScannedAt   time.Time
}

// PutRecords upserts batch in a single transaction. A record whose id is
// already present is replaced. Either every record is written or none is.
// Records written this way belong to no scan.
func (s *Store) PutRecords(ctx context.Context, batch []media.Record) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.insertRecords(ctx, tx, sql.NullString{}, batch)
	})
}

// ReplaceRoot replaces every record stored under root with batch and
// records the scan. It returns the scan id.
func (s *Store) ReplaceRoot(ctx context.Context, root string, batch []media.Record) (string, error) {
	scanID := s.newID()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE root = ?`, root); err != nil {
			return fmt.Errorf("delete root: %w", err)
		}
		// The scan row goes first: records.scan_id references it.
		_, err := tx.ExecContext(ctx, `
			INSERT INTO scans (id, root, record_count, scanned_at)
			VALUES (?, ?, ?, ?)
		`, scanID, root, len(batch), s.now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("write scan: %w", err)
		}
		return s.insertRecords(ctx, tx, sql.NullString{String: scanID, Valid: true}, batch)
	})
	if err != nil {
		return "", err
	}
	return scanID, nil
}

func (s *Store) insertRecords(ctx context.Context, tx *sql.Tx, scanID sql.NullString, batch []media.Record) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, root, title, disc_path, data, scan_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			root = excluded.root,
			title = excluded.title,
			disc_path = excluded.disc_path,
			data = excluded.data,
			scan_id = excluded.scan_id
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range batch {
		if rec.ID == "" {
			return fmt.Errorf("put record %q: empty id", rec.DiscPath)
		}
		data, err := marshalRecord(rec)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Root, rec.Title(), rec.DiscPath, data, scanID); err != nil {
			return fmt.Errorf("put record %s: %w", rec.ID, err)
		}
	}
	return nil
}

// Records returns every record ordered by title, then id.
//
// Returns an empty slice (not nil) for an empty catalog.
func (s *Store) Records(ctx context.Context) ([]media.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data
		FROM records
		ORDER BY title COLLATE BINARY ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []media.Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := unmarshalRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// DeleteRoot removes every record stored under root and returns how many
// were removed.
func (s *Store) DeleteRoot(ctx context.Context, root string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE root = ?`, root)
	if err != nil {
		return 0, fmt.Errorf("delete root %s: %w", root, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete root %s: %w", root, err)
	}
	return n, nil
}

// LastScan returns the most recent scan of root. The boolean is false if
// root was never scanned.
func (s *Store) LastScan(ctx context.Context, root string) (Scan, bool, error) {
	var (
		sc        Scan
		scannedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, id, root, record_count, scanned_at
		FROM scans
		WHERE root = ?
		ORDER BY seq DESC
		LIMIT 1
	`, root).Scan(&sc.Seq, &sc.ID, &sc.Root, &sc.RecordCount, &scannedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Scan{}, false, nil
	}
	if err != nil {
		return Scan{}, false, fmt.Errorf("query last scan: %w", err)
	}
	sc.ScannedAt, err = time.Parse(time.RFC3339Nano, scannedAt)
	if err != nil {
		return Scan{}, false, fmt.Errorf("parse scan time: %w", err)
	}
	return sc, true, nil
}

// withTx runs fn in a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
