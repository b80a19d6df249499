package internal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	api "github.com/etesami/earthquake-feed/api"
)

// Archive keeps every event the collector has seen, one row per event id.
type Archive struct {
	db *sql.DB
}

func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive tables: %w", err)
	}
	return &Archive{db: db}, nil
}

func createTables(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS quake_events (
			id TEXT PRIMARY KEY,
			mag REAL NOT NULL,
			place TEXT NOT NULL,
			time INTEGER NOT NULL,
			tz INTEGER,
			url TEXT NOT NULL,
			felt INTEGER,
			alert TEXT NOT NULL,
			mmi REAL NOT NULL,
			lon REAL NOT NULL,
			lat REAL NOT NULL,
			depth REAL NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS quake_events_time ON quake_events (time);`
	_, err := db.Exec(query)
	return err
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Store upserts events in one transaction. A stored event is only replaced
// by a version that is not older. It returns the number of rows written.
func (a *Archive) Store(ctx context.Context, events []api.EventRecord) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quake_events (id, mag, place, time, tz, url, felt, alert, mmi, lon, lat, depth, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mag = excluded.mag, place = excluded.place, time = excluded.time, tz = excluded.tz,
			url = excluded.url, felt = excluded.felt, alert = excluded.alert, mmi = excluded.mmi,
			lon = excluded.lon, lat = excluded.lat, depth = excluded.depth, updated_at = excluded.updated_at
		WHERE excluded.time >= quake_events.time`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	count := 0
	for _, e := range events {
		res, err := stmt.ExecContext(ctx,
			e.ID, e.Magnitude, e.Place, e.Time, nullInt(e.TZ), e.URL, nullInt(e.Felt),
			e.Alert, e.MMI, e.Longitude, e.Latitude, e.Depth, now)
		if err != nil {
			return 0, fmt.Errorf("storing event %s: %w", e.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			count += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// Recent returns up to limit archived events, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]api.EventRecord, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, mag, place, time, tz, url, felt, alert, mmi, lon, lat, depth
		FROM quake_events ORDER BY time DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]api.EventRecord, 0)
	for rows.Next() {
		var e api.EventRecord
		var tz, felt sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Magnitude, &e.Place, &e.Time, &tz, &e.URL, &felt,
			&e.Alert, &e.MMI, &e.Longitude, &e.Latitude, &e.Depth); err != nil {
			return nil, fmt.Errorf("scanning archived event: %w", err)
		}
		if tz.Valid {
			e.TZ = &tz.Int64
		}
		if felt.Valid {
			e.Felt = &felt.Int64
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
