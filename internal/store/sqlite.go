package store

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS weather_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	location TEXT NOT NULL,
	country TEXT,
	main TEXT,
	description TEXT,
	temp TEXT,
	humidity TEXT,
	pressure TEXT,
	wind TEXT,
	saved_on DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_weather_records_location ON weather_records(location);
CREATE INDEX IF NOT EXISTS idx_weather_records_saved_on ON weather_records(saved_on);`

const selectRecord = `SELECT id, location, country, main, description, temp, humidity, pressure, wind, saved_on FROM weather_records`

// Store is a SQLite-backed repository for weather records.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dsn and ensures the schema exists.
// An optional "sqlite://" scheme prefix on dsn is stripped.
func NewStore(dsn string) (*Store, error) {
	dsn = normalizeDSN(dsn)
	log.Printf("INFO: opening record database at %s", dsn)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, persistErr("open database", err)
	}

	// Every pooled connection to a plain :memory: DSN would get its own
	// empty database, so pin in-memory stores to a single connection.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, persistErr("create tables", err)
	}

	return &Store{db: db}, nil
}

func normalizeDSN(dsn string) string {
	for _, prefix := range []string{"sqlite:///", "sqlite://"} {
		if strings.HasPrefix(dsn, prefix) {
			return strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Create validates the supplied fields, assigns identity and a save
// timestamp, and persists the record, returning the stored row.
func (s *Store) Create(ctx context.Context, fields RecordFields) (WeatherRecord, error) {
	if err := fields.validate(); err != nil {
		return WeatherRecord{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WeatherRecord{}, persistErr("begin transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO weather_records(location, country, main, description, temp, humidity, pressure, wind, saved_on)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fields.Location,
		fields.Country,
		fields.Main,
		fields.Description,
		fields.Temp,
		fields.Humidity,
		fields.Pressure,
		fields.Wind,
		time.Now().UTC(),
	)
	if err != nil {
		return WeatherRecord{}, persistErr("insert record", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return WeatherRecord{}, persistErr("read inserted id", err)
	}

	rec, err := scanRecord(tx.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id).Scan)
	if err != nil {
		return WeatherRecord{}, persistErr("read back record", err)
	}

	if err := tx.Commit(); err != nil {
		return WeatherRecord{}, persistErr("commit transaction", err)
	}
	return rec, nil
}

// GetAll returns every record, most recently saved first.
func (s *Store) GetAll(ctx context.Context) ([]WeatherRecord, error) {
	return s.queryRecords(ctx, selectRecord+` ORDER BY saved_on DESC, id DESC`)
}

// GetByID returns the record with the given id. found is false when no
// such record exists; that is not an error.
func (s *Store) GetByID(ctx context.Context, id int64) (WeatherRecord, bool, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return WeatherRecord{}, false, nil
	}
	if err != nil {
		return WeatherRecord{}, false, persistErr("query record", err)
	}
	return rec, true, nil
}

// GetByLocation returns records whose location contains the given
// substring, case-insensitively, most recently saved first. An empty
// result is a valid outcome at this layer.
func (s *Store) GetByLocation(ctx context.Context, location string) ([]WeatherRecord, error) {
	pattern := "%" + location + "%"
	return s.queryRecords(ctx, selectRecord+` WHERE location LIKE ? ORDER BY saved_on DESC, id DESC`, pattern)
}

// Update applies the present fields of patch to the record with the given
// id and returns the updated row. found is false when the record does not
// exist. A patch with no recognized fields leaves the row unchanged.
func (s *Store) Update(ctx context.Context, id int64, patch RecordPatch) (WeatherRecord, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WeatherRecord{}, false, persistErr("begin transaction", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM weather_records WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return WeatherRecord{}, false, nil
	}
	if err != nil {
		return WeatherRecord{}, false, persistErr("query record", err)
	}

	sets, args := patch.assignments()
	if len(sets) > 0 {
		args = append(args, id)
		query := `UPDATE weather_records SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return WeatherRecord{}, false, persistErr("update record", err)
		}
	}

	rec, err := scanRecord(tx.QueryRowContext(ctx, selectRecord+` WHERE id = ?`, id).Scan)
	if err != nil {
		return WeatherRecord{}, false, persistErr("read back record", err)
	}

	if err := tx.Commit(); err != nil {
		return WeatherRecord{}, false, persistErr("commit transaction", err)
	}
	return rec, true, nil
}

// Delete removes the record with the given id. found reports whether a
// row existed; deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM weather_records WHERE id = ?`, id)
	if err != nil {
		return false, persistErr("delete record", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, persistErr("count deleted rows", err)
	}
	return n > 0, nil
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]WeatherRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("query records", err)
	}
	defer rows.Close()

	var records []WeatherRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, persistErr("scan record", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate records", err)
	}
	return records, nil
}

func scanRecord(scan func(dest ...any) error) (WeatherRecord, error) {
	var rec WeatherRecord
	err := scan(
		&rec.ID,
		&rec.Location,
		&rec.Country,
		&rec.Main,
		&rec.Description,
		&rec.Temp,
		&rec.Humidity,
		&rec.Pressure,
		&rec.Wind,
		&rec.SavedOn,
	)
	return rec, err
}
