// Package store persists animal records in SQLite. Views are append-only:
// concurrent uploads for the same animal each land as their own row, and the
// animal-level aggregate is re-derived from the scoring view inside the same
// transaction, so one upload can never silently overwrite another.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"herdscore/internal/config"
	"herdscore/internal/record"
	"herdscore/internal/scoring"
	"herdscore/internal/services"
)

// Store manages animal record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the record database. It takes an
// exclusive file lock so two writer processes cannot interleave.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "records.db")
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("record store at %s is locked by another process", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AppendView appends one ViewResult to an animal record, creating the
// record on first upload, and re-derives the animal-level aggregate from
// the scoring view. Returns the refreshed record.
func (s *Store) AppendView(ctx context.Context, animalID, breed string, weight float64, view record.ViewResult) (*record.AnimalRecord, error) {
	if strings.TrimSpace(animalID) == "" {
		return nil, services.Wrap(services.ErrInput, "store", "append", "animal id required", nil)
	}

	payload, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("encode view: %w", err)
	}

	var rec *record.AnimalRecord
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO animals (animal_id, breed, weight, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(animal_id) DO UPDATE SET breed = excluded.breed, weight = excluded.weight`,
			animalID, breed, weight, now.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("upsert animal: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO views (animal_id, view_type, payload, uploaded_at)
			VALUES (?, ?, ?, ?)`,
			animalID, string(view.ViewType), string(payload), view.UploadedAt.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert view: %w", err)
		}

		loaded, err := loadRecord(ctx, tx, animalID)
		if err != nil {
			return err
		}
		if err := writeAggregate(ctx, tx, loaded, now); err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns the full animal record.
func (s *Store) Get(ctx context.Context, animalID string) (*record.AnimalRecord, error) {
	var rec *record.AnimalRecord
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		loaded, err := loadRecord(ctx, tx, animalID)
		if err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Finalize fixes the animal's breed, weight and optional farmer identifier
// and refreshes the aggregate. Returns the finalized record.
func (s *Store) Finalize(ctx context.Context, animalID, breed string, weight float64, farmerID string) (*record.AnimalRecord, error) {
	var rec *record.AnimalRecord
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		var farmer any
		if strings.TrimSpace(farmerID) != "" {
			farmer = farmerID
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE animals SET breed = ?, weight = ?, farmer_id = COALESCE(?, farmer_id), updated_at = ?
			WHERE animal_id = ?`,
			breed, weight, farmer, now.Format(time.RFC3339Nano), animalID,
		)
		if err != nil {
			return fmt.Errorf("finalize animal: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("finalize animal: %w", err)
		}
		if affected == 0 {
			return services.Wrap(services.ErrNotFound, "store", "finalize", fmt.Sprintf("animal %s", animalID), nil)
		}

		loaded, err := loadRecord(ctx, tx, animalID)
		if err != nil {
			return err
		}
		if err := writeAggregate(ctx, tx, loaded, now); err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func loadRecord(ctx context.Context, tx *sql.Tx, animalID string) (*record.AnimalRecord, error) {
	rec := &record.AnimalRecord{AnimalID: animalID}

	var farmer sql.NullString
	var updatedAt string
	err := tx.QueryRowContext(ctx, `
		SELECT breed, weight, farmer_id, updated_at FROM animals WHERE animal_id = ?`,
		animalID,
	).Scan(&rec.Breed, &rec.Weight, &farmer, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "store", "load", fmt.Sprintf("animal %s", animalID), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("load animal: %w", err)
	}
	if farmer.Valid {
		rec.FarmerID = &farmer.String
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		rec.UpdatedAt = ts
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT payload FROM views WHERE animal_id = ? ORDER BY id`,
		animalID,
	)
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan view: %w", err)
		}
		var view record.ViewResult
		if err := json.Unmarshal([]byte(payload), &view); err != nil {
			return nil, fmt.Errorf("decode view: %w", err)
		}
		rec.Views = append(rec.Views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate views: %w", err)
	}

	rec.Recompute()
	return rec, nil
}

func writeAggregate(ctx context.Context, tx *sql.Tx, rec *record.AnimalRecord, now time.Time) error {
	measurements, err := json.Marshal(rec.Measurements)
	if err != nil {
		return fmt.Errorf("encode measurements: %w", err)
	}
	var score any
	if rec.Score != nil {
		score = *rec.Score
	}
	verdict := rec.Verdict
	if verdict == "" {
		verdict = scoring.VerdictNA
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE animals SET measurements = ?, score = ?, verdict = ?, updated_at = ?
		WHERE animal_id = ?`,
		string(measurements), score, string(verdict), now.Format(time.RFC3339Nano), rec.AnimalID,
	); err != nil {
		return fmt.Errorf("write aggregate: %w", err)
	}
	rec.UpdatedAt = now
	return nil
}
