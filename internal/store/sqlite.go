package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/gallery/internal/domain"
)

//go:embed schema.sql
var schema string

// ErrRunNotFound is returned when no run matches an id or id prefix
var ErrRunNotFound = errors.New("run not found")

// Store keeps the history of annotation runs
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records the outcome of annotating one drawing
func (s *Store) SaveRun(name, source, output string, summary domain.Summary) (*domain.Run, error) {
	run := &domain.Run{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    source,
		Output:    output,
		CreatedAt: time.Now().UTC(),
		Summary:   summary,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, name, source, output, paths, unknown, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Name, run.Source, run.Output, summary.Paths, summary.Unknown, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for i, sh := range summary.Shapes {
		_, err := tx.Exec(
			"INSERT INTO run_shapes (run_id, seq, path_id, group_id, type, fill) VALUES (?, ?, ?, ?, ?, ?)",
			run.ID, i, sh.PathID, sh.GroupID, string(sh.Type), sh.Fill,
		)
		if err != nil {
			return nil, fmt.Errorf("insert shape: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

// GetRun retrieves a run by ID with its shapes
func (s *Store) GetRun(id string) (*domain.Run, error) {
	var run domain.Run
	err := s.db.QueryRow(
		"SELECT id, name, source, output, paths, unknown, created_at FROM runs WHERE id = ?",
		id,
	).Scan(&run.ID, &run.Name, &run.Source, &run.Output, &run.Summary.Paths, &run.Summary.Unknown, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	shapes, err := s.runShapes(id)
	if err != nil {
		return nil, err
	}
	run.Summary.Shapes = shapes
	run.Summary.Counts = make(map[domain.ShapeType]int)
	for _, sh := range shapes {
		run.Summary.Counts[sh.Type]++
	}

	return &run, nil
}

// FindRun resolves an id prefix to the most recent matching run
func (s *Store) FindRun(prefix string) (*domain.Run, error) {
	var id string
	err := s.db.QueryRow(
		"SELECT id FROM runs WHERE id LIKE ? ORDER BY created_at DESC LIMIT 1",
		prefix+"%",
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	return s.GetRun(id)
}

// ListRuns returns recent runs with pagination. Shapes are not loaded.
func (s *Store) ListRuns(limit, offset int) ([]domain.Run, error) {
	rows, err := s.db.Query(`
		SELECT id, name, source, output, paths, unknown, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var r domain.Run
		if err := rows.Scan(&r.ID, &r.Name, &r.Source, &r.Output, &r.Summary.Paths, &r.Summary.Unknown, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

func (s *Store) runShapes(runID string) ([]domain.Shape, error) {
	rows, err := s.db.Query(
		"SELECT path_id, group_id, type, fill FROM run_shapes WHERE run_id = ? ORDER BY seq",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get run shapes: %w", err)
	}
	defer rows.Close()

	var shapes []domain.Shape
	for rows.Next() {
		var sh domain.Shape
		var typ string
		if err := rows.Scan(&sh.PathID, &sh.GroupID, &typ, &sh.Fill); err != nil {
			return nil, fmt.Errorf("scan shape: %w", err)
		}
		if sh.Type, err = domain.ParseShapeType(typ); err != nil {
			return nil, fmt.Errorf("scan shape: %w", err)
		}
		shapes = append(shapes, sh)
	}

	return shapes, rows.Err()
}
