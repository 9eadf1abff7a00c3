// Package sqlite implements the matrix store on SQLite via the pure-Go
// modernc.org driver.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/cogstats/coom/pkg/coom"
	"github.com/cogstats/coom/pkg/coom/internalerr"
	"github.com/cogstats/coom/pkg/coom/sparse"
	"github.com/cogstats/coom/pkg/coom/store"
	"github.com/cogstats/coom/pkg/coom/vocab"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens a SQLite database at path with WAL mode enabled and the
// schema initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS matrices (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	dim INTEGER NOT NULL,
	window_size INTEGER NOT NULL,
	normalize INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS matrix_terms (
	matrix_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	term TEXT NOT NULL,
	PRIMARY KEY(matrix_id, pos),
	FOREIGN KEY(matrix_id) REFERENCES matrices(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS matrix_cells (
	matrix_id TEXT NOT NULL,
	i INTEGER NOT NULL,
	j INTEGER NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY(matrix_id, i, j),
	FOREIGN KEY(matrix_id) REFERENCES matrices(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveMatrix persists the matrix, its term list, and its canonical
// cells in one transaction.
func (s *sqliteStore) SaveMatrix(ctx context.Context, name string, m *coom.CooMatrix, opts coom.Options) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := ulid.MustNew(ulid.Now(), s.entropy).String()

	normalize := 0
	if opts.Normalize {
		normalize = 1
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO matrices (id, name, dim, window_size, normalize, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, m.Dim(), opts.WindowSize, normalize, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}

	termStmt, err := tx.PrepareContext(ctx, `INSERT INTO matrix_terms (matrix_id, pos, term) VALUES (?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer termStmt.Close()

	for pos, term := range m.Terms() {
		if _, err := termStmt.ExecContext(ctx, id, pos, term); err != nil {
			return "", err
		}
	}

	cellStmt, err := tx.PrepareContext(ctx, `INSERT INTO matrix_cells (matrix_id, i, j, weight) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer cellStmt.Close()

	for _, c := range m.Matrix().Cells() {
		if _, err := cellStmt.ExecContext(ctx, id, c.I, c.J, c.Weight); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LoadMatrix reconstructs a matrix by ID.
func (s *sqliteStore) LoadMatrix(ctx context.Context, id string) (*coom.CooMatrix, error) {
	var dim int
	err := s.db.QueryRowContext(ctx, `SELECT dim FROM matrices WHERE id=?`, id).Scan(&dim)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("matrix %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	terms := make([]string, dim)
	rows, err := s.db.QueryContext(ctx, `SELECT pos, term FROM matrix_terms WHERE matrix_id=? ORDER BY pos`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pos int
		var term string
		if err := rows.Scan(&pos, &term); err != nil {
			return nil, err
		}
		if pos < 0 || pos >= dim {
			return nil, fmt.Errorf("matrix %s: term position %d outside dimension %d", id, pos, dim)
		}
		terms[pos] = term
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m := sparse.NewMatrix(dim)
	cellRows, err := s.db.QueryContext(ctx, `SELECT i, j, weight FROM matrix_cells WHERE matrix_id=?`, id)
	if err != nil {
		return nil, err
	}
	defer cellRows.Close()
	for cellRows.Next() {
		var i, j int
		var w float64
		if err := cellRows.Scan(&i, &j, &w); err != nil {
			return nil, err
		}
		m.Add(i, j, w)
	}
	if err := cellRows.Err(); err != nil {
		return nil, err
	}

	return coom.NewCooMatrix(m, vocab.New(terms))
}

// ListMatrices returns stored-matrix metadata, newest first.
func (s *sqliteStore) ListMatrices(ctx context.Context) ([]store.MatrixInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT m.id, m.name, m.dim, m.window_size, m.normalize, m.created_at,
	(SELECT COUNT(*) FROM matrix_cells c WHERE c.matrix_id = m.id)
FROM matrices m
ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []store.MatrixInfo
	for rows.Next() {
		var info store.MatrixInfo
		var normalize int
		var created string
		if err := rows.Scan(&info.ID, &info.Name, &info.Dim, &info.WindowSize, &normalize, &created, &info.NNZ); err != nil {
			return nil, err
		}
		info.Normalize = normalize != 0
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			info.CreatedAt = ts
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteMatrix removes a matrix and, via cascade, its terms and cells.
func (s *sqliteStore) DeleteMatrix(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM matrices WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("matrix %s: %w", id, internalerr.ErrNotFound)
	}
	return nil
}
