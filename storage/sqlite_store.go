package storage

import (
	"database/sql"
	"fmt"
	"regexp"

	"sauconv/census"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ensureTable (re)creates one metrics table. Names come from dataset tables,
// never from user input, but are still checked before being spliced into SQL.
func (s *SQLiteStore) ensureTable(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}

	schema := fmt.Sprintf(`
DROP TABLE IF EXISTS %[1]s;
CREATE TABLE %[1]s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	key TEXT NOT NULL,
	nb_exploitations INTEGER CHECK(nb_exploitations IS NULL OR nb_exploitations >= 0),
	sau REAL NOT NULL,
	UNIQUE(code, key)
);
`, name)
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	return nil
}

// InsertTable writes every row of table in one transaction and returns the
// number of inserted rows.
func (s *SQLiteStore) InsertTable(table census.Table) (int, error) {
	if err := s.ensureTable(table.Name); err != nil {
		return 0, err
	}
	if len(table.Rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	insertStmt := fmt.Sprintf(`
INSERT INTO %s (
	code,
	name,
	key,
	nb_exploitations,
	sau
) VALUES (?, ?, ?, ?, ?);`, table.Name)

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range table.Rows {
		if _, err := stmt.Exec(row.Values()...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("insert %s row %s/%s: %w", table.Name, row.Code, row.Key, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

// ListTable reads a table back in insertion order.
func (s *SQLiteStore) ListTable(name string) ([]census.Row, error) {
	if !tableNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid table name %q", name)
	}

	rows, err := s.db.Query(fmt.Sprintf(`
SELECT code, name, key, nb_exploitations, sau
FROM %s
ORDER BY id;`, name))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	out := make([]census.Row, 0, 64)
	for rows.Next() {
		var (
			row      census.Row
			holdings sql.NullInt64
		)
		if err := rows.Scan(&row.Code, &row.Name, &row.Key, &holdings, &row.Area); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", name, err)
		}
		if holdings.Valid {
			value := holdings.Int64
			row.Holdings = &value
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", name, err)
	}

	return out, nil
}
