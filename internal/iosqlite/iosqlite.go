// Package iosqlite keeps taxonomy tables in a single SQLite file.
package iosqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/gnames/gnbirds/internal/iofs"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/gnames/gnfmt"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS taxonomies (
	authority TEXT NOT NULL,
	year      INTEGER NOT NULL,
	entries   INTEGER NOT NULL,
	columns   TEXT NOT NULL,
	PRIMARY KEY (authority, year)
);
CREATE TABLE IF NOT EXISTS taxa (
	authority TEXT NOT NULL,
	year      INTEGER NOT NULL,
	row_num   INTEGER NOT NULL,
	record    TEXT NOT NULL,
	PRIMARY KEY (authority, year, row_num)
);`

type sqliteStore struct {
	db   *sql.DB
	path string
	enc  gnfmt.GNjson
}

// Open opens or creates the SQLite store at path.
func Open(ctx context.Context, path string) (taxonomy.Store, error) {
	if err := iofs.TouchDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err = db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, OpenError(path, err)
		}
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, OpenError(path, err)
	}

	return &sqliteStore{db: db, path: path}, nil
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT authority, year, entries, columns FROM taxonomies`)
	if err != nil {
		return nil, ReadError(s.path, err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var auth, colsJSON string
		var year, count int
		if err = rows.Scan(&auth, &year, &count, &colsJSON); err != nil {
			return nil, ReadError(s.path, err)
		}
		var cols []string
		if err = s.enc.Decode([]byte(colsJSON), &cols); err != nil {
			return nil, ReadError(s.path, err)
		}
		// an empty table is enough to derive supported name types
		t, err := taxonomy.NewTable(auth, year, cols, nil)
		if err != nil {
			return nil, err
		}
		e := t.Entry()
		e.Entries = count
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, ReadError(s.path, err)
	}
	return catalog.New(entries)
}

func (s *sqliteStore) Load(
	ctx context.Context,
	authority string,
	year int,
) (*taxonomy.Table, error) {
	authority = catalog.NormAuthority(authority)

	var colsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT columns FROM taxonomies WHERE authority = ? AND year = ?`,
		authority, year,
	).Scan(&colsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, taxonomy.TableNotFoundError(authority, year)
	}
	if err != nil {
		return nil, ReadError(s.path, err)
	}
	var cols []string
	if err = s.enc.Decode([]byte(colsJSON), &cols); err != nil {
		return nil, ReadError(s.path, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM taxa
		 WHERE authority = ? AND year = ?
		 ORDER BY row_num`,
		authority, year,
	)
	if err != nil {
		return nil, ReadError(s.path, err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		var recJSON string
		if err = rows.Scan(&recJSON); err != nil {
			return nil, ReadError(s.path, err)
		}
		var rec []string
		if err = s.enc.Decode([]byte(recJSON), &rec); err != nil {
			return nil, ReadError(s.path, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, ReadError(s.path, err)
	}

	return taxonomy.NewTable(authority, year, cols, records)
}

func (s *sqliteStore) SaveTable(ctx context.Context, t *taxonomy.Table) error {
	key := t.Key()
	cols, err := s.enc.Encode(t.Columns())
	if err != nil {
		return WriteError(s.path, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WriteError(s.path, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []struct {
		q    string
		args []any
	}{
		{`DELETE FROM taxa WHERE authority = ? AND year = ?`,
			[]any{key.Authority, key.Year}},
		{`DELETE FROM taxonomies WHERE authority = ? AND year = ?`,
			[]any{key.Authority, key.Year}},
		{`INSERT INTO taxonomies (authority, year, entries, columns)
		  VALUES (?, ?, ?, ?)`,
			[]any{key.Authority, key.Year, t.Len(), string(cols)}},
	}
	for _, v := range stmts {
		if _, err = tx.ExecContext(ctx, v.q, v.args...); err != nil {
			return WriteError(s.path, err)
		}
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO taxa (authority, year, row_num, record) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return WriteError(s.path, err)
	}
	defer ins.Close()

	for i := range t.Len() {
		rec, err := s.enc.Encode(t.Row(i))
		if err != nil {
			return WriteError(s.path, err)
		}
		if _, err = ins.ExecContext(ctx, key.Authority, key.Year, i, string(rec)); err != nil {
			return WriteError(s.path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return WriteError(s.path, err)
	}
	slog.Debug("Taxonomy table saved to sqlite",
		"authority", key.Authority, "year", key.Year, "rows", t.Len())
	return nil
}
