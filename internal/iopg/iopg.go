// Package iopg keeps taxonomy tables in PostgreSQL. The schema is
// created with GORM AutoMigrate, rows are loaded with pgx CopyFrom.
package iopg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gnames/gnbirds/internal/iodb"
	"github.com/gnames/gnbirds/pkg/catalog"
	"github.com/gnames/gnbirds/pkg/config"
	"github.com/gnames/gnbirds/pkg/db"
	"github.com/gnames/gnbirds/pkg/schema"
	"github.com/gnames/gnbirds/pkg/taxonomy"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const sciNameCol = "scientific_name"

type pgStore struct {
	op        db.Operator
	batchSize int
	enc       gnfmt.GNjson
}

// Open connects to PostgreSQL and makes sure that the schema exists.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (taxonomy.Store, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	res := &pgStore{op: op, batchSize: cfg.BatchSize}
	if res.batchSize <= 0 {
		res.batchSize = 10_000
	}
	missing, err := res.missingTables(ctx)
	if err != nil {
		_ = op.Close()
		return nil, err
	}
	if len(missing) == 0 {
		return res, nil
	}

	slog.Info("Creating taxonomy schema",
		"database", cfg.Database, "tables", missing)
	if err = res.migrate(ctx); err != nil {
		_ = op.Close()
		return nil, err
	}
	return res, nil
}

func (s *pgStore) missingTables(ctx context.Context) ([]string, error) {
	var res []string
	for _, v := range schema.AllModels() {
		ok, err := s.op.TableExists(ctx, v.TableName())
		if err != nil {
			return nil, err
		}
		if !ok {
			res = append(res, v.TableName())
		}
	}
	return res, nil
}

// Reset drops all taxonomy tables from the database, so the next Open
// starts from an empty schema.
func Reset(ctx context.Context, cfg *config.DatabaseConfig) error {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return err
	}
	defer op.Close()

	var tables []string
	for _, v := range schema.AllModels() {
		tables = append(tables, v.TableName())
	}
	slog.Info("Dropping taxonomy tables", "tables", tables)
	return op.DropTables(ctx, tables...)
}

func (s *pgStore) migrate(ctx context.Context) error {
	sqlDB := stdlib.OpenDBFromPool(s.op.Pool())
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return MigrateError(err)
	}
	if err = schema.Migrate(gormDB); err != nil {
		return MigrateError(err)
	}

	for _, ddl := range schema.IndexDDL() {
		if _, err = s.op.Pool().Exec(ctx, ddl); err != nil {
			return MigrateError(err)
		}
	}
	return nil
}

func (s *pgStore) Close() error {
	if s == nil || s.op == nil {
		return nil
	}
	return s.op.Close()
}

func (s *pgStore) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := s.op.Pool().Query(ctx,
		`SELECT authority, year, entries, columns FROM taxonomies`)
	if err != nil {
		return nil, ReadError(err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var tx schema.Taxonomy
		err = rows.Scan(&tx.Authority, &tx.Year, &tx.Entries, &tx.Columns)
		if err != nil {
			return nil, ReadError(err)
		}
		var cols []string
		if err = s.enc.Decode([]byte(tx.Columns), &cols); err != nil {
			return nil, ReadError(err)
		}
		t, err := taxonomy.NewTable(tx.Authority, tx.Year, cols, nil)
		if err != nil {
			return nil, err
		}
		e := t.Entry()
		e.Entries = tx.Entries
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, ReadError(err)
	}
	return catalog.New(entries)
}

func (s *pgStore) Load(
	ctx context.Context,
	authority string,
	year int,
) (*taxonomy.Table, error) {
	authority = catalog.NormAuthority(authority)
	pool := s.op.Pool()

	var colsJSON string
	err := pool.QueryRow(ctx,
		`SELECT columns FROM taxonomies WHERE authority = $1 AND year = $2`,
		authority, year,
	).Scan(&colsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, taxonomy.TableNotFoundError(authority, year)
	}
	if err != nil {
		return nil, ReadError(err)
	}
	var cols []string
	if err = s.enc.Decode([]byte(colsJSON), &cols); err != nil {
		return nil, ReadError(err)
	}

	rows, err := pool.Query(ctx,
		`SELECT record FROM taxon_records
		 WHERE authority = $1 AND year = $2
		 ORDER BY row_num`,
		authority, year,
	)
	if err != nil {
		return nil, ReadError(err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		var recJSON string
		if err = rows.Scan(&recJSON); err != nil {
			return nil, ReadError(err)
		}
		var rec []string
		if err = s.enc.Decode([]byte(recJSON), &rec); err != nil {
			return nil, ReadError(err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, ReadError(err)
	}

	return taxonomy.NewTable(authority, year, cols, records)
}

// SaveTable replaces the table in one transaction. Records are sent
// in batches with COPY.
func (s *pgStore) SaveTable(ctx context.Context, t *taxonomy.Table) error {
	key := t.Key()
	cols, err := s.enc.Encode(t.Columns())
	if err != nil {
		return WriteError(key, err)
	}

	tx, err := s.op.Pool().Begin(ctx)
	if err != nil {
		return WriteError(key, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stmts := []struct {
		q    string
		args []any
	}{
		{`DELETE FROM taxon_records WHERE authority = $1 AND year = $2`,
			[]any{key.Authority, key.Year}},
		{`DELETE FROM taxonomies WHERE authority = $1 AND year = $2`,
			[]any{key.Authority, key.Year}},
		{`INSERT INTO taxonomies (authority, year, entries, columns, updated_at)
		  VALUES ($1, $2, $3, $4, $5)`,
			[]any{key.Authority, key.Year, t.Len(), string(cols), time.Now()}},
	}
	for _, v := range stmts {
		if _, err = tx.Exec(ctx, v.q, v.args...); err != nil {
			return WriteError(key, err)
		}
	}

	sciNames, _ := t.Column(sciNameCol)
	columns := []string{
		"id", "authority", "year", "row_num", "scientific_name", "record",
	}
	for i := 0; i < t.Len(); i += s.batchSize {
		end := min(i+s.batchSize, t.Len())

		rows := make([][]any, 0, end-i)
		for j := i; j < end; j++ {
			rec, err := s.enc.Encode(t.Row(j))
			if err != nil {
				return WriteError(key, err)
			}
			var sciName string
			if sciNames != nil {
				sciName = sciNames[j]
			}
			rows = append(rows, []any{
				RecordID(key, j),
				key.Authority,
				key.Year,
				j,
				sciName,
				string(rec),
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"taxon_records"},
			columns,
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return WriteError(key, fmt.Errorf("copy from: %w", err))
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return WriteError(key, err)
	}
	slog.Debug("Taxonomy table saved to PostgreSQL",
		"authority", key.Authority, "year", key.Year, "rows", t.Len())
	return nil
}

// RecordID returns UUID v5 of a row of a table.
func RecordID(key catalog.Key, rowNum int) string {
	s := key.Authority + "|" + strconv.Itoa(key.Year) + "|" +
		strconv.Itoa(rowNum)
	return gnuuid.New(s).String()
}
