package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dropship-store/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface interface untuk abstraction database
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// DB wrapper struct
type DB struct {
	pool *pgxpool.Pool
}

func (db *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return db.pool.Query(ctx, sql, args...)
}

func (db *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return db.pool.QueryRow(ctx, sql, args...)
}

func (db *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return db.pool.Exec(ctx, sql, args...)
}

func (db *DB) Begin(ctx context.Context) (pgx.Tx, error) {
	return db.pool.Begin(ctx)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	db.pool.Close()
}

// InitDB opens the connection pool described by DATABASE_URL
func InitDB(ctx context.Context, config utils.DatabaseConfig) (PgxIface, error) {
	poolConfig, err := pgxpool.ParseConfig(config.URL)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = min(5, config.MaxConns)
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	return &DB{pool: pool}, nil
}

// querier is satisfied by both the pool and an open pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type pgTxKey struct{}

// PostgresStore keeps every collection as a table of JSONB documents.
type PostgresStore struct {
	db PgxIface
}

func NewPostgresStore(db PgxIface) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Driver() string { return "postgres" }

func (s *PostgresStore) conn(ctx context.Context) (querier, bool) {
	if tx, ok := ctx.Value(pgTxKey{}).(pgx.Tx); ok {
		return tx, true
	}
	return s.db, false
}

func (s *PostgresStore) Collection(name string) Collection {
	if err := checkIdentifier("collection", name); err != nil {
		panic(err)
	}
	return &pgCollection{store: s, table: name}
}

func (s *PostgresStore) CreateCollection(ctx context.Context, name string) error {
	if err := checkIdentifier("collection", name); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, name)

	q, _ := s.conn(ctx)
	if _, err := q.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(pgTxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(context.WithValue(ctx, pgTxKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close(_ context.Context) error {
	s.db.Close()
	return nil
}

type pgCollection struct {
	store *PostgresStore
	table string
}

func (c *pgCollection) Insert(ctx context.Context, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}

	q, _ := c.store.conn(ctx)
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, c.table)
	if _, err := q.Exec(ctx, query, id, string(body)); err != nil {
		return c.wrap("insert", id, err)
	}
	return nil
}

func (c *pgCollection) FindByID(ctx context.Context, id string, out any) error {
	q, inTx := c.store.conn(ctx)
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	if inTx {
		query += " FOR UPDATE"
	}

	var raw []byte
	if err := q.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return c.wrap("find", id, err)
	}
	return json.Unmarshal(raw, out)
}

func (c *pgCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	where, args, err := c.where(Query{Filter: filter})
	if err != nil {
		return err
	}

	q, inTx := c.store.conn(ctx)
	query := fmt.Sprintf(`SELECT doc FROM %s%s ORDER BY created_at LIMIT 1`, c.table, where)
	if inTx {
		query += " FOR UPDATE"
	}

	var raw []byte
	if err := q.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return c.wrap("find one", "", err)
	}
	return json.Unmarshal(raw, out)
}

func (c *pgCollection) Find(ctx context.Context, qry Query, out any) error {
	where, args, err := c.where(qry)
	if err != nil {
		return err
	}
	order, err := c.orderBy(qry)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`SELECT doc FROM %s%s%s`, c.table, where, order)
	if qry.Limit > 0 {
		args = append(args, qry.Limit, qry.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	q, _ := c.store.conn(ctx)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return c.wrap("find", "", err)
	}
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return c.wrap("scan", "", err)
		}
		docs = append(docs, raw)
	}
	if err := rows.Err(); err != nil {
		return c.wrap("iterate", "", err)
	}

	all, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(all, out)
}

func (c *pgCollection) Count(ctx context.Context, qry Query) (int64, error) {
	where, args, err := c.where(qry)
	if err != nil {
		return 0, err
	}

	q, _ := c.store.conn(ctx)
	var count int64
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, c.table, where), args...).Scan(&count); err != nil {
		return 0, c.wrap("count", "", err)
	}
	return count, nil
}

func (c *pgCollection) Replace(ctx context.Context, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}

	q, _ := c.store.conn(ctx)
	query := fmt.Sprintf(`UPDATE %s SET doc = $2::jsonb, updated_at = NOW() WHERE id = $1`, c.table)
	result, err := q.Exec(ctx, query, id, string(body))
	if err != nil {
		return c.wrap("replace", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *pgCollection) Delete(ctx context.Context, id string) error {
	q, _ := c.store.conn(ctx)
	result, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table), id)
	if err != nil {
		return c.wrap("delete", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *pgCollection) EnsureIndex(ctx context.Context, field string, unique bool) error {
	if err := checkField(field); err != nil {
		return err
	}

	kind, suffix := "INDEX", "idx"
	if unique {
		kind, suffix = "UNIQUE INDEX", "key"
	}
	name := fmt.Sprintf("%s_%s_%s", c.table, strings.ToLower(field), suffix)
	query := fmt.Sprintf(`CREATE %s IF NOT EXISTS %s ON %s ((doc->>'%s'))`, kind, name, c.table, field)

	q, _ := c.store.conn(ctx)
	if _, err := q.Exec(ctx, query); err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

func (c *pgCollection) where(qry Query) (string, []any, error) {
	var conds []string
	var args []any

	if len(qry.Filter) > 0 {
		body, err := json.Marshal(qry.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("encode filter: %w", err)
		}
		args = append(args, string(body))
		conds = append(conds, fmt.Sprintf("doc @> $%d::jsonb", len(args)))
	}

	if qry.hasSearch() {
		args = append(args, "%"+escapeLike(strings.TrimSpace(qry.Search.Term))+"%")
		ors := make([]string, 0, len(qry.Search.Fields))
		for _, field := range qry.Search.Fields {
			if err := checkField(field); err != nil {
				return "", nil, err
			}
			ors = append(ors, fmt.Sprintf("doc->>'%s' ILIKE $%d", field, len(args)))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if qry.NonEmpty != "" {
		if err := checkField(qry.NonEmpty); err != nil {
			return "", nil, err
		}
		conds = append(conds, fmt.Sprintf("jsonb_typeof(doc->'%[1]s') = 'array' AND doc->'%[1]s' <> '[]'::jsonb", qry.NonEmpty))
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (c *pgCollection) orderBy(qry Query) (string, error) {
	field, desc := qry.sortField()
	dir := "ASC"
	if desc {
		dir = "DESC"
	}

	var column string
	switch field {
	case "createdAt":
		column = "created_at"
	case "updatedAt":
		column = "updated_at"
	default:
		if err := checkField(field); err != nil {
			return "", err
		}
		column = fmt.Sprintf("doc->'%s'", field)
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", column, dir, dir), nil
}

func (c *pgCollection) wrap(op, id string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s %s: %w", op, c.table, ErrDuplicate)
	}
	if id != "" {
		return fmt.Errorf("%s %s %s: %w", op, c.table, id, err)
	}
	return fmt.Errorf("%s %s: %w", op, c.table, err)
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
