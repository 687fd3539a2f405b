// Package store persists normalized member records in PostgreSQL.
//
// The members table is append-only: submissions are inserted exactly once and
// never updated or deleted here. Inserts are single parameterized statements,
// so no transaction or locking discipline is needed beyond what the database
// guarantees for one statement.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zugloev/tagregiszter/internal/intake"
)

// DBTX is the subset of pgx operations the store needs.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

// SubmitMeta carries the audit attributes recorded next to a submission.
type SubmitMeta struct {
	IP        string
	UserAgent string
}

// Members provides access to the members table.
type Members struct {
	db DBTX
}

// NewMembers creates a store backed by the given connection.
func NewMembers(db DBTX) *Members {
	return &Members{db: db}
}

// insertSQL binds the form columns plus ip and user_agent. created_at is
// assigned by the database default.
var insertSQL = func() string {
	columns := append([]string{"ip", "user_agent"}, intake.Columns...)
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO members (%s) VALUES (%s)",
		strings.Join(columns, ","),
		strings.Join(placeholders, ","),
	)
}()

// Insert stores one normalized record. Values are always bound as parameters;
// the free-text fields can contain arbitrary Unicode including quotes.
func (m *Members) Insert(ctx context.Context, rec intake.MemberRecord, meta SubmitMeta) error {
	args := append([]any{meta.IP, meta.UserAgent}, rec.Values()...)
	if _, err := m.db.Exec(ctx, insertSQL, args...); err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// ExportAll returns every stored row, newest first, together with the column
// names in result order. created_at is the sole ordering key.
func (m *Members) ExportAll(ctx context.Context) ([]string, [][]any, error) {
	rows, err := m.db.Query(ctx, "SELECT * FROM members ORDER BY created_at DESC")
	if err != nil {
		return nil, nil, fmt.Errorf("select members: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var out [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("read member row: %w", err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan members: %w", err)
	}
	return columns, out, nil
}

// Names returns the stored member names in insertion order. Blank names are
// skipped, duplicates are kept; the caller decides how to present them.
func (m *Members) Names(ctx context.Context) ([]string, error) {
	rows, err := m.db.Query(ctx, "SELECT nev FROM members WHERE nev <> '' ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("select member names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("read member name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan member names: %w", err)
	}
	return names, nil
}
