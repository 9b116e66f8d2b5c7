package database

import (
	"strconv"
	"strings"
	"time"
)

// Dialect describes how a backend binds list-query arguments
type Dialect struct {
	Placeholder func(n int) string
	TimeArg     func(t time.Time) any
}

var (
	// PostgresDialect numbers placeholders and binds timestamps as-is
	PostgresDialect = Dialect{
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		TimeArg:     func(t time.Time) any { return t },
	}

	// SQLiteDialect binds timestamps as unix microseconds to match its INTEGER columns
	SQLiteDialect = Dialect{
		Placeholder: func(int) string { return "?" },
		TimeArg:     func(t time.Time) any { return t.UTC().UnixMicro() },
	}
)

// ListQuery assembles the filtered, newest-first reads shared by the
// activity and event logs of every SQL backend
type ListQuery struct {
	dialect Dialect
	sql     strings.Builder
	args    []any
	where   bool
}

// NewListQuery starts a query from a SELECT ... FROM clause
func NewListQuery(d Dialect, selectFrom string) *ListQuery {
	q := &ListQuery{dialect: d}
	q.sql.WriteString(selectFrom)
	return q
}

// And appends "column op <placeholder>" bound to arg
func (q *ListQuery) And(column, op string, arg any) *ListQuery {
	if q.where {
		q.sql.WriteString(" AND ")
	} else {
		q.sql.WriteString(" WHERE ")
		q.where = true
	}
	q.args = append(q.args, arg)
	q.sql.WriteString(column + " " + op + " " + q.dialect.Placeholder(len(q.args)))
	return q
}

// Window restricts created_at to [since, until)
func (q *ListQuery) Window(since, until *time.Time) *ListQuery {
	if since != nil {
		q.And("created_at", ">=", q.dialect.TimeArg(*since))
	}
	if until != nil {
		q.And("created_at", "<", q.dialect.TimeArg(*until))
	}
	return q
}

// Build orders newest first and applies limit when positive
func (q *ListQuery) Build(limit int) (string, []any) {
	q.sql.WriteString(" ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		q.args = append(q.args, limit)
		q.sql.WriteString(" LIMIT " + q.dialect.Placeholder(len(q.args)))
	}
	return q.sql.String(), q.args
}
