// Package querybuilder renders the handful of statement shapes the postgres
// repositories issue. Placeholders are numbered in the order values are bound.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// writer accumulates SQL text and the positional arguments bound into it.
type writer struct {
	sb   strings.Builder
	args []any
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteByte('$')
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

// fragment copies sql, binding one value for each '?'. A '?' with no value
// left is written as is, which keeps jsonb operators like ?| intact.
func (w *writer) fragment(sql string, values []any) {
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && len(values) > 0 {
			w.bind(values[0])
			values = values[1:]
			continue
		}
		w.sb.WriteByte(sql[i])
	}
}

func (w *writer) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		c(w)
	}
}

func (w *writer) done() (string, []any, error) {
	return w.sb.String(), w.args, nil
}

// Condition is one predicate of a WHERE clause; multiple are joined by AND.
type Condition func(w *writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.raw(column, " = ")
		w.bind(value)
	}
}

// Gt is the keyset cursor predicate: rows strictly after value.
func Gt(column string, value any) Condition {
	return func(w *writer) {
		w.raw(column, " > ")
		w.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(w *writer) { w.raw(column, " IS NULL") }
}

// Expr is a raw predicate with '?' placeholders.
func Expr(sql string, values ...any) Condition {
	return func(w *writer) { w.fragment(sql, values) }
}

type SelectBuilder struct {
	columns string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: strings.Join(columns, ", ")}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case b.columns == "":
		return "", nil, errors.New("select: no columns")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select: no table")
	}

	var w writer
	w.raw("SELECT ", b.columns, " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.done()
}

type assignment struct {
	column string
	sql    string
	values []any
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set assigns a bound value to column.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	return b.SetExpr(column, "?", value)
}

// SetExpr assigns a raw expression with '?' placeholders to column.
func (b *UpdateBuilder) SetExpr(column, sql string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, sql: sql, values: values})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// Suffix appends raw SQL after the WHERE clause, e.g. RETURNING.
func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update: no table")
	case len(b.sets) == 0:
		return "", nil, errors.New("update: nothing to set")
	}

	var w writer
	w.raw("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(s.column, " = ")
		w.fragment(s.sql, s.values)
	}
	w.where(b.where)
	if b.suffix != "" {
		w.raw(" ", b.suffix)
	}
	return w.done()
}
