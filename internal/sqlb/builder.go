// Package sqlb builds the handful of parameterized statements the repositories need.
// Placeholders are '?'; gorm rewrites them for the target dialect.
package sqlb

import (
	"strings"
)

// Field is one column/value pair of a patch or predicate.
type Field struct {
	Column string
	Value  any
}

// Raw is inlined into the statement as-is instead of being bound.
type Raw string

// Builder targets one table and returns a fixed column list.
type Builder struct {
	table   string
	columns []string
}

func New(table string, columns ...string) Builder {
	return Builder{table: table, columns: columns}
}

func (b Builder) Table() string { return b.table }

func (b Builder) Columns() []string { return b.columns }

// Insert renders INSERT ... RETURNING for fields.
func (b Builder) Insert(fields []Field) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(fields))
	cols := make([]string, 0, len(fields))
	vals := make([]string, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, f.Column)
		vals = append(vals, bind(f.Value, &args))
	}
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	if len(fields) == 0 {
		sb.WriteString(" DEFAULT VALUES")
	} else {
		sb.WriteString(" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(vals, ", ") + ")")
	}
	b.returning(&sb)
	return sb.String(), args
}

// Select renders SELECT <columns> with an AND-ed equality filter. An order term
// prefixed with '!' sorts descending.
func (b Builder) Select(where []Field, orderBy ...string) (string, []any) {
	var sb strings.Builder
	var args []any
	sb.WriteString("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	b.where(&sb, where, &args)
	if len(orderBy) > 0 {
		terms := make([]string, 0, len(orderBy))
		for _, o := range orderBy {
			if strings.HasPrefix(o, "!") {
				terms = append(terms, strings.TrimPrefix(o, "!")+" DESC")
			} else {
				terms = append(terms, o)
			}
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}
	return sb.String(), args
}

// Update renders UPDATE ... SET ... WHERE ... RETURNING. fields must not be empty.
func (b Builder) Update(fields, where []Field) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(fields)+len(where))
	sets := make([]string, 0, len(fields))
	for _, f := range fields {
		sets = append(sets, f.Column+" = "+bind(f.Value, &args))
	}
	sb.WriteString("UPDATE " + b.table + " SET " + strings.Join(sets, ", "))
	b.where(&sb, where, &args)
	b.returning(&sb)
	return sb.String(), args
}

// Delete renders DELETE ... WHERE ... RETURNING.
func (b Builder) Delete(where []Field) (string, []any) {
	var sb strings.Builder
	var args []any
	sb.WriteString("DELETE FROM " + b.table)
	b.where(&sb, where, &args)
	b.returning(&sb)
	return sb.String(), args
}

func (b Builder) where(sb *strings.Builder, where []Field, args *[]any) {
	if len(where) == 0 {
		return
	}
	preds := make([]string, 0, len(where))
	for _, f := range where {
		preds = append(preds, f.Column+" = "+bind(f.Value, args))
	}
	sb.WriteString(" WHERE " + strings.Join(preds, " AND "))
}

func (b Builder) returning(sb *strings.Builder) {
	if len(b.columns) > 0 {
		sb.WriteString(" RETURNING " + strings.Join(b.columns, ", "))
	}
}

func bind(v any, args *[]any) string {
	if raw, ok := v.(Raw); ok {
		return string(raw)
	}
	*args = append(*args, v)
	return "?"
}
