package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errMissingTable   = errors.New("table is required")
	errMissingColumns = errors.New("columns are required")
)

// args accumulates positional ($n) placeholders for Postgres.
type args struct {
	values []any
}

func (a *args) bind(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// expand replaces each '?' in expr with the next positional placeholder.
func (a *args) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' || next >= len(values) {
			out.WriteByte(expr[i])
			continue
		}
		out.WriteString(a.bind(values[next]))
		next++
	}
	return out.String()
}

type Condition interface {
	render(a *args) string
}

type conditionFunc func(a *args) string

func (f conditionFunc) render(a *args) string { return f(a) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(a *args) string {
		return column + " = " + a.bind(value)
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(*args) string {
		return column + " IS NULL"
	})
}

// Expr embeds a raw SQL fragment; '?' marks are bound to values in order.
func Expr(expr string, values ...any) Condition {
	return conditionFunc(func(a *args) string {
		return a.expand(expr, values)
	})
}

func renderWhere(buf *strings.Builder, conditions []Condition, a *args) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(c.render(a))
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
	suffix  string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

// Count builds SELECT COUNT(*) over the same table and filters as b, dropping paging and ordering.
func (b *SelectBuilder) Count() *SelectBuilder {
	return &SelectBuilder{
		columns: []string{"COUNT(*)"},
		table:   b.table,
		where:   append([]Condition(nil), b.where...),
	}
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

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

// Suffix appends a trailing clause such as FOR UPDATE.
func (b *SelectBuilder) Suffix(sql string) *SelectBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select: %w", errMissingColumns)
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select: %w", errMissingTable)
	}

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)
	renderWhere(&buf, b.where, &a)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		buf.WriteString(" OFFSET ")
		buf.WriteString(strconv.Itoa(b.offset))
	}
	if b.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(b.suffix)
	}

	return buf.String(), a.values, nil
}

type InsertBuilder struct {
	table     string
	columns   []string
	values    []any
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append(b.returning, columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert: %w", errMissingTable)
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert: %w", errMissingColumns)
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert: %d values for %d columns", len(b.values), len(b.columns))
	}

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.bind(value))
	}
	buf.WriteString(")")
	if len(b.returning) > 0 {
		buf.WriteString(" RETURNING ")
		buf.WriteString(strings.Join(b.returning, ", "))
	}

	return buf.String(), a.values, nil
}

type assignment struct {
	column string
	value  any
	expr   string
	raw    bool
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression, e.g. SetExpr("version", "version + 1").
func (b *UpdateBuilder) SetExpr(column, expr string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, value: values, raw: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = append(b.returning, columns...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update: %w", errMissingTable)
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update: %w", errMissingColumns)
	}

	var (
		buf strings.Builder
		a   args
	)
	buf.WriteString("UPDATE ")
	buf.WriteString(b.table)
	buf.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.column)
		buf.WriteString(" = ")
		if s.raw {
			values, _ := s.value.([]any)
			buf.WriteString(a.expand(s.expr, values))
			continue
		}
		buf.WriteString(a.bind(s.value))
	}
	renderWhere(&buf, b.where, &a)
	if len(b.returning) > 0 {
		buf.WriteString(" RETURNING ")
		buf.WriteString(strings.Join(b.returning, ", "))
	}

	return buf.String(), a.values, nil
}
