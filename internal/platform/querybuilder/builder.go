package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and binds values to sequential $n placeholders.
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteByte('$')
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies expr, binding one value per '?'. Surplus markers stay literal.
func (w *writer) expr(expr string, values []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *writer) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.buf.WriteString(" AND ")
		}
		c.writeSQL(w)
	}
}

func (w *writer) clause(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.buf.WriteString(" ")
	w.buf.WriteString(keyword)
	w.buf.WriteString(" ")
	w.buf.WriteString(strings.Join(parts, ", "))
}

func (w *writer) number(keyword string, n int) {
	if n <= 0 {
		return
	}
	w.buf.WriteString(" ")
	w.buf.WriteString(keyword)
	w.buf.WriteString(" ")
	w.buf.WriteString(strconv.Itoa(n))
}

func (w *writer) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}

type Condition interface {
	writeSQL(w *writer)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func (c compareCondition) writeSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" ")
	w.buf.WriteString(c.op)
	w.buf.WriteString(" ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

// Lte renders column <= value.
func Lte(column string, value any) Condition {
	return compareCondition{column: column, op: "<=", value: value}
}

// ILike renders a case-insensitive substring match on column.
func ILike(column, needle string) Condition {
	return compareCondition{column: column, op: "ILIKE", value: "%" + escapeLike(needle) + "%"}
}

type setCondition struct {
	column  string
	values  []any
	negated bool
}

// In matches nothing when values is empty.
func In(column string, values []any) Condition {
	return setCondition{column: column, values: values}
}

// NotIn matches every row when values is empty.
func NotIn(column string, values []any) Condition {
	return setCondition{column: column, values: values, negated: true}
}

func (c setCondition) writeSQL(w *writer) {
	if len(c.values) == 0 {
		if c.negated {
			w.buf.WriteString("1=1")
		} else {
			w.buf.WriteString("1=0")
		}
		return
	}

	w.buf.WriteString(c.column)
	if c.negated {
		w.buf.WriteString(" NOT")
	}
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type isNullCondition string

func IsNull(column string) Condition {
	return isNullCondition(column)
}

func (c isNullCondition) writeSQL(w *writer) {
	w.buf.WriteString(string(c))
	w.buf.WriteString(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds raw SQL using '?' markers for its arguments.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) writeSQL(w *writer) {
	w.expr(c.expr, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
	offset  int
	suffix  string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
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

// Suffix appends raw SQL such as a locking clause after LIMIT/OFFSET.
func (b *SelectBuilder) Suffix(sql string) *SelectBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.buf.WriteString("SELECT ")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)
	w.clause("GROUP BY", b.groupBy)
	w.clause("ORDER BY", b.orderBy)
	w.number("LIMIT", b.limit)
	w.number("OFFSET", b.offset)
	if b.suffix != "" {
		w.buf.WriteString(" ")
		w.buf.WriteString(b.suffix)
	}

	return w.result()
}

// Conflict describes an ON CONFLICT clause. Without Update or Touch columns
// the conflicting row is left as is.
type Conflict struct {
	Target []string
	// Predicate selects a partial unique index, e.g. "match_id IS NULL".
	Predicate string
	// Update columns take the value from the rejected row.
	Update []string
	// Touch columns are set to NOW().
	Touch []string
}

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	conflict  *Conflict
	returning []string
	err       error
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) OnConflict(conflict Conflict) *InsertBuilder {
	b.conflict = &conflict
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w writer
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(value)
		}
		w.buf.WriteString(")")
	}

	if b.conflict != nil {
		if err := writeConflict(&w, *b.conflict); err != nil {
			return "", nil, err
		}
	}
	w.clause("RETURNING", b.returning)

	return w.result()
}

func writeConflict(w *writer, c Conflict) error {
	if len(c.Target) == 0 {
		return fmt.Errorf("conflict target is required")
	}

	w.buf.WriteString(" ON CONFLICT (")
	w.buf.WriteString(strings.Join(c.Target, ", "))
	w.buf.WriteString(")")
	if c.Predicate != "" {
		w.buf.WriteString(" WHERE ")
		w.buf.WriteString(c.Predicate)
	}

	sets := make([]string, 0, len(c.Update)+len(c.Touch))
	for _, col := range c.Update {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	for _, col := range c.Touch {
		sets = append(sets, col+" = NOW()")
	}
	if len(sets) == 0 {
		w.buf.WriteString(" DO NOTHING")
		return nil
	}
	w.buf.WriteString(" DO UPDATE SET ")
	w.buf.WriteString(strings.Join(sets, ", "))
	return nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires at least one condition")
	}

	var w writer
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	w.where(b.where)

	return w.result()
}

type assignment struct {
	column string
	value  any
	expr   *exprCondition
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns raw SQL, binding args to its '?' markers.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: &exprCondition{expr: expr, args: args}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional update.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("update requires at least one condition")
	}

	var w writer
	w.buf.WriteString("UPDATE ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(s.column)
		w.buf.WriteString(" = ")
		if s.expr != nil {
			s.expr.writeSQL(&w)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)

	return w.result()
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(value)
}
