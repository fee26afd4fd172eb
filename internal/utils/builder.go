package querybuilder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInsert is returned by Build when insert rows do not match the
// insert columns.
var ErrInvalidInsert = errors.New("querybuilder: insert rows do not match columns")

// QueryBuilder assembles SELECT and INSERT statements with "?" placeholders.
// Callers rebind to the driver's placeholder style.
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder
	OrderBy(col string, asc bool) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder
	OnConflict(cols ...string) QueryBuilder
	DoNothing() QueryBuilder

	Build() (string, []interface{}, error)
}

type queryBuilder struct {
	schema     string
	table      string
	cols       []string
	conditions []Condition
	values     InsertRows
	orderBy    []string
	onConflict []string
	doNothing  bool
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

// Values appends one row. Call it once per row for multi-row inserts.
func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

func (q *queryBuilder) DoNothing() QueryBuilder {
	q.doNothing = true
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{
		clause: clause,
		args:   args,
	})
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	direction := "ASC"
	if !asc {
		direction = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, direction))
	return q
}

func (q *queryBuilder) Build() (string, []interface{}, error) {
	if len(q.values) > 0 {
		return q.buildInsert()
	}
	query, args := q.buildSelect()
	return query, args, nil
}

func (q *queryBuilder) qualified(table string) string {
	if q.schema == "" {
		return table
	}
	return q.schema + "." + table
}

// buildCondition joins every condition with AND.
func buildCondition(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0, len(conditions))
	args := make([]interface{}, 0)
	for _, cond := range conditions {
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}
	return strings.Join(parts, " AND "), args
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualified(q.table))

	var args []interface{}
	if len(q.conditions) > 0 {
		condition, condArgs := buildCondition(q.conditions)
		query += fmt.Sprintf(" WHERE %s", condition)
		args = append(args, condArgs...)
	}

	if len(q.orderBy) > 0 {
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(q.orderBy, ", "))
	}

	return query, args
}

func (q *queryBuilder) buildInsert() (string, []interface{}, error) {
	width := len(q.cols)
	if width == 0 {
		return "", nil, ErrInvalidInsert
	}

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"
	tuples := make([]string, len(q.values))
	args := make([]interface{}, 0, len(q.values)*width)
	for i, row := range q.values {
		if len(row) != width {
			return "", nil, fmt.Errorf("%w: row %d has %d values for %d columns", ErrInvalidInsert, i, len(row), width)
		}
		tuples[i] = placeholders
		args = append(args, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualified(q.table), strings.Join(q.cols, ", "), strings.Join(tuples, ", "))

	if len(q.onConflict) > 0 && q.doNothing {
		query += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(q.onConflict, ", "))
	}
	return query, args, nil
}
