package querybuilder

// InsertRows holds the rows of a multi-row insert.
type InsertRows [][]interface{}

// Condition is one WHERE clause with its placeholder arguments.
type Condition struct {
	clause string
	args   []interface{}
}
