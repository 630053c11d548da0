// Package querysql compiles filter predicate sets into parameterized SQLite
// queries, letting the SQLite store evaluate a filter without loading every
// record.
//
// The compiled query must select exactly the records filter.FilterAll would,
// in the same (insertion) order.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/stringvault/internal/filter"
)

// SQLCompiler compiles filter.Set values to parameterized SQL for SQLite.
//
// CRITICAL: ALL queries include ORDER BY seq for insertion-order results.
// CRITICAL: All values are parameterized (never interpolated).
type SQLCompiler struct {
	// Table is the source table name.
	Table string

	// Columns are selected in order.
	Columns []string
}

// NewSQLCompiler creates a compiler selecting columns from table.
func NewSQLCompiler(table string, columns ...string) *SQLCompiler {
	return &SQLCompiler{
		Table:   table,
		Columns: columns,
	}
}

// Compile converts a filter set to a SELECT statement.
// Returns (sql, params, error) tuple.
//
// An empty set compiles to an unfiltered SELECT.
func (c *SQLCompiler) Compile(s filter.Set) (string, []any, error) {
	if c.Table == "" {
		return "", nil, fmt.Errorf("cannot compile query without a table")
	}
	if len(c.Columns) == 0 {
		return "", nil, fmt.Errorf("cannot compile query without columns")
	}

	whereSQL, params := c.CompileWhere(s)

	var whereClause string
	if whereSQL != "" {
		whereClause = " WHERE " + whereSQL
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		strings.Join(c.Columns, ", "),
		c.Table,
		whereClause,
		c.stableOrderKey())

	return sql, params, nil
}

// CompileWhere compiles the predicates of s to a conjunction.
// Returns an empty string when s imposes no constraint.
//
// Predicates are emitted in a fixed order for deterministic output.
func (c *SQLCompiler) CompileWhere(s filter.Set) (string, []any) {
	var parts []string
	var params []any

	if s.IsPalindrome != nil {
		parts = append(parts, "is_palindrome = ?")
		params = append(params, boolParam(*s.IsPalindrome))
	}
	if s.MinLength != nil {
		parts = append(parts, "length >= ?")
		params = append(params, int64(*s.MinLength))
	}
	if s.MaxLength != nil {
		parts = append(parts, "length <= ?")
		params = append(params, int64(*s.MaxLength))
	}
	if s.WordCount != nil {
		parts = append(parts, "word_count = ?")
		params = append(params, int64(*s.WordCount))
	}
	// Every string contains the empty string, so it adds no constraint.
	if s.ContainsCharacter != nil && *s.ContainsCharacter != "" {
		parts = append(parts, "instr(value, ?) > 0")
		params = append(params, *s.ContainsCharacter)
	}

	return strings.Join(parts, " AND "), params
}

// stableOrderKey returns the ORDER BY key.
// seq is an AUTOINCREMENT primary key, so it is unique and follows insertion.
func (c *SQLCompiler) stableOrderKey() string {
	return "seq ASC"
}

// boolParam stores booleans the way the schema does (INTEGER 0/1).
func boolParam(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
