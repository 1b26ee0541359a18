package repository

import (
	"fmt"
	"strings"

	"github.com/kitucode/banking-service/internal/models"
)

// filterBuilder accumulates a sparse conjunction of optional constraints
// and renders it as a WHERE clause with positional arguments. Fields left
// unset are simply never added, so an empty builder matches everything.
type filterBuilder struct {
	conds []string
	args  []interface{}
}

// bind appends a query argument and returns its placeholder.
func (f *filterBuilder) bind(value interface{}) string {
	f.args = append(f.args, value)
	return fmt.Sprintf("$%d", len(f.args))
}

// eqString adds an exact, case-sensitive equality constraint unless the
// value is empty.
func (f *filterBuilder) eqString(column, value string) {
	if value == "" {
		return
	}
	f.conds = append(f.conds, fmt.Sprintf("%s = %s", column, f.bind(value)))
}

// eqInt64 adds an equality constraint unless the value is zero.
func (f *filterBuilder) eqInt64(column string, value int64) {
	if value == 0 {
		return
	}
	f.conds = append(f.conds, fmt.Sprintf("%s = %s", column, f.bind(value)))
}

// dateRange adds the date constraint for the given optional bounds:
// both set is an inclusive range, a single bound is a one-sided
// comparison, neither leaves the column unconstrained.
func (f *filterBuilder) dateRange(column string, start, end *models.Date) {
	switch {
	case start != nil && end != nil:
		f.conds = append(f.conds, fmt.Sprintf("%s BETWEEN %s AND %s",
			column, f.bind(start.Time), f.bind(end.Time)))
	case start != nil:
		f.conds = append(f.conds, fmt.Sprintf("%s >= %s", column, f.bind(start.Time)))
	case end != nil:
		f.conds = append(f.conds, fmt.Sprintf("%s <= %s", column, f.bind(end.Time)))
	}
}

// whereClause renders the accumulated constraints, or an empty string
// when none were added.
func (f *filterBuilder) whereClause() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}
