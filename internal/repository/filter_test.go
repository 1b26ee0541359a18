package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kitucode/banking-service/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestFilterBuilderEmpty(t *testing.T) {
	f := &filterBuilder{}
	assert.Equal(t, "", f.whereClause())
	assert.Empty(t, f.args)
}

func TestFilterBuilderSkipsUnsetFields(t *testing.T) {
	f := &filterBuilder{}
	f.eqString("first_name", "")
	f.eqInt64("account_id", 0)
	f.dateRange("created_on", nil, nil)
	assert.Equal(t, "", f.whereClause())
}

func TestFilterBuilderConjunction(t *testing.T) {
	f := &filterBuilder{}
	f.eqString("iban", "DTKEKENA4651234567890")
	f.eqString("bic_swift", "DTKEKENA465")
	f.eqInt64("account_id", 7)

	assert.Equal(t, " WHERE iban = $1 AND bic_swift = $2 AND account_id = $3", f.whereClause())
	assert.Equal(t, []interface{}{"DTKEKENA4651234567890", "DTKEKENA465", int64(7)}, f.args)
}

func TestFilterBuilderDateRange(t *testing.T) {
	start := models.DateOf(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	end := models.DateOf(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))

	f := &filterBuilder{}
	f.dateRange("created_on", &start, &end)
	assert.Equal(t, " WHERE created_on BETWEEN $1 AND $2", f.whereClause())

	f = &filterBuilder{}
	f.dateRange("created_on", &start, nil)
	assert.Equal(t, " WHERE created_on >= $1", f.whereClause())

	f = &filterBuilder{}
	f.dateRange("created_on", nil, &end)
	assert.Equal(t, " WHERE created_on <= $1", f.whereClause())
}

func TestFilterBuilderBindContinuesNumbering(t *testing.T) {
	f := &filterBuilder{}
	f.eqString("first_name", "Brian")
	f.eqString("last_name", "Kitunda")

	limit := f.bind(20)
	offset := f.bind(40)

	assert.Equal(t, "$3", limit)
	assert.Equal(t, "$4", offset)
	assert.Len(t, f.args, 4)

	query := fmt.Sprintf("SELECT * FROM tbl_customers%s LIMIT %s OFFSET %s", f.whereClause(), limit, offset)
	assert.Equal(t, "SELECT * FROM tbl_customers WHERE first_name = $1 AND last_name = $2 LIMIT $3 OFFSET $4", query)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("failed to create account: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}
