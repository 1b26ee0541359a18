package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-03-15T10:00:00Z")
	assert.Error(t, err)
}

func TestDateOfTruncates(t *testing.T) {
	d := DateOf(time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2024-03-15", d.String())
	assert.Equal(t, 0, d.Hour())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-15"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-15", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan("2024-03-15"))
}

func TestParseCardType(t *testing.T) {
	ct, err := ParseCardType("VIRTUAL")
	require.NoError(t, err)
	assert.Equal(t, CardTypeVirtual, ct)

	ct, err = ParseCardType("PHYSICAL")
	require.NoError(t, err)
	assert.Equal(t, CardTypePhysical, ct)

	_, err = ParseCardType("virtual")
	assert.Error(t, err)

	_, err = ParseCardType("DEBIT")
	assert.Error(t, err)
}
