package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyScanNormalizesDriverTime(t *testing.T) {
	// Postgres hands date columns back as midnight time.Time values
	var d DateOnly
	ts := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, d.Scan(ts))
	assert.Equal(t, DateOnly("2026-09-05"), d)
}

func TestDateOnlyScanAcceptsTextValues(t *testing.T) {
	var d DateOnly
	require.NoError(t, d.Scan("2026-09-05"))
	assert.Equal(t, DateOnly("2026-09-05"), d)

	require.NoError(t, d.Scan([]byte("2026-12-31")))
	assert.Equal(t, DateOnly("2026-12-31"), d)

	require.NoError(t, d.Scan(nil))
	assert.Equal(t, DateOnly(""), d)
}

func TestDateOnlyScanRejectsUnexpectedTypes(t *testing.T) {
	var d DateOnly
	assert.Error(t, d.Scan(42))
}

func TestDateOnlyValueRoundTrip(t *testing.T) {
	v, err := DateOnly("2026-09-05").Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-05", v)
}

func TestVacationDatesMarshalWithoutTimeComponent(t *testing.T) {
	var v Vacation
	require.NoError(t, v.StartDate.Scan(time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, v.EndDate.Scan(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)))

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"startDate":"2026-09-05"`)
	assert.Contains(t, string(data), `"endDate":"2026-09-12"`)
	assert.NotContains(t, string(data), "T00:00:00")
}
