package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateTime_JSON(t *testing.T) {
	dt := NewLocalDateTime(time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), 12, 30)

	raw, err := json.Marshal(dt)
	require.NoError(t, err)
	assert.Equal(t, `"2024-08-31T12:30:00"`, string(raw))

	var back LocalDateTime
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, dt.Equal(back.Time))

	raw, err = json.Marshal(LocalDateTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	assert.Error(t, json.Unmarshal([]byte(`"31/08/2024 12:30"`), &back))
}

func TestLocalDateTime_ScanDropsZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	var dt LocalDateTime
	require.NoError(t, dt.Scan(time.Date(2024, 8, 31, 12, 30, 0, 0, loc)))
	assert.Equal(t, "2024-08-31T12:30:00", dt.Format(LocalDateTimeLayout))

	require.NoError(t, dt.Scan(nil))
	assert.True(t, dt.IsZero())
	assert.Error(t, dt.Scan("2024-08-31"))
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2001-05-17"`), &d))
	assert.Equal(t, 2001, d.Year())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2001-05-17"`, string(raw))

	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
