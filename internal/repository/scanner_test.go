package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateString_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want DateString
	}{
		{"time", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "2024-03-09"},
		{"plain string", "2024-03-09", "2024-03-09"},
		{"timestamp string", "2024-03-09T00:00:00Z", "2024-03-09"},
		{"bytes", []byte("2024-03-09 00:00:00"), "2024-03-09"},
		{"not a date", "someday", "someday"},
		{"null", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateString
			require.NoError(t, d.Scan(tt.src))
			assert.Equal(t, tt.want, d)
		})
	}

	var d DateString
	assert.Error(t, d.Scan(42))
}

type fakeScanner struct {
	values []interface{}
	err    error
}

func (f fakeScanner) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	*dest[0].(*int64) = f.values[0].(int64)
	*dest[1].(*string) = f.values[1].(string)
	return dest[2].(*DateString).Scan(f.values[2])
}

func TestScanTaskSummary(t *testing.T) {
	summary, err := ScanTaskSummary(fakeScanner{values: []interface{}{int64(4), "Apollo", "2024-05-01"}})
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.ID)
	assert.Equal(t, "Apollo", summary.ProjectName)
	assert.Equal(t, "2024-05-01", summary.TaskDate)

	_, err = ScanTaskSummary(fakeScanner{err: errors.New("boom")})
	assert.Error(t, err)
}
