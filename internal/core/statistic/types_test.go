package statistic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewActionContext(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	c, err := NewActionContext("CAS", "LOGIN", Day, ts)
	require.NoError(t, err)
	require.Equal(t, "CAS", c.ApplicationCode())
	require.Equal(t, "LOGIN", c.Action())
	require.Equal(t, Day, c.Precision())
	require.Equal(t, ts, c.Timestamp())

	invalid := []struct {
		name      string
		app       string
		action    string
		precision Precision
		ts        time.Time
	}{
		{name: "empty application", app: " ", action: "LOGIN", precision: Day, ts: ts},
		{name: "empty action", app: "CAS", action: "", precision: Day, ts: ts},
		{name: "unknown precision", app: "CAS", action: "LOGIN", precision: Precision(9), ts: ts},
		{name: "zero timestamp", app: "CAS", action: "LOGIN", precision: Day},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewActionContext(tc.app, tc.action, tc.precision, tc.ts)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestKeyFor(t *testing.T) {
	morning, err := NewActionContext("CAS", "LOGIN", Day, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	night, err := NewActionContext("CAS", "LOGIN", Day, time.Date(2024, 3, 1, 23, 10, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Equal(t, KeyFor(morning, time.UTC), KeyFor(night, time.UTC))
	require.Equal(t, BucketKey{
		ApplicationCode: "CAS",
		What:            "LOGIN",
		Precision:       Day,
		When:            time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}, KeyFor(morning, time.UTC))
}

func TestValidateRangeQuery(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	days := NewPrecisionSet(Day)

	require.NoError(t, ValidateRangeQuery(start, end, "CAS", days))
	require.NoError(t, ValidateRangeQuery(start, start, "CAS", days))

	require.ErrorIs(t, ValidateRangeQuery(start, end, "CAS", 0), ErrInvalidArgument)
	require.ErrorIs(t, ValidateRangeQuery(start, end, "", days), ErrInvalidArgument)
	require.ErrorIs(t, ValidateRangeQuery(end, start, "CAS", days), ErrInvalidArgument)
	require.ErrorIs(t, ValidateRangeQuery(time.Time{}, end, "CAS", days), ErrInvalidArgument)
}

func TestValidateComparisonQuery(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateComparisonQuery(d, d, "CAS", NewPrecisionSet(Day)))
	require.NoError(t, ValidateComparisonQuery(d, d.AddDate(0, 0, -1), "CAS", NewPrecisionSet(Hour)))
	require.ErrorIs(t, ValidateComparisonQuery(d, d, "CAS", 0), ErrInvalidArgument)
	require.ErrorIs(t, ValidateComparisonQuery(d, time.Time{}, "CAS", NewPrecisionSet(Day)), ErrInvalidArgument)
}

func TestStoreUnavailableWrapping(t *testing.T) {
	cause := InvalidArgumentf("boom")
	err := StoreUnavailable("increment", cause)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
