package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

var statisticColumns = []string{"applic_cd", "stat_count", "stat_precision", "stat_name", "stat_date"}

func TestStatisticAdapter_IncrementUpsertsBucket(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewStatisticAdapter(db)
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO com_statistics (applic_cd, stat_name, stat_precision, stat_date, stat_count)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (applic_cd, stat_name, stat_precision, stat_date)
		DO UPDATE SET stat_count = com_statistics.stat_count + 1
	`)).WithArgs("CAS", "LOGIN", "DAY", when).WillReturnResult(sqlmock.NewResult(0, 1))

	err = adapter.Increment(context.Background(), statistic.BucketKey{
		ApplicationCode: "CAS",
		What:            "LOGIN",
		Precision:       statistic.Day,
		When:            when,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_IncrementFailureIsStoreUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewStatisticAdapter(db)
	mock.ExpectExec(regexp.QuoteMeta(queryIncrementStatistic)).
		WillReturnError(errors.New("connection refused"))

	err = adapter.Increment(context.Background(), statistic.BucketKey{
		ApplicationCode: "CAS",
		What:            "LOGIN",
		Precision:       statistic.Hour,
		When:            time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, statistic.ErrStoreUnavailable)
	require.ErrorContains(t, err, "connection refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_IncrementRejectsIncompleteKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewStatisticAdapter(db).Increment(context.Background(), statistic.BucketKey{What: "LOGIN"})
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)
	require.NoError(t, mock.ExpectationsWereMet())
}

func incrementKeys() []statistic.BucketKey {
	return []statistic.BucketKey{
		{ApplicationCode: "CAS", What: "LOGIN", Precision: statistic.Hour, When: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{ApplicationCode: "CAS", What: "LOGIN", Precision: statistic.Day, When: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestStatisticAdapter_IncrementAllCommitsEveryBucket(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	keys := incrementKeys()
	mock.ExpectBegin()
	for _, key := range keys {
		mock.ExpectExec(regexp.QuoteMeta(queryIncrementStatistic)).
			WithArgs(key.ApplicationCode, key.What, key.Precision.String(), key.When).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, NewStatisticAdapter(db).IncrementAll(context.Background(), keys))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_IncrementAllRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	keys := incrementKeys()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryIncrementStatistic)).
		WithArgs(keys[0].ApplicationCode, keys[0].What, "HOUR", keys[0].When).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryIncrementStatistic)).
		WithArgs(keys[1].ApplicationCode, keys[1].What, "DAY", keys[1].When).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err = NewStatisticAdapter(db).IncrementAll(context.Background(), keys)
	require.ErrorIs(t, err, statistic.ErrStoreUnavailable)
	require.ErrorContains(t, err, "deadlock detected")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_IncrementAllRejectsIncompleteKeyBeforeBegin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	keys := append(incrementKeys(), statistic.BucketKey{ApplicationCode: "CAS"})
	err = NewStatisticAdapter(db).IncrementAll(context.Background(), keys)
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_ListApplicationCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT DISTINCT applic_cd
		FROM com_statistics
		ORDER BY applic_cd
	`)).WillReturnRows(sqlmock.NewRows([]string{"applic_cd"}).AddRow("CAS").AddRow("DOCS"))

	codes, err := NewStatisticAdapter(db).ListApplicationCodes(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"CAS", "DOCS"}, codes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_ListApplicationCodesEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryListApplicationCodes)).
		WillReturnRows(sqlmock.NewRows([]string{"applic_cd"}))

	codes, err := NewStatisticAdapter(db).ListApplicationCodes(context.Background())
	require.NoError(t, err)
	require.NotNil(t, codes)
	require.Empty(t, codes)
}

func TestStatisticAdapter_FindStatisticsForDateRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewStatisticAdapter(db)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE applic_cd = $1 AND stat_date >= $2 AND stat_date <= $3 AND (stat_precision = $4 OR stat_precision = $5)",
	)+`\s+ORDER BY stat_date, stat_precision`).
		WithArgs("CAS", start, end, "HOUR", "DAY").
		WillReturnRows(sqlmock.NewRows(statisticColumns).
			AddRow("CAS", int64(2), "DAY", "LOGIN", start).
			AddRow("CAS", int64(1), "HOUR", "LOGIN", start.Add(9*time.Hour)))

	stats, err := adapter.FindStatisticsForDateRange(
		context.Background(), start, end, "CAS",
		statistic.NewPrecisionSet(statistic.Day, statistic.Hour),
	)
	require.NoError(t, err)
	require.Equal(t, []statistic.Statistic{
		{ApplicationCode: "CAS", What: "LOGIN", Precision: statistic.Day, When: start, Count: 2},
		{ApplicationCode: "CAS", What: "LOGIN", Precision: statistic.Hour, When: start.Add(9 * time.Hour), Count: 1},
	}, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_InvalidQueriesNeverTouchTheStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewStatisticAdapter(db)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err = adapter.FindStatisticsForDateRange(ctx, day, day, "CAS", statistic.PrecisionSet(0))
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)

	_, err = adapter.FindComparisonStatistics(ctx, day, day, "CAS", statistic.PrecisionSet(0))
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)

	_, err = adapter.FindStatisticsForDateRange(ctx, day.Add(time.Hour), day, "CAS", statistic.NewPrecisionSet(statistic.Day))
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)

	_, err = adapter.FindStatisticsForDateRange(ctx, day, day, "", statistic.NewPrecisionSet(statistic.Day))
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_FindComparisonStatisticsUsesDayWindows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewStatisticAdapter(db)
	first := time.Date(2024, 3, 8, 14, 30, 0, 0, time.UTC)
	second := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE applic_cd = $1 AND ((stat_date >= $2 AND stat_date <= $3) OR (stat_date >= $4 AND stat_date <= $5)) AND (stat_precision = $6)",
	)).
		WithArgs(
			"CAS",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC),
			time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 8, 23, 59, 59, int(999*time.Millisecond), time.UTC),
			"HOUR",
		).
		WillReturnRows(sqlmock.NewRows(statisticColumns).
			AddRow("CAS", int64(4), "HOUR", "LOGIN", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)).
			AddRow("CAS", int64(6), "HOUR", "LOGIN", time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC)))

	stats, err := adapter.FindComparisonStatistics(
		context.Background(), first, second, "CAS", statistic.NewPrecisionSet(statistic.Hour),
	)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, int64(4), stats[0].Count)
	require.Equal(t, int64(6), stats[1].Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_FindComparisonStatisticsSameDateMergesWindows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewStatisticAdapter(db)
	d := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	bucket := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE applic_cd = $1 AND ((stat_date >= $2 AND stat_date <= $3)) AND (stat_precision = $4)",
	)).
		WithArgs("CAS", bucket, time.Date(2024, 3, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC), "DAY").
		WillReturnRows(sqlmock.NewRows(statisticColumns).AddRow("CAS", int64(2), "DAY", "LOGIN", bucket))

	stats, err := adapter.FindComparisonStatistics(context.Background(), d, d, "CAS", statistic.NewPrecisionSet(statistic.Day))
	require.NoError(t, err)
	require.Equal(t, []statistic.Statistic{
		{ApplicationCode: "CAS", What: "LOGIN", Precision: statistic.Day, When: bucket, Count: 2},
	}, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_FindComparisonStatisticsHonoursLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loc := time.FixedZone("UTC-5", -5*60*60)
	adapter := NewStatisticAdapter(db, WithLocation(loc))
	// 02:00 UTC on March 2nd is still March 1st at UTC-5.
	d := time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, loc)

	mock.ExpectQuery(regexp.QuoteMeta("((stat_date >= $2 AND stat_date <= $3))")).
		WithArgs("CAS", start, start.Add(24*time.Hour-time.Millisecond), "MONTH").
		WillReturnRows(sqlmock.NewRows(statisticColumns))

	stats, err := adapter.FindComparisonStatistics(context.Background(), d, d, "CAS", statistic.NewPrecisionSet(statistic.Month))
	require.NoError(t, err)
	require.Empty(t, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticAdapter_QueryScanFailureIsStoreUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(querySelectSuffix)).
		WillReturnRows(sqlmock.NewRows(statisticColumns).AddRow("CAS", int64(1), "FORTNIGHT", "LOGIN", day))

	_, err = NewStatisticAdapter(db).FindStatisticsForDateRange(
		context.Background(), day, day, "CAS", statistic.NewPrecisionSet(statistic.Day),
	)
	require.ErrorIs(t, err, statistic.ErrStoreUnavailable)
	require.ErrorContains(t, err, "FORTNIGHT")
}

func TestStatisticAdapter_BreakerFailsFastWhenOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var transitions []bool
	adapter := NewStatisticAdapter(db, WithBreaker(BreakerConfig{
		MaxRequests:         1,
		Timeout:             time.Minute,
		ConsecutiveFailures: 2,
		OnStateChange:       func(open bool) { transitions = append(transitions, open) },
	}))

	mock.ExpectQuery(regexp.QuoteMeta(queryListApplicationCodes)).WillReturnError(errors.New("timeout"))
	mock.ExpectQuery(regexp.QuoteMeta(queryListApplicationCodes)).WillReturnError(errors.New("timeout"))

	for i := 0; i < 2; i++ {
		_, err := adapter.ListApplicationCodes(context.Background())
		require.ErrorIs(t, err, statistic.ErrStoreUnavailable)
	}

	_, err = adapter.ListApplicationCodes(context.Background())
	require.ErrorIs(t, err, statistic.ErrStoreUnavailable)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Equal(t, []bool{true}, transitions)
	require.NoError(t, mock.ExpectationsWereMet())
}
