package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/sony/gobreaker"
)

// StatisticAdapter implements storage.StatisticStore on the com_statistics table.
// Day windows for comparison queries are computed here, in Go, before querying.
type StatisticAdapter struct {
	db  *sql.DB
	cb  *gobreaker.CircuitBreaker
	loc *time.Location
}

// StatisticOption customizes a StatisticAdapter.
type StatisticOption func(*StatisticAdapter)

// WithLocation sets the time zone used for calendar-day windows. Defaults to UTC.
func WithLocation(loc *time.Location) StatisticOption {
	return func(a *StatisticAdapter) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithBreaker guards every store call with a circuit breaker.
func WithBreaker(cfg BreakerConfig) StatisticOption {
	return func(a *StatisticAdapter) {
		a.cb = newBreaker(cfg)
	}
}

// NewStatisticAdapter creates a StatisticAdapter sharing the given connection.
func NewStatisticAdapter(db *sql.DB, opts ...StatisticOption) *StatisticAdapter {
	a := &StatisticAdapter{db: db, loc: time.UTC}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// guard runs fn through the circuit breaker when one is configured and classifies
// every failure as statistic.ErrStoreUnavailable.
func (a *StatisticAdapter) guard(op string, fn func() error) error {
	var err error
	if a.cb == nil {
		err = fn()
	} else {
		_, err = a.cb.Execute(func() (interface{}, error) {
			return nil, fn()
		})
	}
	if err == nil {
		return nil
	}
	if isBreakerRejection(err) {
		slog.Warn("[StatisticStore] Call rejected by circuit breaker", "op", op, "error", err)
	}
	return statistic.StoreUnavailable(op, err)
}

// Increment adds one to the bucket identified by key, inserting it with count 1 if absent.
func (a *StatisticAdapter) Increment(ctx context.Context, key statistic.BucketKey) error {
	if err := validateKey(key); err != nil {
		return err
	}

	return a.guard("increment statistic", func() error {
		return execIncrement(ctx, a.db, key)
	})
}

// IncrementAll upserts every key inside one transaction.
func (a *StatisticAdapter) IncrementAll(ctx context.Context, keys []statistic.BucketKey) error {
	for _, key := range keys {
		if err := validateKey(key); err != nil {
			return err
		}
	}
	if len(keys) == 0 {
		return nil
	}

	return a.guard("increment statistics", func() error {
		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck

		for _, key := range keys {
			if err := execIncrement(ctx, tx, key); err != nil {
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func validateKey(key statistic.BucketKey) error {
	if key.ApplicationCode == "" || key.What == "" || !key.Precision.Valid() || key.When.IsZero() {
		return statistic.InvalidArgumentf("incomplete bucket key %+v", key)
	}
	return nil
}

func execIncrement(ctx context.Context, db execer, key statistic.BucketKey) error {
	result, err := db.ExecContext(ctx, queryIncrementStatistic,
		key.ApplicationCode,
		key.What,
		key.Precision.String(),
		key.When,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("upsert affected no rows for %s/%s/%s", key.ApplicationCode, key.What, key.Precision)
	}
	return nil
}

// ListApplicationCodes returns the distinct application codes in ascending order.
func (a *StatisticAdapter) ListApplicationCodes(ctx context.Context) ([]string, error) {
	codes := []string{}
	err := a.guard("list application codes", func() error {
		rows, err := a.db.QueryContext(ctx, queryListApplicationCodes)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var code string
			if err := rows.Scan(&code); err != nil {
				return fmt.Errorf("scan row: %w", err)
			}
			codes = append(codes, code)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// FindStatisticsForDateRange returns the statistics whose bucket lies in [start, end],
// ordered by (when, precision).
func (a *StatisticAdapter) FindStatisticsForDateRange(
	ctx context.Context,
	start time.Time,
	end time.Time,
	applicationCode string,
	precisions statistic.PrecisionSet,
) ([]statistic.Statistic, error) {
	if err := statistic.ValidateRangeQuery(start, end, applicationCode, precisions); err != nil {
		return nil, err
	}

	query, args, err := buildRangeQuery(statistic.Window{Start: start, End: end}, applicationCode, precisions)
	if err != nil {
		return nil, err
	}
	return a.queryStatistics(ctx, "find statistics for date range", query, args)
}

// FindComparisonStatistics returns the statistics whose bucket lies within the calendar
// day of first or of second, ordered by (when, precision). The windows are always
// whole days, whatever precisions are requested.
func (a *StatisticAdapter) FindComparisonStatistics(
	ctx context.Context,
	first time.Time,
	second time.Time,
	applicationCode string,
	precisions statistic.PrecisionSet,
) ([]statistic.Statistic, error) {
	if err := statistic.ValidateComparisonQuery(first, second, applicationCode, precisions); err != nil {
		return nil, err
	}

	windows := statistic.ComparisonWindows(first, second, a.loc)
	query, args, err := buildComparisonQuery(windows, applicationCode, precisions)
	if err != nil {
		return nil, err
	}
	return a.queryStatistics(ctx, "find comparison statistics", query, args)
}

func (a *StatisticAdapter) queryStatistics(ctx context.Context, op, query string, args []interface{}) ([]statistic.Statistic, error) {
	results := []statistic.Statistic{}
	err := a.guard(op, func() error {
		rows, err := a.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			stat, err := scanStatisticRow(rows)
			if err != nil {
				return err
			}
			results = append(results, stat)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
