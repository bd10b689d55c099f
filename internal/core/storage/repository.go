package storage

import (
	"context"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
)

// StatisticStore is the persistence boundary for rollup counters.
//
// Contract: Increment is atomic per bucket key. Concurrent increments of the same
// key never lose an update, and a key seen for the first time is stored with count 1.
// IncrementAll applies a batch of increments as one unit: every key or none.
//
// Query arguments are validated before the store is contacted; invalid arguments
// fail with statistic.ErrInvalidArgument. Persistence failures surface as
// statistic.ErrStoreUnavailable and are never retried internally.
type StatisticStore interface {
	// Increment adds one to the statistic identified by key, creating it if needed.
	Increment(ctx context.Context, key statistic.BucketKey) error

	// IncrementAll adds one to every statistic in keys. Either all increments are
	// stored or none is.
	IncrementAll(ctx context.Context, keys []statistic.BucketKey) error

	// ListApplicationCodes returns the distinct application codes in ascending order.
	ListApplicationCodes(ctx context.Context) ([]string, error)

	// FindStatisticsForDateRange returns statistics whose bucket lies in [start, end],
	// ordered by (when, precision).
	FindStatisticsForDateRange(
		ctx context.Context,
		start time.Time,
		end time.Time,
		applicationCode string,
		precisions statistic.PrecisionSet,
	) ([]statistic.Statistic, error)

	// FindComparisonStatistics returns statistics whose bucket lies within the calendar
	// day of first or the calendar day of second, ordered by (when, precision).
	FindComparisonStatistics(
		ctx context.Context,
		first time.Time,
		second time.Time,
		applicationCode string,
		precisions statistic.PrecisionSet,
	) ([]statistic.Statistic, error)
}
