package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
)

// MemoryStatisticStore is an in-memory implementation of StatisticStore.
// Useful for testing and development; counts are lost on restart.
type MemoryStatisticStore struct {
	mu     sync.RWMutex
	counts map[statistic.BucketKey]int64
	loc    *time.Location
}

// NewMemoryStatisticStore creates an empty store. Comparison day windows are
// evaluated in loc (UTC when nil).
func NewMemoryStatisticStore(loc *time.Location) *MemoryStatisticStore {
	if loc == nil {
		loc = time.UTC
	}
	return &MemoryStatisticStore{
		counts: make(map[statistic.BucketKey]int64),
		loc:    loc,
	}
}

func (s *MemoryStatisticStore) Increment(ctx context.Context, key statistic.BucketKey) error {
	return s.IncrementAll(ctx, []statistic.BucketKey{key})
}

// IncrementAll validates every key before taking the lock, so a bad key leaves the
// store untouched.
func (s *MemoryStatisticStore) IncrementAll(_ context.Context, keys []statistic.BucketKey) error {
	normalized := make([]statistic.BucketKey, 0, len(keys))
	for _, key := range keys {
		if key.ApplicationCode == "" || key.What == "" || !key.Precision.Valid() || key.When.IsZero() {
			return statistic.InvalidArgumentf("incomplete bucket key %+v", key)
		}
		// Normalize the instant so equal buckets share one map entry whatever their zone.
		key.When = key.When.UTC()
		normalized = append(normalized, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range normalized {
		s.counts[key]++
	}
	return nil
}

func (s *MemoryStatisticStore) ListApplicationCodes(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	codes := []string{}
	for key := range s.counts {
		if _, ok := seen[key.ApplicationCode]; ok {
			continue
		}
		seen[key.ApplicationCode] = struct{}{}
		codes = append(codes, key.ApplicationCode)
	}
	sort.Strings(codes)
	return codes, nil
}

func (s *MemoryStatisticStore) FindStatisticsForDateRange(
	_ context.Context,
	start time.Time,
	end time.Time,
	applicationCode string,
	precisions statistic.PrecisionSet,
) ([]statistic.Statistic, error) {
	if err := statistic.ValidateRangeQuery(start, end, applicationCode, precisions); err != nil {
		return nil, err
	}
	return s.collect(applicationCode, precisions, []statistic.Window{{Start: start, End: end}}), nil
}

func (s *MemoryStatisticStore) FindComparisonStatistics(
	_ context.Context,
	first time.Time,
	second time.Time,
	applicationCode string,
	precisions statistic.PrecisionSet,
) ([]statistic.Statistic, error) {
	if err := statistic.ValidateComparisonQuery(first, second, applicationCode, precisions); err != nil {
		return nil, err
	}
	return s.collect(applicationCode, precisions, statistic.ComparisonWindows(first, second, s.loc)), nil
}

func (s *MemoryStatisticStore) collect(applicationCode string, precisions statistic.PrecisionSet, windows []statistic.Window) []statistic.Statistic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []statistic.Statistic{}
	for key, count := range s.counts {
		if key.ApplicationCode != applicationCode || !precisions.Has(key.Precision) {
			continue
		}
		for _, w := range windows {
			if w.Contains(key.When) {
				results = append(results, statistic.Statistic{
					ApplicationCode: key.ApplicationCode,
					What:            key.What,
					Precision:       key.Precision,
					When:            key.When,
					Count:           count,
				})
				break
			}
		}
	}

	// Same order as the SQL store: stat_date, then the precision name.
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !a.When.Equal(b.When) {
			return a.When.Before(b.When)
		}
		if a.Precision != b.Precision {
			return a.Precision.String() < b.Precision.String()
		}
		return a.What < b.What
	})
	return results
}
