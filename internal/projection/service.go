package projection

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/aevon-lab/inspektr/internal/core/storage"
	"github.com/aevon-lab/inspektr/internal/metrics"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Service implements the reporting layer over the statistic store.
type Service struct {
	store   storage.StatisticStore
	loc     *time.Location
	metrics *metrics.Metrics
}

// NewService creates a reporting service. Calendar days are evaluated in loc (UTC when nil).
func NewService(store storage.StatisticStore, loc *time.Location, m *metrics.Metrics) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Service{store: store, loc: loc, metrics: m}
}

// ListApplications returns every application code with recorded statistics.
func (s *Service) ListApplications(ctx context.Context) (*ApplicationsResponse, error) {
	codes, err := s.store.ListApplicationCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list application codes: %w", err)
	}
	if codes == nil {
		codes = []string{}
	}
	return &ApplicationsResponse{ApplicationCodes: codes}, nil
}

// QueryRange returns the statistics of one application within the requested range.
func (s *Service) QueryRange(ctx context.Context, req RangeQueryRequest) (*StatisticsResponse, error) {
	if err := statistic.ValidateRangeQuery(req.Start, req.End, req.ApplicationCode, req.Precisions); err != nil {
		return nil, err
	}

	stats, err := s.store.FindStatisticsForDateRange(ctx, req.Start, req.End, req.ApplicationCode, req.Precisions)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}
	if stats == nil {
		stats = []statistic.Statistic{}
	}

	var total int64
	for _, stat := range stats {
		total += stat.Count
	}

	return &StatisticsResponse{
		ApplicationCode: req.ApplicationCode,
		Start:           req.Start,
		End:             req.End,
		Precisions:      req.Precisions.Strings(),
		Total:           total,
		Statistics:      stats,
	}, nil
}

// Compare returns the statistics of two calendar days and a per-action summary of the change
// from the first day to the second. Windows are whole days whatever the precision.
func (s *Service) Compare(ctx context.Context, req ComparisonRequest) (*ComparisonResponse, error) {
	if err := statistic.ValidateComparisonQuery(req.First, req.Second, req.ApplicationCode, req.Precisions); err != nil {
		return nil, err
	}

	stats, err := s.store.FindComparisonStatistics(ctx, req.First, req.Second, req.ApplicationCode, req.Precisions)
	if err != nil {
		return nil, fmt.Errorf("query comparison statistics: %w", err)
	}
	if stats == nil {
		stats = []statistic.Statistic{}
	}

	firstDay := statistic.DayWindow(req.First, s.loc)
	secondDay := statistic.DayWindow(req.Second, s.loc)

	return &ComparisonResponse{
		ApplicationCode: req.ApplicationCode,
		FirstDay:        firstDay,
		SecondDay:       secondDay,
		First:           firstDay.Start,
		Second:          secondDay.Start,
		Precisions:      req.Precisions.Strings(),
		Statistics:      stats,
		Summary:         summarize(stats, firstDay, secondDay),
	}, nil
}

type summaryKey struct {
	what      string
	precision statistic.Precision
}

// summarize totals each (action, precision) pair per day. When both days are the same,
// each row counts toward both sides.
func summarize(stats []statistic.Statistic, firstDay, secondDay statistic.Window) []ComparisonRow {
	rows := make(map[summaryKey]*ComparisonRow)
	for _, stat := range stats {
		key := summaryKey{what: stat.What, precision: stat.Precision}
		row, ok := rows[key]
		if !ok {
			row = &ComparisonRow{What: stat.What, Precision: stat.Precision}
			rows[key] = row
		}
		if firstDay.Contains(stat.When) {
			row.First += stat.Count
		}
		if secondDay.Contains(stat.When) {
			row.Second += stat.Count
		}
	}

	out := make([]ComparisonRow, 0, len(rows))
	for _, row := range rows {
		row.Change = row.Second - row.First
		row.ChangePercent = changePercent(row.First, row.Second)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].What != out[j].What {
			return out[i].What < out[j].What
		}
		return out[i].Precision < out[j].Precision
	})
	return out
}

// changePercent returns (second-first)/first*100 rounded to two decimals, or nil when first is zero.
func changePercent(first, second int64) *decimal.Decimal {
	if first == 0 {
		return nil
	}
	pct := decimal.NewFromInt(second - first).
		Div(decimal.NewFromInt(first)).
		Mul(hundred).
		Round(2)
	return &pct
}
