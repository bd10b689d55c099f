package projection

import (
	"time"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/shopspring/decimal"
)

// RangeQueryRequest selects statistics of one application within [Start, End].
type RangeQueryRequest struct {
	ApplicationCode string
	Start           time.Time
	End             time.Time
	Precisions      statistic.PrecisionSet
}

// ComparisonRequest selects statistics of one application on two calendar days.
type ComparisonRequest struct {
	ApplicationCode string
	First           time.Time
	Second          time.Time
	Precisions      statistic.PrecisionSet
}

// ApplicationsResponse lists the application codes that have statistics.
type ApplicationsResponse struct {
	ApplicationCodes []string `json:"application_codes"`
}

// StatisticsResponse is the response for a date range query.
type StatisticsResponse struct {
	ApplicationCode string                `json:"application_code"`
	Start           time.Time             `json:"start"`
	End             time.Time             `json:"end"`
	Precisions      []string              `json:"precisions"`
	Total           int64                 `json:"total"`
	Statistics      []statistic.Statistic `json:"statistics"`
}

// ComparisonRow compares one (action, precision) pair across the two days.
type ComparisonRow struct {
	What      string              `json:"what"`
	Precision statistic.Precision `json:"precision"`
	First     int64               `json:"first"`
	Second    int64               `json:"second"`
	Change    int64               `json:"change"`
	// ChangePercent is nil when the first day has no occurrences.
	ChangePercent *decimal.Decimal `json:"change_percent"`
}

// ComparisonResponse is the response for a two-day comparison query.
type ComparisonResponse struct {
	ApplicationCode string                `json:"application_code"`
	FirstDay        statistic.Window      `json:"-"`
	SecondDay       statistic.Window      `json:"-"`
	First           time.Time             `json:"first"`
	Second          time.Time             `json:"second"`
	Precisions      []string              `json:"precisions"`
	Statistics      []statistic.Statistic `json:"statistics"`
	Summary         []ComparisonRow       `json:"summary"`
}
