package statistic

import (
	"strings"
	"time"
)

// ActionContext describes one occurrence of an audited action.
// It is immutable once built; use NewActionContext.
type ActionContext struct {
	applicationCode string
	action          string
	precision       Precision
	timestamp       time.Time
}

// NewActionContext validates and builds an ActionContext.
func NewActionContext(applicationCode, action string, precision Precision, timestamp time.Time) (ActionContext, error) {
	if strings.TrimSpace(applicationCode) == "" {
		return ActionContext{}, InvalidArgumentf("application code is required")
	}
	if strings.TrimSpace(action) == "" {
		return ActionContext{}, InvalidArgumentf("action is required")
	}
	if !precision.Valid() {
		return ActionContext{}, InvalidArgumentf("unknown precision %d", precision)
	}
	if timestamp.IsZero() {
		return ActionContext{}, InvalidArgumentf("timestamp is required")
	}
	return ActionContext{
		applicationCode: applicationCode,
		action:          action,
		precision:       precision,
		timestamp:       timestamp,
	}, nil
}

func (c ActionContext) ApplicationCode() string { return c.applicationCode }
func (c ActionContext) Action() string          { return c.action }
func (c ActionContext) Precision() Precision    { return c.precision }
func (c ActionContext) Timestamp() time.Time    { return c.timestamp }

// Statistic is a persisted rollup: the number of times What happened for one
// application within one bucket of the given precision.
type Statistic struct {
	ApplicationCode string    `json:"application_code"`
	What            string    `json:"what"`
	Precision       Precision `json:"precision"`
	When            time.Time `json:"when"` // bucket start
	Count           int64     `json:"count"`
}

// BucketKey uniquely identifies a Statistic row.
type BucketKey struct {
	ApplicationCode string
	What            string
	Precision       Precision
	When            time.Time
}

// KeyFor derives the bucket key an ActionContext increments.
func KeyFor(c ActionContext, loc *time.Location) BucketKey {
	return BucketKey{
		ApplicationCode: c.applicationCode,
		What:            c.action,
		Precision:       c.precision,
		When:            BucketStart(c.timestamp, c.precision, loc),
	}
}

// ValidateRangeQuery checks the arguments of a date range query.
func ValidateRangeQuery(start, end time.Time, applicationCode string, precisions PrecisionSet) error {
	if err := validateScope(applicationCode, precisions); err != nil {
		return err
	}
	if start.IsZero() || end.IsZero() {
		return InvalidArgumentf("start and end dates are required")
	}
	if end.Before(start) {
		return InvalidArgumentf("end date %s precedes start date %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return nil
}

// ValidateComparisonQuery checks the arguments of a two-period comparison query.
func ValidateComparisonQuery(first, second time.Time, applicationCode string, precisions PrecisionSet) error {
	if err := validateScope(applicationCode, precisions); err != nil {
		return err
	}
	if first.IsZero() || second.IsZero() {
		return InvalidArgumentf("both comparison dates are required")
	}
	return nil
}

func validateScope(applicationCode string, precisions PrecisionSet) error {
	if strings.TrimSpace(applicationCode) == "" {
		return InvalidArgumentf("application code is required")
	}
	if precisions.IsEmpty() {
		return InvalidArgumentf("at least one precision is required")
	}
	return nil
}
