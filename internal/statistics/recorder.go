package statistics

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/audit"
	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/aevon-lab/inspektr/internal/metrics"
)

// Entry is one audited occurrence handed to the Recorder.
type Entry struct {
	Call     audit.Call
	Outcome  audit.Outcome
	Metadata audit.Metadata

	// Resolver overrides the recorder's resolver for this entry when set.
	Resolver audit.ActionResolver

	// OccurredAt defaults to the recorder clock when zero.
	OccurredAt time.Time
}

// Recorder turns an intercepted operation into statistic recalculations:
// it resolves the action label, then recalculates one bucket per precision in one batch.
type Recorder struct {
	manager  StatisticManager
	resolver audit.ActionResolver
	defaults statistic.PrecisionSet
	metrics  *metrics.Metrics
	nowFn    func() time.Time
}

// NewRecorder creates a Recorder. defaults applies to entries whose metadata
// declares no precision. A nil resolver falls back to audit.DefaultResolver.
func NewRecorder(
	manager StatisticManager,
	resolver audit.ActionResolver,
	defaults statistic.PrecisionSet,
	m *metrics.Metrics,
) *Recorder {
	if resolver == nil {
		resolver = audit.DefaultResolver{}
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Recorder{
		manager:  manager,
		resolver: resolver,
		defaults: defaults,
		metrics:  m,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Record resolves the entry's action label and recalculates every requested precision.
// It returns the resolved label.
//
// Nothing is written when resolution fails or the entry is invalid. The buckets of all
// precisions are written together: on a store failure none of them is incremented.
func (r *Recorder) Record(ctx context.Context, e Entry) (string, error) {
	resolver := e.Resolver
	if resolver == nil {
		resolver = r.resolver
	}

	label, err := audit.Resolve(resolver, e.Call, e.Outcome, e.Metadata)
	if err != nil {
		r.metrics.ResolutionFailures.Inc()
		return "", err
	}

	if strings.TrimSpace(e.Metadata.ApplicationCode) == "" {
		return "", statistic.InvalidArgumentf("action %q has no application code", e.Metadata.Action)
	}

	precisions := e.Metadata.Precisions
	if precisions.IsEmpty() {
		precisions = r.defaults
	}
	if precisions.IsEmpty() {
		return "", statistic.InvalidArgumentf("action %q has no precision to record", e.Metadata.Action)
	}

	occurredAt := e.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = r.nowFn()
	}

	contexts := make([]statistic.ActionContext, 0, precisions.Len())
	for _, p := range precisions.Precisions() {
		ac, err := statistic.NewActionContext(e.Metadata.ApplicationCode, label, p, occurredAt)
		if err != nil {
			return "", err
		}
		contexts = append(contexts, ac)
	}

	if err := r.manager.RecalculateAll(ctx, contexts); err != nil {
		return label, err
	}

	return label, nil
}

// Track runs fn, records its outcome under meta and returns fn's results unchanged.
// A recording failure is logged and never replaces fn's own result or error.
func Track[T any](
	ctx context.Context,
	r *Recorder,
	call audit.Call,
	meta audit.Metadata,
	fn func(context.Context) (T, error),
) (T, error) {
	result, err := fn(ctx)

	if _, recErr := r.Record(ctx, Entry{
		Call:     call,
		Outcome:  audit.OutcomeOf(result, err),
		Metadata: meta,
	}); recErr != nil {
		slog.Warn("Failed to record audited action",
			"action", meta.Action,
			"operation", call.Operation,
			"error", recErr)
	}

	return result, err
}
