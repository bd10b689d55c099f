package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/aevon-lab/inspektr/internal/core/storage"
	"github.com/aevon-lab/inspektr/internal/metrics"
)

// StatisticManager updates the stored rollups for one audited occurrence.
type StatisticManager interface {
	// Recalculate performs exactly one bucket upsert for the context's
	// (application, action, precision, bucket). It does not retry; a store failure
	// surfaces as statistic.ErrStoreUnavailable and the caller decides what to do.
	Recalculate(ctx context.Context, actionContext statistic.ActionContext) error

	// RecalculateAll upserts the bucket of every context as one unit: when it
	// returns an error, none of the buckets was incremented.
	RecalculateAll(ctx context.Context, actionContexts []statistic.ActionContext) error
}

// Manager is the StatisticManager backed by a StatisticStore.
type Manager struct {
	store   storage.StatisticStore
	loc     *time.Location
	metrics *metrics.Metrics
}

// NewManager creates a Manager. Buckets are computed in loc (UTC when nil).
// A nil m disables instrumentation.
func NewManager(store storage.StatisticStore, loc *time.Location, m *metrics.Metrics) *Manager {
	if loc == nil {
		loc = time.UTC
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Manager{store: store, loc: loc, metrics: m}
}

// Recalculate increments the bucket the action context falls into.
func (m *Manager) Recalculate(ctx context.Context, actionContext statistic.ActionContext) error {
	key, err := m.keyFor(actionContext)
	if err != nil {
		return err
	}

	if err := m.store.Increment(ctx, key); err != nil {
		m.metrics.Recalculations.WithLabelValues(key.Precision.String(), "error").Inc()
		return fmt.Errorf("recalculate %s/%s/%s: %w", key.ApplicationCode, key.What, key.Precision, err)
	}

	m.recalculated(key)
	return nil
}

// RecalculateAll increments the bucket of every action context in one store call.
func (m *Manager) RecalculateAll(ctx context.Context, actionContexts []statistic.ActionContext) error {
	keys := make([]statistic.BucketKey, 0, len(actionContexts))
	for _, ac := range actionContexts {
		key, err := m.keyFor(ac)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := m.store.IncrementAll(ctx, keys); err != nil {
		for _, key := range keys {
			m.metrics.Recalculations.WithLabelValues(key.Precision.String(), "error").Inc()
		}
		return fmt.Errorf("recalculate %s/%s (%d buckets): %w", keys[0].ApplicationCode, keys[0].What, len(keys), err)
	}

	for _, key := range keys {
		m.recalculated(key)
	}
	return nil
}

func (m *Manager) keyFor(actionContext statistic.ActionContext) (statistic.BucketKey, error) {
	if !actionContext.Precision().Valid() || actionContext.ApplicationCode() == "" {
		// Zero value; NewActionContext never produces it.
		return statistic.BucketKey{}, statistic.InvalidArgumentf("action context was not built with NewActionContext")
	}
	return statistic.KeyFor(actionContext, m.loc), nil
}

func (m *Manager) recalculated(key statistic.BucketKey) {
	m.metrics.Recalculations.WithLabelValues(key.Precision.String(), "ok").Inc()
	slog.Debug("[StatisticManager] Recalculated",
		"application_code", key.ApplicationCode,
		"action", key.What,
		"precision", key.Precision.String(),
		"bucket", key.When)
}
