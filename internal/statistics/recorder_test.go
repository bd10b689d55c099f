package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/audit"
	"github.com/aevon-lab/inspektr/internal/core/statistic"
	statisticsmocks "github.com/aevon-lab/inspektr/internal/mocks/statistics"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestRecorder(manager StatisticManager, resolver audit.ActionResolver, defaults statistic.PrecisionSet) *Recorder {
	r := NewRecorder(manager, resolver, defaults, nil)
	r.nowFn = func() time.Time { return fixedNow }
	return r
}

func TestRecorder_RecordRecalculatesEveryPrecision(t *testing.T) {
	manager := statisticsmocks.NewStatisticManager(t)
	recorder := newTestRecorder(manager, nil, statistic.NewPrecisionSet(statistic.Day))

	var seen []statistic.ActionContext
	manager.EXPECT().
		RecalculateAll(mock.Anything, mock.AnythingOfType("[]statistic.ActionContext")).
		Run(func(_ context.Context, contexts []statistic.ActionContext) {
			seen = contexts
		}).
		Return(nil).
		Once()

	label, err := recorder.Record(context.Background(), Entry{
		Call:    audit.Call{Operation: "authenticate"},
		Outcome: audit.Success("ticket"),
		Metadata: audit.Metadata{
			Action:          "LOGIN",
			ApplicationCode: "CAS",
			Precisions:      statistic.NewPrecisionSet(statistic.Hour, statistic.Month),
		},
	})
	require.NoError(t, err)
	require.Equal(t, "LOGIN", label)

	var precisions []statistic.Precision
	for _, ac := range seen {
		require.Equal(t, "CAS", ac.ApplicationCode())
		require.Equal(t, "LOGIN", ac.Action())
		require.Equal(t, fixedNow, ac.Timestamp())
		precisions = append(precisions, ac.Precision())
	}
	require.ElementsMatch(t, []statistic.Precision{statistic.Hour, statistic.Month}, precisions)
}

func TestRecorder_RecordFallsBackToDefaultPrecisions(t *testing.T) {
	manager := statisticsmocks.NewStatisticManager(t)
	recorder := newTestRecorder(manager, nil, statistic.NewPrecisionSet(statistic.Day))
	occurredAt := time.Date(2024, 3, 1, 23, 10, 0, 0, time.UTC)

	expected, err := statistic.NewActionContext("CAS", "LOGIN_FAILED", statistic.Day, occurredAt)
	require.NoError(t, err)
	manager.EXPECT().RecalculateAll(mock.Anything, []statistic.ActionContext{expected}).Return(nil).Once()

	label, err := recorder.Record(context.Background(), Entry{
		Outcome:    audit.Failure(errors.New("bad password")),
		Metadata:   audit.Metadata{Action: "LOGIN", ApplicationCode: "CAS"},
		Resolver:   audit.NewSuffixResolver(),
		OccurredAt: occurredAt,
	})
	require.NoError(t, err)
	require.Equal(t, "LOGIN_FAILED", label)
}

func TestRecorder_ResolutionFailureWritesNothing(t *testing.T) {
	manager := statisticsmocks.NewStatisticManager(t)
	failing := audit.ResolverFunc(func(audit.Call, audit.Outcome, audit.Metadata) (string, error) {
		return "", errors.New("no resource")
	})
	recorder := newTestRecorder(manager, failing, statistic.NewPrecisionSet(statistic.Day))

	_, err := recorder.Record(context.Background(), Entry{
		Outcome:  audit.Success(nil),
		Metadata: audit.Metadata{Action: "LOGIN", ApplicationCode: "CAS"},
	})
	require.ErrorIs(t, err, statistic.ErrResolutionFailure)
}

func TestRecorder_InvalidEntriesWriteNothing(t *testing.T) {
	manager := statisticsmocks.NewStatisticManager(t)
	recorder := newTestRecorder(manager, nil, statistic.PrecisionSet(0))

	_, err := recorder.Record(context.Background(), Entry{
		Metadata: audit.Metadata{Action: "LOGIN", ApplicationCode: "CAS"},
	})
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)

	_, err = recorder.Record(context.Background(), Entry{
		Metadata: audit.Metadata{Action: "LOGIN", Precisions: statistic.NewPrecisionSet(statistic.Day)},
	})
	require.ErrorIs(t, err, statistic.ErrInvalidArgument)
}

func TestRecorder_RecordReturnsStoreFailure(t *testing.T) {
	manager := statisticsmocks.NewStatisticManager(t)
	recorder := newTestRecorder(manager, nil, statistic.NewPrecisionSet(statistic.Day))

	manager.EXPECT().
		RecalculateAll(mock.Anything, mock.AnythingOfType("[]statistic.ActionContext")).
		Return(statistic.StoreUnavailable("increment statistics", errors.New("down"))).
		Once()

	label, err := recorder.Record(context.Background(), Entry{
		Metadata: audit.Metadata{Action: "LOGIN", ApplicationCode: "CAS"},
	})
	require.ErrorIs(t, err, statistic.ErrStoreUnavailable)
	require.Equal(t, "LOGIN", label)
}

func TestTrack_ReturnsOperationResultAndRecordsOutcome(t *testing.T) {
	manager := statisticsmocks.NewStatisticManager(t)
	recorder := newTestRecorder(manager, audit.NewSuffixResolver(), statistic.NewPrecisionSet(statistic.Day))
	meta := audit.Metadata{Action: "UPLOAD", ApplicationCode: "DOCS"}

	manager.EXPECT().
		RecalculateAll(mock.Anything, mock.MatchedBy(func(contexts []statistic.ActionContext) bool {
			return len(contexts) == 1 && contexts[0].Action() == "UPLOAD_SUCCESS"
		})).
		Return(nil).
		Once()

	size, err := Track(context.Background(), recorder, audit.Call{Operation: "upload"}, meta,
		func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	require.Equal(t, 42, size)

	boom := errors.New("disk full")
	manager.EXPECT().
		RecalculateAll(mock.Anything, mock.MatchedBy(func(contexts []statistic.ActionContext) bool {
			return len(contexts) == 1 && contexts[0].Action() == "UPLOAD_FAILED"
		})).
		Return(statistic.StoreUnavailable("increment statistic", errors.New("down"))).
		Once()

	_, err = Track(context.Background(), recorder, audit.Call{Operation: "upload"}, meta,
		func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, statistic.ErrStoreUnavailable)
}

func TestRecorder_StoreFailureLeavesNoPrecisionRecorded(t *testing.T) {
	store := &failingStore{memoryStore: newMemoryStore(), failOn: statistic.Month}
	recorder := newTestRecorder(NewManager(store, time.UTC, nil), nil, statistic.PrecisionSet(0))

	_, err := recorder.Record(context.Background(), Entry{
		Metadata: audit.Metadata{
			Action:          "LOGIN",
			ApplicationCode: "CAS",
			Precisions:      statistic.NewPrecisionSet(statistic.Hour, statistic.Day, statistic.Month),
		},
	})
	require.ErrorIs(t, err, statistic.ErrStoreUnavailable)
	require.Empty(t, store.counts)

	store.failOn = statistic.Precision(0)
	_, err = recorder.Record(context.Background(), Entry{
		Metadata: audit.Metadata{
			Action:          "LOGIN",
			ApplicationCode: "CAS",
			Precisions:      statistic.NewPrecisionSet(statistic.Hour, statistic.Day, statistic.Month),
		},
	})
	require.NoError(t, err)
	require.Len(t, store.counts, 3)
}
