package v1

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/inspektr/internal/core/audit"
	"github.com/aevon-lab/inspektr/internal/core/statistic"
)

// Outcome values accepted in an ActionReport.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ActionReport is an audited operation reported by a remote application.
// The server resolves the recorded label and bumps one bucket per precision.
type ActionReport struct {
	// ID identifies the report in logs and responses. Generated when empty.
	ID string `json:"id,omitempty"`

	// ApplicationCode may be omitted when a loaded definition for Action supplies it.
	ApplicationCode string `json:"application_code"`

	// Action is the static action name, e.g. "LOGIN".
	Action string `json:"action"`

	// Operation and Args describe the intercepted call. They are handed to the resolver as is.
	Operation string `json:"operation,omitempty"`
	Args      []any  `json:"args,omitempty"`

	// Outcome is "success" or "failure".
	Outcome string `json:"outcome"`

	// Error is the failure message reported with a "failure" outcome.
	Error string `json:"error,omitempty"`

	// OccurredAt is when the operation finished on the client. Defaults to the server clock.
	OccurredAt time.Time `json:"occurred_at"`

	// Precisions overrides the configured default precisions when no definition exists.
	Precisions []string `json:"precisions,omitempty"`
}

// Validate checks the fields every report must carry.
func (r *ActionReport) Validate() error {
	if strings.TrimSpace(r.Action) == "" {
		return fmt.Errorf("action is required")
	}

	switch strings.ToLower(r.Outcome) {
	case OutcomeSuccess, OutcomeFailure:
	case "":
		return fmt.Errorf("outcome is required")
	default:
		return fmt.Errorf("outcome must be %q or %q, got %q", OutcomeSuccess, OutcomeFailure, r.Outcome)
	}

	if _, err := statistic.ParsePrecisionSet(r.Precisions); err != nil {
		return err
	}

	return nil
}

// Call returns the intercepted call the report describes.
func (r *ActionReport) Call() audit.Call {
	return audit.Call{Operation: r.Operation, Args: r.Args}
}

// ResolvedOutcome converts the reported outcome into an audit.Outcome.
func (r *ActionReport) ResolvedOutcome() audit.Outcome {
	if strings.ToLower(r.Outcome) != OutcomeFailure {
		return audit.Success(nil)
	}
	if r.Error == "" {
		return audit.Failure(nil)
	}
	return audit.Failure(errors.New(r.Error))
}

// PrecisionSet parses the reported precisions. Call Validate first.
func (r *ActionReport) PrecisionSet() statistic.PrecisionSet {
	set, _ := statistic.ParsePrecisionSet(r.Precisions)
	return set
}
