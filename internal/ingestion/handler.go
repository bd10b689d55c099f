package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/aevon-lab/inspektr/internal/api/v1"
	"github.com/aevon-lab/inspektr/internal/core/audit"
	httperr "github.com/aevon-lab/inspektr/internal/core/errors"
	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/aevon-lab/inspektr/internal/statistics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgReadBodyFailed    = "Failed to read request body"
	msgInvalidJSON       = "Invalid JSON body"
	msgRecordFailed      = "Failed to record action"
	msgUnknownAction     = "No definition is loaded for this action"
	msgResolutionFailed  = "Failed to resolve action label"
	msgStoreUnavailable  = "Statistic store unavailable"
	msgListFailed        = "Failed to list action definitions"
	msgDefinitionFailure = "Failed to look up action definition"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// ReportHandler handles POST /v1/actions.
func (s *Service) ReportHandler(c *gin.Context) {
	report, payloadSize, ierr := s.parseReport(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	entry, ierr := s.buildEntry(c.Request.Context(), report)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	slog.Info("Received action report",
		"report_id", report.ID,
		"application_code", entry.Metadata.ApplicationCode,
		"action", report.Action,
		"outcome", report.Outcome,
		"payload_size", payloadSize)

	label, ierr := s.record(c.Request.Context(), report, entry)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "recorded",
		"id":     report.ID,
		"action": label,
	})
}

// ListDefinitionsHandler handles GET /v1/actions.
// Query parameters: application_code (optional filter)
func (s *Service) ListDefinitionsHandler(c *gin.Context) {
	type definitionView struct {
		Action          string   `json:"action"`
		ApplicationCode string   `json:"application_code"`
		Precisions      []string `json:"precisions"`
		Resolver        string   `json:"resolver"`
		ResourceHint    string   `json:"resource_hint,omitempty"`
		Fingerprint     string   `json:"fingerprint"`
	}

	views := []definitionView{}
	if s.definitions != nil {
		defs, err := s.definitions.List(c.Request.Context(), c.Query("application_code"))
		if err != nil {
			slog.Error("Failed to list action definitions", "error", err)
			writeError(c, &ingestionError{
				statusCode: http.StatusInternalServerError,
				errorType:  httperr.HttpInternalError,
				message:    msgListFailed,
			})
			return
		}
		for _, def := range defs {
			views = append(views, definitionView{
				Action:          def.Metadata.Action,
				ApplicationCode: def.Metadata.ApplicationCode,
				Precisions:      def.Metadata.Precisions.Strings(),
				Resolver:        def.Resolver,
				ResourceHint:    def.Metadata.ResourceHint,
				Fingerprint:     def.Fingerprint,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"definitions": views})
}

// parseReport reads the raw request body and binds it into an ActionReport.
// Returns the parsed report and the raw payload size (used for structured logging upstream).
func (s *Service) parseReport(c *gin.Context) (*v1.ActionReport, int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var report v1.ActionReport
	if err := c.ShouldBindJSON(&report); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	if err := report.Validate(); err != nil {
		slog.Warn("Action report validation failed", "error", err, "report_id", report.ID)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidArgumentError,
			message:    err.Error(),
		}
	}

	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.OccurredAt.IsZero() {
		report.OccurredAt = time.Now().UTC()
	}
	return &report, len(bodyBytes), nil
}

// buildEntry assembles the recorder entry. A loaded definition for the action supplies the
// metadata and resolver; otherwise the report's own fields are used.
func (s *Service) buildEntry(ctx context.Context, report *v1.ActionReport) (statistics.Entry, *ingestionError) {
	entry := statistics.Entry{
		Call:       report.Call(),
		Outcome:    report.ResolvedOutcome(),
		OccurredAt: report.OccurredAt,
		Metadata: audit.Metadata{
			Action:          report.Action,
			ApplicationCode: report.ApplicationCode,
			Precisions:      report.PrecisionSet(),
		},
	}

	if s.definitions == nil {
		return entry, nil
	}

	def, err := s.definitions.Get(ctx, report.Action)
	switch {
	case err == nil:
		entry.Metadata = def.Metadata
		entry.Resolver = def.ActionResolver()
		if report.ApplicationCode != "" && report.ApplicationCode != def.Metadata.ApplicationCode {
			slog.Warn("Reported application code differs from definition",
				"action", report.Action,
				"reported", report.ApplicationCode,
				"defined", def.Metadata.ApplicationCode)
		}
		return entry, nil
	case errors.Is(err, audit.ErrDefinitionNotFound):
		if s.requireDefinitions {
			slog.Warn("Rejected report for undefined action", "action", report.Action, "report_id", report.ID)
			return entry, &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpInvalidArgumentError,
				message:    msgUnknownAction,
				details:    map[string]interface{}{"action": report.Action},
			}
		}
		return entry, nil
	default:
		slog.Error("Failed to look up action definition", "error", err, "action", report.Action)
		return entry, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgDefinitionFailure,
		}
	}
}

// record hands the entry to the recorder and classifies its failure.
func (s *Service) record(ctx context.Context, report *v1.ActionReport, entry statistics.Entry) (string, *ingestionError) {
	label, err := s.recorder.Record(ctx, entry)
	if err == nil {
		return label, nil
	}

	switch {
	case errors.Is(err, statistic.ErrInvalidArgument):
		slog.Warn("Action report rejected", "error", err, "report_id", report.ID)
		return "", &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidArgumentError,
			message:    err.Error(),
		}
	case errors.Is(err, statistic.ErrResolutionFailure):
		slog.Warn("Action label resolution failed", "error", err, "report_id", report.ID)
		return "", &ingestionError{
			statusCode: http.StatusUnprocessableEntity,
			errorType:  httperr.HttpResolutionFailureError,
			message:    msgResolutionFailed,
			details:    err.Error(),
		}
	case errors.Is(err, statistic.ErrStoreUnavailable):
		slog.Error("Failed to record action", "error", err, "report_id", report.ID)
		return "", &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpStoreUnavailableError,
			message:    msgStoreUnavailable,
		}
	default:
		slog.Error("Failed to record action", "error", err, "report_id", report.ID)
		return "", &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgRecordFailed,
		}
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
