package ingestion

import (
	"context"

	"github.com/aevon-lab/inspektr/internal/core/audit"
	"github.com/aevon-lab/inspektr/internal/statistics"
	"github.com/gin-gonic/gin"
)

// ActionRecorder records one audited occurrence and returns the resolved label.
type ActionRecorder interface {
	Record(ctx context.Context, e statistics.Entry) (string, error)
}

// DefinitionSource looks up action definitions loaded at startup.
type DefinitionSource interface {
	Get(ctx context.Context, action string) (*audit.Definition, error)
	List(ctx context.Context, applicationCode string) ([]audit.Definition, error)
}

type Service struct {
	recorder           ActionRecorder
	definitions        DefinitionSource
	requireDefinitions bool
	maxBodySizeBytes   int
}

// NewService creates the action reporting service. definitions may be nil, in which case
// every report carries its own metadata.
func NewService(recorder ActionRecorder, definitions DefinitionSource, requireDefinitions bool, maxBodySizeMB int) *Service {
	if recorder == nil {
		panic("ingestion: recorder must not be nil")
	}
	if requireDefinitions && definitions == nil {
		panic("ingestion: definitions are required but none were provided")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		recorder:           recorder,
		definitions:        definitions,
		requireDefinitions: requireDefinitions,
		maxBodySizeBytes:   maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the action reporting routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/actions", s.ReportHandler)
	r.GET("/v1/actions", s.ListDefinitionsHandler)
}
