package projection

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	httperr "github.com/aevon-lab/inspektr/internal/core/errors"
	"github.com/aevon-lab/inspektr/internal/core/statistic"
	"github.com/gin-gonic/gin"
)

const dateOnlyLayout = "2006-01-02"

// RegisterRoutes registers all reporting API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/applications", s.instrument("applications", s.HandleListApplications))
	r.GET("/v1/statistics/:application_code", s.instrument("range", s.HandleQueryRange))
	r.GET("/v1/statistics/:application_code/compare", s.instrument("compare", s.HandleCompare))
}

// instrument observes the handler's latency under route.
func (s *Service) instrument(route string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		h(c)
		s.metrics.QueryDuration.
			WithLabelValues(route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(started).Seconds())
	}
}

// HandleListApplications handles GET /v1/applications
func (s *Service) HandleListApplications(c *gin.Context) {
	resp, err := s.ListApplications(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to list applications", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleQueryRange handles GET /v1/statistics/:application_code
// Query parameters: start, end, precision (repeatable or comma separated)
func (s *Service) HandleQueryRange(c *gin.Context) {
	var query struct {
		Start string `form:"start" binding:"required"`
		End   string `form:"end" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBadRequest(c, "Invalid query parameters", err)
		return
	}

	start, err := parseDate(query.Start, s.loc, false)
	if err != nil {
		writeBadRequest(c, "Invalid start date", err)
		return
	}
	end, err := parseDate(query.End, s.loc, true)
	if err != nil {
		writeBadRequest(c, "Invalid end date", err)
		return
	}
	precisions, err := parsePrecisions(c.QueryArray("precision"))
	if err != nil {
		writeBadRequest(c, "Invalid precision", err)
		return
	}

	resp, err := s.QueryRange(c.Request.Context(), RangeQueryRequest{
		ApplicationCode: c.Param("application_code"),
		Start:           start,
		End:             end,
		Precisions:      precisions,
	})
	if err != nil {
		writeError(c, "Failed to query statistics", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCompare handles GET /v1/statistics/:application_code/compare
// Query parameters: first, second, precision (repeatable or comma separated)
func (s *Service) HandleCompare(c *gin.Context) {
	var query struct {
		First  string `form:"first" binding:"required"`
		Second string `form:"second" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBadRequest(c, "Invalid query parameters", err)
		return
	}

	first, err := parseDate(query.First, s.loc, false)
	if err != nil {
		writeBadRequest(c, "Invalid first date", err)
		return
	}
	second, err := parseDate(query.Second, s.loc, false)
	if err != nil {
		writeBadRequest(c, "Invalid second date", err)
		return
	}
	precisions, err := parsePrecisions(c.QueryArray("precision"))
	if err != nil {
		writeBadRequest(c, "Invalid precision", err)
		return
	}

	resp, err := s.Compare(c.Request.Context(), ComparisonRequest{
		ApplicationCode: c.Param("application_code"),
		First:           first,
		Second:          second,
		Precisions:      precisions,
	})
	if err != nil {
		writeError(c, "Failed to compare statistics", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parseDate accepts RFC3339 timestamps and plain dates. A plain date means the start of
// that day in loc, or its last millisecond when endOfDay is set.
func parseDate(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateOnlyLayout, value, loc)
	if err != nil {
		return time.Time{}, statistic.InvalidArgumentf("%q is neither RFC3339 nor YYYY-MM-DD", value)
	}
	if endOfDay {
		return statistic.DayWindow(d, loc).End, nil
	}
	return d, nil
}

// parsePrecisions parses repeated and comma separated precision values.
func parsePrecisions(values []string) (statistic.PrecisionSet, error) {
	var names []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
	}
	return statistic.ParsePrecisionSet(names)
}

func writeBadRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidArgumentError,
		Message:   message,
		Details:   err.Error(),
	})
}

// writeError maps store and validation errors to HTTP responses.
func writeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, statistic.ErrInvalidArgument):
		writeBadRequest(c, message, err)
	case errors.Is(err, statistic.ErrStoreUnavailable):
		slog.Error(message, "error", err)
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStoreUnavailableError,
			Message:   message,
			Details:   "statistic store unavailable",
		})
	default:
		slog.Error(message, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}
