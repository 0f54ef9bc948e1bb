package handler

import (
	"errors"
	"net/http"
	"strings"

	"tradepro/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// Analyze returns a synthetic AnalysisResult for the requested symbol.
// Missing fields default to AAPL / 1d.
func (h *Handler) Analyze(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		req.Symbol = domain.DefaultSymbol
	}
	req.Interval = strings.TrimSpace(req.Interval)
	if req.Interval == "" {
		req.Interval = domain.DefaultInterval
	}
	span.SetAttributes(attribute.String("symbol", req.Symbol), attribute.String("interval", req.Interval))

	result, err := h.fixtures.Analysis(req.Symbol, req.Interval)
	switch {
	case errors.Is(err, ErrUnknownSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch data"})
		return
	case errors.Is(err, ErrUnsupportedInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported interval: " + req.Interval})
		return
	case err != nil:
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
