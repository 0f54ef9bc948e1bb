package handler

import (
	"net/http"

	"tradepro/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Handler serves a development stand-in for the remote analysis service.
type Handler struct {
	tracer   trace.Tracer
	fixtures *FixtureSource
}

func New(tracer trace.Tracer, fixtures *FixtureSource) *Handler {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("handler")
	}
	if fixtures == nil {
		fixtures = NewFixtureSource(nil, nil)
	}
	return &Handler{
		tracer:   tracer,
		fixtures: fixtures,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	api := r.Group("/api")
	api.GET("/symbols", h.GetSymbols)
	api.POST("/analyze", h.Analyze)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSymbols returns the symbols the stub can analyze.
func (h *Handler) GetSymbols(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-symbols")
	defer span.End()

	symbols := h.fixtures.Symbols()
	if symbols == nil {
		symbols = []domain.TradingSymbol{}
	}
	c.JSON(http.StatusOK, symbols)
}
