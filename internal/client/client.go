package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tradepro/internal/domain"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultTimeout = 30 * time.Second

	defaultAnalyzeMessage = "Failed to analyze symbol"
	maxErrorBodyBytes     = 64 << 10
)

// Client talks to the remote analysis service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, tracer trace.Tracer, opts ...Option) *Client {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("api-client")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tracer:     tracer,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListSymbols returns the symbols offered by the service, in service order.
func (c *Client) ListSymbols(ctx context.Context) ([]domain.TradingSymbol, error) {
	ctx, span := c.tracer.Start(ctx, "api-client.list-symbols")
	defer span.End()

	resp, err := c.do(ctx, http.MethodGet, "/symbols", nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Error("fetch symbols", "err", err)
		return nil, fmt.Errorf("fetch symbols: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("fetch symbols: status %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		c.logger.Error("fetch symbols", "status", resp.StatusCode)
		return nil, err
	}

	var symbols []domain.TradingSymbol
	if err := json.NewDecoder(resp.Body).Decode(&symbols); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("decode symbols: %w", err)
	}
	span.SetAttributes(attribute.Int("symbols.count", len(symbols)))
	return symbols, nil
}

// AnalyzeSymbol asks the service for a full analysis. Every failure is
// returned as *AnalysisError.
func (c *Client) AnalyzeSymbol(ctx context.Context, symbol, interval string) (*domain.AnalysisResult, error) {
	ctx, span := c.tracer.Start(ctx, "api-client.analyze")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol), attribute.String("interval", interval))

	body, err := json.Marshal(domain.AnalyzeRequest{Symbol: symbol, Interval: interval})
	if err != nil {
		return nil, c.fail(span, &AnalysisError{Message: defaultAnalyzeMessage, Err: err})
	}

	resp, err := c.do(ctx, http.MethodPost, "/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(span, &AnalysisError{Message: defaultAnalyzeMessage, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(span, errorFromResponse(resp))
	}

	var result domain.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, c.fail(span, &AnalysisError{
			Message:    defaultAnalyzeMessage,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode analysis: %w", err),
		})
	}
	if err := result.ChartData.Validate(); err != nil {
		return nil, c.fail(span, &AnalysisError{
			Message:    "malformed chart data",
			StatusCode: resp.StatusCode,
			Err:        err,
		})
	}

	span.SetAttributes(
		attribute.String("signal", string(result.Signal.Signal)),
		attribute.Int("chart.points", result.ChartData.Len()),
	)
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func (c *Client) fail(span trace.Span, err *AnalysisError) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message)
	if errors.Is(err, context.Canceled) {
		c.logger.Debug("analyze cancelled")
	} else {
		c.logger.Error("analyze failed", "message", err.Message, "status", err.StatusCode, "err", err.Err)
	}
	return err
}

func errorFromResponse(resp *http.Response) *AnalysisError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	msg := defaultAnalyzeMessage
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		msg = payload.Error
	}
	return &AnalysisError{
		Message:    msg,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("analyze: status %d", resp.StatusCode),
	}
}
