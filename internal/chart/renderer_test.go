package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"tradepro/internal/domain"
)

func TestRenderAnalysis(t *testing.T) {
	renderer := NewRenderer()
	result := &domain.AnalysisResult{Symbol: "AAPL", Interval: "1h", ChartData: buildTestChartData(60)}

	image, err := renderer.RenderAnalysis(result)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if image == nil || len(image.Bytes) == 0 {
		t.Fatal("expected non-empty image bytes")
	}
	if image.MimeType != "image/png" {
		t.Fatalf("expected image/png mime type, got %s", image.MimeType)
	}

	decoded, err := png.Decode(bytes.NewReader(image.Bytes))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != image.Width || b.Dy() != image.Height {
		t.Fatalf("expected %dx%d, got %dx%d", image.Width, image.Height, b.Dx(), b.Dy())
	}
}

func TestRenderAnalysisNeedsTwoPoints(t *testing.T) {
	renderer := NewRenderer()
	for _, n := range []int{0, 1} {
		_, err := renderer.RenderAnalysis(&domain.AnalysisResult{ChartData: buildTestChartData(n)})
		if err == nil {
			t.Fatalf("expected error for %d points", n)
		}
	}
	if _, err := renderer.RenderAnalysis(nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestSplitPanelsStacksWithoutOverlap(t *testing.T) {
	panels := splitPanels(imageRect(0, 0, 100, 500), []int{40, 15, 20, 25})
	if len(panels) != 4 {
		t.Fatalf("expected 4 panels, got %d", len(panels))
	}
	for i := 1; i < len(panels); i++ {
		if panels[i].Min.Y < panels[i-1].Max.Y {
			t.Fatalf("panel %d overlaps panel %d", i, i-1)
		}
	}
	if panels[3].Max.Y > 500 {
		t.Fatalf("last panel exceeds bounds: %v", panels[3])
	}
}

func buildTestChartData(count int) domain.ChartData {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	cd := domain.ChartData{
		Timestamps: make([]int64, count),
		Prices:     make([]float64, count),
		Volumes:    make([]float64, count),
		SMA20:      make([]float64, count),
		SMA50:      make([]float64, count),
		RSI:        make([]float64, count),
		MACD:       make([]float64, count),
		MACDSignal: make([]float64, count),
	}
	for i := 0; i < count; i++ {
		x := float64(i) / 5
		cd.Timestamps[i] = base.Add(time.Duration(i) * time.Hour).UnixMilli()
		cd.Prices[i] = 100 + 5*math.Sin(x)
		cd.Volumes[i] = 1000 + float64((i%17)*80)
		cd.SMA20[i] = 100 + 3*math.Sin(x-0.5)
		cd.SMA50[i] = 100 + math.Sin(x-1)
		cd.RSI[i] = 50 + 30*math.Sin(x)
		cd.MACD[i] = math.Sin(x)
		cd.MACDSignal[i] = math.Sin(x - 0.4)
	}
	return cd
}
