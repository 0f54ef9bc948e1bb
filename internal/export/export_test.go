package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"tradepro/internal/domain"
)

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	e := New(filepath.Join(t.TempDir(), "exports"), nil)
	e.now = func() time.Time { return time.Date(2026, 4, 1, 9, 30, 15, 0, time.UTC) }
	return e
}

func testResult(points int) *domain.AnalysisResult {
	cd := domain.ChartData{}
	for i := 0; i < points; i++ {
		cd.Timestamps = append(cd.Timestamps, int64(1700000000000+i*60000))
		cd.Prices = append(cd.Prices, 100+float64(i))
		cd.Volumes = append(cd.Volumes, 1000)
		cd.SMA20 = append(cd.SMA20, 100)
		cd.SMA50 = append(cd.SMA50, 99)
		cd.RSI = append(cd.RSI, 55)
		cd.MACD = append(cd.MACD, 0.1)
		cd.MACDSignal = append(cd.MACDSignal, 0.05)
	}
	return &domain.AnalysisResult{
		Symbol:       "AAPL",
		Interval:     "1m",
		CurrentPrice: 101,
		Signal:       domain.TradingSignal{Signal: domain.SignalHold, Reasons: []string{"No clear signals"}},
		ChartData:    cd,
	}
}

func TestExportWritesJSONAndPNG(t *testing.T) {
	e := newTestExporter(t)
	result := testResult(10)

	files, err := e.Export(result)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if filepath.Base(files.JSON) != "AAPL_1m_20260401-093015.json" {
		t.Fatalf("unexpected json name %s", files.JSON)
	}
	if filepath.Base(files.PNG) != "AAPL_1m_20260401-093015.png" {
		t.Fatalf("unexpected png name %s", files.PNG)
	}

	raw, err := os.ReadFile(files.JSON)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var got domain.AnalysisResult
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if !reflect.DeepEqual(&got, result) {
		t.Fatalf("exported JSON does not match result")
	}

	info, err := os.Stat(files.PNG)
	if err != nil {
		t.Fatalf("stat png: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty png")
	}
}

func TestExportSkipsPNGWithoutChartData(t *testing.T) {
	e := newTestExporter(t)

	files, err := e.Export(testResult(0))
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if files.PNG != "" {
		t.Fatalf("expected no png, got %s", files.PNG)
	}
	if _, err := os.Stat(files.JSON); err != nil {
		t.Fatalf("expected json file: %v", err)
	}
}

func TestExportNilResult(t *testing.T) {
	if _, err := newTestExporter(t).Export(nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestFileStemSanitizes(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := fileStem(&domain.AnalysisResult{Symbol: "BRK/B", Interval: "1d"}, at)
	if got != "BRKB_1d_20260102-030405" {
		t.Fatalf("unexpected stem %s", got)
	}
	got = fileStem(&domain.AnalysisResult{}, at)
	if got != "analysis_20260102-030405" {
		t.Fatalf("unexpected stem %s", got)
	}
}
