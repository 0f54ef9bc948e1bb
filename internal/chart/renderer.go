package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"tradepro/internal/domain"
)

const (
	defaultChartWidth  = 960
	defaultChartHeight = 900
	panelGap           = 18
)

var (
	colBackground = color.RGBA{R: 250, G: 252, B: 255, A: 255}
	colGrid       = color.RGBA{R: 225, G: 232, B: 240, A: 255}
	colPrice      = color.RGBA{R: 62, G: 106, B: 214, A: 255}
	colSMA20      = color.RGBA{R: 255, G: 149, B: 0, A: 255}
	colSMA50      = color.RGBA{R: 18, G: 140, B: 126, A: 255}
	colSignal     = color.RGBA{R: 210, G: 61, B: 87, A: 255}
	colBand       = color.RGBA{R: 104, G: 122, B: 146, A: 255}
	colVolume     = color.RGBA{R: 120, G: 139, B: 164, A: 255}
)

// Image is an encoded chart ready to be written to disk.
type Image struct {
	MimeType string
	Width    int
	Height   int
	Bytes    []byte
}

type Renderer struct {
	width  int
	height int
}

func NewRenderer() *Renderer {
	return &Renderer{width: defaultChartWidth, height: defaultChartHeight}
}

// RenderAnalysis draws the price, volume, RSI and MACD panels of an
// analysis into a single PNG.
func (r *Renderer) RenderAnalysis(result *domain.AnalysisResult) (*Image, error) {
	if result == nil {
		return nil, fmt.Errorf("no analysis to render")
	}
	rows := BuildRows(result.ChartData)
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 points to render chart, got %d", len(rows))
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	fillRect(img, img.Bounds(), colBackground)

	panels := splitPanels(image.Rect(60, 20, r.width-20, r.height-20), []int{40, 15, 20, 25})
	drawGrid(img, panels[0], 8, 6)
	drawGrid(img, panels[1], 8, 2)
	drawGrid(img, panels[2], 8, 4)
	drawGrid(img, panels[3], 8, 4)

	drawPricePanel(img, panels[0], rows)
	drawVolumePanel(img, panels[1], rows)
	drawRSIPanel(img, panels[2], rows)
	drawMACDPanel(img, panels[3], rows)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return &Image{
		MimeType: "image/png",
		Width:    r.width,
		Height:   r.height,
		Bytes:    buf.Bytes(),
	}, nil
}

// splitPanels stacks panels vertically inside outer, sized by weight.
func splitPanels(outer image.Rectangle, weights []int) []image.Rectangle {
	total := 0
	for _, w := range weights {
		total += w
	}
	usable := outer.Dy() - panelGap*(len(weights)-1)
	out := make([]image.Rectangle, len(weights))
	y := outer.Min.Y
	for i, w := range weights {
		h := usable * w / total
		out[i] = image.Rect(outer.Min.X, y, outer.Max.X, y+h)
		y += h + panelGap
	}
	return out
}

func drawPricePanel(img *image.RGBA, rect image.Rectangle, rows []Row) {
	prices, sma20, sma50 := Prices(rows), SMA20(rows), SMA50(rows)
	minV, maxV := finiteBounds(append(append(append([]float64{}, prices...), sma20...), sma50...))
	drawSeries(img, rect, sma50, minV, maxV, colSMA50)
	drawSeries(img, rect, sma20, minV, maxV, colSMA20)
	drawSeries(img, rect, prices, minV, maxV, colPrice)
}

func drawVolumePanel(img *image.RGBA, rect image.Rectangle, rows []Row) {
	volumes := Volumes(rows)
	_, maxV := finiteBounds(volumes)
	drawBars(img, rect, volumes, 0, maxV, colVolume)
}

func drawRSIPanel(img *image.RGBA, rect image.Rectangle, rows []Row) {
	drawHorizontalValueLine(img, rect, domain.RSIOversoldLevel, 0, 100, colBand)
	drawHorizontalValueLine(img, rect, domain.RSIOverboughtLevel, 0, 100, colBand)
	drawSeries(img, rect, RSI(rows), 0, 100, colPrice)
}

func drawMACDPanel(img *image.RGBA, rect image.Rectangle, rows []Row) {
	macd, signal := MACD(rows), MACDSignal(rows)
	minV, maxV := finiteBounds(macd)
	minS, maxS := finiteBounds(signal)
	minV = math.Min(minV, minS)
	maxV = math.Max(maxV, maxS)
	if minV == maxV {
		maxV = minV + 1
	}
	drawHorizontalValueLine(img, rect, 0, minV, maxV, colBand)
	drawSeries(img, rect, macd, minV, maxV, colPrice)
	drawSeries(img, rect, signal, minV, maxV, colSignal)
}

func drawSeries(img *image.RGBA, rect image.Rectangle, series []float64, minV, maxV float64, col color.RGBA) {
	lastX, lastY := -1, -1
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			lastX, lastY = -1, -1
			continue
		}
		x := mapIndexToX(i, len(series), rect)
		y := mapValueToY(v, minV, maxV, rect)
		if lastX >= 0 {
			drawLine(img, lastX, lastY, x, y, col)
		}
		lastX, lastY = x, y
	}
}

func drawBars(img *image.RGBA, rect image.Rectangle, series []float64, minV, maxV float64, col color.RGBA) {
	barW := max(1, (rect.Dx()-10)/len(series)-1)
	zeroY := mapValueToY(0, minV, maxV, rect)
	for i, v := range series {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		x := mapIndexToX(i, len(series), rect)
		y := mapValueToY(v, minV, maxV, rect)
		top := min(y, zeroY)
		bottom := max(y, zeroY)
		fillRect(img, image.Rect(x-barW/2, top, x+barW/2+1, bottom+1), col)
	}
}

func drawGrid(img *image.RGBA, rect image.Rectangle, verticalLines, horizontalLines int) {
	for i := 0; i <= verticalLines; i++ {
		x := rect.Min.X + (rect.Dx()*i)/max(1, verticalLines)
		drawLine(img, x, rect.Min.Y, x, rect.Max.Y, colGrid)
	}
	for i := 0; i <= horizontalLines; i++ {
		y := rect.Min.Y + (rect.Dy()*i)/max(1, horizontalLines)
		drawLine(img, rect.Min.X, y, rect.Max.X, y, colGrid)
	}
}

func drawHorizontalValueLine(img *image.RGBA, rect image.Rectangle, value, minV, maxV float64, col color.RGBA) {
	y := mapValueToY(value, minV, maxV, rect)
	drawLine(img, rect.Min.X, y, rect.Max.X, y, col)
}

func mapIndexToX(idx, total int, rect image.Rectangle) int {
	if total <= 1 {
		return rect.Min.X
	}
	return rect.Min.X + (idx*(rect.Dx()-1))/(total-1)
}

func mapValueToY(value, minV, maxV float64, rect image.Rectangle) int {
	if maxV <= minV {
		return rect.Max.Y
	}
	ratio := (value - minV) / (maxV - minV)
	ratio = math.Max(0, math.Min(1, ratio))
	return rect.Max.Y - int(ratio*float64(rect.Dy()-1))
}

func finiteBounds(values []float64) (float64, float64) {
	minV := math.Inf(1)
	maxV := math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if math.IsInf(minV, 1) || math.IsInf(maxV, -1) {
		return 0, 1
	}
	if minV == maxV {
		return minV, maxV + 1
	}
	return minV, maxV
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	r := rect.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
