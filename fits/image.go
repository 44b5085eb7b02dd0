package fits

import (
	"math"

	"github.com/robert-malhotra/go-fits/internal/dtype"
)

// FloatAt returns the pixel at the given coordinates as float64. Coordinates
// follow axis order, NAXIS1 first and fastest-varying; FloatAt(x, y) on a
// 2-D image addresses column x of row y. Out-of-range coordinates return
// NaN.
func (h *HDU) FloatAt(coords ...int) float64 {
	i, ok := h.flatIndex(coords)
	if !ok {
		return math.NaN()
	}
	return dtype.FloatAt(h.Data, i)
}

// IntAt returns the pixel at the given coordinates as int64, truncating
// float pixels. Out-of-range coordinates return 0.
func (h *HDU) IntAt(coords ...int) int64 {
	i, ok := h.flatIndex(coords)
	if !ok {
		return 0
	}
	return dtype.IntAt(h.Data, i)
}

// flatIndex maps axis coordinates to a flat buffer index using the live
// header shape.
func (h *HDU) flatIndex(coords []int) (int, bool) {
	shape := h.Shape()
	if len(coords) != len(shape) || len(shape) == 0 {
		return 0, false
	}
	index := 0
	for i := len(shape) - 1; i >= 0; i-- {
		if coords[i] < 0 || coords[i] >= shape[i] {
			return 0, false
		}
		index = index*shape[i] + coords[i]
	}
	if index >= dtype.Len(h.Data) {
		return 0, false
	}
	return index, true
}

// FloatPixels returns the image data as float64 values grouped into rows.
// A 2-D image yields NAXIS2 rows of NAXIS1 values each, NAXIS1 being the
// fastest-varying dimension; any other rank yields a single flat row.
func (h *HDU) FloatPixels() [][]float64 {
	n := dtype.Len(h.Data)
	flat := make([]float64, n)
	for i := range flat {
		flat[i] = dtype.FloatAt(h.Data, i)
	}

	shape := h.Shape()
	if len(shape) != 2 || shape[0] <= 0 {
		return [][]float64{flat}
	}

	width, height := shape[0], shape[1]
	rows := make([][]float64, 0, height)
	for r := 0; r+1 <= height && (r+1)*width <= n; r++ {
		rows = append(rows, flat[r*width:(r+1)*width])
	}
	return rows
}

// ImageStats summarizes the pixel values of an image HDU.
type ImageStats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	N      int // pixels counted, excluding BLANK and NaN
}

// Stats computes minimum, maximum, mean and standard deviation over the
// image buffer. Integer pixels equal to the header BLANK value and float
// NaN pixels are excluded. ok is false when the unit holds no image data
// or no countable pixels.
func (h *HDU) Stats() (stats ImageStats, ok bool) {
	n := dtype.Len(h.Data)
	if h.IsTable() || n == 0 {
		return ImageStats{}, false
	}

	blank, hasBlank := h.Header.GetInt("BLANK")
	bitpix, _ := h.Header.GetInt("BITPIX")

	stats.Min = math.MaxFloat64
	stats.Max = -math.MaxFloat64
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := dtype.FloatAt(h.Data, i)
		if math.IsNaN(v) {
			continue
		}
		if hasBlank && bitpix > 0 && dtype.IntAt(h.Data, i) == int64(blank) {
			continue
		}
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
		sum += v
		sumSq += v * v
		stats.N++
	}
	if stats.N == 0 {
		return ImageStats{}, false
	}

	mean := sum / float64(stats.N)
	stats.Mean = mean
	variance := sumSq/float64(stats.N) - mean*mean
	if variance > 0 {
		stats.StdDev = math.Sqrt(variance)
	}
	return stats, true
}

// DisplayRange returns low/high clipping limits for a linear display
// stretch: mean +/- nsigma standard deviations, clamped to the data range.
// A non-positive nsigma defaults to 3.
func (s ImageStats) DisplayRange(nsigma float64) (low, high float64) {
	if nsigma <= 0 {
		nsigma = 3
	}
	low = math.Max(s.Min, s.Mean-nsigma*s.StdDev)
	high = math.Min(s.Max, s.Mean+nsigma*s.StdDev)
	return low, high
}
