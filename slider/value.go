package slider

import (
	"math"
	"strconv"
	"strings"
)

func decimals(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// roundTo strips float noise accumulated by step arithmetic.
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

func (c Context) precision() int {
	return max(decimals(c.Step), decimals(c.Min))
}

// EffectiveMax is the largest value reachable from Min in whole steps.
func (c Context) EffectiveMax() float64 {
	steps := math.Floor((c.Max-c.Min)/c.Step + 1e-9)
	return roundTo(c.Min+steps*c.Step, c.precision())
}

// Snap clamps v to the slider range and rounds it to the nearest step from
// Min. NaN snaps to Min.
func (c Context) Snap(v float64) float64 {
	hi := c.EffectiveMax()
	if math.IsNaN(v) || v <= c.Min {
		return c.Min
	}
	if v >= hi {
		return hi
	}
	snapped := roundTo(c.Min+math.Round((v-c.Min)/c.Step)*c.Step, c.precision())
	return min(max(snapped, c.Min), hi)
}

// thumbBounds returns the range thumb i may move in without crossing its neighbours.
func (c Context) thumbBounds(i int) (lo, hi float64) {
	lo, hi = c.Min, c.EffectiveMax()
	if i > 0 {
		lo = c.Value[i-1]
	}
	if i < len(c.Value)-1 {
		hi = c.Value[i+1]
	}
	return lo, hi
}

// setThumb writes the snapped v to thumb i, kept between its neighbours.
func (c *Context) setThumb(i int, v float64) {
	lo, hi := c.thumbBounds(i)
	c.Value[i] = min(max(c.Snap(v), lo), hi)
}

// Percent maps v onto 0..100 of the range.
func (c Context) Percent(v float64) float64 {
	if c.Max == c.Min {
		return 0
	}
	return (v - c.Min) / (c.Max - c.Min) * 100
}

// closestThumb returns the index of the thumb nearest v.
func (c Context) closestThumb(v float64) int {
	best, dist := 0, math.Inf(1)
	for i, tv := range c.Value {
		if d := math.Abs(tv - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
