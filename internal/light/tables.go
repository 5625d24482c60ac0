package light

import (
	"fmt"
	"math"
	"sync"
)

// Table geometry. Rows of the falloff tables are indexed by falloff angle in
// half-degree steps; the exponent of a row is angle/45.
const (
	angleStep = 0.5
	maxAngle  = 90.0
	angleRows = 181

	distanceStep    = 0.05
	MaxDistance     = 200.0
	distanceSamples = 4001

	brightnessStep    = 0.001
	brightnessSamples = 1001

	ratioStep    = 0.0001
	maxRatio     = 100.0
	ratioSamples = 2000001
)

// Tables memoizes the falloff curve, its inverse and the arctangent.
// A Tables value is immutable after NewTables returns and safe to share.
type Tables struct {
	falloff []float64 // angleRows x distanceSamples
	reach   []float64 // angleRows x brightnessSamples
	tangent []float64 // ratioSamples, degrees
}

// NewTables builds all three tables.
func NewTables() *Tables {
	t := &Tables{
		falloff: make([]float64, angleRows*distanceSamples),
		reach:   make([]float64, angleRows*brightnessSamples),
		tangent: make([]float64, ratioSamples),
	}
	for row := 0; row < angleRows; row++ {
		power := float64(row) * angleStep / 45
		for i := 0; i < distanceSamples; i++ {
			d := math.Max(1, float64(i)*distanceStep)
			t.falloff[row*distanceSamples+i] = math.Pow(d, -power)
		}
		for j := 0; j < brightnessSamples; j++ {
			t.reach[row*brightnessSamples+j] = reachOf(float64(j)*brightnessStep, power)
		}
	}
	for k := 0; k < ratioSamples; k++ {
		r := float64(k)*ratioStep - maxRatio
		t.tangent[k] = math.Atan(r) * 180 / math.Pi
	}
	return t
}

// reachOf solves d^-power = b for d, clamped to [1, MaxDistance].
func reachOf(b, power float64) float64 {
	if b >= 1 {
		return 1
	}
	if power == 0 || b <= 0 {
		return MaxDistance
	}
	d := math.Pow(b, -1/power)
	return math.Min(MaxDistance, math.Max(1, d))
}

var shared struct {
	once sync.Once
	t    *Tables
}

// DefaultTables returns a process-wide Tables, building it on first use.
func DefaultTables() *Tables {
	shared.once.Do(func() { shared.t = NewTables() })
	return shared.t
}

// Falloff returns the brightness factor in (0, 1] after travelling distance
// tiles from an emitter of the given collimation.
func (t *Tables) Falloff(distance, collimation float64) float64 {
	row := angleRow(collimation)
	col := int(math.Round(clampDistance(distance) / distanceStep))
	return t.falloff[checkedIndex("falloff", row, angleRows, col, distanceSamples)]
}

// Reach returns the distance at which the falloff of an emitter with the
// given collimation drops to brightness. Lookups round towards dimmer
// entries so the answer never undershoots.
func (t *Tables) Reach(brightness, collimation float64) float64 {
	row := angleRow(collimation)
	col := int(math.Floor(clampBrightness(brightness)/brightnessStep + 1e-9))
	return t.reach[checkedIndex("reach", row, angleRows, col, brightnessSamples)]
}

// Atan returns atan(ratio) in degrees; ratios beyond ±100 clamp to the edge.
func (t *Tables) Atan(ratio float64) float64 {
	col := int(math.Round((clampRatio(ratio) + maxRatio) / ratioStep))
	return t.tangent[checkedIndex("tangent", 0, 1, col, ratioSamples)]
}

// Atan2Deg returns the direction of (dx, dy) in [0, 360) degrees, 0 east and
// 90 south. The ratio handed to the table is folded into [0, 1] so steep
// angles keep full resolution.
func (t *Tables) Atan2Deg(dy, dx float64) float64 {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax == 0 && ay == 0 {
		return 0
	}
	var a float64
	if ay <= ax {
		a = t.Atan(ay / ax)
	} else {
		a = 90 - t.Atan(ax/ay)
	}
	switch {
	case dx >= 0 && dy >= 0:
		return a
	case dx < 0 && dy >= 0:
		return 180 - a
	case dx < 0 && dy < 0:
		return 180 + a
	default:
		return NormalizeDeg(360 - a)
	}
}

// FalloffAngle converts a collimation into the falloff row angle.
// Collimation 0 radiates with inverse-square falloff; 90 does not diverge.
func FalloffAngle(collimation float64) float64 {
	return maxAngle - clampCollimation(collimation)
}

func angleRow(collimation float64) int {
	return int(math.Round(FalloffAngle(collimation) / angleStep))
}

func clampCollimation(c float64) float64 { return clamp(c, 0, maxAngle) }

func clampDistance(d float64) float64 { return clamp(d, 0, MaxDistance) }

func clampBrightness(b float64) float64 { return clamp(b, 0, 1) }

func clampRatio(r float64) float64 { return clamp(r, -maxRatio, maxRatio) }

// clamp bounds v to [lo, hi]. NaN passes through and trips the index check.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func checkedIndex(table string, row, rows, col, cols int) int {
	if row < 0 || row >= rows || col < 0 || col >= cols {
		panic(fmt.Sprintf("light: %s table index (%d, %d) outside %dx%d", table, row, col, rows, cols))
	}
	return row*cols + col
}
