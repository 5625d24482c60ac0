package light

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFalloffIsMonotonic(t *testing.T) {
	tables := DefaultTables()
	for _, c := range []float64{0, 22.5, 45, 67.5, 90} {
		prev := tables.Falloff(0, c)
		for i := 1; i < distanceSamples; i++ {
			d := float64(i) * distanceStep
			got := tables.Falloff(d, c)
			if got > prev {
				t.Fatalf("collimation %v: falloff rose from %v to %v at d=%v", c, prev, got, d)
			}
			prev = got
		}
	}
}

func TestFalloffShape(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, 1.0, tables.Falloff(0.5, 0), "no falloff inside one tile")
	assert.InDelta(t, 0.25, tables.Falloff(2, 0), 1e-12, "inverse square at collimation 0")
	assert.InDelta(t, 0.5, tables.Falloff(2, 45), 1e-12, "linear at collimation 45")
	assert.Equal(t, 1.0, tables.Falloff(150, 90), "collimated beam does not diverge")
}

func TestFalloffClampsInputs(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, tables.Falloff(0, 30), tables.Falloff(-4, 30))
	assert.Equal(t, tables.Falloff(MaxDistance, 30), tables.Falloff(1e6, 30))
	assert.Equal(t, tables.Falloff(10, 90), tables.Falloff(10, 135))
	assert.Equal(t, tables.Falloff(10, 0), tables.Falloff(10, -20))
}

func TestReachInvertsFalloff(t *testing.T) {
	tables := DefaultTables()
	for _, c := range []float64{0, 10, 20, 40} {
		for b := 0.004; b <= 1; b += 0.01 {
			d := tables.Reach(b, c)
			if d >= MaxDistance {
				continue
			}
			got := tables.Falloff(d, c)
			if math.Abs(got-b) > 0.002+0.06*b {
				t.Errorf("collimation %v: Falloff(Reach(%v)) = %v (reach %v)", c, b, got, d)
			}
		}
	}
}

func TestReachEdges(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, 1.0, tables.Reach(1, 0))
	assert.Equal(t, MaxDistance, tables.Reach(0, 0))
	assert.Equal(t, MaxDistance, tables.Reach(0.5, 90), "non-diverging beams reach the table edge")
	assert.Equal(t, tables.Reach(1, 0), tables.Reach(3, 0))
	r := tables.Reach(1.0/255, 0)
	assert.GreaterOrEqual(t, r, math.Sqrt(255), "reach never undershoots")
	assert.Less(t, r, 20.0)
}

func TestAtan2DegQuadrants(t *testing.T) {
	tables := DefaultTables()
	cases := []struct {
		name   string
		dx, dy float64
		want   float64
	}{
		{"east", 1, 0, 0},
		{"south east", 1, 1, 45},
		{"south", 0, 1, 90},
		{"south west", -1, 1, 135},
		{"west", -1, 0, 180},
		{"north west", -1, -1, 225},
		{"north", 0, -1, 270},
		{"north east", 1, -1, 315},
		{"steep", 0.001, 5, 89.98854},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tables.Atan2Deg(tc.dy, tc.dx), 0.01)
		})
	}
}

func TestAtan2DegMatchesMath(t *testing.T) {
	tables := DefaultTables()
	for deg := 0.0; deg < 360; deg += 0.7 {
		v := Polar(deg).Scale(7.3)
		want := NormalizeDeg(math.Atan2(v.Y, v.X) * 180 / math.Pi)
		got := tables.Atan2Deg(v.Y, v.X)
		require.LessOrEqual(t, AngleDiff(want, got), 0.01, "angle %v", deg)
	}
}

func TestAtanClampsRatio(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, tables.Atan(100), tables.Atan(1e9))
	assert.Equal(t, tables.Atan(-100), tables.Atan(-1e9))
	assert.InDelta(t, 45, tables.Atan(1), 0.01)
}

func TestClampHelpers(t *testing.T) {
	cases := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"collimation below", clampCollimation, -1, 0},
		{"collimation above", clampCollimation, 91, 90},
		{"collimation inside", clampCollimation, 33, 33},
		{"distance above", clampDistance, 250, MaxDistance},
		{"distance below", clampDistance, -0.1, 0},
		{"brightness above", clampBrightness, 1.5, 1},
		{"brightness below", clampBrightness, -2, 0},
		{"ratio above", clampRatio, 1000, maxRatio},
		{"ratio below", clampRatio, -1000, -maxRatio},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fn(tc.in))
		})
	}
}

func TestCheckedIndexPanics(t *testing.T) {
	assert.Panics(t, func() { checkedIndex("falloff", angleRows, angleRows, 0, distanceSamples) })
	assert.Panics(t, func() { checkedIndex("falloff", 0, angleRows, -1, distanceSamples) })
	assert.NotPanics(t, func() { checkedIndex("falloff", angleRows-1, angleRows, distanceSamples-1, distanceSamples) })
}

func TestFalloffAngle(t *testing.T) {
	assert.Equal(t, 90.0, FalloffAngle(0))
	assert.Equal(t, 0.0, FalloffAngle(90))
	assert.Equal(t, 0.0, FalloffAngle(200))
}
