package light

import (
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap is an in-memory Map; every tile starts as white open floor.
type testMap struct {
	w, h  int
	cells []Surface
}

func openMap(w, h int) *testMap {
	m := &testMap{w: w, h: h, cells: make([]Surface, w*h)}
	for i := range m.cells {
		m.cells[i] = Surface{Color: White}
	}
	return m
}

func (m *testMap) Size() (int, int)         { return m.w, m.h }
func (m *testMap) Surface(x, y int) Surface { return m.cells[y*m.w+x] }
func (m *testMap) set(x, y int, s Surface)  { m.cells[y*m.w+x] = s }

// walled surrounds the map with a ring of walls.
func (m *testMap) walled(reflectivity float64) *testMap {
	for x := 0; x < m.w; x++ {
		m.set(x, 0, wallSurface(reflectivity))
		m.set(x, m.h-1, wallSurface(reflectivity))
	}
	for y := 0; y < m.h; y++ {
		m.set(0, y, wallSurface(reflectivity))
		m.set(m.w-1, y, wallSurface(reflectivity))
	}
	return m
}

func wallSurface(reflectivity float64) Surface {
	return Surface{Blocked: true, BlocksSight: true, Color: White, Reflectivity: reflectivity}
}

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := NewEngine(cfg, DefaultTables())
	require.NoError(t, err)
	return e
}

func noReflections(c *Config) { c.ReflectionLevel = 0 }

// lamp is an isotropic white emitter at the centre of tile (x, y).
func lamp(x, y int) Emission {
	return Source{Enabled: true, Intensity: White, Sweep: 180}.Emission(image.Pt(x, y), 0)
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RaycastStep = 0
	cfg.ReflectionLevel = -1
	_, err := NewEngine(cfg, DefaultTables())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raycast step")
	assert.Contains(t, err.Error(), "reflection level")

	_, err = NewEngine(DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestEmissionRotatesOffset(t *testing.T) {
	s := Source{Offset: Vec{0.3, 0}, Intensity: White, Sweep: 30}
	em := s.Emission(image.Pt(5, 5), 90)
	assert.InDelta(t, 5.5, em.Origin.X, 1e-9)
	assert.InDelta(t, 5.8, em.Origin.Y, 1e-9)
	assert.Equal(t, image.Pt(5, 5), em.Housing)
	assert.Equal(t, 90.0, em.Direction)

	em = s.Emission(image.Pt(5, 5), -90)
	assert.InDelta(t, 5.2, em.Origin.Y, 1e-9)
	assert.Equal(t, 270.0, em.Direction)
}

func TestBoundsFollowIntensity(t *testing.T) {
	e := newTestEngine(t, nil)
	m := openMap(100, 100)

	em := lamp(50, 50)
	r := int(math.Ceil(e.tables.Reach(e.cfg.BrightnessFloor, 0)))
	assert.Equal(t, image.Rect(50-r, 50-r, 51+r, 51+r), e.Bounds(m, em))

	em.Intensity = Gray(0.5)
	dim := e.Bounds(m, em)
	assert.Less(t, dim.Dx(), 2*r+1)
	assert.Equal(t, dim.Dx(), dim.Dy())

	corner := e.Bounds(m, lamp(1, 1))
	assert.Equal(t, image.Pt(0, 0), corner.Min)
	assert.Equal(t, image.Pt(2+r, 2+r), corner.Max)

	em.Intensity = Gray(0.001)
	assert.Equal(t, image.Rect(50, 50, 51, 51), e.Bounds(m, em))
	p := e.Cast(m, em)
	assert.Zero(t, p.Rays)
	assert.True(t, p.Field.At(50, 50).IsZero())
}

func TestIsotropicLightInOpenRoom(t *testing.T) {
	e := newTestEngine(t, nil)
	m := openMap(21, 21)
	res := e.Compute(m, lamp(10, 10))
	f := res.Field

	require.Equal(t, image.Rect(0, 0, 21, 21), f.Bounds)
	assert.Empty(t, res.Reflections, "nothing to bounce off")

	_, peak := f.Brightest()
	assert.Equal(t, peak, f.At(10, 10), "source tile holds the peak")
	assert.Equal(t, White, f.At(10, 10))

	// Strictly along the eight compass lines.
	for _, d := range []image.Point{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}} {
		prev := f.At(10, 10).MaxChannel()
		for p := image.Pt(10, 10).Add(d); f.Contains(p.X, p.Y); p = p.Add(d) {
			v := f.At(p.X, p.Y).MaxChannel()
			require.LessOrEqual(t, v, prev, "direction %v at %v", d, p)
			require.Greater(t, v, 0.0, "open room tile %v unlit", p)
			prev = v
		}
	}

	// Between any two tiles whose centres are more than a tile apart in
	// distance, the nearer one is at least as bright.
	type sample struct{ d, v float64 }
	var samples []sample
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			samples = append(samples, sample{math.Hypot(float64(x-10), float64(y-10)), f.At(x, y).MaxChannel()})
		}
	}
	for _, a := range samples {
		for _, b := range samples {
			if a.d+1 < b.d && a.v < b.v {
				t.Fatalf("tile at distance %.2f (%v) darker than tile at %.2f (%v)", a.d, a.v, b.d, b.v)
			}
		}
	}

	radius := e.tables.Reach(e.cfg.BrightnessFloor, 0)
	assert.LessOrEqual(t, e.tables.Falloff(radius, 0), e.cfg.BrightnessFloor)
}

func TestEmbeddedSourceDoesNotLightItsHousing(t *testing.T) {
	e := newTestEngine(t, noReflections)
	m := openMap(11, 11)
	m.set(5, 5, wallSurface(0))

	embedded := e.Compute(m, lamp(5, 5)).Field
	assert.True(t, embedded.At(5, 5).IsZero())
	assert.False(t, embedded.At(6, 5).IsZero(), "light still escapes the housing")

	other := e.Compute(m, lamp(2, 5)).Field
	require.False(t, other.At(5, 5).IsZero())

	sum := NewIntegrator(11, 11).Sum([]*Field{embedded, other})
	assert.Equal(t, other.At(5, 5), sum.At(5, 5))
}

func TestEmbeddedSourceDoesNotLightItsHousingWithBounces(t *testing.T) {
	e := newTestEngine(t, nil)
	m := openMap(11, 11).walled(0.9)
	em := lamp(0, 5)
	em.Intensity = Gray(5)

	res := e.Compute(m, em)
	require.NotEmpty(t, res.Reflections, "the mirrored walls bounce light back")
	assert.True(t, res.Field.At(0, 5).IsZero(), "housing stays dark")
	assert.False(t, res.Field.At(0, 4).IsZero(), "neighbouring wall is lit")
	assert.False(t, res.Field.At(1, 5).IsZero())
}

// eastRay traces a single ray from the centre of (3,5) due east across a
// 12x11 map and returns the field and the collision candidates.
func eastRay(t *testing.T, e *Engine, m Map) (*Field, []Reflection) {
	t.Helper()
	em := Emission{
		Origin:      Vec{3.5, 5.5},
		Housing:     image.Pt(3, 5),
		Intensity:   White,
		Sweep:       0.5,
		Collimation: 90,
	}
	field := NewField(image.Rect(0, 0, 12, 11))
	out := e.trace(m, em, field, Vec{8, 0}, 0, nil)
	return field, out
}

func TestReflectiveGlassSplitsTheRay(t *testing.T) {
	e := newTestEngine(t, noReflections)
	tint := RGB{1, 0.5, 0.5}
	m := openMap(12, 11)
	m.set(6, 5, Surface{Blocked: true, Color: tint, Reflectivity: 0.2, RefractiveIndex: 1.5})

	clear, none := eastRay(t, e, openMap(12, 11))
	require.Empty(t, none)
	field, out := eastRay(t, e, m)

	require.Len(t, out, 1, "one partial mirror candidate on entry")
	c := out[0]
	assert.False(t, c.Diffuse)
	assert.Equal(t, image.Pt(6, 5), c.Tile)
	assert.Equal(t, FaceWest, c.Face)
	assert.InDelta(t, Mirror(0, FaceWest), c.Direction, 1e-9)
	want := clear.At(6, 5).Mul(tint).Scale(0.2)
	assert.InDelta(t, want.R, c.Intensity.R, 1e-9)
	assert.InDelta(t, want.G, c.Intensity.G, 1e-9)
	assert.InDelta(t, want.B, c.Intensity.B, 1e-9)

	behind := field.At(8, 5)
	pass := clear.At(8, 5).Mul(tint).Scale(0.8)
	assert.InDelta(t, pass.R, behind.R, 1e-9)
	assert.InDelta(t, pass.G, behind.G, 1e-9)
	assert.InDelta(t, pass.B, behind.B, 1e-9)
	assert.Equal(t, clear.At(6, 5), field.At(6, 5), "the pane is lit before it filters")
}

func TestPartlyReflectiveWallSplitsDiffuseAndSpecular(t *testing.T) {
	e := newTestEngine(t, noReflections)
	m := openMap(12, 11)
	m.set(6, 5, wallSurface(0.3))

	field, out := eastRay(t, e, m)
	require.Len(t, out, 2)
	bright := field.At(6, 5)
	require.False(t, bright.IsZero())
	assert.True(t, field.At(7, 5).IsZero(), "the ray stops at the wall")

	diffuse, specular := out[0], out[1]
	require.True(t, diffuse.Diffuse)
	require.False(t, specular.Diffuse)

	assert.Equal(t, FaceWest, diffuse.Face)
	assert.Equal(t, FaceWest.Normal(), diffuse.Direction)
	assert.InDelta(t, bright.R*0.7, diffuse.Intensity.R, 1e-9)
	assert.Equal(t, e.cfg.DiffuseSweep, diffuse.Sweep)

	assert.InDelta(t, Mirror(0, FaceWest), specular.Direction, 1e-9)
	assert.InDelta(t, bright.R*0.3, specular.Intensity.R, 1e-9)
	assert.Equal(t, 0.5, specular.Sweep)
	assert.Equal(t, 90.0, specular.Collimation)
}

func TestCastNeverDarkensBelowAnySingleRay(t *testing.T) {
	e := newTestEngine(t, nil)
	m := openMap(15, 15)
	m.set(9, 6, wallSurface(0.5))
	m.set(4, 9, Surface{Blocked: true, Color: RGB{0.2, 0.9, 0.4}})
	em := lamp(7, 7)

	pass := e.Cast(m, em)
	b := pass.Field.Bounds
	for _, target := range perimeter(b, e.cfg.RaycastFineness) {
		delta := target.Sub(em.Origin)
		single := NewField(b)
		e.trace(m, em, single, delta, e.tables.Atan2Deg(delta.Y, delta.X), nil)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				all, one := pass.Field.At(x, y), single.At(x, y)
				if all.R < one.R || all.G < one.G || all.B < one.B {
					t.Fatalf("tile (%d,%d) holds %v, a single ray delivered %v", x, y, all, one)
				}
			}
		}
	}
}

func TestSweepLimitsTheCone(t *testing.T) {
	e := newTestEngine(t, noReflections)
	m := openMap(21, 21)
	em := lamp(10, 10)
	em.Sweep = 45

	f := e.Cast(m, em).Field
	assert.False(t, f.At(14, 10).IsZero(), "ahead")
	assert.False(t, f.At(14, 12).IsZero(), "inside the cone")
	assert.True(t, f.At(6, 10).IsZero(), "behind")
	assert.True(t, f.At(10, 4).IsZero(), "to the side")
}

func TestTransparentSolidFiltersLight(t *testing.T) {
	e := newTestEngine(t, noReflections)
	m := openMap(12, 11)
	m.set(6, 5, Surface{Blocked: true, Color: RGB{1, 0, 0}})

	f := e.Compute(m, lamp(3, 5)).Field
	clear := e.Compute(openMap(12, 11), lamp(3, 5)).Field

	behind := f.At(8, 5)
	assert.Greater(t, behind.R, 0.0)
	assert.Zero(t, behind.G)
	assert.Zero(t, behind.B)
	assert.InDelta(t, clear.At(8, 5).R, behind.R, 1e-12, "red passes untouched")
	assert.Greater(t, f.At(6, 5).G, 0.0, "the glass itself is lit by white light")
}

func TestReflectionLevelBoundsTheCascade(t *testing.T) {
	m := openMap(15, 15).walled(0.3)
	em := lamp(7, 7)

	for level := 0; level <= 3; level++ {
		e := newTestEngine(t, func(c *Config) { c.ReflectionLevel = level })
		res := e.Compute(m, em)
		assert.LessOrEqual(t, len(res.Reflections), level, "level %d", level)
	}

	e0 := newTestEngine(t, noReflections)
	direct := e0.Cast(m, em)
	level0 := e0.Compute(m, em)
	assert.Empty(t, level0.Reflections)
	assert.Equal(t, direct.Field, level0.Field, "no reflection-derived light at level 0")

	e1 := newTestEngine(t, func(c *Config) { c.ReflectionLevel = 1 })
	level1 := e1.Compute(m, em)
	require.Len(t, level1.Reflections, 1)
	assert.Greater(t, level1.Reflections[0], 0)
	assert.Greater(t, level1.Rays, level0.Rays)

	brighter := false
	b := level0.Field.Bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			require.True(t, level1.Field.Contains(x, y))
			lo, hi := level0.Field.At(x, y), level1.Field.At(x, y)
			require.GreaterOrEqual(t, hi.R, lo.R, "tile (%d,%d)", x, y)
			if hi.R > lo.R {
				brighter = true
			}
		}
	}
	assert.True(t, brighter, "bounced light adds irradiance")
}

func TestSpecularReflectionMirrorsIncidence(t *testing.T) {
	// A mirror column at x=6 just east of the emitter; tall enough that a
	// nearly grazing ray still meets it.
	m := openMap(12, 80)
	for y := 0; y < 80; y++ {
		m.set(6, y, wallSurface(1))
	}
	e := newTestEngine(t, noReflections)

	for _, incidence := range []float64{0, 45, 89} {
		t.Run(fmt.Sprintf("%v degrees", incidence), func(t *testing.T) {
			em := Emission{
				Origin:      Vec{5.5, 5.3},
				Housing:     image.Pt(5, 5),
				Direction:   incidence,
				Intensity:   White,
				Sweep:       0.5,
				Collimation: 90,
			}
			pass := e.Cast(m, em)
			for _, c := range pass.Candidates {
				require.False(t, c.Diffuse, "a perfect mirror has no diffuse part")
			}
			reflections := Filter(pass.Candidates)
			require.NotEmpty(t, reflections)

			want := Mirror(incidence, FaceWest)
			for _, r := range reflections {
				assert.Equal(t, FaceWest, r.Face)
				assert.Equal(t, 6, r.Tile.X)
				assert.LessOrEqual(t, AngleDiff(r.Direction, want), 1.0, "got %v want %v", r.Direction, want)
				assert.Equal(t, 0.5, r.Sweep)
				assert.Equal(t, 90.0, r.Collimation)
			}
		})
	}
}

func TestReflectionEmissionLeavesTheFace(t *testing.T) {
	r := Reflection{Tile: image.Pt(6, 5), Face: FaceWest, Direction: 180, Intensity: White, Sweep: 90}
	em := r.Emission(0.01)
	assert.Equal(t, image.Pt(5, 5), tileOf(em.Origin))
	assert.Equal(t, image.Pt(6, 5), em.Housing)
	assert.Equal(t, FaceWest, em.Face)

	e := newTestEngine(t, noReflections)
	m := openMap(12, 11)
	m.set(6, 5, wallSurface(0))
	f := e.Cast(m, em).Field
	assert.False(t, f.At(3, 5).IsZero(), "lights the open side")
	assert.True(t, f.At(8, 5).IsZero(), "nothing behind the wall")
}
