package light

import (
	"fmt"
	"image"
)

// Field is a dense grid of irradiance covering Bounds in map coordinates.
type Field struct {
	Bounds image.Rectangle
	cells  []RGB
}

// NewField allocates a zeroed field over r.
func NewField(r image.Rectangle) *Field {
	r = r.Canon()
	return &Field{Bounds: r, cells: make([]RGB, r.Dx()*r.Dy())}
}

// Placeholder returns the empty 1x1 field an emitter starts with.
func Placeholder(x, y int) *Field {
	return NewField(image.Rect(x, y, x+1, y+1))
}

// Contains reports whether map tile (x, y) lies inside the field.
func (f *Field) Contains(x, y int) bool {
	return image.Pt(x, y).In(f.Bounds)
}

// At returns the irradiance at map tile (x, y). Panics outside Bounds.
func (f *Field) At(x, y int) RGB {
	return f.cells[f.index(x, y)]
}

// Set overwrites the irradiance at map tile (x, y).
func (f *Field) Set(x, y int, c RGB) {
	f.cells[f.index(x, y)] = c
}

// Blend raises the stored value to c channel-wise; it never darkens.
func (f *Field) Blend(x, y int, c RGB) {
	i := f.index(x, y)
	f.cells[i] = f.cells[i].Max(c)
}

// Accumulate adds c to the stored value.
func (f *Field) Accumulate(x, y int, c RGB) {
	i := f.index(x, y)
	f.cells[i] = f.cells[i].Add(c)
}

// AddTo sums every non-zero cell of f into dst where the two overlap.
func (f *Field) AddTo(dst *Field) {
	r := f.Bounds.Intersect(dst.Bounds)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := f.At(x, y)
			if c.IsZero() {
				continue
			}
			dst.Accumulate(x, y, c)
		}
	}
}

// Reset zeroes every cell.
func (f *Field) Reset() {
	for i := range f.cells {
		f.cells[i] = RGB{}
	}
}

// Brightest returns the tile holding the highest max-channel value.
func (f *Field) Brightest() (image.Point, RGB) {
	var (
		best  image.Point
		value RGB
	)
	for y := f.Bounds.Min.Y; y < f.Bounds.Max.Y; y++ {
		for x := f.Bounds.Min.X; x < f.Bounds.Max.X; x++ {
			if c := f.At(x, y); c.MaxChannel() > value.MaxChannel() {
				best, value = image.Pt(x, y), c
			}
		}
	}
	return best, value
}

func (f *Field) index(x, y int) int {
	if !f.Contains(x, y) {
		panic(fmt.Sprintf("light: tile (%d, %d) outside field %v", x, y, f.Bounds))
	}
	return (y-f.Bounds.Min.Y)*f.Bounds.Dx() + (x - f.Bounds.Min.X)
}
