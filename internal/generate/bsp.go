package generate

import (
	"lightcaster/internal/gamemap"
)

// leaf is a node of the binary space partition.
type leaf struct {
	x, y, w, h  int
	left, right *leaf
	room        *gamemap.Rect
}

func (l *leaf) split() bool { return l.left != nil }

// divide cuts the leaf in two along its longer axis (random when square)
// and reports false when it is too small.
func (l *leaf) divide(cfg *Config) bool {
	if l.split() {
		return false
	}
	horizontal := cfg.Rand.Intn(2) == 0
	switch {
	case l.w > l.h && float64(l.w)/float64(l.h) >= 1.25:
		horizontal = false
	case l.h > l.w && float64(l.h)/float64(l.w) >= 1.25:
		horizontal = true
	}

	size := l.w
	if horizontal {
		size = l.h
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if size <= cfg.MinLeafSize*2 || lo >= hi {
		return false
	}
	cut := lo + cfg.Rand.Intn(hi-lo+1)

	if horizontal {
		l.left = &leaf{x: l.x, y: l.y, w: l.w, h: cut}
		l.right = &leaf{x: l.x, y: l.y + cut, w: l.w, h: l.h - cut}
	} else {
		l.left = &leaf{x: l.x, y: l.y, w: cut, h: l.h}
		l.right = &leaf{x: l.x + cut, y: l.y, w: l.w - cut, h: l.h}
	}
	return true
}

// partition splits leaves breadth first until none can or must split.
func partition(root *leaf, cfg *Config) {
	frontier := []*leaf{root}
	for len(frontier) > 0 {
		var next []*leaf
		for _, l := range frontier {
			oversize := l.w > cfg.MaxLeafSize || l.h > cfg.MaxLeafSize
			if (oversize || cfg.Rand.Float64() > 0.25) && l.divide(cfg) {
				next = append(next, l.left, l.right)
			}
		}
		frontier = next
	}
}

// carveRooms places one random room in every terminal leaf.
func (l *leaf) carveRooms(gmap *gamemap.GameMap, cfg *Config) {
	if l.split() {
		l.left.carveRooms(gmap, cfg)
		l.right.carveRooms(gmap, cfg)
		return
	}
	pad := cfg.RoomPadding
	availW, availH := l.w-2*pad, l.h-2*pad
	if availW < 3 || availH < 3 {
		return
	}
	rw := min(availW, cfg.MinRoomSize+cfg.Rand.Intn(max(1, availW-cfg.MinRoomSize+1)))
	rh := min(availH, cfg.MinRoomSize+cfg.Rand.Intn(max(1, availH-cfg.MinRoomSize+1)))
	rx := max(1, l.x+pad+cfg.Rand.Intn(availW-rw+1))
	ry := max(1, l.y+pad+cfg.Rand.Intn(availH-rh+1))
	rw = min(rw, gmap.Width-1-rx)
	rh = min(rh, gmap.Height-1-ry)
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	gmap.Rooms = append(gmap.Rooms, room)
}

// anyRoom returns a room somewhere under l, left subtree first.
func (l *leaf) anyRoom() *gamemap.Rect {
	if l.room != nil || !l.split() {
		return l.room
	}
	if r := l.left.anyRoom(); r != nil {
		return r
	}
	return l.right.anyRoom()
}

// link joins the two halves of every split leaf with a corridor.
func (l *leaf) link(gmap *gamemap.GameMap, cfg *Config) {
	if !l.split() {
		return
	}
	l.left.link(gmap, cfg)
	l.right.link(gmap, cfg)

	a, b := l.left.anyRoom(), l.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	ax, ay := a.Center()
	bx, by := b.Center()
	carveCorridor(gmap, ax, ay, bx, by, cfg.CorridorStyle, cfg.Rand)
}
