package generate

import "math/rand"

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation of one level.
type Config struct {
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle

	MirrorChance float64 // per room, chance of one mirrored wall
	GlassChance  float64 // per room, chance of a tinted glass pane
	LampCount    int     // wall-mounted lamps to place

	Rand *rand.Rand
}

// DefaultConfig returns the demo layout for a width x height map.
func DefaultConfig(width, height int, seed int64) *Config {
	return &Config{
		MapWidth:      width,
		MapHeight:     height,
		MinLeafSize:   8,
		MaxLeafSize:   18,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		MirrorChance:  0.4,
		GlassChance:   0.3,
		LampCount:     max(1, width*height/600),
		Rand:          rand.New(rand.NewSource(seed)),
	}
}
