package entities

type Ghost struct {
	ID         ID
	Pos        Vec
	CurrentDir Direction
	Mode       GhostMode
	// PrevMode is the mode to restore when frightened mode ends.
	PrevMode GhostMode
	House    HouseState
	// ReversePending makes the next direction choice the exact opposite
	// of CurrentDir.
	ReversePending bool
	// WaitTimer is the time left in HouseWaiting before the ghost leaves.
	WaitTimer float64
	// BoxTarget is the box tile a consumed ghost heads for.
	BoxTarget Coord
	Speed     float64
	// Blinking is true during the last seconds of frightened mode.
	Blinking bool
}

type GhostMode int

const (
	ModeScatter GhostMode = iota
	ModeChase
	ModeFrightened
	ModeConsumed
)

func (m GhostMode) String() string {
	switch m {
	case ModeScatter:
		return "scatter"
	case ModeChase:
		return "chase"
	case ModeFrightened:
		return "frightened"
	case ModeConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// HouseState tracks box residency, orthogonal to GhostMode.
type HouseState int

const (
	HouseOutside HouseState = iota
	HouseWaiting
	HouseLeaving
	// HouseEntering: a consumed ghost past the door, heading for BoxTarget.
	HouseEntering
)

// Roaming reports whether the ghost follows the scatter/chase clock.
func (g *Ghost) Roaming() bool {
	return g.House == HouseOutside && g.Mode != ModeConsumed
}
