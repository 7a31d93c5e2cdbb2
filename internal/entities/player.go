package entities

type Player struct {
	Pos        Vec
	CurrentDir Direction
	// DesiredDir is the queued turn, committed on the next tile center
	// where it is legal. DirNone when nothing is queued.
	DesiredDir Direction
	// Blocked is set when the player stopped at a wall; movement stays
	// suppressed until a legal direction is chosen.
	Blocked bool
	Speed   float64
}
