package entities

import "fmt"

// ID indexes per-entity tables. Values are dense so they can size arrays.
type ID int

const (
	IDPlayer ID = iota
	IDBlinky
	IDPinky
	IDInky
	IDClyde
	EntityCount
)

// GhostOrder is the order in which level files list ghosts.
var GhostOrder = [4]ID{IDBlinky, IDInky, IDPinky, IDClyde}

func (id ID) IsGhost() bool {
	return id >= IDBlinky && id < EntityCount
}

func (id ID) String() string {
	switch id {
	case IDPlayer:
		return "player"
	case IDBlinky:
		return "blinky"
	case IDPinky:
		return "pinky"
	case IDInky:
		return "inky"
	case IDClyde:
		return "clyde"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}
