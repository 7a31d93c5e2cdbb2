// Package motion extrapolates continuous positions. It knows nothing
// about walls; navigation reconciles the result against the grid.
package motion

import "github.com/tferrerm/unity-pac/internal/entities"

// Advance moves pos by speed*dt along dir. Horizontally the position
// wraps to the opposite edge once it passes ±halfWidth, keeping the
// distance travelled past the edge.
func Advance(pos entities.Vec, speed float64, dir entities.Direction, dt, halfWidth float64) entities.Vec {
	step := speed * dt
	switch dir {
	case entities.DirLeft:
		x := pos.X - step
		if x < -halfWidth {
			x += 2 * halfWidth
		}
		return entities.Vec{X: x, Y: pos.Y}
	case entities.DirRight:
		x := pos.X + step
		if x > halfWidth {
			x -= 2 * halfWidth
		}
		return entities.Vec{X: x, Y: pos.Y}
	case entities.DirUp:
		return entities.Vec{X: pos.X, Y: pos.Y - step}
	case entities.DirDown:
		return entities.Vec{X: pos.X, Y: pos.Y + step}
	default:
		entities.MustValid(dir)
		return pos
	}
}
