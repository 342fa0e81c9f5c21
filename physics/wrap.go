package physics

import "github.com/jakecoffman/cp"

// Bounds returns the world rectangle used for wrapping, with Y growing
// downward from B=0 to T=height.
func Bounds(width, height float64) cp.BB {
	return cp.BB{L: 0, B: 0, R: width, T: height}
}

// Wrap relocates pos to the opposite edge of bounds when it has crossed one.
// It reports whether pos changed. Degenerate bounds leave pos untouched.
func Wrap(pos cp.Vector, bounds cp.BB) (cp.Vector, bool) {
	width := bounds.R - bounds.L
	height := bounds.T - bounds.B
	out := pos
	if width > 0 {
		if out.X > bounds.R {
			out.X -= width
		} else if out.X < bounds.L {
			out.X += width
		}
	}
	if height > 0 {
		if out.Y > bounds.T {
			out.Y -= height
		} else if out.Y < bounds.B {
			out.Y += height
		}
	}
	return out, out != pos
}
