package dial

import "math"

// Point is a screen position in pixels, y growing downwards.
type Point struct {
	X, Y float32
}

// Arc returns the polyline of a progress arc around (cx, cy). The arc starts
// at twelve o'clock and runs clockwise; a full circle is split into
// segments pieces. Zero progress yields no points.
func Arc(cx, cy, radius, progress float64, segments int) []Point {
	if progress <= 0 || segments <= 0 {
		return nil
	}
	if progress > 1 {
		progress = 1
	}

	n := int(math.Ceil(progress * float64(segments)))
	sweep := 2 * math.Pi * progress
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		a := -math.Pi/2 + sweep*float64(i)/float64(n)
		pts[i] = Point{
			X: float32(cx + radius*math.Cos(a)),
			Y: float32(cy + radius*math.Sin(a)),
		}
	}
	return pts
}

// Cell is where one dial sits on screen.
type Cell struct {
	CX, CY float64
	Radius float64
}

// Grid lays count dials out in rows of cols between a header of height top
// and a footer of height bottom. Each cell leaves room below its dial for
// two caption lines of captionHeight pixels.
func Grid(width, height, count, cols int, top, bottom, captionHeight float64) []Cell {
	if count <= 0 || cols <= 0 {
		return nil
	}
	rows := (count + cols - 1) / cols
	cellW := float64(width) / float64(cols)
	cellH := (float64(height) - top - bottom) / float64(rows)

	// Ring diameter fits the cell width and the cell height minus captions.
	radius := math.Min(cellW, cellH-2*captionHeight) * 0.4
	if radius < 1 {
		radius = 1
	}

	cells := make([]Cell, count)
	for i := range cells {
		row, col := i/cols, i%cols
		cells[i] = Cell{
			CX:     cellW*float64(col) + cellW/2,
			CY:     top + cellH*float64(row) + (cellH-2*captionHeight)/2,
			Radius: radius,
		}
	}
	return cells
}
