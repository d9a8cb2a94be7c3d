package domain

type Field struct {
	Width  int
	Height int
}

func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
	}
}

// Contains reports whether c lies inside [0, Width) x [0, Height).
func (f *Field) Contains(c Coord) bool {
	return c.X >= 0 && c.X < f.Width && c.Y >= 0 && c.Y < f.Height
}

func (f *Field) Move(c Coord, d Direction) Coord {
	return c.Add(d.Delta())
}

func (f *Field) Cells() int {
	return f.Width * f.Height
}
