package domain

// Snake is the ordered list of occupied cells, head first.
type Snake struct {
	Cells []Coord
}

func NewSnake(head Coord) *Snake {
	return &Snake{
		Cells: []Coord{head},
	}
}

func (s *Snake) Head() Coord {
	if len(s.Cells) == 0 {
		return Coord{}
	}
	return s.Cells[0]
}

func (s *Snake) Len() int {
	return len(s.Cells)
}

func (s *Snake) Contains(c Coord) bool {
	for _, cell := range s.Cells {
		if cell.Equals(c) {
			return true
		}
	}
	return false
}

// Move prepends newHead and drops the tail unless the snake grows.
func (s *Snake) Move(newHead Coord, grow bool) {
	newCells := make([]Coord, 0, len(s.Cells)+1)
	newCells = append(newCells, newHead)
	newCells = append(newCells, s.Cells...)

	if !grow {
		newCells = newCells[:len(newCells)-1]
	}

	s.Cells = newCells
}

func (s *Snake) Copy() *Snake {
	cells := make([]Coord, len(s.Cells))
	copy(cells, s.Cells)
	return &Snake{Cells: cells}
}
