package components

import (
	"snakeegg/internal/domain"

	"github.com/hajimehoshi/ebiten/v2"
)

// DPad is the on-screen arrow cluster for touch play.
type DPad struct {
	X, Y    int
	Size    int
	buttons map[domain.Direction]*Button
}

func NewDPad(size int) *DPad {
	return &DPad{
		Size: size,
		buttons: map[domain.Direction]*Button{
			domain.DirectionUp:    NewButton(0, 0, size, size, "^"),
			domain.DirectionLeft:  NewButton(0, 0, size, size, "<"),
			domain.DirectionDown:  NewButton(0, 0, size, size, "v"),
			domain.DirectionRight: NewButton(0, 0, size, size, ">"),
		},
	}
}

// SetPosition places the pad with its top-left corner at x, y. The pad is
// three buttons wide and two high.
func (d *DPad) SetPosition(x, y int) {
	d.X, d.Y = x, y
	gap := d.Size / 8

	d.buttons[domain.DirectionUp].SetPosition(x+d.Size+gap, y)
	d.buttons[domain.DirectionLeft].SetPosition(x, y+d.Size+gap)
	d.buttons[domain.DirectionDown].SetPosition(x+d.Size+gap, y+d.Size+gap)
	d.buttons[domain.DirectionRight].SetPosition(x+2*(d.Size+gap), y+d.Size+gap)
}

// Update returns the direction whose button was clicked this frame.
func (d *DPad) Update() domain.Direction {
	clicked := domain.DirectionNone
	for _, dir := range []domain.Direction{
		domain.DirectionUp, domain.DirectionDown, domain.DirectionLeft, domain.DirectionRight,
	} {
		if d.buttons[dir].Update() && clicked == domain.DirectionNone {
			clicked = dir
		}
	}
	return clicked
}

func (d *DPad) Draw(screen *ebiten.Image) {
	for _, b := range d.buttons {
		b.Draw(screen)
	}
}

func (d *DPad) Width() int {
	return 3*d.Size + 2*(d.Size/8)
}
