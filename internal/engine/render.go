package engine

import (
	"image/color"

	"snakeegg/internal/domain"
)

type Palette struct {
	Snake color.RGBA
	Head  color.RGBA
	Food  color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Snake: color.RGBA{99, 102, 241, 255},
		Head:  color.RGBA{139, 92, 246, 255},
		Food:  color.RGBA{239, 68, 68, 255},
	}
}

// draw paints one frame: clear, every snake cell, then the food cell.
func draw(surface Surface, state *domain.GameState, palette Palette) {
	pitch := state.Config.CellPitch
	size := pitch - 2
	if size < 1 {
		size = pitch
	}
	inset := (pitch - size) / 2

	surface.Clear()

	for i, cell := range state.Snake.Cells {
		c := palette.Snake
		if i == 0 {
			c = palette.Head
		}
		surface.FillRect(cell.X*pitch+inset, cell.Y*pitch+inset, size, size, c)
	}

	surface.FillRect(state.Food.X*pitch+inset, state.Food.Y*pitch+inset, size, size, palette.Food)

	if f, ok := surface.(Flusher); ok {
		f.Flush()
	}
}
