package engine

import (
	"image/color"

	"snakeegg/internal/domain"
)

// Surface is the 2D raster the engine draws a frame on. Coordinates are in
// pixels, one grid cell spans GameConfig.CellPitch pixels.
type Surface interface {
	Clear()
	FillRect(x, y, w, h int, c color.Color)
}

// Flusher is implemented by surfaces that buffer a frame until it is complete.
type Flusher interface {
	Flush()
}

// InputSource delivers direction presses. Listen registers fn and returns a
// function that removes it again.
type InputSource interface {
	Listen(fn func(domain.Direction)) (cancel func())
}
