package components

import (
	"image/color"

	"snakeegg/internal/domain"
	"snakeegg/internal/render"
	"snakeegg/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FieldRenderer lays the board out on the window and replays canvas frames
// onto it. The engine paints in board pixels (CellSize = pitch); the renderer
// scales them to the on-screen cell size.
type FieldRenderer struct {
	CellSize int
	OffsetX  int
	OffsetY  int
	// PanelWidth is reserved on the right for the score panel.
	PanelWidth int
}

func NewFieldRenderer() *FieldRenderer {
	return &FieldRenderer{
		CellSize:   20,
		OffsetX:    20,
		OffsetY:    20,
		PanelWidth: 260,
	}
}

func (fr *FieldRenderer) CalculateLayout(screenWidth, screenHeight int, field *domain.Field) {
	if field == nil {
		return
	}

	availableWidth := screenWidth - fr.PanelWidth - 40
	availableHeight := screenHeight - 80

	cellW := availableWidth / field.Width
	cellH := availableHeight / field.Height

	fr.CellSize = min(cellW, cellH)
	fr.CellSize = max(fr.CellSize, 4)
	fr.CellSize = min(fr.CellSize, 40)

	fieldWidth := fr.CellSize * field.Width
	fieldHeight := fr.CellSize * field.Height
	fr.OffsetX = (availableWidth-fieldWidth)/2 + 20
	fr.OffsetY = (availableHeight-fieldHeight)/2 + 60
}

func (fr *FieldRenderer) DrawField(screen *ebiten.Image, field *domain.Field) {
	if field == nil {
		return
	}

	w := float32(field.Width * fr.CellSize)
	h := float32(field.Height * fr.CellSize)

	vector.DrawFilledRect(screen,
		float32(fr.OffsetX), float32(fr.OffsetY),
		w, h,
		types.ColorFieldBg, false)

	for x := 0; x <= field.Width; x++ {
		x1 := float32(fr.OffsetX + x*fr.CellSize)
		vector.StrokeLine(screen,
			x1, float32(fr.OffsetY),
			x1, float32(fr.OffsetY)+h,
			1, types.ColorGrid, false)
	}
	for y := 0; y <= field.Height; y++ {
		y1 := float32(fr.OffsetY + y*fr.CellSize)
		vector.StrokeLine(screen,
			float32(fr.OffsetX), y1,
			float32(fr.OffsetX)+w, y1,
			1, types.ColorGrid, false)
	}
}

// DrawFrame replays frame, painted for a board with the given cell pitch.
func (fr *FieldRenderer) DrawFrame(screen *ebiten.Image, frame render.Frame, pitch int) {
	if pitch <= 0 {
		return
	}
	scale := float32(fr.CellSize) / float32(pitch)

	for _, r := range frame.Rects {
		vector.DrawFilledRect(screen,
			float32(fr.OffsetX)+float32(r.X)*scale,
			float32(fr.OffsetY)+float32(r.Y)*scale,
			float32(r.Width)*scale,
			float32(r.Height)*scale,
			r.Color, false)
	}
}

// DrawOverlay dims the board, used once the game is over.
func (fr *FieldRenderer) DrawOverlay(screen *ebiten.Image, field *domain.Field, c color.Color) {
	if field == nil {
		return
	}
	vector.DrawFilledRect(screen,
		float32(fr.OffsetX), float32(fr.OffsetY),
		float32(field.Width*fr.CellSize), float32(field.Height*fr.CellSize),
		c, false)
}
