package components

import (
	"fmt"

	"snakeegg/internal/ui/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type ScoreRow struct {
	Label string
	Value string
	// Highlight draws the value in the accent colour.
	Highlight bool
}

// ScorePanel is the side panel next to the board.
type ScorePanel struct {
	X, Y          int
	Width, Height int
	Title         string
}

func NewScorePanel(x, y, width, height int) *ScorePanel {
	return &ScorePanel{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Title:  "SCORE",
	}
}

func (sp *ScorePanel) Draw(screen *ebiten.Image, rows []ScoreRow) {
	vector.DrawFilledRect(screen,
		float32(sp.X), float32(sp.Y),
		float32(sp.Width), float32(sp.Height),
		types.Darken(types.ColorBackground, 0.7), false)

	vector.StrokeRect(screen,
		float32(sp.X), float32(sp.Y),
		float32(sp.Width), float32(sp.Height),
		1, types.ColorGrid, false)

	fonts := types.GetFonts()

	text.Draw(screen, sp.Title, fonts.Normal, sp.X+10, sp.Y+25, types.ColorTextHighlight)

	vector.StrokeLine(screen,
		float32(sp.X+10), float32(sp.Y+35),
		float32(sp.X+sp.Width-10), float32(sp.Y+35),
		1, types.ColorGrid, false)

	y := sp.Y + 60
	for _, row := range rows {
		if y > sp.Y+sp.Height-10 {
			break
		}

		text.Draw(screen, row.Label, fonts.Normal, sp.X+10, y, types.ColorTextDim)

		valueColor := types.ColorText
		if row.Highlight {
			valueColor = types.ColorTextHighlight
		}
		bounds := text.BoundString(fonts.Normal, row.Value)
		text.Draw(screen, row.Value, fonts.Normal, sp.X+sp.Width-bounds.Dx()-10, y, valueColor)

		y += 25
	}
}

func IntRow(label string, v int) ScoreRow {
	return ScoreRow{Label: label, Value: fmt.Sprintf("%d", v)}
}
