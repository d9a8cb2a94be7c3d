// Package terminal is the tcell frontend: the board drawn with two columns
// per grid cell, a status line below it and keyboard steering.
package terminal

import (
	"image/color"
	"sync"

	"snakeegg/internal/domain"

	"github.com/gdamore/tcell/v2"
)

// Each grid cell is two columns wide so cells look roughly square.
const cellColumns = 2

var (
	styleBoard  = tcell.StyleDefault
	styleBorder = tcell.StyleDefault.Foreground(tcell.NewRGBColor(35, 35, 50))
	styleStatus = tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 220, 220))
)

// Canvas maps the engine's pixel rectangles onto terminal cells. A rectangle
// fills every grid cell it overlaps.
type Canvas struct {
	mu     sync.Mutex
	screen tcell.Screen
	field  *domain.Field
	pitch  int
	status string
}

func NewCanvas(screen tcell.Screen, cfg *domain.GameConfig) *Canvas {
	return &Canvas{
		screen: screen,
		field:  domain.NewField(cfg.Width, cfg.Height),
		pitch:  cfg.CellPitch,
	}
}

// CellOrigin returns the screen column and row of grid cell c.
func (c *Canvas) CellOrigin(cell domain.Coord) (col, row int) {
	return 1 + cell.X*cellColumns, 1 + cell.Y
}

// StatusRow is the screen row of the status line.
func (c *Canvas) StatusRow() int {
	return c.field.Height + 2
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := c.field.Width*cellColumns + 2
	h := c.field.Height + 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, style := ' ', styleBoard
			switch {
			case (x == 0 || x == w-1) && (y == 0 || y == h-1):
				r, style = '+', styleBorder
			case y == 0 || y == h-1:
				r, style = '-', styleBorder
			case x == 0 || x == w-1:
				r, style = '|', styleBorder
			}
			c.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (c *Canvas) FillRect(x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 || c.pitch <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	style := styleBoard.Background(toTcell(col))

	x0, y0 := x/c.pitch, y/c.pitch
	x1, y1 := (x+w-1)/c.pitch, (y+h-1)/c.pitch

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			cell := domain.Coord{X: cx, Y: cy}
			if !c.field.Contains(cell) {
				continue
			}
			sx, sy := c.CellOrigin(cell)
			for i := 0; i < cellColumns; i++ {
				c.screen.SetContent(sx+i, sy, ' ', nil, style)
			}
		}
	}
}

// Flush shows the frame together with the current status line.
func (c *Canvas) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drawStatus()
	c.screen.Show()
}

func (c *Canvas) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
	c.drawStatus()
	c.screen.Show()
}

func (c *Canvas) drawStatus() {
	row := c.StatusRow()
	width, _ := c.screen.Size()

	x := 0
	for _, r := range c.status {
		c.screen.SetContent(x, row, r, nil, styleStatus)
		x++
	}
	for ; x < width; x++ {
		c.screen.SetContent(x, row, ' ', nil, styleBoard)
	}
}

func toTcell(col color.Color) tcell.Color {
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}
