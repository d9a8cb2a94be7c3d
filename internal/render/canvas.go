// Package render holds a retained drawing surface. The engine draws into it
// from its tick goroutine and a frontend replays the last complete frame from
// its own draw loop.
package render

import (
	"image/color"
	"sync"
)

type Rect struct {
	X, Y          int
	Width, Height int
	Color         color.Color
}

// Frame is an immutable list of filled rectangles in paint order.
type Frame struct {
	Rects  []Rect
	Serial uint64
}

type Canvas struct {
	mu        sync.Mutex
	back      []Rect
	front     Frame
	published uint64
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.back = nil
}

func (c *Canvas) FillRect(x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.back = append(c.back, Rect{X: x, Y: y, Width: w, Height: h, Color: col})
}

// Flush publishes everything drawn since the last Clear.
func (c *Canvas) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.published++
	c.front = Frame{Rects: c.back, Serial: c.published}
	c.back = make([]Rect, 0, len(c.front.Rects))
}

// Frame returns the last published frame. The returned slice is never
// written again by the canvas.
func (c *Canvas) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

// Reset drops both the pending and the published frame.
func (c *Canvas) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.back = nil
	c.front = Frame{Serial: c.published}
}
