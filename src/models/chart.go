package models

import (
	"sync"
	"time"
)

// Chart is the outbound surface to the annotation host. The engine never
// owns a line's lifecycle; it only recolors, re-labels and moves lines the
// host created.
type Chart interface {
	SetLineColor(name string, color LineColor)
	AppendComment(name string, suffix string)
	MoveLine(name string, t1 time.Time, y1 float64, t2 time.Time, y2 float64)
}

// InMemoryChart is a Chart plus line store used by tests and the replay
// tool, standing in for the host's object model.
type InMemoryChart struct {
	mu    sync.Mutex
	lines map[string]*TrendLine
	order []string
}

func NewInMemoryChart() *InMemoryChart {
	return &InMemoryChart{
		lines: make(map[string]*TrendLine),
	}
}

func (c *InMemoryChart) Upsert(line TrendLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[line.Name]; !ok {
		c.order = append(c.order, line.Name)
	}
	copied := line
	c.lines[line.Name] = &copied
}

func (c *InMemoryChart) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[name]; !ok {
		return
	}
	delete(c.lines, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *InMemoryChart) Get(name string) (TrendLine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[name]
	if !ok {
		return TrendLine{}, false
	}
	return *line, true
}

// Lines returns all annotations in creation order.
func (c *InMemoryChart) Lines() []TrendLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]TrendLine, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.lines[name])
	}
	return out
}

func (c *InMemoryChart) SetLineColor(name string, color LineColor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[name]; ok {
		line.Color = color
	}
}

func (c *InMemoryChart) AppendComment(name string, suffix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[name]; ok {
		line.Comment += suffix
	}
}

func (c *InMemoryChart) MoveLine(name string, t1 time.Time, y1 float64, t2 time.Time, y2 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[name]; ok {
		line.Time1 = t1
		line.Y1 = y1
		line.Time2 = t2
		line.Y2 = y2
	}
}
