// Package panel provides text panel implementations for the warnings and results displays.
package panel

import (
	"slices"
	"sync"
)

// State is a point-in-time copy of a panel.
type State struct {
	Visible bool     `json:"visible"`
	Lines   []string `json:"lines"`
}

// Memory is a text panel held in memory and read back by an HTTP client.
type Memory struct {
	mu      sync.RWMutex
	visible bool
	lines   []string
}

// NewMemory creates a hidden, empty panel.
func NewMemory() *Memory {
	return &Memory{}
}

// Show replaces the content and makes the panel visible.
func (p *Memory) Show(lines []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lines = slices.Clone(lines)
	p.visible = true
}

// Hide empties the panel.
func (p *Memory) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lines = nil
	p.visible = false
}

// State returns a copy of the panel content.
func (p *Memory) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	lines := slices.Clone(p.lines)
	if lines == nil {
		lines = []string{}
	}

	return State{Visible: p.visible, Lines: lines}
}
