package panel

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Terminal prints the panel to a writer whenever it is shown.
type Terminal struct {
	Memory

	w     io.Writer
	title string
	style *color.Color
}

// NewTerminal creates a panel that writes a colored title followed by its lines.
func NewTerminal(w io.Writer, title string, style *color.Color) *Terminal {
	return &Terminal{w: w, title: title, style: style}
}

// Show records the lines and prints them.
func (p *Terminal) Show(lines []string) {
	p.Memory.Show(lines)

	if p.title != "" {
		fmt.Fprintln(p.w, p.style.Sprint(p.title))
	}
	for _, line := range lines {
		fmt.Fprintf(p.w, "  %s\n", line)
	}
}
