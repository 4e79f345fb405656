package panel

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMemory_ShowHide(t *testing.T) {
	p := NewMemory()
	assert.Equal(t, State{Visible: false, Lines: []string{}}, p.State())

	lines := []string{"Road condition between Piazza and Arada is poor"}
	p.Show(lines)
	lines[0] = "mutated"

	state := p.State()
	assert.True(t, state.Visible)
	assert.Equal(t, []string{"Road condition between Piazza and Arada is poor"}, state.Lines)

	p.Hide()
	assert.Equal(t, State{Visible: false, Lines: []string{}}, p.State())

	// Hiding twice is harmless.
	p.Hide()
	assert.False(t, p.State().Visible)
}

func TestTerminal_PrintsOnShow(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	p := NewTerminal(&buf, "Warnings", color.New(color.FgYellow))

	p.Hide()
	assert.Empty(t, buf.String())

	p.Show([]string{"High traffic expected at Piazza"})

	assert.Equal(t, "Warnings\n  High traffic expected at Piazza\n", buf.String())
	assert.True(t, p.State().Visible)
}
