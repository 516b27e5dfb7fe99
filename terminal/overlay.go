package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/status"
)

var (
	overlayStyle = tcell.StyleDefault.
			Foreground(render.Color(palette.White)).
			Background(render.Color(palette.RGB{R: 20, G: 24, B: 36}))
	promptStyle = tcell.StyleDefault.Background(render.Color(palette.Black))
)

// statusLine formats the overlay from a registry snapshot
func statusLine(snap status.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %s | %.0f fps | %s", snap.Strings[status.KeyPage], snap.Floats[status.KeyFPS], snap.Strings[status.KeyMode])
	if snap.Bools[status.KeyForced] {
		b.WriteString(" (forced)")
	} else if !snap.Bools[status.KeyAutoAdjust] {
		b.WriteString(" (fixed)")
	}
	fmt.Fprintf(&b, " | scenes %d | points %d | edges %d/%d | pulses %d | signatures %d",
		snap.Ints[status.KeyScenes], snap.Ints[status.KeyPoints],
		snap.Ints[status.KeyEdgesDrawn], snap.Ints[status.KeyEdges],
		snap.Ints[status.KeyPulses], snap.Ints[status.KeySignatures])
	if !snap.Bools[status.KeyActive] {
		b.WriteString(" | paused")
	}
	b.WriteByte(' ')
	return b.String()
}

// drawText writes s from x,y clipped to the screen width and returns the next column
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

// fillRow paints the rest of row y from column x
func fillRow(s tcell.Screen, x, y int, style tcell.Style) {
	w, _ := s.Size()
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
