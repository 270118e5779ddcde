// Package gui hosts the console in an ebiten window: the animated text on the
// left, the variable inspectors on the right.
package gui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/aretw0/hackterm/pkg/adapters/memory"
	"github.com/aretw0/hackterm/pkg/domain"
)

// Console is what the host reads and notifies each frame.
type Console interface {
	Text() string
	Busy() bool
	OnAnyButtonClicked()
	OnInputEnd()
}

const (
	lineHeight   = 16
	padding      = 12
	tabWidth     = 4
	blinkFrames  = 30
	inspectorW   = 260
	inspectorGap = 8
)

var (
	bgColor       = color.RGBA{8, 12, 8, 255}
	panelColor    = color.RGBA{16, 28, 16, 255}
	borderColor   = color.RGBA{34, 197, 94, 255}
	disabledColor = color.RGBA{40, 48, 40, 255}
)

// Host is an ebiten.Game drawing one console and its inspector container.
type Host struct {
	console   Console
	container *memory.Container
	width     int
	height    int
	frame     int
}

// NewHost creates a host of the given logical size.
func NewHost(console Console, container *memory.Container, width, height int) *Host {
	return &Host{
		console:   console,
		container: container,
		width:     width,
		height:    height,
	}
}

// Update forwards mouse presses to the console lock. Escape quits.
func (h *Host) Update() error {
	h.frame++
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.console.OnAnyButtonClicked()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.console.OnInputEnd()
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	consoleW := h.width - inspectorW - padding*3
	maxLines := (h.height - padding*2) / lineHeight
	lines := ConsoleLines(h.console.Text(), maxLines)
	if h.console.Busy() && (h.frame/blinkFrames)%2 == 0 && len(lines) > 0 {
		lines[len(lines)-1] += "_"
	}
	vector.StrokeRect(screen, padding, padding, float32(consoleW), float32(h.height-padding*2), 1, borderColor, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, padding*2, padding+4+i*lineHeight)
	}

	x := consoleW + padding*2
	y := padding
	for _, w := range h.container.Widgets() {
		body := InspectorLines(w.Kind(), w.Payload())
		boxH := len(body)*lineHeight + padding
		fill := panelColor
		if !w.Interactable() {
			fill = disabledColor
		}
		vector.FillRect(screen, float32(x), float32(y), inspectorW, float32(boxH), fill, false)
		vector.StrokeRect(screen, float32(x), float32(y), inspectorW, float32(boxH), 1, borderColor, false)
		for i, line := range body {
			ebitenutil.DebugPrintAt(screen, line, x+6, y+6+i*lineHeight)
		}
		y += boxH + inspectorGap
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.width, h.height
}

// Run opens the window and blocks until it is closed.
func Run(h *Host, title string) error {
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(h)
}

// ConsoleLines splits text into display lines with tabs expanded, keeping
// only the last maxLines.
func ConsoleLines(text string, maxLines int) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = expandTabs(line)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

func expandTabs(line string) string {
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// InspectorLines is the text drawn inside one inspector widget.
func InspectorLines(kind domain.WidgetKind, payload domain.VariablePayload) []string {
	if kind.IsAuxiliaryInput() {
		return []string{fmt.Sprintf("[%s]", kind)}
	}
	lines := []string{payload.Name}
	for _, attr := range payload.Attributes {
		lines = append(lines, fmt.Sprintf("  %s: %v", attr.Key, attr.Value))
	}
	return lines
}
