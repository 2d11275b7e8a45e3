package ui

import (
	"strings"
	"time"

	"nitro-core-dx/internal/lcd"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// lcdPollInterval is how often the front panel polls the decoded LCD
// state; the display only changes a handful of times a second, so this
// need not track the audio thread's cadence.
const lcdPollInterval = 50 * time.Millisecond

// newLCDWidget builds a two-line monospace text display mirroring the
// HD44780 character display's visible lines, and returns a ticker that
// keeps it in sync with display until stopped.
func newLCDWidget(display *lcd.Display) (fyne.CanvasObject, *time.Ticker) {
	line1 := canvas.NewText(blankLine(), textColor)
	line2 := canvas.NewText(blankLine(), textColor)
	line1.TextStyle = fyne.TextStyle{Monospace: true}
	line2.TextStyle = fyne.TextStyle{Monospace: true}

	bg := canvas.NewRectangle(lcdBackground)
	screen := container.NewVBox(line1, line2)
	stack := container.NewStack(bg, container.NewPadded(screen))

	ticker := time.NewTicker(lcdPollInterval)
	go func() {
		for range ticker.C {
			if display == nil {
				continue
			}
			line1.Text = string(display.Line1[:])
			line2.Text = string(display.Line2[:])
			canvas.Refresh(line1)
			canvas.Refresh(line2)
		}
	}()

	return stack, ticker
}

func blankLine() string { return strings.Repeat(" ", 16) }
