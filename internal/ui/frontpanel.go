package ui

import (
	"image/color"

	"nitro-core-dx/internal/midi"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var (
	textColor     = color.White
	lcdBackground = color.NRGBA{R: 30, G: 60, B: 30, A: 255}
)

// frontPanelButtons enumerates the named buttons in the same left-to-
// right, top-to-bottom order the physical panel lays them out in: the
// 32 numbered function keys. The character-entry keys are listed
// separately in charEntryButtons.
var frontPanelButtons = []struct {
	label string
	ctrl  midi.CtrlID
}{
	{"1", midi.CtrlButton1}, {"2", midi.CtrlButton2}, {"3", midi.CtrlButton3}, {"4", midi.CtrlButton4},
	{"5", midi.CtrlButton5}, {"6", midi.CtrlButton6}, {"7", midi.CtrlButton7}, {"8", midi.CtrlButton8},
	{"9", midi.CtrlButton9}, {"10", midi.CtrlButton10}, {"11", midi.CtrlButton11}, {"12", midi.CtrlButton12},
	{"13", midi.CtrlButton13}, {"14", midi.CtrlButton14}, {"15", midi.CtrlButton15}, {"16", midi.CtrlButton16},
	{"17", midi.CtrlButton17}, {"18", midi.CtrlButton18}, {"19", midi.CtrlButton19}, {"20", midi.CtrlButton20},
	{"21", midi.CtrlButton21}, {"22", midi.CtrlButton22}, {"23", midi.CtrlButton23}, {"24", midi.CtrlButton24},
	{"25", midi.CtrlButton25}, {"26", midi.CtrlButton26}, {"27", midi.CtrlButton27}, {"28", midi.CtrlButton28},
	{"29", midi.CtrlButton29}, {"30", midi.CtrlButton30}, {"31", midi.CtrlButton31}, {"32", midi.CtrlButton32},
}

var charEntryButtons = []struct {
	label string
	ctrl  midi.CtrlID
}{
	{"W", midi.CtrlW}, {"X", midi.CtrlX}, {"Y", midi.CtrlY}, {"Z", midi.CtrlZ},
	{"CHR", midi.CtrlChr}, {"-", midi.CtrlDash}, {".", midi.CtrlDot}, {"SPC", midi.CtrlSpace},
	{"NO", midi.CtrlNo}, {"YES", midi.CtrlYes},
}

// newFrontPanel builds the button grid and pitch/modulation wheels,
// posting a Message for each control directly onto toSynth — the panel
// never touches CPU or EGS state itself.
func newFrontPanel(toSynth *midi.Queue) fyne.CanvasObject {
	press := func(ctrl midi.CtrlID) func() {
		return func() {
			toSynth.Push(midi.Message{Byte1: uint8(ctrl), Byte2: 127})
		}
	}

	grid := container.NewGridWithColumns(8)
	for _, b := range frontPanelButtons {
		grid.Add(widget.NewButton(b.label, press(b.ctrl)))
	}

	charRow := container.NewHBox()
	for _, b := range charEntryButtons {
		charRow.Add(widget.NewButton(b.label, press(b.ctrl)))
	}

	sustainCheck := widget.NewCheck("Sustain", func(on bool) {
		v := uint8(0)
		if on {
			v = 127
		}
		toSynth.Push(midi.Message{Byte1: uint8(midi.CtrlSustain), Byte2: v})
	})
	portaCheck := widget.NewCheck("Portamento", func(on bool) {
		v := uint8(0)
		if on {
			v = 127
		}
		toSynth.Push(midi.Message{Byte1: uint8(midi.CtrlPorta), Byte2: v})
	})

	pitchWheel := widget.NewSlider(0, 127)
	pitchWheel.SetValue(64)
	pitchWheel.OnChanged = func(v float64) {
		toSynth.Push(midi.Message{Byte1: uint8(midi.CtrlPitchbend), Byte2: uint8(v)})
	}
	modWheel := widget.NewSlider(0, 127)
	modWheel.OnChanged = func(v float64) {
		toSynth.Push(midi.Message{Byte1: uint8(midi.CtrlModulate), Byte2: uint8(v)})
	}

	wheels := container.NewHBox(
		widget.NewLabel("Pitch"), pitchWheel,
		widget.NewLabel("Mod"), modWheel,
	)

	return container.NewVBox(
		grid,
		charRow,
		container.NewHBox(sustainCheck, portaCheck),
		wheels,
	)
}
