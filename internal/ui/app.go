// Package ui implements the front-panel UI: button grid, pitch/modulation
// wheels, and the HD44780-backed LCD widget, plus debug panels (CPU
// registers, memory, logs). The front panel sends its events through
// internal/midi's ring queues and the LCD widget polls the synth's
// lcd.Display state; the cartridge menu items call the DX7's cartridge
// methods, and the register and memory panels read CPU state directly.
package ui

import (
	"fmt"
	"time"

	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/dx7"
	"nitro-core-dx/internal/midi"
	"nitro-core-dx/internal/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// panelPollInterval is how often debug sub-windows (registers, memory,
// logs) refresh their contents.
const panelPollInterval = 200 * time.Millisecond

// App is the front-panel window: one Synth's CPU/LCD state rendered
// through fyne widgets, plus a handful of debug sub-windows.
type App struct {
	fyneApp fyne.App
	window  fyne.Window

	synth *dx7.Synth
	log   *debug.Logger

	lcdTicker interface{ Stop() }
}

// NewApp builds the front-panel window around an already-constructed
// Synth. toSynth is the same queue the caller feeds to synth.ToSynth;
// it is passed explicitly so the panel never needs to reach into synth
// internals to find it.
func NewApp(synth *dx7.Synth, toSynth *midi.Queue, log *debug.Logger) *App {
	a := app.New()
	w := a.NewWindow("Nitro Core DX")

	ui := &App{fyneApp: a, window: w, synth: synth, log: log}

	lcdWidget, ticker := newLCDWidget(synth.DX7.LCD)
	ui.lcdTicker = ticker

	panel := newFrontPanel(toSynth)

	volumeSlider := widget.NewSlider(0, 127)
	volumeSlider.SetValue(100)
	volumeSlider.OnChanged = func(v float64) {
		toSynth.Push(midi.Message{Byte1: uint8(midi.CtrlVolume), Byte2: uint8(v)})
	}

	content := container.NewBorder(
		container.NewVBox(lcdWidget, container.NewHBox(widget.NewLabel("Volume"), volumeSlider)),
		nil, nil, nil,
		panel,
	)

	w.SetMainMenu(ui.buildMenu())
	w.SetContent(content)
	w.Resize(fyne.NewSize(820, 420))

	return ui
}

// Run shows the window and blocks until it is closed, stopping the LCD
// poller on the way out.
func (a *App) Run() {
	defer a.lcdTicker.Stop()
	a.window.ShowAndRun()
}

func (a *App) buildMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Cartridge...", func() { a.loadCartridgeDialog() }),
		fyne.NewMenuItem("Save Cartridge As...", func() { a.saveCartridgeDialog() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() { a.fyneApp.Quit() }),
	)

	cartridgeMenu := fyne.NewMenu("Cartridge")
	for bank := 0; bank < 8; bank++ {
		bank := bank
		cartridgeMenu.Items = append(cartridgeMenu.Items,
			fyne.NewMenuItem(fmt.Sprintf("Factory Bank %d", bank+1), func() {
				if err := a.synth.DX7.SetBank(bank, true); err != nil {
					dialog.ShowError(err, a.window)
				}
			}),
		)
	}

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Registers", func() { a.showRegisterWindow() }),
		fyne.NewMenuItem("Memory", func() { a.showMemoryWindow() }),
		fyne.NewMenuItem("Logs", func() { a.showLogWindow() }),
	)

	return fyne.NewMainMenu(fileMenu, cartridgeMenu, viewMenu)
}

func (a *App) loadCartridgeDialog() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		if err := a.synth.DX7.CartLoad(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	open.Show()
}

func (a *App) saveCartridgeDialog() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := a.synth.DX7.CartSave(path); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	save.Show()
}

func (a *App) showRegisterWindow() {
	w := a.fyneApp.NewWindow("CPU Registers")
	content, update := panels.RegisterViewer(a.synth.DX7.CPU, w)
	w.SetContent(content)
	w.Resize(fyne.NewSize(360, 420))
	startPollWindow(w, update)
	w.Show()
}

func (a *App) showMemoryWindow() {
	w := a.fyneApp.NewWindow("Memory")
	content, update := panels.MemoryViewer(a.synth.DX7.CPU)
	w.SetContent(content)
	w.Resize(fyne.NewSize(460, 460))
	startPollWindow(w, update)
	w.Show()
}

func (a *App) showLogWindow() {
	w := a.fyneApp.NewWindow("Logs")
	content, update := panels.LogViewerFyne(a.log, w)
	controls := panels.LogControls(a.log, nil)
	w.SetContent(container.NewBorder(nil, controls, nil, nil, content))
	w.Resize(fyne.NewSize(700, 500))
	startPollWindow(w, update)
	w.Show()
}

// startPollWindow refreshes update on a tick until the window closes.
func startPollWindow(w fyne.Window, update func()) {
	ticker := time.NewTicker(panelPollInterval)
	w.SetOnClosed(func() { ticker.Stop() })
	go func() {
		for range ticker.C {
			update()
		}
	}()
}
