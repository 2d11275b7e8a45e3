package panels

import (
	"fmt"
	"os"
	"time"

	"nitro-core-dx/internal/debug"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewerFyne creates a panel showing log entries, with per-component
// and per-level filtering. Returns both the container and an update
// function that should be called periodically.
func LogViewerFyne(logger *debug.Logger, window fyne.Window) (*fyne.Container, func()) {
	logText := widget.NewMultiLineEntry()
	logText.Wrapping = fyne.TextWrapOff
	logText.Disable()
	logScroll := container.NewScroll(logText)
	logScroll.SetMinSize(fyne.NewSize(600, 400))

	components := []debug.Component{
		debug.ComponentCPU, debug.ComponentEGS, debug.ComponentOPS,
		debug.ComponentBus, debug.ComponentHandshake, debug.ComponentMIDI,
		debug.ComponentLCD, debug.ComponentUI, debug.ComponentSystem,
	}
	checks := make(map[debug.Component]*widget.Check, len(components))
	checkRow := container.NewHBox(widget.NewLabel("Components:"))
	for _, comp := range components {
		check := widget.NewCheck(string(comp), nil)
		check.SetChecked(true)
		checks[comp] = check
		checkRow.Add(check)
	}

	levelSelect := widget.NewSelect([]string{"None", "Error", "Warning", "Info", "Debug", "Trace"}, nil)
	levelSelect.SetSelected("Info")

	autoScrollCheck := widget.NewCheck("Auto-scroll", nil)
	autoScrollCheck.SetChecked(true)

	copyBtn := widget.NewButton("Copy All", func() {
		if window != nil && logText.Text != "" {
			window.Clipboard().SetContent(logText.Text)
		}
	})

	saveBtn := widget.NewButton("Save Logs", func() {
		timestamp := time.Now().Format("20060102_150405")
		filename := fmt.Sprintf("logs_%s.txt", timestamp)
		content := logText.Text
		if content == "" {
			content = "No log entries"
		}
		content = fmt.Sprintf("nitro-core-dx logs\nGenerated: %s\n\n%s",
			time.Now().Format("2006-01-02 15:04:05"), content)
		if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
			fmt.Printf("error saving logs: %v\n", err)
		} else {
			fmt.Printf("logs saved to: %s\n", filename)
		}
	})

	filterContainer := container.NewVBox(
		checkRow,
		container.NewHBox(
			widget.NewLabel("Level:"), levelSelect,
			autoScrollCheck, widget.NewSeparator(),
			copyBtn, saveBtn,
		),
	)

	levelFromName := func(name string) debug.LogLevel {
		switch name {
		case "None":
			return debug.LogLevelNone
		case "Error":
			return debug.LogLevelError
		case "Warning":
			return debug.LogLevelWarning
		case "Debug":
			return debug.LogLevelDebug
		case "Trace":
			return debug.LogLevelTrace
		default:
			return debug.LogLevelInfo
		}
	}

	updateLogs := func() {
		if logger == nil {
			logText.SetText("Logger not available")
			return
		}

		levelFilter := levelFromName(levelSelect.Selected)
		allEntries := logger.GetEntries()
		filtered := make([]debug.LogEntry, 0, len(allEntries))
		for _, entry := range allEntries {
			if check, ok := checks[entry.Component]; ok && !check.Checked {
				continue
			}
			if entry.Level < levelFilter {
				continue
			}
			filtered = append(filtered, entry)
		}

		var text string
		if len(filtered) == 0 {
			text = "No log entries (filters may be too restrictive)"
		} else {
			startIdx := 0
			const maxEntries = 1000
			if autoScrollCheck.Checked && len(filtered) > maxEntries {
				startIdx = len(filtered) - maxEntries
			}
			for i := startIdx; i < len(filtered); i++ {
				entry := filtered[i]
				text += fmt.Sprintf("[%s] [%s] %s: %s\n",
					entry.Timestamp.Format("15:04:05.000"), entry.Component, entry.Level, entry.Message)
			}
		}

		logText.SetText(text)
		if autoScrollCheck.Checked {
			logScroll.ScrollToBottom()
		}
	}

	mainContainer := container.NewBorder(filterContainer, nil, nil, nil, logScroll)
	return mainContainer, updateLogs
}
