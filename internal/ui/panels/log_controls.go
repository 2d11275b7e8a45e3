package panels

import (
	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/debug"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogControls creates a panel for toggling per-component logging and
// the CPU instruction logger's granularity.
func LogControls(logger *debug.Logger, cpuLogger *cpu.CPULoggerAdapter) *fyne.Container {
	components := []debug.Component{
		debug.ComponentCPU, debug.ComponentEGS, debug.ComponentOPS,
		debug.ComponentBus, debug.ComponentHandshake, debug.ComponentMIDI,
		debug.ComponentLCD, debug.ComponentUI, debug.ComponentSystem,
	}

	checkRow := container.NewVBox()
	for _, comp := range components {
		comp := comp
		check := widget.NewCheck(string(comp), func(enabled bool) {
			if logger != nil {
				logger.SetComponentEnabled(comp, enabled)
			}
		})
		if logger != nil {
			check.SetChecked(logger.IsComponentEnabled(comp))
		}
		checkRow.Add(check)
	}

	levelNames := []string{"None", "Errors", "Branches", "Memory", "Registers", "Instructions", "Trace"}
	levelSelect := widget.NewSelect(levelNames, func(name string) {
		if cpuLogger == nil {
			return
		}
		for i, n := range levelNames {
			if n == name {
				cpuLogger.SetLevel(cpu.CPULogLevel(i))
				return
			}
		}
	})
	levelSelect.SetSelected(levelNames[cpu.CPULogNone])

	return container.NewVBox(
		widget.NewLabel("Component Logging"),
		checkRow,
		widget.NewLabel("CPU Instruction Log Level"),
		levelSelect,
	)
}
