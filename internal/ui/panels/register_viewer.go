package panels

import (
	"fmt"
	"os"
	"time"

	"nitro-core-dx/internal/cpu"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RegisterViewer creates a panel showing HD6303R CPU registers in real
// time. Returns both the container and an update function that should
// be called periodically; window is needed for clipboard access.
func RegisterViewer(c *cpu.CPU, window fyne.Window) (*fyne.Container, func()) {
	registerText := widget.NewMultiLineEntry()
	registerText.Wrapping = fyne.TextWrapOff
	registerText.Disable() // disabled for editing, still selectable for copy

	registerScroll := container.NewScroll(registerText)
	registerScroll.SetMinSize(fyne.NewSize(300, 300))

	formatRegisterState := func() string {
		if c == nil {
			return "CPU not available\n"
		}

		var text string
		text += "=== HD6303R Registers ===\n\n"
		text += fmt.Sprintf("  A:  0x%02X (%3d)\n", c.A, c.A)
		text += fmt.Sprintf("  B:  0x%02X (%3d)\n", c.B, c.B)
		text += fmt.Sprintf("  D:  0x%04X (%5d)\n", c.D(), c.D())
		text += fmt.Sprintf("  IX: 0x%04X\n", c.IX)
		text += fmt.Sprintf("  SP: 0x%04X\n", c.SP)
		text += fmt.Sprintf("  PC: 0x%04X\n", c.PC)

		ccr := c.GetCCR()
		text += fmt.Sprintf("\nCondition Codes (0x%02X):\n", ccr)
		text += fmt.Sprintf("  H (Half-carry): %d\n", b2i(c.H))
		text += fmt.Sprintf("  I (Interrupt):  %d\n", b2i(c.I))
		text += fmt.Sprintf("  N (Negative):   %d\n", b2i(c.N))
		text += fmt.Sprintf("  Z (Zero):       %d\n", b2i(c.Z))
		text += fmt.Sprintf("  V (Overflow):   %d\n", b2i(c.V))
		text += fmt.Sprintf("  C (Carry):      %d\n", b2i(c.C))

		text += "\nState:\n"
		text += fmt.Sprintf("  Cycle:  %d\n", c.Cycle)
		text += fmt.Sprintf("  Halt:   %v\n", c.Halt)
		text += fmt.Sprintf("  IRQPin: %v\n", c.IRQPin)

		return text
	}

	updateFunc := func() {
		registerText.SetText(formatRegisterState())
	}

	copyBtn := widget.NewButton("Copy All", func() {
		if window != nil && registerText.Text != "" {
			window.Clipboard().SetContent(registerText.Text)
		}
	})

	saveBtn := widget.NewButton("Save State", func() {
		timestamp := time.Now().Format("20060102_150405")
		filename := fmt.Sprintf("register_state_%s.txt", timestamp)
		stateText := fmt.Sprintf("Register State Dump\nGenerated: %s\n\n%s",
			time.Now().Format("2006-01-02 15:04:05"), formatRegisterState())
		if err := os.WriteFile(filename, []byte(stateText), 0o644); err != nil {
			fmt.Printf("error saving register state: %v\n", err)
		} else {
			fmt.Printf("register state saved to: %s\n", filename)
		}
	})

	buttons := container.NewHBox(copyBtn, saveBtn)

	updateFunc()

	box := container.NewVBox(
		widget.NewLabel("CPU Registers"),
		buttons,
		registerScroll,
	)

	return box, updateFunc
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
