package panels

import (
	"fmt"

	"nitro-core-dx/internal/cpu"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MemoryViewer creates a panel showing the CPU's flat 64KiB address
// space in hex dump format. Returns both the container and an update
// function that should be called periodically.
func MemoryViewer(c *cpu.CPU) (*fyne.Container, func()) {
	offsetEntry := widget.NewEntry()
	offsetEntry.SetText("0x0000")
	offsetLabel := widget.NewLabel("Offset:")

	memoryText := widget.NewLabel("")
	memoryText.Wrapping = fyne.TextWrapOff
	memoryScroll := container.NewScroll(memoryText)
	memoryScroll.SetMinSize(fyne.NewSize(400, 400))

	currentOffset := uint16(0)

	updateFunc := func() {
		if c == nil {
			return
		}

		var offset uint16
		fmt.Sscanf(offsetEntry.Text, "0x%X", &offset)
		currentOffset = offset

		var dumpText string
		dumpText += fmt.Sprintf("Memory Dump - Offset 0x%04X\n\n", currentOffset)

		const lines = 16
		for line := 0; line < lines; line++ {
			lineOffset := currentOffset + uint16(line*16)
			dumpText += fmt.Sprintf("%04X  ", lineOffset)

			for i := 0; i < 16; i++ {
				dumpText += fmt.Sprintf("%02X ", c.Memory[lineOffset+uint16(i)])
			}

			dumpText += " |"
			for i := 0; i < 16; i++ {
				v := c.Memory[lineOffset+uint16(i)]
				if v >= 32 && v < 127 {
					dumpText += string(rune(v))
				} else {
					dumpText += "."
				}
			}
			dumpText += "|\n"
		}

		memoryText.SetText(dumpText)
	}

	offsetEntry.OnChanged = func(string) { updateFunc() }

	updateFunc()

	controls := container.NewHBox(offsetLabel, offsetEntry)

	box := container.NewVBox(
		widget.NewLabel("Memory Viewer"),
		controls,
		memoryScroll,
	)

	return box, updateFunc
}
