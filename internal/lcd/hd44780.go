// Package lcd implements the HD44780-compatible character display
// controller used by the front panel's 16x2 LCD.
package lcd

// stateSize is the length of the serialized save-state blob: 80 DDRAM
// bytes plus 12 control/cursor bytes.
const stateSize = 92

// Display reproduces the HD44780 controller's DDRAM, cursor, and
// display-mode state machine, driven by the same two-register
// instruction/data bus protocol as the real chip.
type Display struct {
	// Line1 and Line2 hold the currently visible 16 characters of each
	// row, refreshed after every instruction or data write.
	Line1 [16]byte
	Line2 [16]byte

	CursorPos   uint8
	CursorLine  uint8
	CursorOn    bool
	CursorBlink bool
	DisplayOn   bool
	TwoLine     bool // false = 1 line, true = 2 lines

	ddram [80]byte
	cgram [64]byte // unused (no custom characters loaded)

	ac      uint8
	shift   uint8
	shiftS  bool // shift enabled on data write
	idInc   bool // increment (true) vs decrement (false) address counter
	ddMode  bool
	dataLen bool // ignored, always 8-bit mode
	font    bool // ignored, always 5x8
}

// New returns a Display already cleared, matching the real chip's
// power-on state after a clear-display instruction.
func New() *Display {
	d := &Display{}
	d.Inst(0x01) // clear
	return d
}

// bit extracts bit n of x.
func bit(x uint8, n uint) bool { return (x>>n)&1 != 0 }

// Data handles a write to the HD44780 data bus: it stores the byte at
// the current address counter, advances/shifts per the entry-mode
// settings, and refreshes the visible line buffers.
func (d *Display) Data(x uint8) {
	if d.ddMode {
		d.ddram[d.ac] = x
		if d.idInc {
			d.ac++
		} else {
			d.ac--
		}
		if d.ac > 79 {
			if d.idInc {
				d.ac = 0
			} else {
				d.ac = 79
			}
		}
		switch {
		case d.shiftS && d.idInc: // shift right
			if d.TwoLine {
				d.shift++
				if d.shift > 39 {
					d.shift = 0
				}
			} else {
				d.shift++
				if d.shift > 79 {
					d.shift = 0
				}
			}
		case d.shiftS: // shift left
			if d.TwoLine {
				if d.shift == 0 {
					d.shift = 39
				} else {
					d.shift--
				}
			} else if d.shift == 0 {
				d.shift = 79
			} else {
				d.shift--
			}
		}
	} else {
		d.cgram[d.ac&0x3F] = x
		if d.idInc {
			d.ac++
		} else {
			d.ac--
		}
		if d.ac > 63 {
			if d.idInc {
				d.ac = 0
			} else {
				d.ac = 63
			}
		}
	}
	d.updateCursor()
	d.refresh()
}

// Inst handles a write to the HD44780 instruction bus, decoding the
// standard bit-prioritized instruction set (DDRAM/CGRAM address set,
// function set, cursor/display shift, display control, entry mode,
// return home, clear display).
func (d *Display) Inst(x uint8) {
	switch {
	case bit(x, 7): // set DDRAM address
		d.ac = x & 0x7F
		if d.TwoLine {
			if d.ac >= 64 {
				d.ac -= 24
			}
		} else if d.ac >= 80 {
			d.ac -= 80
		}
		d.ddMode = true
		d.updateCursor()
	case bit(x, 6): // set CGRAM address (no CGRAM support)
		d.ac = x & 0x3F
		d.ddMode = false
		d.updateCursor()
	case bit(x, 5): // function set
		d.dataLen = bit(x, 4)
		d.TwoLine = bit(x, 3)
		d.font = bit(x, 2)
		d.updateCursor()
	case bit(x, 4): // cursor/display shift or move
		if bit(x, 3) { // shift
			if bit(x, 2) {
				if d.TwoLine {
					d.shift++
					if d.shift > 39 {
						d.shift = 0
					}
				} else {
					d.shift++
					if d.shift > 79 {
						d.shift = 0
					}
				}
			} else if d.TwoLine {
				if d.shift == 0 {
					d.shift = 39
				} else {
					d.shift--
				}
			} else if d.shift == 0 {
				d.shift = 79
			} else {
				d.shift--
			}
		} else { // move
			if bit(x, 2) {
				d.ac++
				if d.ac > 79 {
					d.ac = 0
				}
			} else if d.ac == 0 {
				d.ac = 79
			} else {
				d.ac--
			}
		}
		d.updateCursor()
	case bit(x, 3): // display/cursor/blink control
		d.DisplayOn = bit(x, 2)
		d.CursorOn = bit(x, 1)
		d.CursorBlink = bit(x, 0)
		d.updateCursor()
	case bit(x, 2): // entry mode set
		d.idInc = bit(x, 1)
		d.shiftS = bit(x, 0)
	case bit(x, 1): // return home
		d.ac = 0
		d.shift = 0
		d.refresh()
		d.updateCursor()
	case bit(x, 0): // clear display
		d.ac = 0
		for i := range d.ddram {
			d.ddram[i] = 0x20
		}
		d.updateCursor()
		d.refresh()
	}
	d.refresh()
}

// updateCursor recomputes the externally visible cursor position/line
// and display-mode flags from internal state.
func (d *Display) updateCursor() {
	if d.TwoLine {
		d.CursorPos = uint8((int(d.ac) - int(d.shift) + 40) % 40)
		if d.ac >= 40 {
			d.CursorLine = 2
		} else {
			d.CursorLine = 1
		}
	} else {
		d.CursorPos = uint8((int(d.ac) - int(d.shift) + 80) % 80)
		d.CursorLine = 1
	}
}

// refresh recomputes the visible 16-character window of each line from
// DDRAM and the current display shift offset.
func (d *Display) refresh() {
	clear(d.Line1[:])
	clear(d.Line2[:])
	if d.TwoLine {
		if d.shift > 24 {
			copy(d.Line1[:int(d.shift)-24], d.ddram[:])
			copy(d.Line1[:], d.ddram[d.shift:40])
			copy(d.Line2[:int(d.shift)-24], d.ddram[40:])
			copy(d.Line2[:], d.ddram[int(d.shift)+40:80])
		} else {
			copy(d.Line1[:], d.ddram[d.shift:d.shift+16])
			copy(d.Line2[:], d.ddram[int(d.shift)+40:int(d.shift)+56])
		}
	} else {
		if d.shift > 64 {
			copy(d.Line1[:int(d.shift)-64], d.ddram[:])
			copy(d.Line1[:], d.ddram[d.shift:80])
		} else {
			copy(d.Line1[:], d.ddram[d.shift:d.shift+16])
		}
	}
}

// Save serializes the display's full state (DDRAM plus control/cursor
// registers) for persistence alongside the rest of machine state.
func (d *Display) Save() [stateSize]byte {
	var out [stateSize]byte
	copy(out[:80], d.ddram[:])
	out[80] = d.ac
	out[81] = d.shift
	out[82] = boolByte(d.shiftS)
	out[83] = boolByte(d.idInc)
	out[84] = boolByte(d.DisplayOn)
	out[85] = boolByte(d.CursorOn)
	out[86] = boolByte(d.CursorBlink)
	out[87] = boolByte(d.ddMode)
	out[88] = boolByte(d.dataLen)
	out[89] = boolByte(d.font)
	out[90] = boolByte(d.TwoLine)
	return out
}

// Restore loads a previously Saved state blob.
func (d *Display) Restore(data [stateSize]byte) {
	copy(d.ddram[:], data[:80])
	d.ac = data[80]
	d.shift = data[81]
	d.shiftS = data[82] != 0
	d.idInc = data[83] != 0
	d.DisplayOn = data[84] != 0
	d.CursorOn = data[85] != 0
	d.CursorBlink = data[86] != 0
	d.ddMode = data[87] != 0
	d.dataLen = data[88] != 0
	d.font = data[89] != 0
	d.TwoLine = data[90] != 0
	d.updateCursor()
	d.refresh()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
