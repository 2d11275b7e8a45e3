package main

import (
	"nitro-core-dx/internal/dx7"

	"github.com/veandco/go-sdl2/sdl"
)

// keyToNote maps a two-octave span of the QWERTY keyboard to MIDI note
// numbers starting at middle C (60): the lower octave has its white keys
// on the Z row and black keys on the home row above it, the upper octave
// its white keys on the Q row and black keys on the number row, the same
// layout most software keyboard-as-piano tools use.
var keyToNote = map[sdl.Keycode]uint8{
	sdl.K_z: 60, sdl.K_s: 61, sdl.K_x: 62, sdl.K_d: 63, sdl.K_c: 64,
	sdl.K_v: 65, sdl.K_g: 66, sdl.K_b: 67, sdl.K_h: 68, sdl.K_n: 69,
	sdl.K_j: 70, sdl.K_m: 71,
	sdl.K_q: 72, sdl.K_2: 73, sdl.K_w: 74, sdl.K_3: 75, sdl.K_e: 76,
	sdl.K_r: 77, sdl.K_5: 78, sdl.K_t: 79, sdl.K_6: 80, sdl.K_y: 81,
	sdl.K_7: 82, sdl.K_u: 83,
}

const keyboardChannel = 0
const keyboardVelocity = 100

// pumpKeyboardMIDI runs an SDL event loop translating key up/down
// events on the mapped range into MIDI note on/off, handing them to the
// synth exactly as an external MIDI input would.
func pumpKeyboardMIDI(synth *dx7.Synth) {
	for {
		event := sdl.WaitEvent()
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return
		case *sdl.KeyboardEvent:
			note, ok := keyToNote[e.Keysym.Sym]
			if !ok {
				continue
			}
			switch e.Type {
			case sdl.KEYDOWN:
				if e.Repeat == 0 {
					synth.QueueMIDIRx([]byte{0x90 | keyboardChannel, note, keyboardVelocity})
				}
			case sdl.KEYUP:
				synth.QueueMIDIRx([]byte{0x80 | keyboardChannel, note, 0})
			}
		}
	}
}
