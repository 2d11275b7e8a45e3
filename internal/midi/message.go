// Package midi implements the front-panel/host control-message protocol
// and the inbound/outbound MIDI byte-stream translation that sits
// between a MIDI port and the DX7's sub-CPU serial interface.
package midi

// CtrlID identifies the subject of a Message's first byte: either a
// front-panel control, an analog controller source, a key event, or
// (for synth-to-UI traffic) a display/LED update.
type CtrlID uint8

// Front-panel buttons, pedals, and slider/cartridge controls.
const (
	CtrlButton1 CtrlID = iota
	CtrlButton2
	CtrlButton3
	CtrlButton4
	CtrlButton5
	CtrlButton6
	CtrlButton7
	CtrlButton8
	CtrlButton9
	CtrlButton10
	CtrlButton11
	CtrlButton12
	CtrlButton13
	CtrlButton14
	CtrlButton15
	CtrlButton16
	CtrlButton17
	CtrlButton18
	CtrlButton19
	CtrlButton20
	CtrlButton21
	CtrlButton22
	CtrlButton23
	CtrlButton24
	CtrlButton25
	CtrlButton26
	CtrlButton27
	CtrlButton28
	CtrlButton29
	CtrlButton30
	CtrlButton31
	CtrlButton32
	CtrlW
	CtrlX
	CtrlY
	CtrlZ
	CtrlChr
	CtrlDash
	CtrlDot
	CtrlSpace
	CtrlNo
	CtrlYes
	CtrlSustain
	CtrlPorta
	CtrlCartridge
	CtrlProtect
	CtrlVolume
	CtrlSendState
	CtrlCartridgeFile
	CtrlNone
)

// Analog controller sources and battery/aftertouch readings.
const (
	CtrlData       CtrlID = 144
	CtrlPitchbend  CtrlID = 145
	CtrlModulate   CtrlID = 146
	CtrlFoot       CtrlID = 147
	CtrlBreath     CtrlID = 148
	CtrlAftertouch CtrlID = 149
	CtrlBattery    CtrlID = 150
)

// Front-panel button-press/release events; Message.Byte2 carries
// button+80.
const (
	CtrlButtonDown CtrlID = 152
	CtrlButtonUp   CtrlID = 153
)

// keyEventBase is the first CtrlID value of the 61-key front-panel key
// range (159-219); Message.Byte2 is velocity, 0 meaning key-off.
const keyEventBase = 159

// Synth-to-GUI display/LED/cartridge-state update events.
const (
	CtrlLCDInst       CtrlID = 230
	CtrlLCDData       CtrlID = 231
	CtrlLED1SetVal    CtrlID = 232
	CtrlLED2SetVal    CtrlID = 233
	CtrlCartridgeNum  CtrlID = 234
	CtrlCartridgeName CtrlID = 235
	CtrlLCDState      CtrlID = 236
)

// Message is the fixed two-byte unit exchanged between the audio thread
// and the UI/host threads over a Queue.
type Message struct {
	Byte1 uint8
	Byte2 uint8
}

// KeyMessage builds a front-panel key event for the given key (0-60) and
// velocity (0 means key-off, matching the real front panel's key-off
// encoding).
func KeyMessage(key, velocity uint8) (Message, bool) {
	if key >= 61 {
		return Message{}, false
	}
	return Message{Byte1: uint8(keyEventBase) + key, Byte2: velocity}, true
}

// IsKeyEvent reports whether m is a front-panel key event, and if so its
// key number and velocity.
func (m Message) IsKeyEvent() (key, velocity uint8, ok bool) {
	if m.Byte1 < keyEventBase || m.Byte1 > 219 {
		return 0, 0, false
	}
	return m.Byte1 - keyEventBase, m.Byte2, true
}
