package midi

import "math"

// Parser translates an inbound MIDI byte stream into front-panel/analog
// Messages, filtering by receive channel and applying a velocity curve
// the same way the real unit's MIDI daughterboard did before handing
// note data to the sub-CPU.
//
// DX7 velocity is inverted internally: the keybed measures the time
// from contact break to make, so a fast (loud) strike yields a small
// internal value. The curve table produced here still maps MIDI
// velocity (0 soft - 127 loud) to the 1-127 internal range; callers
// invert (128-v) when handing a key event to the sub-CPU, exactly as
// the original does for real front-panel keys (raw MIDI passthrough
// mode applies its own curve in firmware instead).
type Parser struct {
	RxChannel uint8
	velocity  [128]uint8

	// Expression is the running state of controller 11 (0.0-1.0). Only
	// Parse writes it; the audio loop's output gain does not read it, so
	// controller 11 does not change the output level.
	Expression float64
}

// NewParser returns a Parser with a linear velocity curve and channel 0.
func NewParser() *Parser {
	p := &Parser{}
	p.SetVelocityCurve(1.0)
	return p
}

// SetVelocityCurve installs a power-law velocity curve: c<1 is convex
// (quieter strikes feel louder), c>1 is concave, c=1 is linear. Out-of-
// range c values (the original's guard: 0.25-4.0) fall back to linear.
func (p *Parser) SetVelocityCurve(c float64) {
	if c < 0.25 || c > 4.0 {
		c = 1.0
	}
	for i := 0; i < 128; i++ {
		p.velocity[i] = uint8(127*math.Pow(float64(i)/127.0, c) + 0.5)
	}
}

// SetVelocityCurvePWL installs a piecewise-linear velocity curve from a
// sequence of (x,y) breakpoints, x ascending and spanning 1..127.
func (p *Parser) SetVelocityCurvePWL(points [][2]uint8) {
	p.velocity[0] = 0
	if len(points) < 2 {
		return
	}
	p1 := points[0]
	for _, p2 := range points[1:] {
		slope := float64(int(p2[1])-int(p1[1])) / float64(int(p2[0])-int(p1[0]))
		for x := int(p1[0]); x <= int(p2[0]); x++ {
			p.velocity[x] = uint8(float64(p1[1]) + float64(x-int(p1[0]))*slope)
		}
		p1 = p2
	}
}

// Event is a decoded outcome of Parse: either a Message destined for the
// front-panel/analog event queue, a cartridge bank-change request, or a
// signal that the clean-mode toggle changed.
type Event struct {
	Message    Message
	HasMessage bool
	BankChange int // -1 if none, else 0-7
	CleanMode  int // -1 if unset, else 0 or 1
}

// Parse decodes one MIDI status+data byte group (1-3 bytes) addressed
// to RxChannel. It reports the Event produced (if any) and whether it
// consumed the group. A group it does not consume (one on another
// channel, controller 7, all-notes-off, any unmapped controller, and the
// remaining channel messages such as program change) belongs in the
// sub-CPU's serial interface instead.
func (p *Parser) Parse(buf []byte) (ev Event, consumed bool) {
	ev.BankChange = -1
	ev.CleanMode = -1
	if len(buf) < 1 || len(buf) > 3 {
		return ev, false
	}
	if buf[0]&0x0F != p.RxChannel {
		return ev, false
	}
	switch buf[0] & 0xF0 {
	case 0x80: // note off
		if len(buf) >= 2 && buf[1] >= 36 {
			ev.Message, ev.HasMessage = mustKey(buf[1]-36, 0)
		}
		return ev, true
	case 0x90: // note on
		if len(buf) >= 3 && buf[1] >= 36 {
			ev.Message, ev.HasMessage = mustKey(buf[1]-36, p.velocity[buf[2]])
		}
		return ev, true
	case 0xB0:
		if len(buf) < 3 {
			return ev, false
		}
		return p.parseController(buf[1], buf[2])
	case 0xD0: // channel pressure
		if len(buf) >= 2 {
			ev.Message = Message{Byte1: uint8(CtrlAftertouch), Byte2: buf[1]}
			ev.HasMessage = true
		}
		return ev, true
	case 0xE0: // pitch bend, MSB only
		if len(buf) >= 3 {
			ev.Message = Message{Byte1: uint8(CtrlPitchbend), Byte2: buf[2]}
			ev.HasMessage = true
		}
		return ev, true
	default:
		return ev, false
	}
}

func (p *Parser) parseController(ctrl, val uint8) (Event, bool) {
	var ev Event
	ev.BankChange = -1
	ev.CleanMode = -1
	switch ctrl {
	case 0:
		// Bank-select MSB triggers a reset bug in the original firmware;
		// swallow it rather than forwarding.
		return ev, true
	case 1:
		ev.Message = Message{Byte1: uint8(CtrlModulate), Byte2: val}
		ev.HasMessage = true
		return ev, true
	case 2:
		ev.Message = Message{Byte1: uint8(CtrlBreath), Byte2: val}
		ev.HasMessage = true
		return ev, true
	case 4:
		ev.Message = Message{Byte1: uint8(CtrlFoot), Byte2: val}
		ev.HasMessage = true
		return ev, true
	case 6:
		ev.Message = Message{Byte1: uint8(CtrlData), Byte2: val}
		ev.HasMessage = true
		return ev, true
	case 7:
		// Forwarded to the serial interface for the original 3-bit DAC
		// volume control.
		return ev, false
	case 11:
		p.Expression = float64(val) / 127.0
		return ev, true
	case 32:
		ev.BankChange = int(val % 8)
		return ev, true
	case 64:
		ev.Message = Message{Byte1: uint8(CtrlSustain), Byte2: val}
		ev.HasMessage = true
		return ev, true
	case 65:
		ev.Message = Message{Byte1: uint8(CtrlPorta), Byte2: val}
		ev.HasMessage = true
		return ev, true
	case 123:
		// All notes off: works around a firmware bug that fails to clear
		// stuck voices by key-offing every voice here too, but still
		// forwards the raw controller.
		return ev, false
	case 98:
		if val != 0 {
			ev.CleanMode = 1
		} else {
			ev.CleanMode = 0
		}
		return ev, true
	default:
		return ev, false
	}
}

func mustKey(key, vel uint8) (Message, bool) {
	m, ok := KeyMessage(key, vel)
	return m, ok
}
