// Package dx7 wires the HD6303R CPU core, the EGS sound chip, and the
// HD44780 front-panel display together into the complete DX7 hardware
// emulation: the memory-mapped peripheral bus, the sub-CPU event
// handshake, MIDI serial framing, battery-RAM and cartridge persistence,
// and master tuning.
package dx7

import (
	"fmt"
	"os"

	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/egs"
	"nitro-core-dx/internal/filter"
	"nitro-core-dx/internal/lcd"
	"nitro-core-dx/internal/midi"
	"nitro-core-dx/internal/ringqueue"
)

// Peripheral and RAM addresses, memory-mapped exactly as the hardware
// wires them (see dx7.h's address-space comments).
const (
	addrLCDData     uint16 = 0x2800
	addrLCDCtrl     uint16 = 0x2801
	addrPedalsLCD   uint16 = 0x2802
	addrOPSMode     uint16 = 0x2804
	addrOPSAlgFdbk  uint16 = 0x2805
	addrDAC         uint16 = 0x280A
	addrACEPT       uint16 = 0x280C
	addrLED1        uint16 = 0x280E
	addrLED2        uint16 = 0x280F
	addrEGSBase     uint16 = 0x3000
	addrCartBase    uint16 = 0x4000
	addrCartEnd     uint16 = 0x5000
	addrMasterTune  uint16 = 0x2311
	addrMasterTuneL uint16 = 0x2312
	addrMidiRxCh    uint16 = 0x2573
)

// sciBaudPeriod is the CPU-cycle period of the external 31.25K-baud MIDI
// serial clock: ((9.4265MHz/2)/4) / 3125 bytes/sec.
const sciBaudPeriod = 377

// DX7 is one complete hardware emulation: CPU, EGS (and through it OPS
// and the decimation filter), LCD, MIDI serial framing, and the
// sub-CPU event handshake.
type DX7 struct {
	CPU *cpu.CPU
	EGS *egs.EGS
	LCD *lcd.Display

	// ToGui is the outbound message queue carrying LCD/LED/cartridge
	// state changes to the front-panel UI. May be nil in headless/test
	// configurations.
	ToGui *midi.Queue

	midiSerialRx *ringqueue.Queue[uint8]
	midiSerialTx *ringqueue.Queue[uint8]

	midiVolume uint8
	midiVolTab [8]float64
	MidiFilter *filter.LP1

	msg        midi.Message
	haveMsg    bool
	byte1Sent  bool

	saveCart bool
	cartFile string
	cartNum  int // -1 if no factory cartridge loaded

	// factoryBanks holds up to 8 factory voice banks of 4096 bytes each,
	// loaded via LoadFactoryBanks. The original links these from a binary
	// blob at build time; this emulation loads them from a file at
	// runtime instead, since no such blob ships with this module (see
	// DESIGN.md).
	factoryBanks [8][4096]byte
	haveBanks    bool

	log *debug.Logger
}

// New allocates a DX7 with its CPU, EGS, and LCD wired together the same
// way the hardware's address decoder does: EGS owns the 256-byte
// register window at 0x3000, and every CPU memory write is inspected
// for peripheral side effects.
func New(toGui *midi.Queue, log *debug.Logger) *DX7 {
	d := &DX7{
		CPU:          cpu.NewCPU(),
		LCD:          lcd.New(),
		ToGui:        toGui,
		midiSerialRx: ringqueue.New[uint8](8192),
		midiSerialTx: ringqueue.New[uint8](8192),
		midiVolume:   7,
		MidiFilter:   filter.NewLP1(1),
		cartNum:      -1,
		log:          log,
	}
	d.midiVolTab = [8]float64{
		0, 710.0 / 4790.0, 200.0 / 4790.0, 2590.0 / 4790.0,
		100.0 / 4790.0, 1390.0 / 4790.0, 380.0 / 4790.0, 4790.0 / 4790.0,
	}
	egsMem := (*[256]uint8)(d.CPU.Memory[addrEGSBase : addrEGSBase+256])
	d.EGS = egs.New(egsMem, log)
	d.CPU.SetWriteObserver(d.onWrite)
	return d
}

// MidiVolume reports the current 3-bit hardware DAC volume index (0-7).
func (d *DX7) MidiVolume() uint8 { return d.midiVolume }

// MidiVolumeGain returns the linear gain for the current DAC volume
// index, matching the hardware's non-uniform reference-voltage table.
func (d *DX7) MidiVolumeGain() float64 { return d.midiVolTab[d.midiVolume] }

// GetMidiRxChannel returns the MIDI channel the firmware is configured
// to receive on, read from its RAM location.
func (d *DX7) GetMidiRxChannel() uint8 { return d.CPU.Memory[addrMidiRxCh] }

// Tune sets the master tuning, -256 to +255 in roughly 0.3-cent steps
// (0 = A440), split across the two RAM bytes the firmware reads it from.
// Out-of-range values are ignored, matching the original's silent guard.
func (d *DX7) Tune(tuning int) {
	if tuning < 256 && tuning >= -256 {
		t := uint16(tuning + 256)
		d.CPU.Memory[addrMasterTune] = uint8(t >> 8)
		d.CPU.Memory[addrMasterTuneL] = uint8(t)
	}
}

// Sustain sets or clears the sustain pedal bit.
func (d *DX7) Sustain(on bool) { setClearBit(&d.CPU.Memory[addrPedalsLCD], 0, on) }

// Porta sets or clears the portamento pedal bit.
func (d *DX7) Porta(on bool) { setClearBit(&d.CPU.Memory[addrPedalsLCD], 1, on) }

// CartPresent sets whether a cartridge is inserted (active-low bit 5).
func (d *DX7) CartPresent(present bool) { setClearBit(&d.CPU.Memory[addrPedalsLCD], 5, !present) }

// CartPresentStatus reports the current cartridge-present bit.
func (d *DX7) CartPresentStatus() bool { return d.CPU.Memory[addrPedalsLCD]&0b100000 == 0 }

// CartWriteProtect sets whether the cartridge is write protected.
func (d *DX7) CartWriteProtect(protect bool) { setClearBit(&d.CPU.Memory[addrPedalsLCD], 6, protect) }

// CartWriteProtectStatus reports the current write-protect bit.
func (d *DX7) CartWriteProtectStatus() bool { return d.CPU.Memory[addrPedalsLCD]&0b1000000 != 0 }

// Start brings up the machine: reports a low battery voltage before
// restoring RAM (no other level is reported afterwards, even when the
// restore succeeds), defaults master tuning if the restore fails, clears
// the pedal/cartridge status bits, enables portamento-always (matching
// a documented hardware quirk where the pedal being unplugged otherwise
// leaves it stuck on), and resets the CPU.
func (d *DX7) Start(ramfile string, battery func(level uint8)) {
	if battery != nil {
		battery(49) // "low" ~1.9V until RAM is restored
	}
	if err := d.RestoreRAM(ramfile); err != nil {
		for i := 0x1000; i < 0x1000+6144; i++ {
			d.CPU.Memory[i] = 0
		}
		d.Tune(0)
		if battery != nil {
			// the low level reported above stands; RestoreRAM reports no
			// battery level
		}
	}
	d.CPU.Memory[addrPedalsLCD] = 0x00
	d.Porta(true)
	d.CartPresent(false)
	d.CartWriteProtect(true)
	d.CPU.Memory[addrPedalsLCD] &^= 0b10000000 // LCD busy always clear
	d.CPU.Reset()
}

// LoadROM reads a 16384-byte firmware ROM image into the CPU's upper
// memory bank (0xC000-0xFFFF).
func (d *DX7) LoadROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ROMLoadError{Path: path, Err: err}
	}
	if len(data) != 16384 {
		return &ROMLoadError{Path: path, Want: 16384, Got: len(data)}
	}
	copy(d.CPU.Memory[0xC000:0x10000], data)
	return nil
}

// RestoreRAM loads the 6144-byte battery-backed RAM image (patch memory
// and configuration) from path into CPU memory at 0x1000.
func (d *DX7) RestoreRAM(path string) error {
	if path == "" {
		return fmt.Errorf("dx7: no RAM file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dx7: restore RAM %q: %w", path, err)
	}
	if len(data) != 6144 {
		return fmt.Errorf("dx7: %q is not a DX7 RAM image (size %d != 6144)", path, len(data))
	}
	copy(d.CPU.Memory[0x1000:0x1000+6144], data)
	return nil
}

// SaveRAM writes the current 6144-byte battery-backed RAM image to path.
func (d *DX7) SaveRAM(path string) error {
	if path == "" {
		return fmt.Errorf("dx7: no RAM file configured")
	}
	if err := os.WriteFile(path, d.CPU.Memory[0x1000:0x1000+6144], 0o644); err != nil {
		return fmt.Errorf("dx7: save RAM %q: %w", path, err)
	}
	return nil
}

// PostMessage hands a front-panel/analog/key event to the sub-CPU
// handshake, to be delivered once the handshake state machine is ready
// for it. Velocity on key events is inverted before this is called,
// matching the keybed's contact-break-to-make timing convention.
func (d *DX7) PostMessage(m midi.Message) {
	d.msg = m
	d.haveMsg = true
}

// HaveMessage reports whether the sub-CPU handshake currently holds an
// undelivered message (i.e. whether the CPU is still busy with the
// previous one).
func (d *DX7) HaveMessage() bool { return d.haveMsg }

// Run executes exactly one CPU instruction and services every peripheral
// that depends on wall-clock-ish timing rather than a specific memory
// write: the external 31.25K-baud MIDI serial clock and the sub-CPU
// event handshake's first stage.
func (d *DX7) Run() error {
	if err := d.CPU.Step(); err != nil {
		return err
	}

	if d.CPU.SCITxCounter() >= sciBaudPeriod {
		if b, ok := d.CPU.ClockOutData(); ok {
			d.midiSerialTx.Push(b)
		}
	}
	if d.CPU.SCIRxCounter() >= sciBaudPeriod {
		if !d.midiSerialRx.WasEmpty() && !bitSet(d.CPU.Memory[cpu.RegTRCSR], 7) {
			if b, ok := d.midiSerialRx.Pop(); ok {
				d.CPU.ClockInData(b)
			}
		}
	}

	// Sub-CPU event handshake, stage 1: main CPU signals ready (PORT2
	// bit 0) and we have a message queued that hasn't started yet.
	if bitSet(d.CPU.Memory[cpu.RegPORT2], 0) && d.haveMsg && !d.byte1Sent {
		d.CPU.Memory[cpu.RegPORT1] = d.msg.Byte1
		clearBit(&d.CPU.Memory[cpu.RegPORT2], 1)
		d.CPU.IRQPin = false
		d.byte1Sent = true
		if d.log != nil {
			d.log.LogHandshake(debug.LogLevelTrace, "byte1 sent", nil)
		}
	}

	return nil
}

// QueueMIDIRx enqueues raw bytes destined for the sub-CPU's serial
// receive buffer (used for bytes that parsing doesn't consume directly,
// and for System Exclusive data).
func (d *DX7) QueueMIDIRx(data []byte) {
	for _, b := range data {
		if !d.midiSerialRx.Push(b) {
			if d.log != nil {
				d.log.LogMIDI(debug.LogLevelWarning, "MIDI RX buffer overflow", nil)
			}
			return
		}
	}
}

// DequeueMIDITx pops one pending transmit byte, if any, for the outbound
// MIDI Splitter to reassemble.
func (d *DX7) DequeueMIDITx() (byte, bool) { return d.midiSerialTx.Pop() }

// onWrite is the CPU's memory-write observer: the Go analogue of run()'s
// post-instruction peripheral dispatch, invoked as each byte lands
// rather than once per instruction (equivalent for every register here,
// since firmware always writes these one byte at a time).
func (d *DX7) onWrite(addr uint16, value uint8) {
	switch {
	case addr&0xFFF0 == 0x2800:
		d.onPeripheralWrite(addr, value)
	case addr&0xFF00 == addrEGSBase:
		d.EGS.Update(uint8(addr))
	case addr >= addrCartBase && addr < addrCartEnd:
		d.saveCart = true
	}
}

func (d *DX7) onPeripheralWrite(addr uint16, value uint8) {
	switch addr {
	case addrLCDData:
		switch d.CPU.Memory[addrLCDCtrl] {
		case 4:
			if d.ToGui != nil {
				d.ToGui.Push(midi.Message{Byte1: uint8(midi.CtrlLCDInst), Byte2: value})
			}
			d.LCD.Inst(value)
		case 5:
			if d.ToGui != nil {
				d.ToGui.Push(midi.Message{Byte1: uint8(midi.CtrlLCDData), Byte2: value})
			}
			d.LCD.Data(value)
		}
	case addrLCDCtrl:
		// Always written before addrLCDData; nothing to do here.
	case addrACEPT:
		d.onAcept()
	case addrLED1, addrLED2:
		// CPU always writes LED2 before LED1; propagate both on the LED1
		// write exactly as the original does.
		if addr == addrLED1 && d.ToGui != nil {
			d.ToGui.Push(midi.Message{Byte1: uint8(midi.CtrlLED1SetVal), Byte2: d.CPU.Memory[addrLED1]})
			d.ToGui.Push(midi.Message{Byte1: uint8(midi.CtrlLED2SetVal), Byte2: d.CPU.Memory[addrLED2]})
		}
	case addrOPSAlgFdbk:
		d.EGS.SetAlgorithm(d.CPU.Memory[addrOPSMode], d.CPU.Memory[addrOPSAlgFdbk])
	case addrDAC:
		d.midiVolume = value & 7
	}
}

// onAcept completes one stage of the sub-CPU event handshake: on the
// first completion it sends the message's second byte, on the second it
// signals that the synth is ready for a new message.
func (d *DX7) onAcept() {
	if d.byte1Sent {
		d.CPU.Memory[cpu.RegPORT1] = d.msg.Byte2
		clearBit(&d.CPU.Memory[cpu.RegPORT2], 1)
		d.CPU.IRQPin = false
		d.byte1Sent = false
	} else {
		d.CPU.IRQPin = true
		d.haveMsg = false
	}
}

func bitSet(x uint8, n uint) bool { return (x>>n)&1 != 0 }

func setBit(x *uint8, n uint)   { *x |= 1 << n }
func clearBit(x *uint8, n uint) { *x &^= 1 << n }

func setClearBit(x *uint8, n uint, set bool) {
	if set {
		setBit(x, n)
	} else {
		clearBit(x, n)
	}
}
