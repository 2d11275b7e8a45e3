package dx7

import (
	"math"

	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/midi"
)

// nativeClockHz is the DX7's 9.4265MHz master clock divided down to the
// main CPU's bus-cycle rate.
const nativeClockHz = 9.4265e6 / 2 / 4

// Synth is the audio-scheduling layer that sits above a DX7: it owns the
// inbound/outbound message queues, the MIDI byte-stream parser and
// transmit splitter, and the per-callback CPU-cycle budget that keeps
// the emulated hardware's free-running clock in lock-step with the
// host's audio sample rate.
type Synth struct {
	DX7 *DX7

	ToSynth *midi.Queue // inbound: UI/host -> synth
	ToGui   *midi.Queue // outbound: synth -> UI

	Parser   *midi.Parser
	Splitter *midi.Splitter

	Volume         float64
	midiExpression float64
	rawSerial      bool // raw MIDI passthrough mode: firmware applies its own velocity curve

	sampleRate      float64
	cpuCyclesPerBuf float64
	cycAccum        float64
	rawBuf          []float32

	log *debug.Logger
}

// NewSynth builds a Synth around a fresh DX7, wiring the given message
// queues both directions.
func NewSynth(toSynth, toGui *midi.Queue, log *debug.Logger) *Synth {
	s := &Synth{
		DX7:     New(toGui, log),
		ToSynth: toSynth,
		ToGui:   toGui,
		Parser:  midi.NewParser(),
		Volume:  1.0,
		log:     log,
	}
	s.SetSampleRate(48000)
	return s
}

// SetSampleRate configures the host sample rate, from which FillBuffer
// sizes each callback's CPU cycle budget, and recomputes the 10Hz
// MIDI-volume smoothing filter's cutoff.
func (s *Synth) SetSampleRate(fs float64) {
	s.sampleRate = fs
	s.DX7.MidiFilter.SetCutoff(10.6 / fs)
}

// FillBuffer runs the emulated CPU and EGS forward by exactly enough
// cycles to produce len(out) output samples at the configured sample
// rate, applying master volume and the smoothed MIDI-volume DAC gain.
// The EGS's native output rate (~49.096KHz) rarely divides the host
// rate evenly, so raw samples are linearly resampled to len(out); the
// original instead used a dedicated sample-rate-conversion library,
// which this module does not depend on (see DESIGN.md).
func (s *Synth) FillBuffer(out []float32) error {
	bufSize := len(out)
	s.cpuCyclesPerBuf = float64(bufSize) * (nativeClockHz / s.sampleRate)
	s.cycAccum += s.cpuCyclesPerBuf

	need := 2*bufSize + 16
	if cap(s.rawBuf) < need {
		s.rawBuf = make([]float32, need)
	}
	raw := s.rawBuf[:need]
	outCnt := 0

	for s.cycAccum > 0 {
		if !s.DX7.HaveMessage() {
			if msg, ok := s.ToSynth.Pop(); ok {
				s.ProcessMessage(msg)
			}
		}
		if err := s.DX7.Run(); err != nil {
			return err
		}
		_, cycles := s.DX7.CPU.LastInstruction()
		if outCnt < 2*bufSize {
			s.DX7.EGS.Clock(raw, &outCnt, 4*cycles)
		}
		s.cycAccum -= float64(cycles)
	}

	resampleLinear(raw[:outCnt], out)

	mv := s.DX7.MidiVolumeGain() + s.midiExpression + 1e-18
	if mv > 1.0 {
		mv = 1.0
	}
	for i := range out {
		out[i] *= float32(s.Volume) * float32(s.DX7.MidiFilter.Operate(mv))
	}
	return nil
}

// resampleLinear maps src (the EGS's native ~49.096KHz output) onto dst
// at whatever length the host buffer needs, via linear interpolation.
func resampleLinear(src []float32, dst []float32) {
	if len(src) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	if len(src) == 1 {
		for i := range dst {
			dst[i] = src[0]
		}
		return
	}
	ratio := float64(len(src)-1) / float64(len(dst))
	for i := range dst {
		pos := float64(i) * ratio
		lo := int(math.Floor(pos))
		frac := pos - float64(lo)
		hi := lo + 1
		if hi >= len(src) {
			hi = len(src) - 1
		}
		dst[i] = src[lo] + float32(frac)*(src[hi]-src[lo])
	}
}

// ProcessMessage dispatches one inbound Message: front-panel/host
// controls are handled here, everything else is handed off to the
// sub-CPU's event handshake.
func (s *Synth) ProcessMessage(msg midi.Message) {
	switch midi.CtrlID(msg.Byte1) {
	case midi.CtrlVolume:
		s.Volume = math.Pow(2, float64(msg.Byte2)/127.0) - 1.0
	case midi.CtrlSustain:
		s.DX7.Sustain(msg.Byte2 != 0)
	case midi.CtrlPorta:
		s.DX7.Porta(msg.Byte2 != 0)
	case midi.CtrlCartridge:
		s.DX7.CartPresent(msg.Byte2 != 0)
	case midi.CtrlCartridgeFile:
		// The caller is expected to have already popped the filename
		// bytes via ToSynth.GetBinary and call CartLoad directly; this
		// control ID alone carries only the length prefix.
	case midi.CtrlCartridgeNum:
		if err := s.DX7.SetBank(int(msg.Byte2), true); err != nil && s.log != nil {
			s.log.LogSystemError(debug.LogLevelWarning, err, nil)
		}
	case midi.CtrlProtect:
		s.DX7.CartWriteProtect(msg.Byte2 != 0)
	case midi.CtrlSendState:
		if s.ToGui != nil {
			state := s.DX7.LCD.Save()
			s.ToGui.SendBinary(midi.CtrlLCDState, state[:])
			s.ToGui.Push(midi.Message{Byte1: uint8(midi.CtrlLED1SetVal), Byte2: s.DX7.CPU.Memory[addrLED1]})
			s.ToGui.Push(midi.Message{Byte1: uint8(midi.CtrlLED2SetVal), Byte2: s.DX7.CPU.Memory[addrLED2]})
		}
	default:
		// Front-panel keys (byte1 > 158) carry velocity inverted from
		// contact-break timing; 0 always means key-off and is left
		// alone.
		if msg.Byte1 > 158 && msg.Byte2 != 0 {
			msg.Byte2 = 128 - msg.Byte2
		}
		s.DX7.PostMessage(msg)
	}
}

// QueueMIDIRx parses one inbound MIDI status+data group, handing
// recognized front-panel/analog events to the sub-CPU handshake and
// forwarding whatever the parser doesn't consume (and everything, in
// raw passthrough mode) to the sub-CPU's serial receive buffer.
func (s *Synth) QueueMIDIRx(data []byte) {
	if len(data) >= 2 && data[0]&0xF0 == 0xB0 && data[1] == 99 {
		return // reserved for an EGS trace dump in debug builds
	}
	if s.rawSerial {
		s.DX7.QueueMIDIRx(data)
		return
	}
	s.Parser.RxChannel = s.DX7.GetMidiRxChannel()
	ev, consumed := s.Parser.Parse(data)
	if ev.HasMessage {
		msg := ev.Message
		if msg.Byte1 > 158 && msg.Byte2 != 0 {
			msg.Byte2 = 128 - msg.Byte2
		}
		s.DX7.PostMessage(msg)
	}
	if ev.BankChange >= 0 {
		if err := s.DX7.SetBank(ev.BankChange, true); err != nil && s.log != nil {
			s.log.LogSystemError(debug.LogLevelWarning, err, nil)
		}
	}
	if ev.CleanMode >= 0 {
		s.DX7.EGS.SetClean(ev.CleanMode != 0)
	}
	if !consumed {
		s.DX7.QueueMIDIRx(data)
	}
}

// QueueSysEx forwards a System Exclusive dump straight to the sub-CPU's
// serial receive buffer, bypassing the controller/note parser.
func (s *Synth) QueueSysEx(data []byte) { s.DX7.QueueMIDIRx(data) }

// DrainMIDITx pulls every complete outbound MIDI event currently
// buffered, handing each to emit (typically a host MIDI-out callback).
func (s *Synth) DrainMIDITx(emit func(event []byte)) {
	if s.Splitter == nil {
		s.Splitter = &midi.Splitter{}
	}
	for {
		b, ok := s.DX7.DequeueMIDITx()
		if !ok {
			return
		}
		if event, done := s.Splitter.Feed(b); done {
			emit(event)
		}
	}
}
