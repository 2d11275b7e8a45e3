// Package egs implements the DX7's envelope generator subsystem: the
// chip that owns the operator attenuation envelopes, the CPU-visible
// pitch/level/rate register window at the 0x3000 memory page, and (since
// it drives them directly) the operator/FM engine and output decimation
// filter downstream of it.
package egs

import (
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/filter"
	"nitro-core-dx/internal/ops"
)

// Register page layout within the 256-byte CPU-visible register window
// mapped at 0x3000. Voice pitch occupies the first 32 bytes (2 bytes per
// voice, 16 voices); operator pitch and detune share the next page;
// per-stage rates and levels follow; operator output level and rate
// scaling/sensitivity follow that; amplitude modulation and voice key
// events occupy the last page.
const (
	regVoicePitchBase = 0x00 // 16 voices * 2 bytes
	regOpPitchBase    = 0x20 // 6 ops * 2 bytes
	regOpDetuneBase   = 0x30 // 6 ops * 1 byte
	regOpRatesBase    = 0x40 // 6 ops * 4 stage rates
	regOpLevelsBase   = 0x60 // 6 ops * 4 stage levels
	regOpOutBase      = 0x80 // 6 ops * 16 voices
	regOpSensBase     = 0xE0 // 6 ops * 1 byte
	regAmpMod         = 0xF0
	regVoiceEvents    = 0xF1
	regPitchModHi     = 0xF2
	regPitchModLo     = 0xF3
)

// EGS owns the register-mapped envelope state for all 96 operator-voice
// pairs, and drives the OPS FM engine and output decimation filter it
// feeds.
type EGS struct {
	mem *[256]uint8 // CPU-visible register window at 0x3000

	voicePitch [16]uint16
	opPitch    [6]uint16
	pitchMod   int16

	env      [6][16]envelope
	currOp   int
	currVoice int
	envClock uint16

	frequency [6][16]uint16
	envelope  [6][16]uint16

	ops    *ops.OPS
	filter *filter.Filter

	clean bool
	log   *debug.Logger
}

// New allocates an EGS bound to the given CPU register window (expected
// to be the 256-byte slice at CPU memory offset 0x3000) and wires its
// envelopes, OPS engine and output filter together.
func New(mem *[256]uint8, log *debug.Logger) *EGS {
	for i := range mem {
		mem[i] = 0xFF
	}
	e := &EGS{
		mem:    mem,
		filter: filter.New(),
		log:    log,
	}
	e.ops = ops.New(&e.frequency, &e.envelope)
	for op := 0; op < 6; op++ {
		rates := mem[regOpRatesBase+op*4 : regOpRatesBase+op*4+4]
		levels := mem[regOpLevelsBase+op*4 : regOpLevelsBase+op*4+4]
		for voice := 0; voice < 16; voice++ {
			e.env[op][voice].init(rates, levels, &mem[regOpOutBase+op*16+voice], &e.envClock)
		}
	}
	return e
}

// SetClean toggles full-resolution, unfiltered output for diagnostic use.
func (e *EGS) SetClean(v bool) {
	e.clean = v
	e.ops.SetClean(v)
}

// SetAlgorithm forwards an algorithm-select CPU write to the OPS engine.
func (e *EGS) SetAlgorithm(mode, algo uint8) { e.ops.SetAlgorithm(mode, algo) }

// filterSample applies the post-FM gain trim and, unless clean mode is
// enabled, the 5th-order Sallen-Key decimation filter the hardware uses
// to band-limit its oversampled output.
func (e *EGS) filterSample(out *[16]int32) float64 {
	const cgain = 1.0 / float64(1<<15)
	const gain = 16.0 / float64(1<<15)
	if e.clean {
		var sum float64
		for v := 0; v < 16; v++ {
			sum += cgain * float64(out[v])
		}
		return sum
	}
	var ret float64
	for v := 0; v < 16; v++ {
		ret = e.filter.Operate(gain * float64(out[v]))
	}
	return ret
}

// Clock advances the envelope/OPS pipeline by the given number of master
// clock cycles, appending one decimated sample to outbuf every time all
// 96 operator-voice ticks of a full round complete (6 operators times 16
// voices, at the DX7's native 49.096KHz output rate).
func (e *EGS) Clock(outbuf []float32, count *int, cycles int) {
	for i := 0; i < cycles; i++ {
		sample := e.env[e.currOp][e.currVoice].getSample()

		ampModSens := e.mem[regOpSensBase+e.currOp] >> 3
		if ampModSens != 0 {
			sample += uint16(e.mem[regAmpMod]) << ampModSens
		}
		if sample > 0xFFF {
			sample = 0xFFF
		}
		e.envelope[e.currOp][e.currVoice] = sample

		e.ops.Clock(e.currOp, e.currVoice)

		e.currVoice++
		if e.currVoice == 16 {
			e.currVoice = 0
			e.currOp++
			if e.currOp == 6 {
				outbuf[*count] = float32(e.filterSample(&e.ops.Out))
				*count++
				e.currOp = 0
				e.envClock++
			}
		}
	}
}

// Update dispatches a CPU write to the register window, recomputing
// whatever downstream state that register's page feeds. addr is the
// offset within the 256-byte window (not the full 0x3000-based CPU
// address).
func (e *EGS) Update(addr uint8) {
	switch addr >> 5 {
	case 0:
		if addr&0x01 != 0 {
			e.updateVoicePitch(addr >> 1)
		}
	case 1:
		if addr&0x01 != 0 {
			e.updateOpPitch((addr & 0x0F) >> 1)
		}
	case 2:
		if addr >= 0x40 && addr < 0x58 {
			if addr&0x03 != 3 {
				return
			}
			op := (addr - 0x40) >> 2
			for voice := 0; voice < 16; voice++ {
				e.env[op][voice].updateRate()
			}
		}
	case 3:
		if addr >= 0x60 && addr < 0x78 {
			if addr&0x03 != 3 {
				return
			}
			op := (addr - 0x60) >> 2
			for voice := 0; voice < 16; voice++ {
				e.env[op][voice].updateLevel()
			}
		}
	case 4, 5, 6:
		return
	case 7:
		switch {
		case addr >= 0xE0 && addr <= 0xE5:
			op := addr - 0xE0
			for voice := 0; voice < 16; voice++ {
				e.updateRateScaling(uint8(voice), op)
			}
		case addr == regPitchModLo:
			e.updatePitchMod()
		case addr == regVoiceEvents:
			e.updateVoiceEvents()
		}
	}
}

// updateVoiceEvents dispatches a key-on/key-off write: bit 0 selects
// on/off and the upper six bits select the voice.
func (e *EGS) updateVoiceEvents() {
	voiceEvents := e.mem[regVoiceEvents]
	voice := voiceEvents >> 2
	keyOn := voiceEvents&1 != 0
	for op := 0; op < 6; op++ {
		if keyOn {
			e.env[op][voice].keyOn()
		} else {
			e.env[op][voice].keyOff()
		}
	}
	if keyOn {
		e.ops.KeyOn(int(voice))
	}
}

// updateRateScaling recomputes an envelope's rate-scaling contribution
// from the operator's sensitivity byte and the voice's current pitch,
// replicating the DX7's linear rate-scaling graph in qrate units.
func (e *EGS) updateRateScaling(voice, op uint8) {
	rateScaling := int(e.mem[regOpSensBase+op] & 0x7)
	pitchOctave := int(e.voicePitch[voice]>>8) - 16
	if pitchOctave < 0 {
		pitchOctave = 0
	}
	if pitchOctave > 27 {
		pitchOctave = 27
	}
	rs := uint8(float64(pitchOctave)*float64(rateScaling)/7.0 + 0.5)
	e.env[op][voice].rateScaling = rs
}

// updateVoicePitch latches a voice's two-byte pitch register (written
// big-endian, shifted down 2 bits to the 14-bit log-frequency domain),
// then recomputes this voice's operator frequencies and rate scaling.
func (e *EGS) updateVoicePitch(voice uint8) {
	e.voicePitch[voice] = (uint16(e.mem[2*voice])<<8 | uint16(e.mem[2*voice+1])) >> 2
	e.updateFrequency(voice)
	for op := 0; op < 6; op++ {
		e.updateRateScaling(voice, op)
	}
}

// updateOpPitch latches an operator's two-byte pitch/ratio register.
func (e *EGS) updateOpPitch(op uint8) {
	e.opPitch[op] = uint16(e.mem[0x20+2*op])<<8 | uint16(e.mem[0x20+2*op+1])
}

// updatePitchMod latches the pitch-bend/LFO modulation register (4x
// voice units, 14-bit, shifted down to match) and refreshes every
// voice's operator frequencies.
func (e *EGS) updatePitchMod() {
	raw := uint16(e.mem[regPitchModHi])<<8 | uint16(e.mem[regPitchModLo])
	e.pitchMod = int16(raw) / 16
	for voice := 0; voice < 16; voice++ {
		e.updateFrequency(uint8(voice))
	}
}

// updateFrequency recomputes every operator's 14-bit log-frequency value
// for one voice from its ratio/fixed pitch, detune, and (for ratio
// operators) the voice's own pitch and the shared pitch-mod value.
func (e *EGS) updateFrequency(voice uint8) {
	for op := 0; op < 6; op++ {
		f := int32(e.opPitch[op] >> 2)
		detune := e.mem[regOpDetuneBase+op]
		if detune&0x8 != 0 {
			f -= int32(detune & 0x7)
		} else {
			f += int32(detune)
		}
		if e.opPitch[op]&1 == 0 { // ratio operator
			f += int32(e.voicePitch[voice])
			f += int32(e.pitchMod)
		} // else fixed frequency
		if f > 0x3FFF {
			f = 0x3FFF
		} else if f < 0 {
			f = 0
		}
		e.frequency[op][voice] = uint16(f)
	}
}
