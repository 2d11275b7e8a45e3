package egs

// envStage is one of the four envelope segments the DX7's envelope
// generator cycles through: attack-like S0/S1 segments, the sustain
// segment S2, and the release segment S3.
type envStage int

const (
	stageS0 envStage = iota
	stageS1
	stageS2
	stageS3
)

// outmask holds the bit patterns that gate sample output when a qrate
// is not a multiple of four, indexed by qrate&3 (little end first).
var outmask = [4]uint8{0xAA, 0xEA, 0xEE, 0xFE}

// envelope reproduces a single operator-voice envelope generator. Output
// is an inverted 12-bit attenuation: 0xFFF is silence, 0 is maximum
// level. An EGS owns 6*16=96 of these, one per operator per voice,
// sharing one master clock.
type envelope struct {
	rates, levels []uint8 // the 4 rate/level bytes for this operator
	outparam      *uint8  // this operator-voice's output-level byte

	keyOffFlag  bool
	rateScaling uint8

	level, target int16
	rising        bool
	stage         envStage
	compress      bool // compressed stage-0 delay flag

	clock *uint16 // shared master envelope clock

	nshift, pshift uint8
	small          uint16
	mask           uint8
}

// init wires an envelope to its register bytes and shared clock, then
// forces it into the key-off (stage S3) resting state.
func (e *envelope) init(rates, levels []uint8, outparam *uint8, clock *uint16) {
	e.rates, e.levels, e.outparam, e.clock = rates, levels, outparam, clock
	e.level, e.target = 0xFF0, 0xFF0
	e.stage = stageS3
	e.compress = true
	e.keyOff()
}

// keyOn starts the envelope running from stage S0.
func (e *envelope) keyOn() {
	e.keyOffFlag = false
	e.advance()
}

// keyOff forces the envelope into its release segment.
func (e *envelope) keyOff() {
	e.keyOffFlag = true
	e.advance()
}

// getSample produces this tick's attenuation output, stepping the level
// toward its target whenever the shared master clock's fractional-qrate
// gating allows it.
func (e *envelope) getSample() uint16 {
	if e.stage > stageS1 && e.level == e.target {
		return uint16(e.level)
	}
	if (*e.clock&e.small) == 0 && e.mask&(1<<((*e.clock>>e.nshift)&7)) != 0 {
		if e.rising { // "rising" attenuation value down means increasing volume
			if e.level > 0x94C {
				e.level = 0x94C // jumpstart: 4096-1716=2380=0x94C
			}
			slope := (e.level >> 8) + 2 // 11 to 2 by log(level)
			e.level -= slope << e.pshift
			if e.level <= e.target {
				e.level = e.target
				e.advance()
			}
		} else {
			e.level += 1 << e.pshift
			if e.level >= e.target {
				e.level = e.target
				e.advance()
			}
		}
	}
	return uint16(e.level)
}

// advance runs the envelope's stage state machine (with its delay
// compression quirk) and recomputes the level/rate targets for the new
// stage.
func (e *envelope) advance() {
	switch e.stage {
	case stageS0:
		if e.keyOffFlag {
			e.stage = stageS3
			e.compress = true
		} else {
			e.stage = stageS1
			e.compress = false
		}
	case stageS1:
		if e.keyOffFlag {
			e.stage = stageS3
		} else {
			e.stage = stageS2
		}
	case stageS2:
		if e.keyOffFlag {
			e.stage = stageS3
		} else {
			return
		}
	case stageS3:
		if !e.keyOffFlag {
			e.stage = stageS0
		} else {
			return
		}
	}
	e.updateLevel()
	e.updateRate()
}

// updateLevel recomputes this envelope's target level for the current
// stage, including the (speculative, firmware-observed) silent-segment
// delay compression behavior used by voices such as "WATER GDN" and
// "CHIMES".
func (e *envelope) updateLevel() {
	target := int16(e.levels[e.stage])<<6 + int16(*e.outparam)<<4
	if target > 0xFF0 {
		target = 0xFF0 // minimum level is 4096-16
	}
	e.target = target

	// Small levels are inaudible and are experienced as a delay instead.
	// The delay constant is 479 decaying envelope steps; in stage 0 it is
	// compressed to round(479/32)=15 if the previous stage-0 delay did
	// not fully complete.
	prev := (e.stage + 3) & 3
	if e.stage < stageS2 && e.levels[e.stage] >= 40 && e.levels[prev] >= 40 {
		delay := int16(479)
		if e.stage == stageS0 && e.compress {
			delay = 15
		}
		e.target = e.level + delay
		if e.target > 0xFF0 {
			e.level = 0xFF0 - delay
			e.target = 0xFF0
		}
	}
	e.rising = e.target < e.level // attack mode: falling attenuation, since inverted
}

// updateRate recomputes the clock-gating shift values and fractional
// qrate output mask for this envelope's current stage and rate scaling.
func (e *envelope) updateRate() {
	qrate := e.rates[e.stage] + e.rateScaling
	if qrate > 63 {
		qrate = 63
	}

	e.pshift, e.nshift, e.small = 0, 0, 0
	if qrate < 44 {
		e.nshift = 11 - qrate>>2
		e.small = 1<<e.nshift - 1
	} else {
		e.pshift = qrate>>2 - 11
	}
	e.mask = outmask[qrate&3]
}
