// Package filter implements the decimation filter chain that sits between
// the EGS operator summing bus and the final audio output sample.
//
// The DX7's EGS chip runs its FM core at 16 times the final output rate
// (roughly 786KHz, against a final 49.096KHz output) and relies on analog
// Sallen-Key filter stages to band-limit the signal before decimation.
// This package models that same topology in floating point: a one-pole
// lowpass section followed by two second-order sections, run at the
// oversampled rate, with the caller keeping one output per decimated
// output sample.
package filter

import "math"

// LP1 is a single-pole lowpass smoother, used to de-zipper the MIDI
// volume control (which the hardware only quantizes to 8 DAC levels)
// rather than to shape the oversampled FM signal — unrelated to LP
// below despite the similar name, matching the distinct smoother type
// the hardware's analog volume circuit is modeled on.
type LP1 struct {
	a0, b1, y1 float64
}

// NewLP1 returns an LP1 smoother with the given initial coefficient (see
// Set); most callers immediately follow up with SetCutoff once the
// sample rate is known.
func NewLP1(d float64) *LP1 {
	f := &LP1{}
	f.Set(d)
	return f
}

// Reset clears the smoother's history.
func (f *LP1) Reset() { f.y1 = 0 }

// SetCutoff configures the pole from a cutoff frequency expressed as a
// fraction of the sample rate (fc = cutoffHz / sampleRate).
func (f *LP1) SetCutoff(fc float64) {
	f.Set(1 - math.Exp(-2*math.Pi*fc))
}

// Set configures the pole directly from its decay coefficient.
func (f *LP1) Set(d float64) {
	f.a0 = d
	f.b1 = 1 - d
}

// Operate runs one sample through the smoother.
func (f *LP1) Operate(x float64) float64 {
	f.y1 = f.a0*x + f.b1*f.y1
	return f.y1
}

// LP is a first-order lowpass section in direct form I.
type LP struct {
	A0, B1 float64
	x1, y1 float64
}

// Reset clears the section's history.
func (f *LP) Reset() {
	f.x1, f.y1 = 0, 0
}

// Operate runs one sample through the section.
func (f *LP) Operate(s float64) float64 {
	y := s + f.B1*f.x1 - f.A0*f.y1
	f.x1 = s
	f.y1 = y
	return y
}

// SOSCoeff holds the four feedback/feedforward coefficients of a
// second-order section.
type SOSCoeff struct {
	B1, B2, A1, A2 float64
}

// SOS is a second-order section, direct-form I, with a two-sample
// alternating history buffer (avoids shifting on every call).
type SOS struct {
	Coeff SOSCoeff
	h     int
	x, y  [2]float64
}

// Operate runs one sample through the section.
func (f *SOS) Operate(s float64) float64 {
	r := s
	r += f.Coeff.B1*f.x[f.h] - f.Coeff.A1*f.y[f.h]
	f.h ^= 1
	r += f.Coeff.B2*f.x[f.h] - f.Coeff.A2*f.y[f.h]
	f.y[f.h] = r
	f.x[f.h] = s
	return r
}

// Filter is the DX7's 5th-order Sallen-Key decimation filter, fixed at a
// sample rate of 16 times the final 49.096KHz output rate. The coefficients
// below are the filter's analog-prototype design values, carried over
// unchanged; they are calibration data, not tunables.
type Filter struct {
	lp   LP
	sos1 SOS
	sos2 SOS
	gain float64
}

// New returns a Filter with its coefficients set to the hardware's fixed
// 5th-order Sallen-Key design.
func New() *Filter {
	f := &Filter{}
	f.lp.B1 = 1.0000065695182569
	f.lp.A0 = -0.9471494282369527
	f.sos1.Coeff = SOSCoeff{
		B1: 1.9999934304817428,
		B2: 0.9999934305249014,
		A1: -1.9047157177069487,
		A2: 0.9129212928486624,
	}
	f.sos2.Coeff = SOSCoeff{
		B1: 2.0000000000000000,
		B2: 1.0000000000000000,
		A1: -1.9531729648773684,
		A2: 0.9694025617460298,
	}
	f.gain = 2.1994620400553497e-07
	return f
}

// Operate runs one oversampled sample through the full chain and returns
// the filtered result. It is intended to be called once per oversampled
// tick, with only every 16th output kept by the caller (the decimation
// step itself lives in the caller, which only reads the result on ticks
// that complete a full operator cycle).
func (f *Filter) Operate(s float64) float64 {
	return f.gain * f.sos2.Operate(f.sos1.Operate(f.lp.Operate(s)))
}

// Reset clears all filter history, used when re-arming playback after a
// transport reset.
func (f *Filter) Reset() {
	f.lp.Reset()
	f.sos1 = SOS{Coeff: f.sos1.Coeff}
	f.sos2 = SOS{Coeff: f.sos2.Coeff}
}
