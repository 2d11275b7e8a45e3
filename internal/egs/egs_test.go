package egs

import "testing"

func newTestEGS() *EGS {
	var mem [256]uint8
	return New(&mem, nil)
}

func TestNewInitializesRegistersToAllOnes(t *testing.T) {
	e := newTestEGS()
	for i, b := range e.mem {
		if b != 0xFF {
			t.Fatalf("mem[%d] = %#02x, want 0xFF after New", i, b)
		}
	}
}

func TestUpdateVoicePitchRecomputesFrequency(t *testing.T) {
	e := newTestEGS()
	e.mem[regOpDetuneBase] = 0 // default register state is all-ones; zero it for a clean case

	e.mem[regOpPitchBase] = 0x10
	e.mem[regOpPitchBase+1] = 0x00 // bit0 clear: ratio operator
	e.Update(regOpPitchBase + 1)

	e.mem[0] = 0x40
	e.mem[1] = 0x00
	e.Update(1) // voice 0 pitch low byte write

	if e.voicePitch[0] == 0 {
		t.Error("updateVoicePitch should have latched a non-zero voice pitch")
	}
	if e.frequency[0][0] == 0 {
		t.Error("updateFrequency should have produced a non-zero operator frequency")
	}
}

func TestKeyOnKeyOffAdvancesEnvelopeStage(t *testing.T) {
	e := newTestEGS()
	e.mem[regOpRatesBase] = 63
	e.mem[regOpRatesBase+1] = 63
	e.mem[regOpLevelsBase] = 99
	e.mem[regOpLevelsBase+1] = 99
	e.Update(regOpRatesBase + 3)
	e.Update(regOpLevelsBase + 3)

	e.mem[regVoiceEvents] = (0 << 2) | 1 // voice 0, key on
	e.Update(regVoiceEvents)
	if e.env[0][0].stage != stageS0 {
		t.Errorf("stage after key-on = %v, want stageS0", e.env[0][0].stage)
	}

	e.mem[regVoiceEvents] = (0 << 2) | 0 // voice 0, key off
	e.Update(regVoiceEvents)
	if e.env[0][0].stage != stageS3 {
		t.Errorf("stage after key-off = %v, want stageS3", e.env[0][0].stage)
	}
}

func TestClockProducesOneSamplePerFullRound(t *testing.T) {
	e := newTestEGS()
	outbuf := make([]float32, 4)
	count := 0
	e.Clock(outbuf, &count, 96) // one full 6-op x 16-voice round
	if count != 1 {
		t.Errorf("count = %d, want 1 after 96 cycles", count)
	}

	e.Clock(outbuf, &count, 95) // not quite a second round
	if count != 1 {
		t.Errorf("count = %d, want 1 before the second round completes", count)
	}
	e.Clock(outbuf, &count, 1)
	if count != 2 {
		t.Errorf("count = %d, want 2 after the second round completes", count)
	}
}
