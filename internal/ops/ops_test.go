package ops

import "testing"

func TestSetAlgorithmBroadcastsToAllVoices(t *testing.T) {
	var freq, env [6][16]uint16
	o := New(&freq, &env)

	o.SetAlgorithm(1<<4, (5<<3)|3) // broadcast, algorithm 5, feedback 3
	for v := 0; v < 16; v++ {
		if o.algorithm[v] != 5 {
			t.Errorf("voice %d algorithm = %d, want 5", v, o.algorithm[v])
		}
		if o.feedback[v] != 3 {
			t.Errorf("voice %d feedback = %d, want 3", v, o.feedback[v])
		}
	}
}

func TestSetAlgorithmTargetsSingleVoice(t *testing.T) {
	var freq, env [6][16]uint16
	o := New(&freq, &env)

	o.SetAlgorithm(0x03, (2<<3)|1) // voice select 3, no broadcast bit
	if o.algorithm[3] != 2 || o.feedback[3] != 1 {
		t.Errorf("voice 3: algorithm=%d feedback=%d, want algorithm=2 feedback=1", o.algorithm[3], o.feedback[3])
	}
	if o.algorithm[0] != 0 {
		t.Error("other voices should be untouched by a targeted write")
	}
}

func TestClockProducesSilenceForMutedEnvelope(t *testing.T) {
	var freq, env [6][16]uint16
	for op := 0; op < 6; op++ {
		for v := 0; v < 16; v++ {
			freq[op][v] = 0x1000
			env[op][v] = 0xFFF // fully attenuated
		}
	}
	o := New(&freq, &env)
	o.SetAlgorithm(1<<4, 1<<3) // broadcast algorithm 1

	for op := 0; op < 6; op++ {
		for v := 0; v < 16; v++ {
			o.Clock(op, v)
		}
	}
	for v := 0; v < 16; v++ {
		if o.Out[v] > 1 || o.Out[v] < -1 {
			t.Errorf("voice %d output = %d, want near-silence under full attenuation", v, o.Out[v])
		}
	}
}

func TestKeyOnResetsPhaseOnlyWhenKeySyncEnabled(t *testing.T) {
	var freq, env [6][16]uint16
	o := New(&freq, &env)
	o.phase[0][2] = 12345

	o.KeyOn(2)
	if o.phase[0][2] != 12345 {
		t.Error("KeyOn should not reset phase when key-sync is disabled")
	}

	o.keySync = true
	o.KeyOn(2)
	if o.phase[0][2] != 0 {
		t.Error("KeyOn should reset phase when key-sync is enabled")
	}
}
