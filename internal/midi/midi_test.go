package midi

import "testing"

func TestQueueSendGetBinaryRoundTrip(t *testing.T) {
	q := NewQueue()
	data := []byte("HELLO")
	q.SendBinary(CtrlLCDState, data)

	header, ok := q.Pop()
	if !ok || header.Byte1 != uint8(CtrlLCDState) || header.Byte2 != uint8(len(data)) {
		t.Fatalf("header = %+v, ok=%v", header, ok)
	}
	got := make([]byte, len(data))
	if !q.GetBinary(got) {
		t.Fatal("GetBinary reported failure")
	}
	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestKeyMessageRejectsOutOfRangeKey(t *testing.T) {
	if _, ok := KeyMessage(61, 50); ok {
		t.Error("key 61 should be rejected (valid range is 0-60)")
	}
	m, ok := KeyMessage(0, 50)
	if !ok {
		t.Fatal("key 0 should be accepted")
	}
	key, vel, isKey := m.IsKeyEvent()
	if !isKey || key != 0 || vel != 50 {
		t.Errorf("IsKeyEvent() = %d,%d,%v want 0,50,true", key, vel, isKey)
	}
}

func TestParserNoteOnOffOnMatchingChannel(t *testing.T) {
	p := NewParser()
	p.RxChannel = 0

	ev, consumed := p.Parse([]byte{0x90, 36, 127})
	if !consumed || !ev.HasMessage {
		t.Fatal("note-on should produce a message and be consumed")
	}
	key, vel, ok := ev.Message.IsKeyEvent()
	if !ok || key != 0 || vel == 0 {
		t.Errorf("note-on decode = key=%d vel=%d ok=%v", key, vel, ok)
	}

	ev, consumed = p.Parse([]byte{0x80, 36, 0})
	if !consumed || !ev.HasMessage {
		t.Fatal("note-off should produce a message and be consumed")
	}
	if _, vel, _ := ev.Message.IsKeyEvent(); vel != 0 {
		t.Errorf("note-off velocity = %d, want 0", vel)
	}
}

func TestParserIgnoresWrongChannel(t *testing.T) {
	p := NewParser()
	p.RxChannel = 0
	_, consumed := p.Parse([]byte{0x91, 36, 127}) // channel 1, not 0
	if consumed {
		t.Error("message on non-matching channel should not be consumed by the parser")
	}
}

func TestParserControllerZeroIsSwallowed(t *testing.T) {
	p := NewParser()
	ev, consumed := p.Parse([]byte{0xB0, 0, 5})
	if !consumed || ev.HasMessage {
		t.Error("controller 0 should be swallowed (consumed=true, no message)")
	}
}

func TestParserController7NotForwarded(t *testing.T) {
	p := NewParser()
	_, consumed := p.Parse([]byte{0xB0, 7, 100})
	if consumed {
		t.Error("controller 7 should be passed to the serial interface, not consumed here")
	}
}

func TestParserBankSelectControllerWrapsModulo8(t *testing.T) {
	p := NewParser()
	ev, _ := p.Parse([]byte{0xB0, 32, 10})
	if ev.BankChange != 2 {
		t.Errorf("BankChange = %d, want 2 (10%%8)", ev.BankChange)
	}
}

func TestParserCleanModeController(t *testing.T) {
	p := NewParser()
	ev, consumed := p.Parse([]byte{0xB0, 98, 1})
	if !consumed || ev.CleanMode != 1 {
		t.Errorf("CleanMode = %d consumed=%v, want 1,true", ev.CleanMode, consumed)
	}
	ev, _ = p.Parse([]byte{0xB0, 98, 0})
	if ev.CleanMode != 0 {
		t.Errorf("CleanMode = %d, want 0", ev.CleanMode)
	}
}

func TestVelocityCurveLinearIsIdentity(t *testing.T) {
	p := NewParser()
	if p.velocity[127] != 127 {
		t.Errorf("velocity[127] = %d, want 127 for linear curve", p.velocity[127])
	}
	if p.velocity[0] != 0 {
		t.Errorf("velocity[0] = %d, want 0", p.velocity[0])
	}
}

func TestSplitterReassemblesThreeByteMessage(t *testing.T) {
	var s Splitter
	for _, b := range []byte{0x90, 64} {
		if _, done := s.Feed(b); done {
			t.Fatal("message should not complete before the third byte")
		}
	}
	msg, done := s.Feed(100)
	if !done || len(msg) != 3 || msg[0] != 0x90 || msg[1] != 64 || msg[2] != 100 {
		t.Fatalf("Feed final byte = %v,%v", msg, done)
	}
}

func TestSplitterReassemblesSysex(t *testing.T) {
	var s Splitter
	sysex := []byte{0xF0, 0x43, 0x00, 0x09, 0x20, 0x00, 0x01, 0xF7}
	var got []byte
	var done bool
	for _, b := range sysex {
		got, done = s.Feed(b)
	}
	if !done {
		t.Fatal("sysex terminated by 0xF7 should complete")
	}
	if len(got) != len(sysex) {
		t.Fatalf("got %d bytes, want %d", len(got), len(sysex))
	}
}
