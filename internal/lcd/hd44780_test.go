package lcd

import "testing"

func TestNewClearsDisplay(t *testing.T) {
	d := New()
	for i, c := range d.Line1 {
		if c != ' ' {
			t.Fatalf("Line1[%d] = %q, want cleared", i, c)
		}
	}
}

func TestDataWritesAppearInLine1(t *testing.T) {
	d := New()
	d.Inst(0x38) // function set: 8-bit, 2 line, 5x8
	d.Inst(0x0C) // display on, cursor off, blink off
	d.Inst(0x06) // entry mode: increment, no shift
	d.Inst(0x80) // set DDRAM address 0

	msg := "HELLO"
	for _, c := range msg {
		d.Data(byte(c))
	}

	got := string(d.Line1[:len(msg)])
	if got != msg {
		t.Errorf("Line1 = %q, want %q", got, msg)
	}
}

func TestClearInstructionResetsCursorToOrigin(t *testing.T) {
	d := New()
	d.Inst(0x06)
	d.Inst(0x80)
	d.Data('X')
	d.Data('Y')

	d.Inst(0x01) // clear
	if d.CursorPos != 0 {
		t.Errorf("CursorPos after clear = %d, want 0", d.CursorPos)
	}
}

func TestTwoLineModeWritesSecondLine(t *testing.T) {
	d := New()
	d.Inst(0x38) // 2-line mode
	d.Inst(0x06)
	d.Inst(0x80 | 40) // DDRAM address 40: start of second line

	d.Data('O')
	d.Data('K')

	if string(d.Line2[:2]) != "OK" {
		t.Errorf("Line2 = %q, want %q", string(d.Line2[:2]), "OK")
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	d := New()
	d.Inst(0x38)
	d.Inst(0x06)
	d.Inst(0x80)
	d.Data('Z')

	saved := d.Save()

	d2 := New()
	d2.Restore(saved)
	if d2.Line1[0] != 'Z' {
		t.Errorf("restored Line1[0] = %q, want 'Z'", d2.Line1[0])
	}
}
