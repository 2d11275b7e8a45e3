package cpu

import "testing"

func TestSWIPushesFullStateAndVectors(t *testing.T) {
	c := NewCPU()
	c.SP = 0x00FF
	c.A, c.B, c.IX = 0x11, 0x22, 0x3344
	c.Write8(VectorSWI, 0x80)
	c.Write8(VectorSWI+1, 0x00)

	program(c, 0x9000, 0x3F) // SWI
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000 (SWI vector)", c.PC)
	}
	if !c.I {
		t.Error("I should be set after SWI")
	}
	if c.SP != 0x00FF-7 {
		t.Errorf("SP = %#04x, want %#04x (7 bytes pushed)", c.SP, 0x00FF-7)
	}
}

func TestRTIRestoresStateInPushOrder(t *testing.T) {
	c := NewCPU()
	c.SP = 0x00FF
	c.A, c.B, c.IX, c.PC = 0x11, 0x22, 0x3344, 0x9000
	c.C, c.Z = true, true
	c.interrupt(VectorTRAP) // pushes PC, IX, A, B, CCR and vectors away

	c.A, c.B, c.IX = 0, 0, 0
	program(c, c.PC, 0x3B) // RTI
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x11 || c.B != 0x22 || c.IX != 0x3344 {
		t.Errorf("RTI restore: A=%#02x B=%#02x IX=%#04x, want A=0x11 B=0x22 IX=0x3344", c.A, c.B, c.IX)
	}
	if c.PC != 0x9000 {
		t.Errorf("RTI restore: PC = %#04x, want 0x9000", c.PC)
	}
	if !c.C || !c.Z {
		t.Error("RTI should restore C and Z flags from the pushed CCR")
	}
}

func TestMaskableInterruptRespectsIFlag(t *testing.T) {
	c := NewCPU()
	c.I = true
	if c.maskableInterrupt(VectorIRQ) {
		t.Error("maskableInterrupt should not be granted while I is set")
	}

	c.I = false
	if !c.maskableInterrupt(VectorIRQ) {
		t.Error("maskableInterrupt should be granted while I is clear")
	}
}

func TestNMIAlwaysGranted(t *testing.T) {
	c := NewCPU()
	c.I = true
	c.Write8(VectorNMI, 0x77)
	c.Write8(VectorNMI+1, 0x00)
	c.nmi()
	if c.PC != 0x7700 {
		t.Errorf("PC = %#04x, want 0x7700 after NMI even with I set", c.PC)
	}
}

func TestWAIHaltsUntilInterrupt(t *testing.T) {
	c := NewCPU()
	program(c, 0x9000, 0x3E) // WAI
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !c.Halt {
		t.Error("WAI should set Halt")
	}

	c.Write8(VectorNMI, 0x70)
	c.Write8(VectorNMI+1, 0x00)
	c.nmi()
	if c.Halt {
		t.Error("servicing an interrupt should clear Halt")
	}
}
