package cpu

import "testing"

func program(c *CPU, at uint16, bytes ...uint8) {
	for i, b := range bytes {
		c.Write8(at+uint16(i), b)
	}
	c.PC = at
}

func TestLDAAImmediateSetsFlags(t *testing.T) {
	c := NewCPU()
	program(c, 0x9000, 0x86, 0x00) // LDAA #0x00
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0 {
		t.Errorf("A = %#02x, want 0", c.A)
	}
	if !c.Z {
		t.Error("Z should be set after loading zero")
	}
}

func TestSTAAExtendedWritesMemoryAndObserver(t *testing.T) {
	c := NewCPU()
	var observed []uint16
	c.SetWriteObserver(func(addr uint16, v uint8) { observed = append(observed, addr) })

	c.A = 0x7A
	program(c, 0x9000, 0xB7, 0x30, 0x00) // STAA $3000
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.Memory[0x3000] != 0x7A {
		t.Errorf("memory[0x3000] = %#02x, want 0x7A", c.Memory[0x3000])
	}
	found := false
	for _, a := range observed {
		if a == 0x3000 {
			found = true
		}
	}
	if !found {
		t.Error("write observer was not notified of the STAA write")
	}
}

func TestADDASetsCarryAndZero(t *testing.T) {
	c := NewCPU()
	c.A = 0xFF
	program(c, 0x9000, 0x8B, 0x01) // ADDA #1
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0 {
		t.Errorf("A = %#02x, want 0", c.A)
	}
	if !c.C {
		t.Error("C should be set on 0xFF+1 wraparound")
	}
	if !c.Z {
		t.Error("Z should be set when result is zero")
	}
}

func TestIndexedAddressing(t *testing.T) {
	c := NewCPU()
	c.IX = 0x3000
	c.Memory[0x3005] = 0x99
	program(c, 0x9000, 0xA6, 0x05) // LDAA 5,X
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x99 {
		t.Errorf("A = %#02x, want 0x99 (indexed load from IX+5)", c.A)
	}
}

func TestBranchesEvaluateCCR(t *testing.T) {
	c := NewCPU()
	c.Z = true
	program(c, 0x9000, 0x27, 0x10) // BEQ +0x10
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x9012 {
		t.Errorf("PC = %#04x, want 0x9012 (branch taken)", c.PC)
	}

	c2 := NewCPU()
	c2.Z = false
	program(c2, 0x9000, 0x27, 0x10) // BEQ, not taken
	if err := c2.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c2.PC != 0x9002 {
		t.Errorf("PC = %#04x, want 0x9002 (branch not taken, falls through)", c2.PC)
	}
}

func TestPSHAPULARoundTrip(t *testing.T) {
	c := NewCPU()
	c.SP = 0x00FF
	c.A = 0x55
	program(c, 0x9000, 0x36) // PSHA
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.SP != 0x00FE {
		t.Errorf("SP = %#04x, want 0x00FE after PSHA", c.SP)
	}

	c.A = 0
	program(c, 0x9001, 0x32) // PULA
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x55 {
		t.Errorf("A = %#02x, want 0x55 after PULA", c.A)
	}
	if c.SP != 0x00FF {
		t.Errorf("SP = %#04x, want 0x00FF restored after PULA", c.SP)
	}
}

func TestAIMIndexedMasksMemoryInPlace(t *testing.T) {
	c := NewCPU()
	c.IX = 0x2800
	c.Memory[0x2802] = 0xFF
	program(c, 0x9000, 0x61, 0x0F, 0x02) // AIM #0x0F, 2,X
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.Memory[0x2802] != 0x0F {
		t.Errorf("memory[0x2802] = %#02x, want 0x0F after AIM", c.Memory[0x2802])
	}
}

func TestJSRAndRTS(t *testing.T) {
	c := NewCPU()
	c.SP = 0x00FF
	program(c, 0x9000, 0xBD, 0x91, 0x00) // JSR $9100
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x9100 {
		t.Errorf("PC = %#04x, want 0x9100 after JSR", c.PC)
	}

	program(c, 0x9100, 0x39) // RTS
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x9003 {
		t.Errorf("PC = %#04x, want 0x9003 (return address after the 3-byte JSR)", c.PC)
	}
}
