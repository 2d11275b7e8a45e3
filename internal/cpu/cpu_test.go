package cpu

import "testing"

func TestResetSetsDocumentedPowerOnState(t *testing.T) {
	c := NewCPU()
	c.Write8(VectorRST, 0x90)
	c.Write8(VectorRST+1, 0x00)

	c.Reset()

	if c.PC != 0x9000 {
		t.Errorf("PC = %#04x, want 0x9000 (loaded from reset vector)", c.PC)
	}
	if !c.I {
		t.Error("I flag should be set after reset")
	}
	if c.Memory[RegP1DDR] != 0xFE {
		t.Errorf("P1DDR = %#02x, want 0xFE", c.Memory[RegP1DDR])
	}
	if c.Memory[RegRMCR] != 0xC0 {
		t.Errorf("RMCR = %#02x, want 0xC0", c.Memory[RegRMCR])
	}
	if c.Memory[RegTRCSR] != 0x20 {
		t.Errorf("TRCSR = %#02x, want 0x20", c.Memory[RegTRCSR])
	}
}

func TestGetSetCCRRoundTrip(t *testing.T) {
	c := NewCPU()
	c.H, c.I, c.N, c.Z, c.V, c.C = true, false, true, false, true, false

	packed := c.GetCCR()
	if packed&0xC0 != 0xC0 {
		t.Errorf("CCR top two bits should always be set, got %#02x", packed)
	}

	var c2 CPU
	c2.SetCCR(packed)
	if c2.H != c.H || c2.I != c.I || c2.N != c.N || c2.Z != c.Z || c2.V != c.V || c2.C != c.C {
		t.Errorf("SetCCR(GetCCR()) did not round-trip: got %+v", c2)
	}
}

func TestDAndSetD(t *testing.T) {
	c := NewCPU()
	c.SetD(0x1234)
	if c.A != 0x12 || c.B != 0x34 {
		t.Errorf("SetD(0x1234): A=%#02x B=%#02x, want A=0x12 B=0x34", c.A, c.B)
	}
	if c.D() != 0x1234 {
		t.Errorf("D() = %#04x, want 0x1234", c.D())
	}
}

func TestA8HalfCarryAndOverflow(t *testing.T) {
	c := NewCPU()
	// 0x0F + 0x01 = 0x10: half carry set, no overflow
	c.A8(0x0F, 0x01, 0x10)
	if !c.H {
		t.Error("A8(0x0F, 0x01, 0x10): H should be set")
	}
	if c.V {
		t.Error("A8(0x0F, 0x01, 0x10): V should be clear")
	}

	// 0x7F + 0x01 = 0x80: signed overflow
	c.A8(0x7F, 0x01, 0x80)
	if !c.V {
		t.Error("A8(0x7F, 0x01, 0x80): V should be set (signed overflow)")
	}
	if !c.N {
		t.Error("A8(0x7F, 0x01, 0x80): N should be set")
	}
}

func TestClockInDataSetsRDRFAndOverrun(t *testing.T) {
	c := NewCPU()
	c.Memory[RegTRCSR] = 1 << trcsrRE

	c.ClockInData(0x55)
	if c.Memory[RegRDR] != 0x55 {
		t.Errorf("RDR = %#02x, want 0x55", c.Memory[RegRDR])
	}
	if !bit(c.Memory[RegTRCSR], trcsrRDRF) {
		t.Error("RDRF should be set after ClockInData")
	}

	c.ClockInData(0xAA)
	if !bit(c.Memory[RegTRCSR], trcsrORFE) {
		t.Error("ORFE should be set when RDRF was already set (overrun)")
	}
}

func TestClockOutDataRespectsTE(t *testing.T) {
	c := NewCPU()
	c.Memory[RegTDR] = 0x42

	if _, ok := c.ClockOutData(); ok {
		t.Error("ClockOutData should return false when TE is clear")
	}

	c.Memory[RegTRCSR] = 1 << trcsrTE
	b, ok := c.ClockOutData()
	if !ok || b != 0x42 {
		t.Errorf("ClockOutData() = (%#02x, %v), want (0x42, true)", b, ok)
	}
	if !bit(c.Memory[RegTRCSR], trcsrTDRE) {
		t.Error("TDRE should be set after a successful ClockOutData")
	}
}
