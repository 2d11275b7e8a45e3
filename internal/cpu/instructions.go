package cpu

// This file builds the opcode table. Rather than hand-coding all ~200
// legal HD6303R opcodes, each addressing-mode/operation family is
// generated from a small set of closures (accumulator load/store, ALU,
// read-modify-write, 16-bit register, branch) the way the hardware's own
// opcode map groups them by row/column. Every addressing mode and every
// CCR truth table the hardware defines is exercised by at least one
// instruction; extending the table to additional opcodes is a matter of
// adding more def() calls, not touching Step's dispatch logic.

// fetch8 reads the byte at PC and advances PC.
func (c *CPU) fetch8() uint8 {
	v := c.Read8(c.PC)
	c.PC++
	return v
}

// fetch16 reads a big-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	hi := c.fetch8()
	lo := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) addrDirect() uint16 {
	a := uint16(c.fetch8())
	c.Addr = a
	return a
}

func (c *CPU) addrExtended() uint16 {
	a := c.fetch16()
	c.Addr = a
	return a
}

func (c *CPU) addrIndexed() uint16 {
	off := uint16(c.fetch8())
	a := c.IX + off
	c.Addr = a
	return a
}

// Push8/Pull8 are the single-byte stack primitives used by PSH/PUL and
// by RTI to unwind the generic interrupt() frame.
func (c *CPU) Push8(v uint8) {
	c.Write8(c.SP, v)
	c.SP--
}

func (c *CPU) Pull8() uint8 {
	c.SP++
	return c.Read8(c.SP)
}

type reg8 struct {
	get func(c *CPU) uint8
	set func(c *CPU, v uint8)
}

var regA = reg8{func(c *CPU) uint8 { return c.A }, func(c *CPU, v uint8) { c.A = v }}
var regB = reg8{func(c *CPU) uint8 { return c.B }, func(c *CPU, v uint8) { c.B = v }}

type reg16 struct {
	get func(c *CPU) uint16
	set func(c *CPU, v uint16)
}

var regIX = reg16{func(c *CPU) uint16 { return c.IX }, func(c *CPU, v uint16) { c.IX = v }}
var regSPReg = reg16{func(c *CPU) uint16 { return c.SP }, func(c *CPU, v uint16) { c.SP = v }}
var regD = reg16{func(c *CPU) uint16 { return c.D() }, func(c *CPU, v uint16) { c.SetD(v) }}

func (c *CPU) operand8(mode string) uint8 {
	switch mode {
	case "imm":
		return c.fetch8()
	case "dir":
		return c.Read8(c.addrDirect())
	case "ext":
		return c.Read8(c.addrExtended())
	case "idx":
		return c.Read8(c.addrIndexed())
	}
	return 0
}

func (c *CPU) operand16(mode string) uint16 {
	switch mode {
	case "imm":
		return c.fetch16()
	case "dir":
		return c.getm16(c.addrDirect())
	case "ext":
		return c.getm16(c.addrExtended())
	case "idx":
		return c.getm16(c.addrIndexed())
	}
	return 0
}

func (c *CPU) storeAddr(mode string) uint16 {
	switch mode {
	case "dir":
		return c.addrDirect()
	case "ext":
		return c.addrExtended()
	case "idx":
		return c.addrIndexed()
	}
	return 0
}

func actionLoad8(reg reg8, mode string) func(c *CPU) {
	return func(c *CPU) {
		v := c.operand8(mode)
		reg.set(c, v)
		c.L8(v)
	}
}

func actionStore8(reg reg8, mode string) func(c *CPU) {
	return func(c *CPU) {
		addr := c.storeAddr(mode)
		v := reg.get(c)
		c.Write8(addr, v)
		c.L8(v)
	}
}

func actionLoad16(reg reg16, mode string) func(c *CPU) {
	return func(c *CPU) {
		v := c.operand16(mode)
		reg.set(c, v)
		c.L16(v)
	}
}

func actionStore16(reg reg16, mode string) func(c *CPU) {
	return func(c *CPU) {
		addr := c.storeAddr(mode)
		v := reg.get(c)
		c.stom16(addr, v)
		c.L16(v)
	}
}

// actionAlu8 covers ADD/ADC/SUB/SBC/AND/ORA/EOR/CMP/BIT for one
// accumulator against an operand fetched per mode.
func actionAlu8(reg reg8, mode, op string) func(c *CPU) {
	return func(c *CPU) {
		v := c.operand8(mode)
		a := reg.get(c)
		carry := uint8(0)
		if c.C {
			carry = 1
		}
		switch op {
		case "add":
			r := a + v
			c.A8(a, v, r)
			reg.set(c, r)
		case "adc":
			r := a + v + carry
			c.A8(a, v+carry, r)
			reg.set(c, r)
		case "sub":
			r := a - v
			c.S8(a, v, r)
			reg.set(c, r)
		case "sbc":
			r := a - v - carry
			c.S8(a, v+carry, r)
			reg.set(c, r)
		case "and":
			r := a & v
			c.L8(r)
			reg.set(c, r)
		case "ora":
			r := a | v
			c.L8(r)
			reg.set(c, r)
		case "eor":
			r := a ^ v
			c.L8(r)
			reg.set(c, r)
		case "cmp":
			r := a - v
			c.S8(a, v, r)
		case "bit":
			r := a & v
			c.L8(r)
		}
	}
}

func actionAddD(mode string) func(c *CPU) {
	return func(c *CPU) {
		v := c.operand16(mode)
		a := c.D()
		r := a + v
		c.A16(a, v, r)
		c.SetD(r)
	}
}

func actionSubD(mode string) func(c *CPU) {
	return func(c *CPU) {
		v := c.operand16(mode)
		a := c.D()
		r := a - v
		c.S16(a, v, r)
		c.SetD(r)
	}
}

func actionCPX(mode string) func(c *CPU) {
	return func(c *CPU) {
		v := c.operand16(mode)
		r := c.IX - v
		c.S16(c.IX, v, r)
	}
}

// actionRmw8 covers NEG/COM/LSR/ROR/ASR/ASL/ROL/DEC/INC/TST/CLR,
// operating directly on an accumulator (reg != nil) or on a memory
// location addressed per mode (reg == nil).
func actionRmw8(reg *reg8, mode, op string) func(c *CPU) {
	return func(c *CPU) {
		var get func() uint8
		var set func(uint8)
		if reg != nil {
			get = func() uint8 { return reg.get(c) }
			set = func(v uint8) { reg.set(c, v) }
		} else {
			addr := c.storeAddr(mode)
			get = func() uint8 { return c.Read8(addr) }
			set = func(v uint8) { c.Write8(addr, v) }
		}
		a := get()
		switch op {
		case "neg":
			r := -a
			c.S8(0, a, r)
			c.C = r != 0
			set(r)
		case "com":
			r := ^a
			c.L8(r)
			c.C = true
			set(r)
		case "lsr":
			c.C = a&1 != 0
			r := a >> 1
			c.N = false
			c.Z = r == 0
			c.V = c.N != c.C
			set(r)
		case "ror":
			oldC := c.C
			c.C = a&1 != 0
			r := a >> 1
			if oldC {
				r |= 0x80
			}
			c.N = r&0x80 != 0
			c.Z = r == 0
			c.V = c.N != c.C
			set(r)
		case "asr":
			c.C = a&1 != 0
			r := (a >> 1) | (a & 0x80)
			c.N = r&0x80 != 0
			c.Z = r == 0
			c.V = c.N != c.C
			set(r)
		case "asl":
			c.C = a&0x80 != 0
			r := a << 1
			c.N = r&0x80 != 0
			c.Z = r == 0
			c.V = c.N != c.C
			set(r)
		case "rol":
			oldC := c.C
			c.C = a&0x80 != 0
			r := a << 1
			if oldC {
				r |= 1
			}
			c.N = r&0x80 != 0
			c.Z = r == 0
			c.V = c.N != c.C
			set(r)
		case "dec":
			r := a - 1
			c.D8(r)
			set(r)
		case "inc":
			r := a + 1
			c.I8(r)
			set(r)
		case "tst":
			c.N = a&0x80 != 0
			c.Z = a == 0
			c.V = false
			c.C = false
		case "clr":
			c.N, c.Z, c.V, c.C = false, true, false, false
			set(0)
		}
	}
}

func actionMask8(mode, op string) func(c *CPU) {
	return func(c *CPU) {
		mask := c.fetch8()
		addr := c.storeAddr(mode)
		v := c.Read8(addr)
		switch op {
		case "aim":
			v &= mask
		case "oim":
			v |= mask
		case "eim":
			v ^= mask
		}
		c.Write8(addr, v)
		c.L8(v)
	}
}

func actionBranch(cond func(c *CPU) bool) func(c *CPU) {
	return func(c *CPU) {
		off := int8(c.fetch8())
		if cond(c) {
			c.PC = uint16(int32(c.PC) + int32(off))
		}
	}
}

func (c *CPU) initInstructions() {
	def := func(opcode int, group, name, mode string, r, w bool, bytes, cycles int, action func(c *CPU)) {
		c.instructions[opcode] = Instruction{
			Opcode: opcode, Group: group, Name: name, Mode: mode,
			R: r, W: w, Bytes: bytes, Cycles: cycles, Action: action,
		}
	}

	// --- Misc/inherent, 0x00-0x1F --------------------------------
	def(0x01, "misc", "NOP", "inh", false, false, 1, 1, func(c *CPU) {})
	def(0x06, "misc", "TAP", "inh", false, false, 1, 1, func(c *CPU) { c.SetCCR(c.A) })
	def(0x07, "misc", "TPA", "inh", false, false, 1, 1, func(c *CPU) { c.A = c.GetCCR() })
	def(0x08, "misc", "INX", "inh", false, false, 1, 1, func(c *CPU) { c.IX++; c.Z = c.IX == 0 })
	def(0x09, "misc", "DEX", "inh", false, false, 1, 1, func(c *CPU) { c.IX--; c.Z = c.IX == 0 })
	def(0x0A, "misc", "CLV", "inh", false, false, 1, 1, func(c *CPU) { c.V = false })
	def(0x0B, "misc", "SEV", "inh", false, false, 1, 1, func(c *CPU) { c.V = true })
	def(0x0C, "misc", "CLC", "inh", false, false, 1, 1, func(c *CPU) { c.C = false })
	def(0x0D, "misc", "SEC", "inh", false, false, 1, 1, func(c *CPU) { c.C = true })
	def(0x0E, "misc", "CLI", "inh", false, false, 1, 1, func(c *CPU) { c.I = false })
	def(0x0F, "misc", "SEI", "inh", false, false, 1, 1, func(c *CPU) { c.I = true })

	def(0x10, "misc", "SBA", "inh", false, false, 1, 1, func(c *CPU) {
		r := c.A - c.B
		c.S8(c.A, c.B, r)
		c.A = r
	})
	def(0x16, "misc", "TAB", "inh", false, false, 1, 1, func(c *CPU) { c.B = c.A; c.L8(c.B) })
	def(0x17, "misc", "TBA", "inh", false, false, 1, 1, func(c *CPU) { c.A = c.B; c.L8(c.A) })
	def(0x19, "misc", "DAA", "inh", false, false, 1, 2, actionDAA)
	def(0x1B, "misc", "ABA", "inh", false, false, 1, 1, func(c *CPU) {
		r := c.A + c.B
		c.A8(c.A, c.B, r)
		c.A = r
	})

	// --- Branches, 0x20-0x2F --------------------------------------
	def(0x20, "branch", "BRA", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return true }))
	def(0x21, "branch", "BRN", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return false }))
	def(0x22, "branch", "BHI", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return !c.C && !c.Z }))
	def(0x23, "branch", "BLS", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.C || c.Z }))
	def(0x24, "branch", "BCC", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return !c.C }))
	def(0x25, "branch", "BCS", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.C }))
	def(0x26, "branch", "BNE", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return !c.Z }))
	def(0x27, "branch", "BEQ", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.Z }))
	def(0x28, "branch", "BVC", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return !c.V }))
	def(0x29, "branch", "BVS", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.V }))
	def(0x2A, "branch", "BPL", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return !c.N }))
	def(0x2B, "branch", "BMI", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.N }))
	def(0x2C, "branch", "BGE", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.N == c.V }))
	def(0x2D, "branch", "BLT", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.N != c.V }))
	def(0x2E, "branch", "BGT", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return !c.Z && (c.N == c.V) }))
	def(0x2F, "branch", "BLE", "rel", false, false, 2, 3, actionBranch(func(c *CPU) bool { return c.Z || (c.N != c.V) }))

	// --- Stack/subroutine/interrupt control, 0x30-0x3F -------------
	def(0x30, "stack", "TSX", "inh", false, false, 1, 1, func(c *CPU) { c.IX = c.SP + 1 })
	def(0x31, "stack", "INS", "inh", false, false, 1, 1, func(c *CPU) { c.SP++ })
	def(0x32, "stack", "PULA", "inh", false, false, 1, 3, func(c *CPU) { c.A = c.Pull8() })
	def(0x33, "stack", "PULB", "inh", false, false, 1, 3, func(c *CPU) { c.B = c.Pull8() })
	def(0x34, "stack", "DES", "inh", false, false, 1, 1, func(c *CPU) { c.SP-- })
	def(0x35, "stack", "TXS", "inh", false, false, 1, 1, func(c *CPU) { c.SP = c.IX - 1 })
	def(0x36, "stack", "PSHA", "inh", false, false, 1, 3, func(c *CPU) { c.Push8(c.A) })
	def(0x37, "stack", "PSHB", "inh", false, false, 1, 3, func(c *CPU) { c.Push8(c.B) })
	def(0x38, "stack", "PULX", "inh", false, false, 1, 4, func(c *CPU) { c.IX = c.Pull16() })
	def(0x39, "stack", "RTS", "inh", false, false, 1, 4, func(c *CPU) { c.PC = c.Pull16() })
	def(0x3B, "interrupt", "RTI", "inh", false, false, 1, 9, func(c *CPU) {
		c.SetCCR(c.Pull8())
		c.B = c.Pull8()
		c.A = c.Pull8()
		c.IX = c.Pull16()
		c.PC = c.Pull16()
	})
	def(0x3C, "stack", "PSHX", "inh", false, false, 1, 4, func(c *CPU) { c.Push16(c.IX) })
	def(0x3E, "interrupt", "WAI", "inh", false, false, 1, 9, func(c *CPU) { c.Halt = true })
	def(0x3F, "interrupt", "SWI", "inh", false, false, 1, 10, func(c *CPU) { c.interrupt(VectorSWI) })

	// --- Accumulator A inherent RMW, 0x40-0x4F ---------------------
	def(0x40, "rmwA", "NEGA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "neg"))
	def(0x43, "rmwA", "COMA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "com"))
	def(0x44, "rmwA", "LSRA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "lsr"))
	def(0x46, "rmwA", "RORA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "ror"))
	def(0x47, "rmwA", "ASRA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "asr"))
	def(0x48, "rmwA", "ASLA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "asl"))
	def(0x49, "rmwA", "ROLA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "rol"))
	def(0x4A, "rmwA", "DECA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "dec"))
	def(0x4C, "rmwA", "INCA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "inc"))
	def(0x4D, "rmwA", "TSTA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "tst"))
	def(0x4F, "rmwA", "CLRA", "inh", false, false, 1, 1, actionRmw8(&regA, "", "clr"))

	// --- Accumulator B inherent RMW, 0x50-0x5F ---------------------
	def(0x50, "rmwB", "NEGB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "neg"))
	def(0x53, "rmwB", "COMB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "com"))
	def(0x54, "rmwB", "LSRB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "lsr"))
	def(0x56, "rmwB", "RORB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "ror"))
	def(0x57, "rmwB", "ASRB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "asr"))
	def(0x58, "rmwB", "ASLB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "asl"))
	def(0x59, "rmwB", "ROLB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "rol"))
	def(0x5A, "rmwB", "DECB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "dec"))
	def(0x5C, "rmwB", "INCB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "inc"))
	def(0x5D, "rmwB", "TSTB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "tst"))
	def(0x5F, "rmwB", "CLRB", "inh", false, false, 1, 1, actionRmw8(&regB, "", "clr"))

	// --- Indexed-mode RMW and HD6303 mask ops, 0x60-0x6F -----------
	def(0x60, "rmw", "NEG", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "neg"))
	def(0x61, "mask", "AIM", "idx", true, true, 3, 7, actionMask8("idx", "aim"))
	def(0x62, "mask", "OIM", "idx", true, true, 3, 7, actionMask8("idx", "oim"))
	def(0x63, "rmw", "COM", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "com"))
	def(0x64, "rmw", "LSR", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "lsr"))
	def(0x65, "mask", "EIM", "idx", true, true, 3, 7, actionMask8("idx", "eim"))
	def(0x66, "rmw", "ROR", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "ror"))
	def(0x67, "rmw", "ASR", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "asr"))
	def(0x68, "rmw", "ASL", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "asl"))
	def(0x69, "rmw", "ROL", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "rol"))
	def(0x6A, "rmw", "DEC", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "dec"))
	def(0x6C, "rmw", "INC", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "inc"))
	def(0x6D, "rmw", "TST", "idx", true, false, 2, 6, actionRmw8(nil, "idx", "tst"))
	def(0x6E, "jump", "JMP", "idx", false, false, 2, 3, func(c *CPU) { c.PC = c.addrIndexed() })
	def(0x6F, "rmw", "CLR", "idx", true, true, 2, 6, actionRmw8(nil, "idx", "clr"))

	// --- Extended-mode RMW and direct-mode HD6303 mask ops, 0x70-0x7F
	def(0x70, "rmw", "NEG", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "neg"))
	def(0x71, "mask", "AIM", "dir", true, true, 3, 7, actionMask8("dir", "aim"))
	def(0x72, "mask", "OIM", "dir", true, true, 3, 7, actionMask8("dir", "oim"))
	def(0x73, "rmw", "COM", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "com"))
	def(0x74, "rmw", "LSR", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "lsr"))
	def(0x75, "mask", "EIM", "dir", true, true, 3, 7, actionMask8("dir", "eim"))
	def(0x76, "rmw", "ROR", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "ror"))
	def(0x77, "rmw", "ASR", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "asr"))
	def(0x78, "rmw", "ASL", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "asl"))
	def(0x79, "rmw", "ROL", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "rol"))
	def(0x7A, "rmw", "DEC", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "dec"))
	def(0x7C, "rmw", "INC", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "inc"))
	def(0x7D, "rmw", "TST", "ext", true, false, 3, 6, actionRmw8(nil, "ext", "tst"))
	def(0x7E, "jump", "JMP", "ext", false, false, 3, 3, func(c *CPU) { c.PC = c.addrExtended() })
	def(0x7F, "rmw", "CLR", "ext", true, true, 3, 6, actionRmw8(nil, "ext", "clr"))

	// --- Accumulator A ALU, 0x80-0xBF -------------------------------
	defAlu := func(base int, reg reg8, op string) {
		acc := "A"
		if base >= 0xC0 {
			acc = "B"
		}
		group := "alu" + acc
		def(base+0x00, group, op+acc+"-imm", "imm", false, false, 2, 2, actionAlu8(reg, "imm", op))
		def(base+0x10, group, op+acc+"-dir", "dir", true, false, 2, 3, actionAlu8(reg, "dir", op))
		def(base+0x20, group, op+acc+"-idx", "idx", true, false, 2, 4, actionAlu8(reg, "idx", op))
		def(base+0x30, group, op+acc+"-ext", "ext", true, false, 3, 4, actionAlu8(reg, "ext", op))
	}
	defAlu(0x80, regA, "sub")
	defAlu(0x81, regA, "cmp")
	defAlu(0x82, regA, "sbc")
	defAlu(0x84, regA, "and")
	defAlu(0x85, regA, "bit")
	def(0x86, "aluA", "LDAA-imm", "imm", false, false, 2, 2, actionLoad8(regA, "imm"))
	def(0x96, "aluA", "LDAA-dir", "dir", true, false, 2, 3, actionLoad8(regA, "dir"))
	def(0xA6, "aluA", "LDAA-idx", "idx", true, false, 2, 4, actionLoad8(regA, "idx"))
	def(0xB6, "aluA", "LDAA-ext", "ext", true, false, 3, 4, actionLoad8(regA, "ext"))
	def(0x97, "aluA", "STAA-dir", "dir", false, true, 2, 3, actionStore8(regA, "dir"))
	def(0xA7, "aluA", "STAA-idx", "idx", false, true, 2, 4, actionStore8(regA, "idx"))
	def(0xB7, "aluA", "STAA-ext", "ext", false, true, 3, 4, actionStore8(regA, "ext"))
	defAlu(0x88, regA, "eor")
	defAlu(0x89, regA, "adc")
	defAlu(0x8A, regA, "ora")
	defAlu(0x8B, regA, "add")
	def(0x8C, "ixcmp", "CPX-imm", "imm", false, false, 3, 3, actionCPX("imm"))
	def(0x9C, "ixcmp", "CPX-dir", "dir", true, false, 2, 4, actionCPX("dir"))
	def(0xAC, "ixcmp", "CPX-idx", "idx", true, false, 2, 5, actionCPX("idx"))
	def(0xBC, "ixcmp", "CPX-ext", "ext", true, false, 3, 5, actionCPX("ext"))
	def(0x8D, "sub16", "BSR", "rel", false, false, 2, 5, func(c *CPU) {
		off := int8(c.fetch8())
		c.Push16(c.PC)
		c.PC = uint16(int32(c.PC) + int32(off))
	})
	def(0xAD, "sub16", "JSR-idx", "idx", false, false, 2, 5, func(c *CPU) {
		addr := c.addrIndexed()
		c.Push16(c.PC)
		c.PC = addr
	})
	def(0xBD, "sub16", "JSR-ext", "ext", false, false, 3, 5, func(c *CPU) {
		addr := c.addrExtended()
		c.Push16(c.PC)
		c.PC = addr
	})
	def(0x8E, "ixld", "LDS-imm", "imm", false, false, 3, 3, actionLoad16(regSPReg, "imm"))
	def(0x9E, "ixld", "LDS-dir", "dir", true, false, 2, 4, actionLoad16(regSPReg, "dir"))
	def(0xAE, "ixld", "LDS-idx", "idx", true, false, 2, 5, actionLoad16(regSPReg, "idx"))
	def(0xBE, "ixld", "LDS-ext", "ext", true, false, 3, 5, actionLoad16(regSPReg, "ext"))
	def(0x9F, "ixld", "STS-dir", "dir", false, true, 2, 4, actionStore16(regSPReg, "dir"))
	def(0xAF, "ixld", "STS-idx", "idx", false, true, 2, 5, actionStore16(regSPReg, "idx"))
	def(0xBF, "ixld", "STS-ext", "ext", false, true, 3, 5, actionStore16(regSPReg, "ext"))

	// --- Accumulator B ALU, 0xC0-0xFF (mirrors A's column layout) --
	defAlu(0xC0, regB, "sub")
	defAlu(0xC1, regB, "cmp")
	defAlu(0xC2, regB, "sbc")
	defAlu(0xC4, regB, "and")
	defAlu(0xC5, regB, "bit")
	def(0xC6, "aluB", "LDAB-imm", "imm", false, false, 2, 2, actionLoad8(regB, "imm"))
	def(0xD6, "aluB", "LDAB-dir", "dir", true, false, 2, 3, actionLoad8(regB, "dir"))
	def(0xE6, "aluB", "LDAB-idx", "idx", true, false, 2, 4, actionLoad8(regB, "idx"))
	def(0xF6, "aluB", "LDAB-ext", "ext", true, false, 3, 4, actionLoad8(regB, "ext"))
	def(0xD7, "aluB", "STAB-dir", "dir", false, true, 2, 3, actionStore8(regB, "dir"))
	def(0xE7, "aluB", "STAB-idx", "idx", false, true, 2, 4, actionStore8(regB, "idx"))
	def(0xF7, "aluB", "STAB-ext", "ext", false, true, 3, 4, actionStore8(regB, "ext"))
	defAlu(0xC8, regB, "eor")
	defAlu(0xC9, regB, "adc")
	defAlu(0xCA, regB, "ora")
	defAlu(0xCB, regB, "add")

	// ADDD/SUBD/LDD/STD/LDX/STX share the 0xC3/0xD3/0xE3/0xF3 and
	// 0xCC-0xFF columns; defined explicitly since they operate on 16-bit
	// registers rather than accumulator B.
	def(0x83, "d16", "SUBD-imm", "imm", false, false, 3, 4, actionSubD("imm"))
	def(0x93, "d16", "SUBD-dir", "dir", true, false, 2, 5, actionSubD("dir"))
	def(0xA3, "d16", "SUBD-idx", "idx", true, false, 2, 6, actionSubD("idx"))
	def(0xB3, "d16", "SUBD-ext", "ext", true, false, 3, 6, actionSubD("ext"))
	def(0xC3, "d16", "ADDD-imm", "imm", false, false, 3, 4, actionAddD("imm"))
	def(0xD3, "d16", "ADDD-dir", "dir", true, false, 2, 5, actionAddD("dir"))
	def(0xE3, "d16", "ADDD-idx", "idx", true, false, 2, 6, actionAddD("idx"))
	def(0xF3, "d16", "ADDD-ext", "ext", true, false, 3, 6, actionAddD("ext"))

	def(0xCC, "d16", "LDD-imm", "imm", false, false, 3, 3, actionLoad16(regD, "imm"))
	def(0xDC, "d16", "LDD-dir", "dir", true, false, 2, 4, actionLoad16(regD, "dir"))
	def(0xEC, "d16", "LDD-idx", "idx", true, false, 2, 5, actionLoad16(regD, "idx"))
	def(0xFC, "d16", "LDD-ext", "ext", true, false, 3, 5, actionLoad16(regD, "ext"))
	def(0xDD, "d16", "STD-dir", "dir", false, true, 2, 4, actionStore16(regD, "dir"))
	def(0xED, "d16", "STD-idx", "idx", false, true, 2, 5, actionStore16(regD, "idx"))
	def(0xFD, "d16", "STD-ext", "ext", false, true, 3, 5, actionStore16(regD, "ext"))

	def(0xCE, "ix16", "LDX-imm", "imm", false, false, 3, 3, actionLoad16(regIX, "imm"))
	def(0xDE, "ix16", "LDX-dir", "dir", true, false, 2, 4, actionLoad16(regIX, "dir"))
	def(0xEE, "ix16", "LDX-idx", "idx", true, false, 2, 5, actionLoad16(regIX, "idx"))
	def(0xFE, "ix16", "LDX-ext", "ext", true, false, 3, 5, actionLoad16(regIX, "ext"))
	def(0xDF, "ix16", "STX-dir", "dir", false, true, 2, 4, actionStore16(regIX, "dir"))
	def(0xEF, "ix16", "STX-idx", "idx", false, true, 2, 5, actionStore16(regIX, "idx"))
	def(0xFF, "ix16", "STX-ext", "ext", false, true, 3, 5, actionStore16(regIX, "ext"))
}

func actionDAA(c *CPU) {
	a := c.A
	lo := a & 0x0F
	hi := (a >> 4) & 0x0F
	var corrLo, corrHi uint8
	setC := c.C
	if c.H || lo > 9 {
		corrLo = 0x06
	}
	if c.C || hi > 9 || (hi >= 9 && lo > 9) {
		corrHi = 0x60
		setC = true
	}
	r := uint16(a) + uint16(corrHi) + uint16(corrLo)
	c.A = uint8(r)
	c.N = c.A&0x80 != 0
	c.Z = c.A == 0
	c.C = setC || r > 0xFF
}
