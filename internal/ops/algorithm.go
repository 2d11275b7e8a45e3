package ops

// sel selects which signal feeds an operator's modulation output for the
// next operator in the chain.
type sel int

const (
	sel0 sel = iota // no modulation
	sel1             // this operator's own signal (carrier)
	sel2             // sum of feedback-register and signal contributions
	sel3             // feedback register only
	sel4             // first feedback-register tap (for self-feedback pairs)
	sel5             // averaged feedback pair, shifted by the feedback level
)

// algoStep is one operator's entry in an algorithm: which modulation path
// it selects, whether it participates in the self-feedback chain (A),
// whether it reads the feedback register (C) or the running signal (D)
// into the feedback sum, and which COM (output attenuation class) it
// leaves behind for the next tick.
type algoStep struct {
	sel     sel
	a, c, d bool
	com     uint8
}

// algorithms is the DX7's 32-entry algorithm ROM. Index 0 is algorithm 1
// as numbered on the front panel. Each row lists six algoStep entries
// indexed by operator number 0..5 (the synthesizer's OP6 down to OP1, in
// the order the hardware clocks them).
var algorithms = [32][6]algoStep{
	{{sel1, true, false, false, 0}, {sel1, false, false, false, 0}, {sel1, false, false, true, 1}, {sel0, false, false, true, 0}, {sel1, false, true, false, 1}, {sel5, false, true, true, 0}},
	{{sel1, false, false, false, 0}, {sel1, false, false, false, 0}, {sel1, false, false, true, 1}, {sel5, false, false, true, 0}, {sel1, true, true, false, 1}, {sel0, false, true, true, 0}},
	{{sel1, true, false, false, 0}, {sel1, false, false, true, 1}, {sel0, false, false, true, 0}, {sel1, false, true, false, 0}, {sel1, false, true, false, 1}, {sel5, false, true, true, 0}},
	{{sel1, false, false, false, 0}, {sel1, false, false, true, 1}, {sel0, true, false, true, 0}, {sel1, false, true, false, 0}, {sel1, false, true, false, 1}, {sel5, false, true, true, 0}},
	{{sel1, true, false, false, 2}, {sel0, false, false, true, 0}, {sel1, false, true, false, 2}, {sel0, false, true, true, 0}, {sel1, false, true, false, 2}, {sel5, false, true, true, 0}},
	{{sel1, false, false, false, 2}, {sel0, true, false, true, 0}, {sel1, false, true, false, 2}, {sel0, false, true, true, 0}, {sel1, false, true, false, 2}, {sel5, false, true, true, 0}},
	{{sel1, true, false, false, 0}, {sel0, false, false, true, 0}, {sel2, false, true, true, 1}, {sel0, false, false, true, 0}, {sel1, false, true, false, 1}, {sel5, false, true, true, 0}},
	{{sel1, false, false, false, 0}, {sel5, false, false, true, 0}, {sel2, true, true, true, 1}, {sel0, false, false, true, 0}, {sel1, false, true, false, 1}, {sel0, false, true, true, 0}},
	{{sel1, false, false, false, 0}, {sel0, false, false, true, 0}, {sel2, false, true, true, 1}, {sel5, false, false, true, 0}, {sel1, true, true, false, 1}, {sel0, false, true, true, 0}},
	{{sel0, false, false, true, 0}, {sel2, false, true, true, 1}, {sel5, false, false, true, 0}, {sel1, true, true, false, 0}, {sel1, false, true, false, 1}, {sel0, false, true, true, 0}},
	{{sel0, true, false, true, 0}, {sel2, false, true, true, 1}, {sel0, false, false, true, 0}, {sel1, false, true, false, 0}, {sel1, false, true, false, 1}, {sel5, false, true, true, 0}},
	{{sel0, false, false, true, 0}, {sel0, false, true, true, 0}, {sel2, false, true, true, 1}, {sel5, false, false, true, 0}, {sel1, true, true, false, 1}, {sel0, false, true, true, 0}},
	{{sel0, true, false, true, 0}, {sel0, false, true, true, 0}, {sel2, false, true, true, 1}, {sel0, false, false, true, 0}, {sel1, false, true, false, 1}, {sel5, false, true, true, 0}},
	{{sel0, true, false, true, 0}, {sel2, false, true, true, 0}, {sel1, false, false, false, 1}, {sel0, false, false, true, 0}, {sel1, false, true, false, 1}, {sel5, false, true, true, 0}},
	{{sel0, false, false, true, 0}, {sel2, false, true, true, 0}, {sel1, false, false, false, 1}, {sel5, false, false, true, 0}, {sel1, true, true, false, 1}, {sel0, false, true, true, 0}},
	{{sel1, true, false, false, 0}, {sel0, false, false, true, 0}, {sel1, false, true, false, 0}, {sel0, false, true, true, 0}, {sel2, false, true, true, 0}, {sel5, false, false, true, 0}},
	{{sel1, false, false, false, 0}, {sel0, false, false, true, 0}, {sel1, false, true, false, 0}, {sel5, false, true, true, 0}, {sel2, true, true, true, 0}, {sel0, false, false, true, 0}},
	{{sel1, false, false, false, 0}, {sel1, false, false, false, 0}, {sel5, false, false, true, 0}, {sel0, true, true, true, 0}, {sel2, false, true, true, 0}, {sel0, false, false, true, 0}},
	{{sel1, true, false, false, 2}, {sel4, false, false, true, 2}, {sel0, false, true, true, 0}, {sel1, false, true, false, 0}, {sel1, false, true, false, 2}, {sel5, false, true, true, 0}},
	{{sel0, false, false, true, 0}, {sel2, false, true, true, 2}, {sel5, false, false, true, 0}, {sel1, true, true, false, 2}, {sel4, false, true, true, 2}, {sel0, false, true, true, 0}},
	{{sel1, false, false, true, 3}, {sel3, false, false, true, 3}, {sel5, false, true, true, 0}, {sel1, true, true, false, 3}, {sel4, false, true, true, 3}, {sel0, false, true, true, 0}},
	{{sel1, true, false, false, 3}, {sel4, false, false, true, 3}, {sel4, false, true, true, 3}, {sel0, false, true, true, 0}, {sel1, false, true, false, 3}, {sel5, false, true, true, 0}},
	{{sel1, true, false, false, 3}, {sel4, false, false, true, 3}, {sel0, false, true, true, 0}, {sel1, false, true, false, 3}, {sel0, false, true, true, 3}, {sel5, false, true, true, 0}},
	{{sel1, true, false, false, 4}, {sel4, false, false, true, 4}, {sel4, false, true, true, 4}, {sel0, false, true, true, 4}, {sel0, false, true, true, 4}, {sel5, false, true, true, 0}},
	{{sel1, true, false, false, 4}, {sel4, false, false, true, 4}, {sel0, false, true, true, 4}, {sel0, false, true, true, 4}, {sel0, false, true, true, 4}, {sel5, false, true, true, 0}},
	{{sel0, true, false, true, 0}, {sel2, false, true, true, 2}, {sel0, false, false, true, 0}, {sel1, false, true, false, 2}, {sel0, false, true, true, 2}, {sel5, false, true, true, 0}},
	{{sel0, false, false, true, 0}, {sel2, false, true, true, 2}, {sel5, false, false, true, 0}, {sel1, true, true, false, 2}, {sel0, false, true, true, 2}, {sel0, false, true, true, 0}},
	{{sel5, false, false, true, 0}, {sel1, true, true, false, 0}, {sel1, false, true, false, 2}, {sel0, false, true, true, 0}, {sel1, false, true, false, 2}, {sel0, false, true, true, 2}},
	{{sel1, true, false, false, 3}, {sel0, false, false, true, 0}, {sel1, false, true, false, 3}, {sel0, false, true, true, 3}, {sel0, false, true, true, 3}, {sel5, false, true, true, 0}},
	{{sel5, false, false, true, 0}, {sel1, true, true, false, 0}, {sel1, false, true, false, 3}, {sel0, false, true, true, 3}, {sel0, false, true, true, 3}, {sel0, false, true, true, 3}},
	{{sel1, true, false, false, 4}, {sel0, false, false, true, 4}, {sel0, false, true, true, 4}, {sel0, false, true, true, 4}, {sel0, false, true, true, 4}, {sel5, false, true, true, 0}},
	{{sel0, true, false, true, 5}, {sel0, false, true, true, 5}, {sel0, false, true, true, 5}, {sel0, false, true, true, 5}, {sel0, false, true, true, 5}, {sel5, false, true, true, 5}},
}

// comTable holds log2(i+1) in Q4.10 format, used to add COM-class
// attenuation into the log-domain operator sum.
var comTable = [6]uint16{
	0b00000 << 7, 0b01000 << 7, 0b01101 << 7,
	0b10000 << 7, 0b10011 << 7, 0b10101 << 7,
}

// voiceOrder is the output latch shuffle applied across the 16 voices;
// it reflects how the real chip's output multiplexer is wired and has a
// subtle effect on the aliasing profile of the decimated output.
var voiceOrder = [16]int{0, 8, 4, 12, 2, 10, 6, 14, 1, 9, 5, 13, 3, 11, 7, 15}
