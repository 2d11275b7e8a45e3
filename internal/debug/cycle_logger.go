package debug

import (
	"fmt"
	"os"
	"sync"
)

// MemoryReader reads a byte from CPU memory (to avoid import cycles with internal/dx7).
type MemoryReader interface {
	Read8(addr uint16) uint8
}

// EGSStateReader reads a handful of EGS-visible values (to avoid import cycles).
type EGSStateReader interface {
	VoiceEvents() uint8
	MasterClock() uint16
}

// CPUStateSnapshot represents HD6303R register state for logging (to avoid import cycles).
type CPUStateSnapshot struct {
	A, B   uint8
	IX, SP uint16
	PC     uint16
	CCR    uint8
	Cycle  uint64
}

// CycleLogger logs CPU register and peripheral state for each instruction step.
// Useful for diagnosing sub-CPU handshake and envelope timing issues.
type CycleLogger struct {
	file         *os.File
	maxCycles    uint64
	startCycle   uint64 // start logging after this many cycles
	currentCycle uint64
	totalCycles  uint64
	enabled      bool
	mu           sync.Mutex

	mem MemoryReader
	egs EGSStateReader
}

// NewCycleLogger creates a new cycle logger.
// maxCycles: maximum number of steps to log (0 = unlimited, use with caution).
// startCycle: start logging after this many steps (0 = start immediately).
func NewCycleLogger(filename string, maxCycles uint64, startCycle uint64, mem MemoryReader, egs EGSStateReader) (*CycleLogger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create cycle log file: %w", err)
	}

	logger := &CycleLogger{
		file:       file,
		maxCycles:  maxCycles,
		startCycle: startCycle,
		enabled:    true,
		mem:        mem,
		egs:        egs,
	}

	fmt.Fprintf(file, "Cycle-by-Cycle Debug Log\n")
	fmt.Fprintf(file, "========================\n\n")
	if startCycle > 0 {
		fmt.Fprintf(file, "Start step offset: %d\n", startCycle)
	}
	if maxCycles > 0 {
		fmt.Fprintf(file, "Max steps to log: %d\n", maxCycles)
	}
	fmt.Fprintf(file, "\nFormat: Step | PC | A B IX SP | CCR | EGS voice events/clock | Panel/OPS/LED peripherals\n\n")

	return logger, nil
}

// LogCycle logs CPU state and key peripheral bytes for one instruction step.
func (c *CycleLogger) LogCycle(cpuState *CPUStateSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}

	c.totalCycles++
	if c.totalCycles <= c.startCycle {
		return
	}
	if c.maxCycles > 0 && c.currentCycle >= c.maxCycles {
		c.enabled = false
		return
	}
	c.currentCycle++

	var pedalsLCD, opsMode, opsAlgFdbk, led1, led2 uint8
	if c.mem != nil {
		pedalsLCD = c.mem.Read8(0x2802)
		opsMode = c.mem.Read8(0x2804)
		opsAlgFdbk = c.mem.Read8(0x2805)
		led1 = c.mem.Read8(0x280E)
		led2 = c.mem.Read8(0x280F)
	}

	var voiceEvents uint8
	var egsClock uint16
	if c.egs != nil {
		voiceEvents = c.egs.VoiceEvents()
		egsClock = c.egs.MasterClock()
	}

	fmt.Fprintf(c.file, "Step %7d | PC:%04X | A:%02X B:%02X IX:%04X SP:%04X | CCR:%02X | ",
		c.totalCycles, cpuState.PC, cpuState.A, cpuState.B, cpuState.IX, cpuState.SP, cpuState.CCR)
	fmt.Fprintf(c.file, "EGS:events=%02X clock=%04X | Pedals/LCD:%02X OPSMode:%02X AlgFdbk:%02X LED1:%02X LED2:%02X\n",
		voiceEvents, egsClock, pedalsLCD, opsMode, opsAlgFdbk, led1, led2)
}

// SetEnabled enables or disables logging.
func (c *CycleLogger) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Toggle toggles logging on/off.
func (c *CycleLogger) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = !c.enabled
}

// Close closes the log file.
func (c *CycleLogger) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enabled = false
	if c.file != nil {
		fmt.Fprintf(c.file, "\n\nLog complete. Total steps logged: %d\n", c.currentCycle)
		err := c.file.Close()
		c.file = nil
		return err
	}
	return nil
}

// IsEnabled returns whether logging is enabled.
func (c *CycleLogger) IsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && (c.maxCycles == 0 || c.currentCycle < c.maxCycles)
}

// GetStatus returns the current logging status.
func (c *CycleLogger) GetStatus() (enabled bool, currentCycle uint64, totalCycles uint64, maxCycles uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled, c.currentCycle, c.totalCycles, c.maxCycles
}
