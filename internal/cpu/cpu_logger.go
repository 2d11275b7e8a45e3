package cpu

import (
	"fmt"

	"nitro-core-dx/internal/debug"
)

// CPULogLevel represents granular logging levels for CPU
type CPULogLevel int

const (
	CPULogNone         CPULogLevel = iota // No CPU logging
	CPULogErrors                          // Only errors
	CPULogBranches                        // Branches and jumps
	CPULogMemory                          // Memory access (reads/writes)
	CPULogRegisters                       // Register changes
	CPULogInstructions                    // All instructions
	CPULogTrace                           // Full trace (every cycle)
)

// cpuSnapshot is a lightweight copy of the register file used for
// register-change detection between steps.
type cpuSnapshot struct {
	A, B   uint8
	IX, SP uint16
	PC     uint16
	CCR    uint8
}

// CPULoggerAdapter adapts the debug.Logger to the CPU's LoggerInterface
type CPULoggerAdapter struct {
	logger    *debug.Logger
	level     CPULogLevel
	enabled   bool
	lastState cpuSnapshot
}

// NewCPULoggerAdapter creates a new CPU logger adapter
func NewCPULoggerAdapter(logger *debug.Logger, level CPULogLevel) *CPULoggerAdapter {
	return &CPULoggerAdapter{
		logger:  logger,
		level:   level,
		enabled: true,
	}
}

// SetLevel sets the CPU logging level
func (a *CPULoggerAdapter) SetLevel(level CPULogLevel) {
	a.level = level
}

// SetEnabled enables or disables CPU logging
func (a *CPULoggerAdapter) SetEnabled(enabled bool) {
	a.enabled = enabled
}

// LogCPU implements LoggerInterface.LogCPU. It is called at the end of
// every Step with the CPU's post-instruction state.
func (a *CPULoggerAdapter) LogCPU(c *CPU, opcode uint8) {
	if !a.enabled || a.logger == nil || a.level == CPULogNone {
		return
	}

	inst := &c.instructions[opcode]
	isBranch := inst.Group == "branch" || inst.Group == "sub16" || inst.Group == "jump" || inst.Group == "interrupt"

	var logLevel debug.LogLevel
	var message string
	var data map[string]interface{}

	switch a.level {
	case CPULogErrors:
		return

	case CPULogBranches:
		if !isBranch {
			return
		}
		logLevel = debug.LogLevelInfo
		message = a.formatInstruction(c, opcode, inst)
		data = a.getStateData(c, inst)

	case CPULogMemory:
		if inst.R || inst.W {
			logLevel = debug.LogLevelInfo
			message = a.formatInstruction(c, opcode, inst)
			data = a.getStateData(c, inst)
			if inst.W {
				data["memory_op"] = "write"
			} else {
				data["memory_op"] = "read"
			}
			data["address"] = fmt.Sprintf("%04X", c.Addr)
		} else if isBranch {
			logLevel = debug.LogLevelInfo
			message = a.formatInstruction(c, opcode, inst)
			data = a.getStateData(c, inst)
		} else {
			return
		}

	case CPULogRegisters:
		regChanged := a.detectRegisterChange(c)
		if regChanged || isBranch {
			logLevel = debug.LogLevelInfo
			message = a.formatInstruction(c, opcode, inst)
			data = a.getStateData(c, inst)
			if regChanged {
				data["registers_changed"] = true
			}
		} else {
			return
		}

	case CPULogInstructions:
		logLevel = debug.LogLevelDebug
		message = a.formatInstruction(c, opcode, inst)
		data = a.getStateData(c, inst)

	case CPULogTrace:
		logLevel = debug.LogLevelTrace
		message = a.formatInstruction(c, opcode, inst)
		data = a.getStateData(c, inst)
		data["trace"] = true
	}

	a.lastState = snapshot(c)
	a.logger.LogCPU(logLevel, message, data)
}

func snapshot(c *CPU) cpuSnapshot {
	return cpuSnapshot{A: c.A, B: c.B, IX: c.IX, SP: c.SP, PC: c.PC, CCR: c.GetCCR()}
}

// formatInstruction formats an instruction for logging
func (a *CPULoggerAdapter) formatInstruction(c *CPU, opcode uint8, inst *Instruction) string {
	name := inst.Name
	if name == "" {
		name = fmt.Sprintf("OP%02X", opcode)
	}
	return fmt.Sprintf("%s @ %04X", name, c.PC-uint16(inst.Bytes))
}

// getStateData extracts state data for logging
func (a *CPULoggerAdapter) getStateData(c *CPU, inst *Instruction) map[string]interface{} {
	return map[string]interface{}{
		"pc":     fmt.Sprintf("%04X", c.PC),
		"cycles": c.Cycle,
		"a":      c.A,
		"b":      c.B,
		"ix":     fmt.Sprintf("%04X", c.IX),
		"sp":     fmt.Sprintf("%04X", c.SP),
		"ccr":    fmt.Sprintf("%08b", c.GetCCR()),
		"opcode": inst.Name,
	}
}

// detectRegisterChange detects if any register changed since the last
// logged instruction.
func (a *CPULoggerAdapter) detectRegisterChange(c *CPU) bool {
	s := snapshot(c)
	return s.A != a.lastState.A ||
		s.B != a.lastState.B ||
		s.IX != a.lastState.IX ||
		s.SP != a.lastState.SP ||
		s.CCR != a.lastState.CCR
}
