package debug

import (
	"fmt"
	"sync"
	"time"
)

// Logger represents the centralized logging system
type Logger struct {
	// Circular buffer for log entries
	entries    []LogEntry
	entriesMu  sync.RWMutex
	maxEntries int
	writeIndex int
	entryCount int

	// Component enable/disable flags
	componentEnabled map[Component]bool
	componentMu      sync.RWMutex

	// Minimum log level (entries below this level are filtered)
	minLevel LogLevel
	levelMu  sync.RWMutex

	// Channel for thread-safe logging
	logChan chan LogEntry

	// Shutdown channel
	shutdown chan struct{}
	wg       sync.WaitGroup

	// Locale the handful of user-facing diagnostics (ROM-load failure,
	// cartridge-checksum failure, illegal-opcode trap) are translated
	// into before being stored. Defaults to English.
	localizer *Localizer
	locale    string
	localeMu  sync.RWMutex
}

// NewLogger creates a new logger instance
func NewLogger(maxEntries int) *Logger {
	if maxEntries < 100 {
		maxEntries = 100 // Minimum buffer size
	}

	logger := &Logger{
		entries:          make([]LogEntry, maxEntries),
		maxEntries:       maxEntries,
		writeIndex:       0,
		entryCount:       0,
		componentEnabled: make(map[Component]bool),
		minLevel:         LogLevelInfo, // Default to Info level
		logChan:          make(chan LogEntry, 1000), // Buffered channel
		shutdown:         make(chan struct{}),
		localizer:        NewLocalizer(),
		locale:           "en",
	}

	// Disable all components by default (logging is opt-in)
	logger.componentEnabled[ComponentCPU] = false
	logger.componentEnabled[ComponentEGS] = false
	logger.componentEnabled[ComponentOPS] = false
	logger.componentEnabled[ComponentBus] = false
	logger.componentEnabled[ComponentHandshake] = false
	logger.componentEnabled[ComponentMIDI] = false
	logger.componentEnabled[ComponentLCD] = false
	logger.componentEnabled[ComponentUI] = false
	logger.componentEnabled[ComponentSystem] = false

	// Start log processing goroutine
	logger.wg.Add(1)
	go logger.processLogs()

	return logger
}

// processLogs processes log entries from the channel
func (l *Logger) processLogs() {
	defer l.wg.Done()

	for {
		select {
		case entry := <-l.logChan:
			l.addEntry(entry)
		case <-l.shutdown:
			// Drain remaining logs
			for {
				select {
				case entry := <-l.logChan:
					l.addEntry(entry)
				default:
					return
				}
			}
		}
	}
}

// addEntry adds a log entry to the circular buffer
func (l *Logger) addEntry(entry LogEntry) {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()

	// Add entry at current write index
	l.entries[l.writeIndex] = entry
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries

	// Update entry count (don't exceed maxEntries)
	if l.entryCount < l.maxEntries {
		l.entryCount++
	}
}

// Log logs a message with the specified component and level
func (l *Logger) Log(component Component, level LogLevel, message string, data map[string]interface{}) {
	// Check if component is enabled
	l.componentMu.RLock()
	enabled := l.componentEnabled[component]
	l.componentMu.RUnlock()

	if !enabled {
		return
	}

	// Check if level is high enough
	l.levelMu.RLock()
	minLevel := l.minLevel
	l.levelMu.RUnlock()

	if level < minLevel {
		return
	}

	// Create log entry
	entry := LogEntry{
		Timestamp: time.Now(),
		Component: component,
		Level:     level,
		Message:   message,
		Data:      data,
	}

	// Send to channel (non-blocking if channel is full)
	select {
	case l.logChan <- entry:
	default:
		// Channel is full, drop entry (or could use a larger buffer)
		// For now, we'll drop it to prevent blocking
	}
}

// Logf logs a formatted message
func (l *Logger) Logf(component Component, level LogLevel, format string, args ...interface{}) {
	l.Log(component, level, fmt.Sprintf(format, args...), nil)
}

// Convenience methods for each component
func (l *Logger) LogCPU(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentCPU, level, message, data)
}

func (l *Logger) LogEGS(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentEGS, level, message, data)
}

func (l *Logger) LogOPS(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentOPS, level, message, data)
}

func (l *Logger) LogBus(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentBus, level, message, data)
}

func (l *Logger) LogHandshake(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentHandshake, level, message, data)
}

func (l *Logger) LogMIDI(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentMIDI, level, message, data)
}

func (l *Logger) LogLCD(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentLCD, level, message, data)
}

func (l *Logger) LogUI(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentUI, level, message, data)
}

func (l *Logger) LogSystem(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentSystem, level, message, data)
}

// SetLocale changes the BCP 47 locale tag (e.g. "en", "ja") used by
// LogSystemError to translate recognized diagnostics.
func (l *Logger) SetLocale(locale string) {
	l.localeMu.Lock()
	defer l.localeMu.Unlock()
	l.locale = locale
}

func (l *Logger) Locale() string {
	l.localeMu.RLock()
	defer l.localeMu.RUnlock()
	return l.locale
}

// LogSystemError records err under ComponentSystem, translating it
// into the logger's current locale first when it recognizes the
// error's type (ROM/cartridge load failures, illegal opcodes).
func (l *Logger) LogSystemError(level LogLevel, err error, data map[string]interface{}) {
	l.Log(ComponentSystem, level, l.localizer.Localize(l.Locale(), err), data)
}

// Convenience methods with formatted strings
func (l *Logger) LogCPUf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentCPU, level, format, args...)
}

func (l *Logger) LogEGSf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentEGS, level, format, args...)
}

func (l *Logger) LogOPSf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentOPS, level, format, args...)
}

func (l *Logger) LogBusf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentBus, level, format, args...)
}

func (l *Logger) LogHandshakef(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentHandshake, level, format, args...)
}

func (l *Logger) LogMIDIf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentMIDI, level, format, args...)
}

func (l *Logger) LogLCDf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentLCD, level, format, args...)
}

func (l *Logger) LogUIf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentUI, level, format, args...)
}

func (l *Logger) LogSystemf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentSystem, level, format, args...)
}

// GetEntries returns a copy of all log entries (oldest first)
func (l *Logger) GetEntries() []LogEntry {
	l.entriesMu.RLock()
	defer l.entriesMu.RUnlock()

	if l.entryCount == 0 {
		return []LogEntry{}
	}

	entries := make([]LogEntry, l.entryCount)

	if l.entryCount < l.maxEntries {
		// Buffer not full yet, return entries from 0 to entryCount
		copy(entries, l.entries[:l.entryCount])
	} else {
		// Buffer is full, return entries starting from writeIndex (oldest)
		// and wrapping around
		for i := 0; i < l.entryCount; i++ {
			idx := (l.writeIndex + i) % l.maxEntries
			entries[i] = l.entries[idx]
		}
	}

	return entries
}

// GetRecentEntries returns the most recent N entries
func (l *Logger) GetRecentEntries(count int) []LogEntry {
	allEntries := l.GetEntries()
	if count >= len(allEntries) {
		return allEntries
	}
	return allEntries[len(allEntries)-count:]
}

// Clear clears all log entries
func (l *Logger) Clear() {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()

	l.entryCount = 0
	l.writeIndex = 0
}

// SetComponentEnabled enables or disables logging for a component
func (l *Logger) SetComponentEnabled(component Component, enabled bool) {
	l.componentMu.Lock()
	defer l.componentMu.Unlock()
	l.componentEnabled[component] = enabled
}

// IsComponentEnabled returns whether a component is enabled
func (l *Logger) IsComponentEnabled(component Component) bool {
	l.componentMu.RLock()
	defer l.componentMu.RUnlock()
	return l.componentEnabled[component]
}

// SetMinLevel sets the minimum log level
func (l *Logger) SetMinLevel(level LogLevel) {
	l.levelMu.Lock()
	defer l.levelMu.Unlock()
	l.minLevel = level
}

// GetMinLevel returns the minimum log level
func (l *Logger) GetMinLevel() LogLevel {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.minLevel
}

// Shutdown shuts down the logger and waits for all logs to be processed
func (l *Logger) Shutdown() {
	close(l.shutdown)
	l.wg.Wait()
}

