package dx7

import (
	"testing"

	"nitro-core-dx/internal/cpu"
	"nitro-core-dx/internal/midi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresEGSIntoCPUMemory(t *testing.T) {
	toGui := midi.NewQueue()
	d := New(toGui, nil)

	require.NotNil(t, d.CPU)
	require.NotNil(t, d.EGS)
	require.NotNil(t, d.LCD)
	assert.Equal(t, -1, d.cartNum)
	assert.Equal(t, uint8(7), d.MidiVolume())
}

func TestTuneIgnoresOutOfRangeValues(t *testing.T) {
	d := New(nil, nil)

	d.Tune(0)
	assert.Equal(t, uint8(0x01), d.CPU.Memory[addrMasterTune])
	assert.Equal(t, uint8(0x00), d.CPU.Memory[addrMasterTuneL])

	d.Tune(-256)
	assert.Equal(t, uint8(0x00), d.CPU.Memory[addrMasterTune])
	assert.Equal(t, uint8(0x00), d.CPU.Memory[addrMasterTuneL])

	// out of range: left untouched
	d.Tune(0)
	before := d.CPU.Memory[addrMasterTune]
	d.Tune(256)
	assert.Equal(t, before, d.CPU.Memory[addrMasterTune])
	d.Tune(-257)
	assert.Equal(t, before, d.CPU.Memory[addrMasterTune])
}

func TestSustainPortaCartBits(t *testing.T) {
	d := New(nil, nil)

	d.Sustain(true)
	assert.Equal(t, uint8(0b1), d.CPU.Memory[addrPedalsLCD]&0b1)
	d.Sustain(false)
	assert.Equal(t, uint8(0), d.CPU.Memory[addrPedalsLCD]&0b1)

	d.Porta(true)
	assert.Equal(t, uint8(0b10), d.CPU.Memory[addrPedalsLCD]&0b10)
	d.Porta(false)
	assert.Equal(t, uint8(0), d.CPU.Memory[addrPedalsLCD]&0b10)

	d.CartPresent(true)
	assert.True(t, d.CartPresentStatus())
	d.CartPresent(false)
	assert.False(t, d.CartPresentStatus())

	d.CartWriteProtect(true)
	assert.True(t, d.CartWriteProtectStatus())
	d.CartWriteProtect(false)
	assert.False(t, d.CartWriteProtectStatus())
}

func TestStartClearsRAMWhenNoFileConfigured(t *testing.T) {
	d := New(nil, nil)
	var batteryLevel uint8 = 0xFF
	d.Start("", func(level uint8) { batteryLevel = level })

	assert.Equal(t, uint8(49), batteryLevel)
	assert.False(t, d.CartPresentStatus())
	assert.True(t, d.CartWriteProtectStatus())
	for i := 0x1000; i < 0x1000+6144; i++ {
		if d.CPU.Memory[i] != 0 {
			t.Fatalf("RAM byte at %#x not cleared: %#x", i, d.CPU.Memory[i])
		}
	}
}

func TestOnPeripheralWriteDispatchesLCDLEDAndDAC(t *testing.T) {
	toGui := midi.NewQueue()
	d := New(toGui, nil)

	d.CPU.Write8(addrLCDCtrl, 4)
	d.CPU.Write8(addrLCDData, 0x38) // function set: 8-bit, 2-line
	assert.True(t, d.LCD.TwoLine)

	// LED propagation fires on the LED1 write, so LED2 is written first,
	// in the order the firmware uses; a second LED1 write sends the pair
	// again.
	d.CPU.Write8(addrLED2, 0x0A)
	d.CPU.Write8(addrLED1, 0x05)
	d.CPU.Write8(addrLED1, 0x05)

	var sawLED1, sawLED2 bool
	for {
		m, ok := toGui.Pop()
		if !ok {
			break
		}
		switch midi.CtrlID(m.Byte1) {
		case midi.CtrlLED1SetVal:
			sawLED1 = true
			assert.Equal(t, uint8(0x05), m.Byte2)
		case midi.CtrlLED2SetVal:
			sawLED2 = true
			assert.Equal(t, uint8(0x0A), m.Byte2)
		}
	}
	assert.True(t, sawLED1)
	assert.True(t, sawLED2)

	d.CPU.Write8(addrDAC, 0x0B) // only low 3 bits count
	assert.Equal(t, uint8(0x03), d.MidiVolume())
}

func TestPostMessageAndHandshakeHaveMessage(t *testing.T) {
	d := New(nil, nil)
	assert.False(t, d.HaveMessage())

	d.PostMessage(midi.Message{Byte1: uint8(midi.CtrlSustain), Byte2: 1})
	assert.True(t, d.HaveMessage())

	d.CPU.Memory[cpu.RegPORT2] = 0x01
	d.CPU.Memory[d.CPU.PC] = 0x01 // NOP, so Run executes a legal instruction
	require.NoError(t, d.Run())
	assert.True(t, d.byte1Sent)
	assert.Equal(t, uint8(midi.CtrlSustain), d.CPU.Memory[cpu.RegPORT1])

	d.onAcept()
	assert.False(t, d.byte1Sent)
	assert.Equal(t, uint8(1), d.CPU.Memory[cpu.RegPORT1])

	d.onAcept()
	assert.False(t, d.HaveMessage())
	assert.True(t, d.CPU.IRQPin)
}

func TestQueueAndDequeueMIDITx(t *testing.T) {
	d := New(nil, nil)
	assert.True(t, d.midiSerialTx.Push(0x90))
	assert.True(t, d.midiSerialTx.Push(0x40))

	b, ok := d.DequeueMIDITx()
	require.True(t, ok)
	assert.Equal(t, byte(0x90), b)
	b, ok = d.DequeueMIDITx()
	require.True(t, ok)
	assert.Equal(t, byte(0x40), b)

	_, ok = d.DequeueMIDITx()
	assert.False(t, ok)
}

func TestQueueMIDIRxFillsReceiveBuffer(t *testing.T) {
	d := New(nil, nil)
	d.QueueMIDIRx([]byte{0x90, 0x40, 0x7F})

	for _, want := range []byte{0x90, 0x40, 0x7F} {
		got, ok := d.midiSerialRx.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
