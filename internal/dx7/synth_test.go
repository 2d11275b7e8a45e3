package dx7

import (
	"testing"

	"nitro-core-dx/internal/midi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSynthWiresQueues(t *testing.T) {
	toSynth, toGui := midi.NewQueue(), midi.NewQueue()
	s := NewSynth(toSynth, toGui, nil)

	require.NotNil(t, s.DX7)
	assert.Equal(t, 1.0, s.Volume)
	assert.Same(t, toSynth, s.ToSynth)
	assert.Same(t, toGui, s.ToGui)
}

func TestProcessMessageVolumeControl(t *testing.T) {
	s := NewSynth(midi.NewQueue(), midi.NewQueue(), nil)

	s.ProcessMessage(midi.Message{Byte1: uint8(midi.CtrlVolume), Byte2: 127})
	assert.InDelta(t, 1.0, s.Volume, 1e-9)

	s.ProcessMessage(midi.Message{Byte1: uint8(midi.CtrlVolume), Byte2: 0})
	assert.InDelta(t, 0.0, s.Volume, 1e-9)
}

func TestProcessMessageSustainPortaCartridge(t *testing.T) {
	s := NewSynth(midi.NewQueue(), midi.NewQueue(), nil)

	s.ProcessMessage(midi.Message{Byte1: uint8(midi.CtrlSustain), Byte2: 1})
	assert.Equal(t, uint8(1), s.DX7.CPU.Memory[addrPedalsLCD]&1)

	s.ProcessMessage(midi.Message{Byte1: uint8(midi.CtrlPorta), Byte2: 1})
	assert.Equal(t, uint8(0b10), s.DX7.CPU.Memory[addrPedalsLCD]&0b10)

	s.ProcessMessage(midi.Message{Byte1: uint8(midi.CtrlCartridge), Byte2: 1})
	assert.True(t, s.DX7.CartPresentStatus())
}

func TestProcessMessageKeyVelocityInversion(t *testing.T) {
	s := NewSynth(midi.NewQueue(), midi.NewQueue(), nil)

	s.ProcessMessage(midi.Message{Byte1: 159, Byte2: 40})
	assert.True(t, s.DX7.HaveMessage())
	assert.Equal(t, uint8(88), s.DX7.msg.Byte2) // 128 - 40
}

func TestQueueMIDIRxParsesNoteOn(t *testing.T) {
	s := NewSynth(midi.NewQueue(), midi.NewQueue(), nil)
	s.QueueMIDIRx([]byte{0x90, 40, 100})
	assert.True(t, s.DX7.HaveMessage())
}

func TestFillBufferProducesOutputWithoutPanicking(t *testing.T) {
	s := NewSynth(midi.NewQueue(), midi.NewQueue(), nil)
	s.SetSampleRate(44100)
	s.DX7.CPU.Memory[0] = 0x20 // BRA -2 at PC 0: the CPU loops in place
	s.DX7.CPU.Memory[1] = 0xFE

	out := make([]float32, 256)
	require.NoError(t, s.FillBuffer(out))
}

func TestResampleLinearHandlesShortSources(t *testing.T) {
	dst := make([]float32, 8)
	resampleLinear(nil, dst)
	for _, v := range dst {
		assert.Equal(t, float32(0), v)
	}

	resampleLinear([]float32{0.5}, dst)
	for _, v := range dst {
		assert.Equal(t, float32(0.5), v)
	}

	src := []float32{0, 1}
	resampleLinear(src, dst)
	assert.InDelta(t, 0.0, dst[0], 1e-6)
	assert.InDelta(t, 1.0, dst[len(dst)-1], 0.2)
}

func TestDrainMIDITxEmitsReassembledEvents(t *testing.T) {
	s := NewSynth(midi.NewQueue(), midi.NewQueue(), nil)
	s.DX7.midiSerialTx.Push(0x90)
	s.DX7.midiSerialTx.Push(64)
	s.DX7.midiSerialTx.Push(100)

	var events [][]byte
	s.DrainMIDITx(func(event []byte) {
		cp := make([]byte, len(event))
		copy(cp, event)
		events = append(events, cp)
	})

	require.Len(t, events, 1)
	assert.Equal(t, []byte{0x90, 64, 100}, events[0])
}
