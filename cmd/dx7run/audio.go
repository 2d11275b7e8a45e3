package main

import (
	"fmt"
	"math"

	"nitro-core-dx/internal/config"
	"nitro-core-dx/internal/dx7"

	"github.com/veandco/go-sdl2/sdl"
)

// audioQueueLimitBufs caps how many buffers' worth of audio may sit in
// SDL's queue before a fill is skipped, keeping playback latency bounded
// the same way the teacher's own ui.go throttles sdl.QueueAudio.
const audioQueueLimitBufs = 3

// openAudio opens a mono SDL2 audio device at the configured sample
// rate and starts a feeder goroutine that keeps it topped up with
// freshly resampled synth output.
func openAudio(synth *dx7.Synth, cfg config.Config) (sdl.AudioDeviceID, error) {
	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return 0, fmt.Errorf("dx7run: sdl init: %w", err)
	}

	spec := sdl.AudioSpec{
		Freq:     int32(cfg.Audio.SampleRate),
		Format:   sdl.AUDIO_F32,
		Channels: 1,
		Samples:  uint16(cfg.Audio.BufferSize),
	}
	dev, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return 0, fmt.Errorf("dx7run: open audio device: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)

	go feedAudio(dev, synth, cfg.Audio.BufferSize)
	return dev, nil
}

// feedAudio keeps the SDL audio queue topped up, pulling one buffer's
// worth of resampled synth output at a time and converting it to the
// little-endian float32 byte stream SDL expects.
func feedAudio(dev sdl.AudioDeviceID, synth *dx7.Synth, bufSize int) {
	buf := make([]float32, bufSize)
	bytesPerBuf := uint32(bufSize * 4)
	maxQueued := bytesPerBuf * audioQueueLimitBufs

	for {
		if sdl.GetQueuedAudioSize(dev) >= maxQueued {
			sdl.Delay(1)
			continue
		}
		if err := synth.FillBuffer(buf); err != nil {
			sdl.Delay(5)
			continue
		}
		if err := sdl.QueueAudio(dev, floatsToBytes(buf)); err != nil {
			sdl.Delay(1)
		}
	}
}

func floatsToBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		bits := math.Float32bits(s)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}
