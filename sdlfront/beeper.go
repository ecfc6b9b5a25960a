package sdlfront

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroemu/chip8emu/clock"
)

// Tone parameters for the sound-timer beep.
const (
	sampleRate = 48000
	toneHz     = 440

	// amplitude around the unsigned 8-bit midpoint.
	sampleHigh = 0xA0
	sampleLow  = 0x60

	// samplesPerFrame keeps the queue topped up one frame at a time.
	samplesPerFrame = sampleRate / clock.TimerHz

	// maxQueued caps the queue so the tone stops promptly when the sound
	// timer runs out.
	maxQueued = 2 * samplesPerFrame
)

// beeper plays a square wave through the SDL audio queue while the sound
// timer runs. The emulator itself produces no audio; the sound timer being
// nonzero is the only signal.
type beeper struct {
	device sdl.AudioDeviceID
	phase  int
	buf    []byte
}

func newBeeper() (*beeper, error) {
	spec := sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  1024,
	}

	device, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}

	return &beeper{
		device: device,
		buf:    make([]byte, samplesPerFrame),
	}, nil
}

// play queues one frame worth of square wave when on, and silences the
// device otherwise.
func (b *beeper) play(on bool) {
	if !on {
		sdl.PauseAudioDevice(b.device, true)
		return
	}

	if sdl.GetQueuedAudioSize(b.device) < maxQueued {
		period := sampleRate / toneHz
		for i := range b.buf {
			if b.phase < period/2 {
				b.buf[i] = sampleHigh
			} else {
				b.buf[i] = sampleLow
			}
			b.phase = (b.phase + 1) % period
		}
		_ = sdl.QueueAudio(b.device, b.buf)
	}

	sdl.PauseAudioDevice(b.device, false)
}

func (b *beeper) close() {
	sdl.CloseAudioDevice(b.device)
}
