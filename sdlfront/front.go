// Package sdlfront provides the SDL2 window, input, and audio front end.
//
// The front end owns nothing of the machine state: it polls the host
// keyboard into the frame driver, uploads a framebuffer snapshot once per
// frame, and plays a tone while the sound timer runs.
package sdlfront

import (
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/retroemu/chip8emu/clock"
	"github.com/retroemu/chip8emu/emu"
)

// Display colors, RGBA. Lit pixels are white on a black background.
var (
	colorOn  = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	colorOff = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

const (
	// framePeriodMs is the wall-clock budget of one 60Hz frame.
	framePeriodMs = 1000 / clock.TimerHz

	minScale = 2
	maxScale = 32
)

// Config configures the SDL front end.
type Config struct {
	// Driver is the frame driver to run.
	Driver *clock.Driver

	// Title is the window title.
	Title string

	// Scale is the initial integer pixel scale factor.
	Scale int

	// Logger receives front-end diagnostics.
	Logger *log.Logger
}

// front holds the SDL resources for one session.
type front struct {
	cfg      Config
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	audio    *beeper
	buffer   []byte
	scale    int
}

// Run opens the window and drives frames at 60Hz until the user quits.
// It takes over the main thread; call it from main.
func Run(cfg Config) error {
	var err error
	mainthread.Run(func() {
		err = run(cfg)
	})
	return err
}

func run(cfg Config) error {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithConfig(log.DefaultConfig())
	}

	f := &front{cfg: cfg, scale: cfg.Scale}
	if f.scale < minScale {
		f.scale = minScale
	}

	var err error
	mainthread.Call(func() {
		err = f.init()
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(f.close)

	f.loop()
	return nil
}

// init creates the SDL window, renderer, streaming texture, and audio device.
func (f *front) init() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("failed to init SDL: %w", err)
	}

	window, err := sdl.CreateWindow(f.cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(emu.DisplayWidth*f.scale),
		int32(emu.DisplayHeight*f.scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	// The texture is exactly the CHIP-8 framebuffer; the renderer stretches
	// it to the window size.
	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING,
		emu.DisplayWidth, emu.DisplayHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return fmt.Errorf("failed to create texture: %w", err)
	}

	f.window = window
	f.renderer = renderer
	f.texture = texture
	f.buffer = make([]byte, emu.DisplayWidth*emu.DisplayHeight*4)

	audio, err := newBeeper()
	if err != nil {
		// Audio is optional: keep running silently on hosts without it.
		f.cfg.Logger.Warn("audio unavailable", log.String("error", err.Error()))
	}
	f.audio = audio

	return nil
}

func (f *front) close() {
	if f.audio != nil {
		f.audio.close()
	}
	f.texture.Destroy()
	f.renderer.Destroy()
	f.window.Destroy()
	sdl.Quit()
}

// loop runs the 60Hz frame loop: poll input, run the machine for one frame,
// upload the framebuffer, pace to the frame budget.
func (f *front) loop() {
	driver := f.cfg.Driver

	for {
		start := sdl.GetTicks64()

		quit := false
		var keys [emu.KeyCount]bool
		var result clock.FrameResult

		mainthread.Call(func() {
			quit = f.handleEvents()
			keys = pollKeypad()
		})
		if quit {
			return
		}

		result = driver.Frame(keys)

		mainthread.Call(func() {
			f.present()
		})

		if f.audio != nil {
			f.audio.play(result.Beep && !driver.Paused())
		}

		elapsed := sdl.GetTicks64() - start
		if elapsed < framePeriodMs {
			sdl.Delay(uint32(framePeriodMs - elapsed))
		}
	}
}

// handleEvents drains the SDL event queue. Returns true on quit.
func (f *front) handleEvents() bool {
	driver := f.cfg.Driver

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}

			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return true

			case sdl.SCANCODE_SPACE:
				paused := driver.TogglePause()
				f.cfg.Logger.Info("pause toggled",
					log.String("paused", fmt.Sprintf("%t", paused)),
				)

			case sdl.SCANCODE_N:
				// Single step, only effective while paused.
				driver.StepOnce(pollKeypad())

			case sdl.SCANCODE_EQUALS:
				f.rescale(f.scale + 1)

			case sdl.SCANCODE_MINUS:
				f.rescale(f.scale - 1)
			}
		}
	}

	return false
}

// rescale resizes the window to a new integer scale factor.
// The machine state is untouched.
func (f *front) rescale(scale int) {
	if scale < minScale || scale > maxScale {
		return
	}
	f.scale = scale
	f.window.SetSize(int32(emu.DisplayWidth*scale), int32(emu.DisplayHeight*scale))
}

// present uploads a snapshot of the framebuffer and displays it.
func (f *front) present() {
	snapshot := f.cfg.Driver.Emulator().Display().Snapshot()

	offset := 0
	for y := 0; y < emu.DisplayHeight; y++ {
		for x := 0; x < emu.DisplayWidth; x++ {
			c := colorOff
			if snapshot[y][x] {
				c = colorOn
			}
			copy(f.buffer[offset:offset+4], c[:])
			offset += 4
		}
	}

	if err := f.texture.Update(nil, f.buffer, emu.DisplayWidth*4); err != nil {
		fmt.Fprintf(os.Stderr, "texture update failed: %v\n", err)
		return
	}
	f.renderer.Copy(f.texture, nil, nil)
	f.renderer.Present()
}
