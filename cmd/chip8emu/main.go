// Package main provides the chip8emu entry point.
// chip8emu is a CHIP-8 virtual machine emulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroemu/chip8emu/clock"
	"github.com/retroemu/chip8emu/emu"
	"github.com/retroemu/chip8emu/loader"
	"github.com/retroemu/chip8emu/sdlfront"
)

var (
	cycles   = flag.Int("cycles", clock.DefaultCyclesPerFrame, "Instruction cycles per 60Hz frame")
	scale    = flag.Int("scale", 8, "Window pixel scale factor")
	headless = flag.Bool("headless", false, "Run without a window for a fixed number of frames")
	frames   = flag.Int("frames", 600, "Frame count for headless mode")
	debug    = flag.Bool("debug", false, "Verbose logging")
	quiet    = flag.Bool("q", false, "Only log errors")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: chip8emu [options] <program.ch8>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := createLogger(*debug, *quiet)
	romPath := flag.Arg(0)

	prog, err := loader.Load(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	emulator := emu.NewEmulator()
	if err := emulator.LoadProgram(prog.Data); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	logger.Info("loaded ROM",
		log.String("file", romPath),
		log.Int("bytes", len(prog.Data)),
	)

	driver := clock.New(emulator,
		clock.WithCyclesPerFrame(*cycles),
		clock.WithLogger(logger),
		clock.WithDebugSink(os.Stderr),
	)

	if *headless {
		os.Exit(runHeadless(driver, logger))
	}
	os.Exit(runWindowed(driver, logger, romPath))
}

// createLogger builds the structured logger from the verbosity flags.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// runHeadless executes a fixed number of frames in virtual time and reports
// the machine outcome. Useful for ROM smoke tests and benchmarking.
func runHeadless(driver *clock.Driver, logger *log.Logger) int {
	scheduler := clock.NewScheduler(driver, *frames, nil)
	if err := scheduler.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Scheduler error: %v\n", err)
		return 1
	}

	logger.Info("headless run complete",
		log.Int("frames", scheduler.FramesExecuted()),
		log.Int("instructions", int(driver.Emulator().InstructionCount())),
	)

	if fault := driver.Emulator().HaltFault(); fault != nil {
		fmt.Fprintf(os.Stderr, "Machine halted: %v\n", fault)
		driver.Emulator().DumpState(os.Stderr)
		return 1
	}
	return 0
}

// runWindowed runs the SDL front end until the user quits.
func runWindowed(driver *clock.Driver, logger *log.Logger, romPath string) int {
	err := sdlfront.Run(sdlfront.Config{
		Driver: driver,
		Title:  "chip8emu - " + romPath,
		Scale:  *scale,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Front end error: %v\n", err)
		return 1
	}
	return 0
}
