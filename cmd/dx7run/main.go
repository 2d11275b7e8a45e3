// Command dx7run is the playable front end: it loads firmware and
// battery RAM into a DX7 emulation, opens an SDL2 audio device fed from
// the synth's resampled output, pumps SDL2 keyboard events into the
// synth as MIDI note on/off, and shows the fyne front-panel UI.
package main

import (
	"fmt"
	"os"

	"nitro-core-dx/internal/config"
	"nitro-core-dx/internal/debug"
	"nitro-core-dx/internal/dx7"
	"nitro-core-dx/internal/midi"
	"nitro-core-dx/internal/ui"

	"github.com/spf13/cobra"
	"github.com/veandco/go-sdl2/sdl"
)

func main() {
	var cfgPath string
	var romPath, ramPath, factoryBanksPath, cartPath string
	var sampleRate float64
	var bufferSize int
	var enableLog bool

	root := &cobra.Command{
		Use:   "dx7run",
		Short: "Run the DX7 core against SDL2 audio and a fyne front panel",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "path to dx7run.toml")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the synth, audio output, and front-panel UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if romPath != "" {
				cfg.Files.ROM = romPath
			}
			if ramPath != "" {
				cfg.Files.RAM = ramPath
			}
			if factoryBanksPath != "" {
				cfg.Files.FactoryBanks = factoryBanksPath
			}
			if cartPath != "" {
				cfg.Files.Cartridge = cartPath
			}
			if sampleRate > 0 {
				cfg.Audio.SampleRate = sampleRate
			}
			if bufferSize > 0 {
				cfg.Audio.BufferSize = bufferSize
			}
			return run(cfg, enableLog)
		},
	}
	runCmd.Flags().StringVar(&romPath, "rom", "", "firmware ROM image (16384 bytes)")
	runCmd.Flags().StringVar(&ramPath, "ram", "", "battery-RAM image (6144 bytes)")
	runCmd.Flags().StringVar(&factoryBanksPath, "factory-banks", "", "factory voice bank image (32768 bytes)")
	runCmd.Flags().StringVar(&cartPath, "cartridge", "", "cartridge *.SYX to load at startup")
	runCmd.Flags().Float64Var(&sampleRate, "sample-rate", 0, "host audio sample rate (default from config)")
	runCmd.Flags().IntVar(&bufferSize, "buffer-size", 0, "host audio buffer size in samples (default from config)")
	runCmd.Flags().BoolVar(&enableLog, "log", false, "enable component logging")

	cartCmd := &cobra.Command{Use: "cart", Short: "Cartridge file operations"}
	cartLoadCmd := &cobra.Command{
		Use:   "load <path>",
		Short: "Validate a cartridge *.SYX file against the header/checksum rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			d := dx7.New(nil, nil)
			if cfg.Files.ROM != "" {
				if err := d.LoadROM(cfg.Files.ROM); err != nil {
					return localizeErr(cfg, err)
				}
			}
			if err := d.CartLoad(args[0]); err != nil {
				return localizeErr(cfg, err)
			}
			fmt.Printf("cartridge %q loaded OK\n", args[0])
			return nil
		},
	}
	cartSaveCmd := &cobra.Command{
		Use:   "save <path>",
		Short: "Save the currently loaded cartridge's RAM image to a *.SYX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			d := dx7.New(nil, nil)
			if cfg.Files.Cartridge != "" {
				if err := d.CartLoad(cfg.Files.Cartridge); err != nil {
					return localizeErr(cfg, err)
				}
			}
			if err := d.CartSave(args[0]); err != nil {
				return localizeErr(cfg, err)
			}
			return nil
		},
	}
	cartCmd.AddCommand(cartLoadCmd, cartSaveCmd)

	root.AddCommand(runCmd, cartCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// localizeErr translates a recognized dx7/cpu diagnostic (ROM load,
// cartridge checksum, illegal opcode) into cfg.Locale before it
// reaches the user; anything else passes through unchanged.
func localizeErr(cfg config.Config, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s", debug.NewLocalizer().Localize(cfg.Locale, err))
}

func run(cfg config.Config, enableLog bool) error {
	var log *debug.Logger
	if enableLog {
		log = debug.NewLogger(10000)
		log.SetLocale(cfg.Locale)
		for _, c := range []debug.Component{
			debug.ComponentCPU, debug.ComponentEGS, debug.ComponentOPS, debug.ComponentBus,
			debug.ComponentHandshake, debug.ComponentMIDI, debug.ComponentLCD,
			debug.ComponentUI, debug.ComponentSystem,
		} {
			log.SetComponentEnabled(c, true)
		}
	}

	toSynth := midi.NewQueue()
	toGui := midi.NewQueue()
	synth := dx7.NewSynth(toSynth, toGui, log)
	synth.SetSampleRate(cfg.Audio.SampleRate)

	if cfg.Files.ROM == "" {
		return fmt.Errorf("dx7run: no ROM configured (pass --rom or set files.rom in %s)", config.DefaultPath())
	}
	if err := synth.DX7.LoadROM(cfg.Files.ROM); err != nil {
		return localizeErr(cfg, err)
	}
	if cfg.Files.FactoryBanks != "" {
		if err := synth.DX7.LoadFactoryBanks(cfg.Files.FactoryBanks); err != nil && log != nil {
			log.LogSystemError(debug.LogLevelWarning, err, nil)
		}
	}
	synth.DX7.Start(cfg.Files.RAM, nil)
	if cfg.Files.Cartridge != "" {
		if err := synth.DX7.CartLoad(cfg.Files.Cartridge); err != nil && log != nil {
			log.LogSystemError(debug.LogLevelWarning, err, nil)
		}
	}
	synth.DX7.EGS.SetClean(cfg.CleanMode)

	audioDev, err := openAudio(synth, cfg)
	if err != nil {
		return err
	}
	defer sdl.CloseAudioDevice(audioDev)
	defer sdl.Quit()

	go pumpKeyboardMIDI(synth)

	ui.NewApp(synth, toSynth, log).Run()
	return nil
}
