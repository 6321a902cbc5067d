package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gookit/color"

	"github.com/lixenwraith/cellterm/app"
	"github.com/lixenwraith/cellterm/audio"
	"github.com/lixenwraith/cellterm/config"
	"github.com/lixenwraith/cellterm/terminal"
)

var (
	envFlag   = flag.String("env", ".env", "Path to .env file, ignored if missing")
	debugFlag = flag.Bool("debug", false, "Write debug log to the log directory")
	soundFlag = flag.Bool("sound", false, "Enable audio cues")
	tpsFlag   = flag.Int("tps", 0, "Ticks per second, overrides config when > 0")
)

var crashStyle = color.Style{color.FgRed, color.OpBold}

// crash restores the terminal and reports a panic on stderr
// Uses \r\n because the tty may still be in raw mode
func crash(r any) {
	terminal.EmergencyReset(os.Stdout)
	fmt.Fprintf(os.Stderr, "\r\n%s\r\n", crashStyle.Sprintf("CELLTERM-DEMO CRASHED: %v", r))
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func fatal(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "%s\n", color.Red.Sprintf("cellterm-demo: "+format, a...))
	os.Exit(1)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*envFlag)
	if err != nil {
		fatal("%v", err)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *soundFlag {
		cfg.Sound = true
	}
	if *tpsFlag > 0 {
		cfg.TickRate = *tpsFlag
	}
	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}

	if logFile := setupLogging(cfg.LogDir, cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("config: %+v", cfg)

	d, err := newDemo(cfg)
	if err != nil {
		fatal("%v", err)
	}

	if cfg.Sound {
		player, err := audio.NewCuePlayer(cfg.SampleRate, cfg.Volume)
		if err != nil {
			log.Printf("audio: %v (continuing without sound)", err)
		} else {
			d.cues = player
			defer player.Close()
		}
	}

	scr, err := terminal.Open(terminal.DefaultBackend(), cfg.SessionConfig(), cfg.ScreenConfig())
	if err != nil {
		fatal("%v", err)
	}
	d.renderStats = scr.Renderer().Stats

	runner := app.NewRunner(scr, d, app.RunnerConfig{
		TickInterval: cfg.TickInterval(),
		PollInterval: cfg.PollInterval,
		Logger:       log.Default(),
		CrashHandler: crash,
	})
	runErr := runner.Run()

	// Input loop has exited, safe to restore
	if err := scr.Close(); err != nil {
		log.Printf("close: %v", err)
	}

	if runErr != nil && !errors.Is(runErr, app.ErrInputClosed) {
		fatal("%v", runErr)
	}
}
